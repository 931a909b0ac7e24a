package chunker

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/zhengshuai-xiao/xchunker/internal"
)

// NameParts splits the file name of path into stem and extension, e.g.
// "/data/backup.tar.gz" gives ("backup.tar", "gz"). Names without either
// part cannot carry the chunk naming scheme and are rejected.
func NameParts(path string) (stem, ext string, err error) {
	base := filepath.Base(path)
	dot := strings.LastIndex(base, ".")
	if dot <= 0 || dot == len(base)-1 {
		return "", "", fmt.Errorf("%w: %q needs a file name stem and an extension to be split", internal.ErrInvalidArgument, base)
	}
	return base[:dot], base[dot+1:], nil
}

// ChunkName returns the file name of the chunk at the 0-based index; the
// number in the name is 1-based.
func ChunkName(stem, ext string, index int) string {
	return fmt.Sprintf("%s_chunk%d.%s", stem, index+1, ext)
}
