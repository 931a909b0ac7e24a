package chunker

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/zhengshuai-xiao/xchunker/internal"
)

// ChunkEntry is a directory entry with the sort key taken from its name.
type ChunkEntry struct {
	Path    string
	SortKey uint64
	IsDir   bool
}

// SortKey concatenates every ASCII digit in name, in order, and parses the
// result. "x_chunk12.bin" gives 12, but "v2_chunk3.bin" gives 23: all digits
// count, not just the chunk number. Names without digits, or whose digits
// overflow uint64, get 0.
func SortKey(name string) uint64 {
	digits := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		if name[i] >= '0' && name[i] <= '9' {
			digits = append(digits, name[i])
		}
	}
	if len(digits) == 0 {
		return 0
	}
	key, err := strconv.ParseUint(string(digits), 10, 64)
	if err != nil {
		return 0
	}
	return key
}

// DiscoverEntries lists every entry of dir (not recursive) and orders them
// by SortKey. Entries with equal keys keep the order the filesystem
// returned them in. Nothing is filtered out.
func DiscoverEntries(dir string) ([]ChunkEntry, error) {
	d, err := os.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open chunk directory: %w", internal.NotFoundOr(err))
	}
	defer d.Close()

	// File.ReadDir keeps directory order, os.ReadDir would sort by name.
	dirents, err := d.ReadDir(-1)
	if err != nil {
		return nil, fmt.Errorf("failed to read chunk directory %s: %w", dir, err)
	}

	entries := make([]ChunkEntry, 0, len(dirents))
	for _, de := range dirents {
		entries = append(entries, ChunkEntry{
			Path:    filepath.Join(dir, de.Name()),
			SortKey: SortKey(de.Name()),
			IsDir:   de.IsDir(),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].SortKey < entries[j].SortKey
	})
	return entries, nil
}

// Discover returns the paths of DiscoverEntries, in merge order.
func Discover(dir string) ([]string, error) {
	entries, err := DiscoverEntries(dir)
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.Path
	}
	return paths, nil
}
