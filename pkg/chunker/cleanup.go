package chunker

import (
	"os"
)

// Cleanup removes the given chunk files and then dir itself. It is best
// effort: failures are logged and the remaining paths are still tried.
func Cleanup(chunks []string, dir string) {
	removed := 0
	for _, path := range chunks {
		if err := os.Remove(path); err != nil {
			logger.Warnf("failed to remove chunk %s: %v", path, err)
			continue
		}
		removed++
	}
	if err := os.Remove(dir); err != nil {
		logger.Warnf("failed to remove chunk directory %s: %v", dir, err)
	}
	logger.Infof("cleanup removed %d of %d chunks from %s", removed, len(chunks), dir)
}
