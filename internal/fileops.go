package internal

import (
	"fmt"
	"io"
	"os"
)

// WriteAll keeps writing until buf is fully written or the writer fails.
func WriteAll(w io.Writer, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := w.Write(buf[total:])
		total += n
		if err != nil {
			return total, fmt.Errorf("failed to write file: %w", err)
		}
		if n == 0 {
			return total, fmt.Errorf("failed to write file: %w", io.ErrShortWrite)
		}
	}
	return total, nil
}

// WriteFileAll creates or truncates path and writes data to it.
func WriteFileAll(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := WriteAll(f, data); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

// Preallocate sizes f to exactly size bytes, reserving the blocks up front
// where the platform supports it.
func Preallocate(f *os.File, size int64) error {
	if size < 0 {
		return fmt.Errorf("%w: negative size %d", ErrInvalidArgument, size)
	}
	if err := f.Truncate(size); err != nil {
		return fmt.Errorf("failed to resize %s to %d: %w", f.Name(), size, err)
	}
	if size > 0 {
		// best effort, the file already has the right length
		if err := fallocate(f, size); err != nil {
			logger.Debugf("fallocate %s (%d bytes) not applied: %v", f.Name(), size, err)
		}
	}
	return nil
}

func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
