package internal

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	// ErrInvalidArgument covers bad size specs, names without stem or
	// extension, and non-positive chunk sizes or concurrency.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound covers a missing source file and an empty chunk directory.
	ErrNotFound = errors.New("not found")
	// ErrUnexpectedEOF means a file was shorter than planned while being read,
	// i.e. something modified it concurrently.
	ErrUnexpectedEOF = errors.New("unexpected end of file")
)

// NotFoundOr tags err with ErrNotFound when it reports a missing file and
// returns it unchanged otherwise. The original cause stays in the chain.
func NotFoundOr(err error) error {
	if err == nil || errors.Is(err, ErrNotFound) {
		return err
	}
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return err
}
