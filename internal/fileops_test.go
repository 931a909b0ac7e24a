package internal

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// trickleWriter accepts at most n bytes per call.
type trickleWriter struct {
	n   int
	out []byte
}

func (w *trickleWriter) Write(p []byte) (int, error) {
	if len(p) > w.n {
		p = p[:w.n]
	}
	w.out = append(w.out, p...)
	return len(p), nil
}

type stuckWriter struct{}

func (stuckWriter) Write(p []byte) (int, error) { return 0, nil }

func TestWriteAll(t *testing.T) {
	tmpfile, err := os.CreateTemp(t.TempDir(), "test-writeall-*.txt")
	require.NoError(t, err)
	defer tmpfile.Close()

	content := []byte("this is a test content for WriteAll")
	n, err := WriteAll(tmpfile, content)
	assert.NoError(t, err)
	assert.Equal(t, len(content), n)

	readContent, err := os.ReadFile(tmpfile.Name())
	assert.NoError(t, err)
	assert.Equal(t, content, readContent)
}

func TestWriteAllShortWrites(t *testing.T) {
	w := &trickleWriter{n: 3}
	n, err := WriteAll(w, []byte("0123456789"))
	assert.NoError(t, err)
	assert.Equal(t, 10, n)
	assert.Equal(t, "0123456789", string(w.out))

	_, err = WriteAll(stuckWriter{}, []byte("x"))
	assert.True(t, errors.Is(err, io.ErrShortWrite))
}

func TestWriteFileAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chunk.bin")
	require.NoError(t, os.WriteFile(path, []byte("old content that is longer"), 0644))

	require.NoError(t, WriteFileAll(path, []byte("new")))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))

	err = WriteFileAll(filepath.Join(t.TempDir(), "missing", "chunk.bin"), []byte("x"))
	assert.Error(t, err)
}

func TestPreallocate(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out.bin"))
	require.NoError(t, err)
	defer f.Close()

	for _, size := range []int64{4096, 10, 0} {
		require.NoError(t, Preallocate(f, size))
		info, err := f.Stat()
		require.NoError(t, err)
		assert.Equal(t, size, info.Size())
	}

	assert.ErrorIs(t, Preallocate(f, -1), ErrInvalidArgument)
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	assert.True(t, Exists(dir))
	assert.False(t, Exists(filepath.Join(dir, "nope")))
}
