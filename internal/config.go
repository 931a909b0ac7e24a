package internal

import "fmt"

const (
	KiB = 1 << 10
	MiB = 1 << 20
	GiB = 1 << 30
	TiB = 1 << 40
)

const (
	DefaultChunkSize   = 24 * MiB
	DefaultBufferSize  = 8 * MiB
	DefaultConcurrency = 4
)

// Config carries the knobs shared by the split and merge commands.
type Config struct {
	ChunkSize   uint64
	BufferSize  uint64
	Concurrency int
	OutputDir   string
	Cleanup     bool
	Quiet       bool
}

func NewConfig() *Config {
	return &Config{
		ChunkSize:   DefaultChunkSize,
		BufferSize:  DefaultBufferSize,
		Concurrency: DefaultConcurrency,
	}
}

func (c *Config) Validate() error {
	switch {
	case c.Concurrency < 1:
		return fmt.Errorf("%w: concurrency must be at least 1, got %d", ErrInvalidArgument, c.Concurrency)
	case c.ChunkSize == 0:
		return fmt.Errorf("%w: chunk size must be greater than 0", ErrInvalidArgument)
	case c.BufferSize == 0:
		return fmt.Errorf("%w: buffer size must be greater than 0", ErrInvalidArgument)
	case c.ChunkSize > 1<<62:
		return fmt.Errorf("%w: chunk size %d is too large", ErrInvalidArgument, c.ChunkSize)
	case c.BufferSize > 1<<31:
		return fmt.Errorf("%w: buffer size %d is too large", ErrInvalidArgument, c.BufferSize)
	}
	return nil
}
