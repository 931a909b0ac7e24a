// Copyright 2025 zhengshuai.xiao@outlook.com
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package chunker

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/zhengshuai-xiao/xchunker/internal"
	"golang.org/x/sync/semaphore"
)

// Merger concatenates chunk files into one output file. Up to Concurrency
// chunks are read ahead, but they are always written in the given order.
type Merger struct {
	BufferSize  int
	Concurrency int
	Progress    Progress

	// replaced in tests to observe the reads
	readChunk func(path string, size int64, bufferSize int) ([]byte, error)
}

func NewMerger(bufferSize, concurrency int, progress Progress) *Merger {
	return &Merger{
		BufferSize:  bufferSize,
		Concurrency: concurrency,
		Progress:    orNop(progress),
		readChunk:   readChunk,
	}
}

type readResult struct {
	data []byte
	err  error
}

// Merge writes chunks, in order, into outputPath and returns the elapsed
// time. The output is created or truncated and sized up front; on failure
// it is left as it is.
func (m *Merger) Merge(ctx context.Context, chunks []string, outputPath string) (time.Duration, error) {
	start := time.Now()

	if m.Concurrency < 1 {
		return 0, fmt.Errorf("%w: concurrency must be at least 1, got %d", internal.ErrInvalidArgument, m.Concurrency)
	}
	if m.BufferSize < 1 {
		return 0, fmt.Errorf("%w: buffer size must be at least 1, got %d", internal.ErrInvalidArgument, m.BufferSize)
	}

	sizes := make([]int64, len(chunks))
	var total int64
	for i, path := range chunks {
		info, err := os.Stat(path)
		if err != nil {
			return 0, fmt.Errorf("failed to stat chunk %s: %w", path, internal.NotFoundOr(err))
		}
		sizes[i] = info.Size()
		total += info.Size()
	}

	out, err := os.OpenFile(outputPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return 0, fmt.Errorf("failed to create output file: %w", err)
	}
	if err := internal.Preallocate(out, total); err != nil {
		out.Close()
		return 0, err
	}

	progress := orNop(m.Progress)
	progress.SetTotal(int64(len(chunks)))
	logger.Infof("merging %d chunks (%s) into %s with concurrency %d",
		len(chunks), internal.FormatBytes(uint64(total)), outputPath, m.Concurrency)

	doRead := m.readChunk
	if doRead == nil {
		doRead = readChunk
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// one slot per chunk; a reader never blocks on send
	results := make([]chan readResult, len(chunks))
	for i := range results {
		results[i] = make(chan readResult, 1)
	}

	// A slot is taken before a read starts and given back once its buffer
	// has been written, so at most Concurrency buffers are alive.
	sem := semaphore.NewWeighted(int64(m.Concurrency))
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i, path := range chunks {
			if err := sem.Acquire(ctx, 1); err != nil {
				return
			}
			if ctx.Err() != nil {
				sem.Release(1)
				return
			}
			wg.Add(1)
			go func(i int, path string) {
				defer wg.Done()
				data, err := doRead(path, sizes[i], m.BufferSize)
				results[i] <- readResult{data: data, err: err}
			}(i, path)
		}
	}()

	w := bufio.NewWriterSize(out, m.BufferSize)
	err = m.writeInOrder(ctx, w, chunks, results, sem, progress)
	if err == nil {
		err = w.Flush()
		if err != nil {
			err = fmt.Errorf("failed to flush output file: %w", err)
		}
	}
	cancel()
	wg.Wait()

	if cerr := out.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to close output file: %w", cerr)
	}
	if err != nil {
		logger.Errorf("merge into %s failed: %v", outputPath, err)
		return 0, err
	}

	elapsed := time.Since(start)
	logger.Infof("merged %d chunks into %s in %s", len(chunks), outputPath, elapsed)
	return elapsed, nil
}

// writeInOrder waits for chunk i before writing it, even when later chunks
// have already been read.
func (m *Merger) writeInOrder(ctx context.Context, w io.Writer, chunks []string,
	results []chan readResult, sem *semaphore.Weighted, progress Progress) error {
	for i := range chunks {
		select {
		case res := <-results[i]:
			sem.Release(1)
			if res.err != nil {
				return fmt.Errorf("chunk %s: %w", chunks[i], res.err)
			}
			if _, err := w.Write(res.data); err != nil {
				return fmt.Errorf("failed to write chunk %s to output: %w", chunks[i], err)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
		logger.Debugf("merged chunk %d/%d: %s", i+1, len(chunks), chunks[i])
		progress.Increment()
	}
	return nil
}

// MergeDir discovers the chunks in dir and merges them into outputPath. It
// returns the merged chunk paths so the caller can clean them up.
func (m *Merger) MergeDir(ctx context.Context, dir, outputPath string) ([]string, time.Duration, error) {
	chunks, err := Discover(dir)
	if err != nil {
		return nil, 0, err
	}
	if len(chunks) == 0 {
		return nil, 0, fmt.Errorf("%w: no chunks to merge in %s", internal.ErrNotFound, dir)
	}

	absOut, err := filepath.Abs(outputPath)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to resolve output path: %w", err)
	}
	for _, c := range chunks {
		if absChunk, err := filepath.Abs(c); err == nil && absChunk == absOut {
			return nil, 0, fmt.Errorf("%w: output %s is one of the chunks being merged", internal.ErrInvalidArgument, outputPath)
		}
	}

	elapsed, err := m.Merge(ctx, chunks, outputPath)
	if err != nil {
		return nil, 0, err
	}
	return chunks, elapsed, nil
}

func readChunk(path string, size int64, bufferSize int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open chunk: %w", internal.NotFoundOr(err))
	}
	defer f.Close()

	buf := make([]byte, size)
	n, err := io.ReadFull(bufio.NewReaderSize(f, bufferSize), buf)
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: read %d of %d bytes, chunk changed during merge", internal.ErrUnexpectedEOF, n, size)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read chunk: %w", err)
	}
	return buf, nil
}
