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
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/zhengshuai-xiao/xchunker/internal"
	"golang.org/x/sync/errgroup"
)

var logger = internal.GetLogger("xchunker_chunker")

// ChunkResult summarizes a finished split.
type ChunkResult struct {
	Count   int
	Elapsed time.Duration
}

// Seconds returns the elapsed wall-clock time in seconds.
func (r ChunkResult) Seconds() float64 {
	return r.Elapsed.Seconds()
}

// Splitter cuts a file into chunk files, running at most Concurrency chunk
// reads/writes at the same time.
type Splitter struct {
	ChunkSize   int64
	Concurrency int
	Progress    Progress

	// replaced in tests to observe the units of work
	copyRange func(src string, r Range, dst string) error
}

func NewSplitter(chunkSize int64, concurrency int, progress Progress) *Splitter {
	return &Splitter{
		ChunkSize:   chunkSize,
		Concurrency: concurrency,
		Progress:    orNop(progress),
		copyRange:   copyRange,
	}
}

// Split writes sourcePath as <stem>_chunk<N>.<ext> files into outputDir,
// which must already exist. On failure, chunks written so far stay on disk.
func (s *Splitter) Split(ctx context.Context, sourcePath, outputDir string) (ChunkResult, error) {
	start := time.Now()

	if s.Concurrency < 1 {
		return ChunkResult{}, fmt.Errorf("%w: concurrency must be at least 1, got %d", internal.ErrInvalidArgument, s.Concurrency)
	}

	info, err := os.Stat(sourcePath)
	if err != nil {
		return ChunkResult{}, fmt.Errorf("failed to stat source file: %w", internal.NotFoundOr(err))
	}
	if !info.Mode().IsRegular() {
		return ChunkResult{}, fmt.Errorf("%w: source %s is not a regular file", internal.ErrInvalidArgument, sourcePath)
	}

	stem, ext, err := NameParts(sourcePath)
	if err != nil {
		return ChunkResult{}, err
	}

	plan, err := NewPlan(info.Size(), s.ChunkSize)
	if err != nil {
		return ChunkResult{}, err
	}

	progress := orNop(s.Progress)
	progress.SetTotal(int64(plan.Count()))

	logger.Infof("splitting %s (%s) into %d chunks of %s with concurrency %d",
		sourcePath, internal.FormatBytes(uint64(info.Size())), plan.Count(),
		internal.FormatBytes(uint64(s.ChunkSize)), s.Concurrency)

	doCopy := s.copyRange
	if doCopy == nil {
		doCopy = copyRange
	}

	// errgroup's ctx is only used to stop scheduling: a unit that already
	// started always runs to completion.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.Concurrency)
	for _, r := range plan {
		r := r // per-iteration copy (go < 1.22 loop semantics)
		if gctx.Err() != nil {
			break
		}
		dst := filepath.Join(outputDir, ChunkName(stem, ext, r.Index))
		g.Go(func() error {
			// g.Go may have been waiting for a slot while another unit failed
			if gctx.Err() != nil {
				return nil
			}
			if err := doCopy(sourcePath, r, dst); err != nil {
				return fmt.Errorf("chunk %d [%d, %d): %w", r.Index+1, r.Start, r.End, err)
			}
			logger.Debugf("wrote chunk %d/%d to %s (%d bytes)", r.Index+1, plan.Count(), dst, r.Len())
			progress.Increment()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Errorf("split of %s failed: %v", sourcePath, err)
		return ChunkResult{}, err
	}
	// g.Wait reports nil when the caller cancelled before any unit failed
	if err := ctx.Err(); err != nil {
		return ChunkResult{}, err
	}

	result := ChunkResult{Count: plan.Count(), Elapsed: time.Since(start)}
	logger.Infof("split %s into %d chunks in %s", sourcePath, result.Count, result.Elapsed)
	return result, nil
}

// copyRange reads r from src through its own handle and writes it to dst.
func copyRange(src string, r Range, dst string) error {
	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", internal.NotFoundOr(err))
	}
	defer f.Close()

	if _, err := f.Seek(r.Start, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek source to %d: %w", r.Start, err)
	}

	buf := make([]byte, r.Len())
	n, err := io.ReadFull(f, buf)
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: read %d of %d bytes, source changed during split", internal.ErrUnexpectedEOF, n, len(buf))
	}
	if err != nil {
		return fmt.Errorf("failed to read source: %w", err)
	}

	return internal.WriteFileAll(dst, buf)
}
