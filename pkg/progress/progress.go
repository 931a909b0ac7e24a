// Package progress provides the chunker.Progress sinks used by the command
// line: a terminal bar, a log reporter and a plain counter.
package progress

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/zhengshuai-xiao/xchunker/internal"
	"github.com/zhengshuai-xiao/xchunker/pkg/chunker"
)

var logger = internal.GetLogger("xchunker_progress")

// Sink is a chunker.Progress that has to be finished once the work is done.
type Sink interface {
	chunker.Progress
	Finish()
}

type nopSink struct {
	chunker.NopProgress
}

func (nopSink) Finish() {}

// ForTerminal picks a sink for w: nothing when quiet, a bar when w is a
// terminal, periodic log lines otherwise.
func ForTerminal(w io.Writer, quiet bool, label string) Sink {
	if quiet {
		return nopSink{}
	}
	if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return NewBar(w, label+" ")
	}
	return NewLogReporter(logger, label, 0)
}
