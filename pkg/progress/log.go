package progress

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// LogReporter writes "label: done/total" lines instead of drawing a bar,
// for output that is not a terminal.
type LogReporter struct {
	logger logrus.FieldLogger
	label  string
	every  int64

	total atomic.Int64
	done  atomic.Int64
}

// NewLogReporter logs every `every` chunks and on the last one. With every
// <= 0 it logs roughly every tenth of the total.
func NewLogReporter(logger logrus.FieldLogger, label string, every int64) *LogReporter {
	return &LogReporter{logger: logger, label: label, every: every}
}

func (r *LogReporter) SetTotal(n int64) {
	r.total.Store(n)
	if r.every <= 0 {
		r.every = max(n/10, 1)
	}
	r.logger.Infof("%s: 0/%d chunks", r.label, n)
}

func (r *LogReporter) Increment() {
	done := r.done.Add(1)
	total := r.total.Load()
	if done == total || (r.every > 0 && done%r.every == 0) {
		r.logger.Infof("%s: %d/%d chunks", r.label, done, total)
	}
}

func (r *LogReporter) Finish() {
	r.logger.Debugf("%s: finished after %d/%d chunks", r.label, r.done.Load(), r.total.Load())
}
