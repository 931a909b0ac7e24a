package progress

import (
	"io"
	"sync"

	"github.com/cheggaaa/pb"
)

// Bar draws a chunk counter with speed and elapsed time.
type Bar struct {
	bar   *pb.ProgressBar
	start sync.Once
}

func NewBar(w io.Writer, prefix string) *Bar {
	bar := pb.New64(0)
	bar.Output = w
	bar.ShowSpeed = true
	bar.ShowCounters = true
	bar.ShowTimeLeft = false
	bar.Prefix(prefix)
	return &Bar{bar: bar}
}

func (b *Bar) SetTotal(n int64) {
	b.bar.SetTotal64(n)
	b.start.Do(func() { b.bar.Start() })
}

func (b *Bar) Increment() {
	b.bar.Increment()
}

func (b *Bar) Finish() {
	b.start.Do(func() { b.bar.Start() })
	b.bar.Finish()
}
