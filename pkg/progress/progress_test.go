package progress

import (
	"bytes"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zhengshuai-xiao/xchunker/pkg/chunker"
)

var (
	_ chunker.Progress = (*Bar)(nil)
	_ chunker.Progress = (*LogReporter)(nil)
	_ chunker.Progress = (*Counter)(nil)
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestCounterConcurrent(t *testing.T) {
	c := &Counter{}
	c.SetTotal(100)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Increment()
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(100), c.Total())
	assert.Equal(t, int64(100), c.Count())
}

func TestLogReporter(t *testing.T) {
	testCases := []struct {
		name     string
		every    int64
		total    int64
		expected []string
	}{
		{
			name:     "Every Two",
			every:    2,
			total:    5,
			expected: []string{"split: 0/5 chunks", "split: 2/5 chunks", "split: 4/5 chunks", "split: 5/5 chunks"},
		},
		{
			name:     "Default Interval",
			every:    0,
			total:    3,
			expected: []string{"split: 0/3 chunks", "split: 1/3 chunks", "split: 2/3 chunks", "split: 3/3 chunks"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			log, hook := test.NewNullLogger()
			r := NewLogReporter(log, "split", tc.every)
			r.SetTotal(tc.total)
			for i := int64(0); i < tc.total; i++ {
				r.Increment()
			}
			r.Finish()

			var msgs []string
			for _, e := range hook.AllEntries() {
				if e.Level == logrus.InfoLevel {
					msgs = append(msgs, e.Message)
				}
			}
			assert.Equal(t, tc.expected, msgs)
		})
	}
}

func TestBar(t *testing.T) {
	out := &lockedBuffer{}
	bar := NewBar(out, "merge ")
	bar.SetTotal(3)
	for i := 0; i < 3; i++ {
		bar.Increment()
	}
	bar.Finish()

	assert.Contains(t, out.String(), "merge")
}

func TestForTerminal(t *testing.T) {
	_, ok := ForTerminal(&bytes.Buffer{}, true, "split").(nopSink)
	assert.True(t, ok, "quiet gives a no-op sink")

	sink := ForTerminal(&bytes.Buffer{}, false, "split")
	_, ok = sink.(*LogReporter)
	require.True(t, ok, "a buffer is not a terminal")
	assert.NotPanics(t, func() {
		sink.SetTotal(1)
		sink.Increment()
		sink.Finish()
	})
}
