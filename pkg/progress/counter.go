package progress

import "sync/atomic"

// Counter only counts.
type Counter struct {
	total atomic.Int64
	count atomic.Int64
}

func (c *Counter) SetTotal(n int64) { c.total.Store(n) }
func (c *Counter) Increment()       { c.count.Add(1) }
func (c *Counter) Finish()          {}

func (c *Counter) Total() int64 { return c.total.Load() }
func (c *Counter) Count() int64 { return c.count.Load() }
