package chunker

// Progress receives one tick per finished chunk. Increment is called from
// several goroutines at once, so implementations must be safe for that.
type Progress interface {
	// SetTotal is called once before the first Increment.
	SetTotal(n int64)
	Increment()
}

// NopProgress discards all updates.
type NopProgress struct{}

func (NopProgress) SetTotal(int64) {}
func (NopProgress) Increment()     {}

func orNop(p Progress) Progress {
	if p == nil {
		return NopProgress{}
	}
	return p
}
