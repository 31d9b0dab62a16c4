// Package benchbar provides a really simple progress bar for the benchmarking
// process.
package benchbar

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// Bar counts finished operations of one benchmark step.
type Bar struct {
	pb *progressbar.ProgressBar
}

// NewBar returns a Bar drawn on stdout.
func NewBar(description string, maxItems int) *Bar {
	pb := progressbar.Default(int64(maxItems), description)
	_ = pb.Set(0)
	return &Bar{pb: pb}
}

// NewSilentBar returns a Bar that only counts, for non-interactive runs.
func NewSilentBar(maxItems int) *Bar {
	pb := progressbar.NewOptions64(
		int64(maxItems),
		progressbar.OptionSetWriter(io.Discard),
	)
	return &Bar{pb: pb}
}

func (b *Bar) Inc() {
	_ = b.pb.Add(1)
}

// Count returns how many operations were counted so far.
func (b *Bar) Count() int64 {
	return int64(b.pb.State().CurrentNum)
}

func (b *Bar) Finish() {
	_ = b.pb.Finish()
	_ = b.pb.Close()
}
