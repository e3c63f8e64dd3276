// Package progress shows a terminal progress bar while pairs are compared.
package progress

import (
	"io"
	"sync"

	"github.com/schollz/progressbar/v3"

	"github.com/baditaflorin/mesi/internal/ports"
)

// Bar reports engine progress on a progressbar written to w.
type Bar struct {
	mu          sync.Mutex
	w           io.Writer
	description string
	bar         *progressbar.ProgressBar
}

// NewBar creates a progress reporter writing to w, usually stderr.
func NewBar(w io.Writer, description string) *Bar {
	return &Bar{w: w, description: description}
}

// Start creates the bar for total pairs.
func (b *Bar) Start(total int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(b.w),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(15),
		progressbar.OptionSetDescription(b.description),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionClearOnFinish(),
	)
}

// Advance moves the bar by one pair.
func (b *Bar) Advance() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.bar != nil {
		_ = b.bar.Add(1)
	}
}

// Finish completes and clears the bar.
func (b *Bar) Finish() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.bar != nil {
		_ = b.bar.Finish()
		b.bar = nil
	}
}

// Disabled is a reporter that shows nothing.
type Disabled struct{}

func (Disabled) Start(int) {}
func (Disabled) Advance()  {}
func (Disabled) Finish()   {}

// New returns a bar on w, or a silent reporter when enabled is false.
func New(w io.Writer, enabled bool) ports.ProgressReporter {
	if !enabled {
		return Disabled{}
	}
	return NewBar(w, "Comparing files...")
}
