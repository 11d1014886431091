// Package progress draws a single-line terminal progress bar for long
// generation runs.
package progress

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

const defaultWidth = 40

// Bar redraws itself in place on every update.
type Bar struct {
	mu      sync.Mutex
	out     io.Writer
	total   int
	current int
	width   int
	label   string
}

// New returns a bar for total units writing to w.
func New(w io.Writer, total int, label string) *Bar {
	return &Bar{
		out:   w,
		total: total,
		width: defaultWidth,
		label: label,
	}
}

// SetTotal changes the denominator, e.g. once a remote run reports it.
func (b *Bar) SetTotal(total int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.total = total
}

// Update sets the current count and redraws. It matches
// generator.ProgressFunc.
func (b *Bar) Update(current int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current = current
	b.draw()
}

// Current returns the last count drawn.
func (b *Bar) Current() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// Complete fills the bar, clears the line and prints message.
func (b *Bar) Complete(message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current = b.total
	fmt.Fprintf(b.out, "\r%s\r", strings.Repeat(" ", b.width+len(b.label)+30))
	fmt.Fprintf(b.out, "  ✓ %s\n", message)
}

// Fail clears the line and prints message with a failure mark.
func (b *Bar) Fail(message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fmt.Fprintf(b.out, "\r%s\r", strings.Repeat(" ", b.width+len(b.label)+30))
	fmt.Fprintf(b.out, "  ✗ %s\n", message)
}

func (b *Bar) draw() {
	if b.total <= 0 {
		return
	}

	ratio := float64(b.current) / float64(b.total)
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio * float64(b.width))

	cells := strings.Repeat("█", filled) + strings.Repeat("░", b.width-filled)
	fmt.Fprintf(b.out, "\r  %s [%s] %3.0f%% (%d/%d)", b.label, cells, ratio*100, b.current, b.total)
}
