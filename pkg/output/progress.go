package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Progress renders a one-line "message: n/total (p%)" counter.
//
// It is used on stderr while structured output is being collected, so the
// user sees checks finishing even though stdout stays empty until the end.
//
// Fields:
//   - writer: Destination for progress output (typically os.Stderr)
//   - total: Total number of steps
//   - current: Steps completed so far
//   - message: Label shown before the counter
//   - enabled: Whether anything is rendered
//   - lastWidth: Width of the last rendered line, used for clearing
type Progress struct {
	mu        sync.Mutex
	writer    io.Writer
	total     int
	current   int
	message   string
	enabled   bool
	lastWidth int
}

// NewProgress creates an enabled progress indicator.
//
// Parameters:
//   - writer: Destination for progress output
//   - total: Total number of steps
//   - message: Label to display (e.g., "Checking packages")
//
// Returns:
//   - *Progress: Ready for concurrent use
func NewProgress(writer io.Writer, total int, message string) *Progress {
	return &Progress{
		writer:  writer,
		total:   total,
		message: message,
		enabled: true,
	}
}

// SetEnabled enables or disables progress output.
func (p *Progress) SetEnabled(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled = enabled
}

// Increment advances the progress by one step and re-renders the line.
//
// Safe to call from multiple goroutines; the line is rendered under the lock
// so concurrent increments never interleave partial lines.
func (p *Progress) Increment() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current < p.total {
		p.current++
	}
	p.renderLocked()
}

// Current returns the number of completed steps.
func (p *Progress) Current() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Done clears the progress line.
//
// Nothing is left behind on the terminal, so output written afterwards starts
// at column zero.
func (p *Progress) Done() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.enabled && p.lastWidth > 0 {
		_, _ = fmt.Fprintf(p.writer, "\r%s\r", strings.Repeat(" ", p.lastWidth))
		p.lastWidth = 0
	}
}

// renderLocked writes the current line. Caller must hold p.mu.
func (p *Progress) renderLocked() {
	if !p.enabled || p.total <= 0 {
		return
	}

	percentage := float64(p.current) / float64(p.total) * 100
	line := fmt.Sprintf("\r%s: %d/%d (%.0f%%)", p.message, p.current, p.total, percentage)
	if len(line) < p.lastWidth {
		line += strings.Repeat(" ", p.lastWidth-len(line))
	}
	p.lastWidth = len(line)

	_, _ = fmt.Fprint(p.writer, line)

	// Flush stderr so the counter renders immediately in CI logs
	if f, ok := p.writer.(*os.File); ok {
		_ = f.Sync()
	}
}
