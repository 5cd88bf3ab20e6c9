// Package report renders check results.
//
// The table format streams a fixed header, one two-line block per outdated
// package and an elapsed-time trailer. Structured formats collect every result
// and write them once through pkg/output.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/ajxudir/pipx-outdated/pkg/constants"
	"github.com/ajxudir/pipx-outdated/pkg/outdated"
	"github.com/ajxudir/pipx-outdated/pkg/output"
	"github.com/ajxudir/pipx-outdated/pkg/utils"
)

// Column widths of the report line.
const (
	packageWidth = 20
	versionWidth = 8
	arrowWidth   = 4
	lineIndent   = "    "
)

// Printer writes check results to a single output stream.
//
// Every write goes through one mutex so blocks from concurrent checks never
// interleave. A Printer is safe for concurrent use.
//
// Fields:
//   - out: Destination stream (typically os.Stdout)
//   - format: Table or one of the structured formats
//   - progress: Optional counter advanced by Emit in structured mode
type Printer struct {
	mu       sync.Mutex
	out      io.Writer
	format   output.Format
	progress *output.Progress
}

// NewPrinter creates a Printer.
//
// Parameters:
//   - out: Destination stream
//   - format: Output format; empty selects the table report
//
// Returns:
//   - *Printer: Ready for concurrent use
func NewPrinter(out io.Writer, format output.Format) *Printer {
	if format == "" {
		format = output.FormatTable
	}
	return &Printer{out: out, format: format}
}

// Streaming reports whether results are written as they arrive.
func (p *Printer) Streaming() bool {
	return !output.IsStructuredFormat(p.format)
}

// SetProgress attaches a progress counter advanced once per emitted result.
func (p *Printer) SetProgress(progress *output.Progress) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.progress = progress
}

// Header writes the report header. Structured formats write nothing.
func (p *Printer) Header() error {
	if !p.Streaming() {
		return nil
	}
	return p.write(constants.ReportHeader + "\n")
}

// Emit handles one finished check.
//
// In table mode an Outdated result is written as a single block; other
// statuses produce no output. In structured mode only the progress counter
// advances.
//
// Parameters:
//   - res: Result of checking one package
//
// Returns:
//   - error: When the write fails
func (p *Printer) Emit(res outdated.Result) error {
	if !p.Streaming() {
		p.mu.Lock()
		progress := p.progress
		p.mu.Unlock()
		if progress != nil {
			progress.Increment()
		}
		return nil
	}
	if res.Status != outdated.StatusOutdated || res.Record == nil {
		return nil
	}
	return p.write(FormatBlock(*res.Record))
}

// Trailer writes the elapsed-time line. Structured formats write nothing.
func (p *Printer) Trailer(elapsed time.Duration) error {
	if !p.Streaming() {
		return nil
	}
	return p.write(FormatTrailer(elapsed) + "\n")
}

// WriteStructured writes the collected run in the structured format.
//
// It clears the progress line first so nothing trails the document.
//
// Parameters:
//   - result: Collected run, see BuildCheckResult
//
// Returns:
//   - error: When the printer is in table mode or the write fails
func (p *Printer) WriteStructured(result *output.CheckResult) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.progress != nil {
		p.progress.Done()
	}
	return output.WriteCheckResult(p.out, p.format, result)
}

// write sends s to the stream in a single Write call.
func (p *Printer) write(s string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, err := io.WriteString(p.out, s)
	return err
}

// FormatLine renders the indented report line of an outdated record.
//
// Example:
//
//	FormatLine(Record{Package: "black", Current: "24.1.0", Latest: "24.4.2", Kind: "wheel"})
//	// "    black                 24.1.0 -> 24.4.2 (wheel)"
func FormatLine(rec outdated.Record) string {
	var b strings.Builder
	b.WriteString(lineIndent)
	b.WriteString(utils.ToWidth(rec.Package, packageWidth))
	b.WriteString(utils.ToWidthRight(rec.Current, versionWidth))
	b.WriteString(utils.Center("->", arrowWidth))
	b.WriteString(rec.Latest)
	b.WriteString(" (")
	b.WriteString(rec.Kind)
	b.WriteString(")")
	return b.String()
}

// FormatBlock renders the two-line block "<package>:\n<line>\n".
func FormatBlock(rec outdated.Record) string {
	return rec.Package + ":\n" + FormatLine(rec) + "\n"
}

// FormatTrailer renders the elapsed-time line without a newline.
func FormatTrailer(elapsed time.Duration) string {
	return fmt.Sprintf(constants.ReportTrailerFormat, elapsed.Seconds())
}

// BuildCheckResult converts ordered check results into the structured form.
//
// Parameters:
//   - total: Number of top-level packages listed by pipx
//   - results: Finished checks in listing order; zero-value entries (never
//     started) are skipped
//   - elapsed: Wall-clock time of the run
//   - failures: Failure messages, typically supervision.FailureTracker.Messages("")
//
// Returns:
//   - *output.CheckResult: Summary counts plus one entry per finished check
func BuildCheckResult(total int, results []outdated.Result, elapsed time.Duration, failures []string) *output.CheckResult {
	result := &output.CheckResult{
		Summary: output.CheckSummary{
			TotalPackages:  total,
			ElapsedSeconds: elapsed.Seconds(),
		},
		Packages: make([]output.PackageEntry, 0, len(results)),
		Errors:   failures,
	}

	for _, res := range results {
		if res.Package == "" || res.Status == "" {
			continue
		}
		entry := output.PackageEntry{Package: res.Package, Status: string(res.Status)}
		switch res.Status {
		case outdated.StatusOutdated:
			result.Summary.Outdated++
			if res.Record != nil {
				entry.Distribution = res.Record.Distribution
				entry.Current = res.Record.Current
				entry.Latest = res.Record.Latest
				entry.Kind = res.Record.Kind
				entry.UpdateType = res.Record.UpdateType
			}
		case outdated.StatusUpToDate:
			result.Summary.UpToDate++
		case outdated.StatusCheckFailed:
			result.Summary.Failed++
			if res.Err != nil {
				entry.Error = res.Err.Error()
			}
		}
		result.Summary.Checked++
		result.Packages = append(result.Packages, entry)
	}
	return result
}

// FailurePrefix returns the marker placed before failure lines on w.
//
// Terminals get the error icon; pipes and files get a plain dash.
func FailurePrefix(w io.Writer) string {
	if IsTerminal(w) {
		return constants.IconError
	}
	return "-"
}

// IsTerminal reports whether w is a terminal, including Cygwin/MSYS ptys.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// WriteFailureSummary writes a "Failed checks:" section to w.
//
// Parameters:
//   - w: Destination, typically os.Stderr
//   - messages: One line per failure without prefix
//
// Returns:
//   - error: When the write fails; nothing is written for an empty list
func WriteFailureSummary(w io.Writer, messages []string) error {
	if len(messages) == 0 {
		return nil
	}
	prefix := FailurePrefix(w)

	var b strings.Builder
	fmt.Fprintf(&b, "\nFailed checks (%d):\n", len(messages))
	for _, msg := range messages {
		fmt.Fprintf(&b, "  %s %s\n", prefix, msg)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
