// Package output provides formatted output utilities for the CLI.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Sprintf helpers for the colored path. They respect NO_COLOR through
// the color package's global switch.
var (
	green   = color.New(color.FgGreen).SprintfFunc()
	red     = color.New(color.FgRed).SprintfFunc()
	yellow  = color.New(color.FgYellow).SprintfFunc()
	cyan    = color.New(color.FgCyan).SprintfFunc()
	heading = color.New(color.FgCyan, color.Bold).SprintfFunc()
	accent  = color.New(color.FgYellow, color.Bold).SprintfFunc()
	dim     = color.New(color.Faint).SprintfFunc()
)

// Writer handles CLI output formatting.
type Writer struct {
	out     io.Writer
	err     io.Writer
	color   bool
	quiet   bool
	verbose bool
}

// New creates a new Writer with default settings.
func New() *Writer {
	return &Writer{
		out:   os.Stdout,
		err:   os.Stderr,
		color: isTerminal() && os.Getenv("NO_COLOR") == "",
	}
}

// NewWithWriters creates a Writer with custom io.Writers (for testing).
func NewWithWriters(out, err io.Writer, colored bool) *Writer {
	return &Writer{
		out:   out,
		err:   err,
		color: colored,
	}
}

// SetQuiet enables or disables quiet mode.
func (w *Writer) SetQuiet(quiet bool) {
	w.quiet = quiet
}

// SetVerbose enables or disables verbose mode.
func (w *Writer) SetVerbose(verbose bool) {
	w.verbose = verbose
}

// SetColor enables or disables colored output.
func (w *Writer) SetColor(colored bool) {
	w.color = colored
}

// Print writes to stdout.
func (w *Writer) Print(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format, args...)
}

// Println writes a line to stdout.
func (w *Writer) Println(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Error writes to stderr.
func (w *Writer) Error(format string, args ...interface{}) {
	fmt.Fprintf(w.err, format, args...)
}

// Errorln writes a line to stderr.
func (w *Writer) Errorln(format string, args ...interface{}) {
	fmt.Fprintf(w.err, format+"\n", args...)
}

// Info prints an info message (skipped in quiet mode).
func (w *Writer) Info(format string, args ...interface{}) {
	if w.quiet {
		return
	}
	w.Println(format, args...)
}

// Verbose prints a message only in verbose mode.
func (w *Writer) Verbose(format string, args ...interface{}) {
	if !w.verbose {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Println("%s", dim("%s", msg))
	} else {
		w.Println("%s", msg)
	}
}

// Success prints a success message.
func (w *Writer) Success(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Println("%s", green("%s", msg))
	} else {
		w.Println("%s", msg)
	}
}

// Warning prints a warning message to stderr.
func (w *Writer) Warning(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Errorln("%s %s", yellow("warning:"), msg)
	} else {
		w.Errorln("warning: %s", msg)
	}
}

// ErrorPrefix prints an error message with the outfitter prefix to
// stderr.
func (w *Writer) ErrorPrefix(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Errorln("%s %s", red("outfitter:"), msg)
	} else {
		w.Errorln("outfitter: %s", msg)
	}
}

// Hint prints a de-emphasized hint for the user.
func (w *Writer) Hint(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Println("%s", dim("%s", msg))
	} else {
		w.Println("%s", msg)
	}
}

// UpdateNotification tells the user a newer release exists. Written to
// stderr so piped stdout stays clean.
func (w *Writer) UpdateNotification(latest string) {
	msg := fmt.Sprintf("outfitter %s is available, see https://github.com/outfitterhq/outfitter/releases", latest)
	if w.color {
		w.Errorln("\n%s %s", accent("update:"), msg)
	} else {
		w.Errorln("\nupdate: %s", msg)
	}
}

// Section prints a section header.
func (w *Writer) Section(title string) {
	if w.quiet {
		return
	}
	w.Println("")
	if w.color {
		w.Println("%s", heading("=== %s ===", title))
	} else {
		w.Println("=== %s ===", title)
	}
}

// List prints a list of items.
func (w *Writer) List(items []string) {
	for _, item := range items {
		w.Println("  - %s", item)
	}
}

// TaskStart announces a task about to run.
func (w *Writer) TaskStart(name, category string) {
	if w.quiet {
		return
	}
	w.Println("")
	label := fmt.Sprintf("─── [%s] %s ───", category, name)
	if w.color {
		w.Println("%s", heading("%s", label))
	} else {
		w.Println("%s", label)
	}
}

// TaskSuccess prints a finished task.
func (w *Writer) TaskSuccess(name string, d time.Duration) {
	if w.quiet {
		return
	}
	if w.color {
		w.Println("%s %s %s", green("✓"), name, dim("(%s)", FormatDuration(d)))
	} else {
		w.Println("+ %s (%s)", name, FormatDuration(d))
	}
}

// TaskFailed prints a failed task to stderr.
func (w *Writer) TaskFailed(name, errMsg string) {
	if w.color {
		w.Errorln("%s %s: %s", red("✗"), name, errMsg)
	} else {
		w.Errorln("x %s: %s", name, errMsg)
	}
}

// TaskSkipped prints a skipped task with its reason.
func (w *Writer) TaskSkipped(name, reason string) {
	if w.quiet {
		return
	}
	if w.color {
		w.Println("%s %s %s", yellow("↷"), name, dim("(%s)", reason))
	} else {
		w.Println("- %s (%s)", name, reason)
	}
}

// StepStart prints the step about to run.
func (w *Writer) StepStart(name string) {
	if w.quiet {
		return
	}
	if w.color {
		w.Println("  %s %s", cyan("→"), name)
	} else {
		w.Println("  > %s", name)
	}
}

// StepOptionalFailed notes an optional step that failed but did not
// stop the task.
func (w *Writer) StepOptionalFailed(name, errMsg string) {
	msg := fmt.Sprintf("optional step %q failed: %s", name, errMsg)
	if w.color {
		w.Errorln("  %s %s", yellow("!"), msg)
	} else {
		w.Errorln("  ! %s", msg)
	}
}

// CheckOK prints a passing environment check.
func (w *Writer) CheckOK(name, detail string) {
	if w.color {
		w.Println("%s %s: %s", green("✓"), name, detail)
	} else {
		w.Println("+ %s: %s", name, detail)
	}
}

// CheckWarn prints a non-fatal environment check.
func (w *Writer) CheckWarn(name, detail string) {
	if w.color {
		w.Println("%s %s: %s", yellow("!"), name, detail)
	} else {
		w.Println("! %s: %s", name, detail)
	}
}

// CheckFail prints a failing environment check.
func (w *Writer) CheckFail(name, detail string) {
	if w.color {
		w.Println("%s %s: %s", red("✗"), name, detail)
	} else {
		w.Println("x %s: %s", name, detail)
	}
}

// ValidationSuccess prints a validation success message.
func (w *Writer) ValidationSuccess(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Println("%s %s", green("✓"), msg)
	} else {
		w.Println("%s", msg)
	}
}

// DryRunStart prints the dry run header.
func (w *Writer) DryRunStart() {
	w.Println("")
	if w.color {
		w.Println("%s", accent("=== DRY RUN ==="))
	} else {
		w.Println("=== DRY RUN ===")
	}
	w.Println("")
}

// DryRunEnd prints the dry run footer.
func (w *Writer) DryRunEnd() {
	w.Println("")
	if w.color {
		w.Println("%s", accent("=== END DRY RUN ==="))
	} else {
		w.Println("=== END DRY RUN ===")
	}
}

// SummaryHeader prints a summary section header.
func (w *Writer) SummaryHeader(title string) {
	w.Println("")
	if w.color {
		w.Println("%s", heading("=== %s ===", title))
	} else {
		w.Println("=== %s ===", title)
	}
	w.Println("")
}

// SummarySectionLabel prints a label for a summary section.
func (w *Writer) SummarySectionLabel(label string) {
	if w.color {
		w.Println("  %s", dim("%s", label))
	} else {
		w.Println("  %s", label)
	}
}

// SummaryItem prints a labeled summary item with value.
func (w *Writer) SummaryItem(label, value string) {
	if w.color {
		w.Println("  %s %s", dim("%s:", label), value)
	} else {
		w.Println("  %s: %s", label, value)
	}
}

// SummaryPassed prints a passed-items summary line.
func (w *Writer) SummaryPassed(label, value string) {
	if w.color {
		w.Println("  %s %s", dim("%s:", label), green("%s", value))
	} else {
		w.Println("  %s: %s", label, value)
	}
}

// SummaryFailed prints a failed-items summary line.
func (w *Writer) SummaryFailed(label, value string) {
	if w.color {
		w.Println("  %s %s", dim("%s:", label), red("%s", value))
	} else {
		w.Println("  %s: %s", label, value)
	}
}

// SummaryTask prints one task line in the run summary.
func (w *Writer) SummaryTask(name string, success, skipped bool, duration, detail string) {
	mark, plain := w.statusMarks(success, skipped)
	line := fmt.Sprintf("    %s %-16s %s", mark, name, duration)
	if !w.color {
		line = fmt.Sprintf("    %s %-16s %s", plain, name, duration)
	}
	if detail != "" {
		if w.color {
			line += "  " + dim("(%s)", detail)
		} else {
			line += fmt.Sprintf("  (%s)", detail)
		}
	}
	w.Println("%s", line)
}

func (w *Writer) statusMarks(success, skipped bool) (colored, plain string) {
	switch {
	case skipped:
		return yellow("↷"), "-"
	case success:
		return green("✓"), "+"
	default:
		return red("✗"), "x"
	}
}

// FinalSuccess prints a final success message.
func (w *Writer) FinalSuccess(format string, args ...interface{}) {
	w.Println("")
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Println("%s", green("%s", msg))
	} else {
		w.Println("%s", msg)
	}
}

// FinalFailure prints a final failure message.
func (w *Writer) FinalFailure(format string, args ...interface{}) {
	w.Println("")
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Println("%s", red("%s", msg))
	} else {
		w.Println("%s", msg)
	}
}

// Table prints a simple table.
func (w *Writer) Table(headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var headerParts []string
	for i, h := range headers {
		headerParts = append(headerParts, fmt.Sprintf("%-*s", widths[i], h))
	}
	w.Println("%s", strings.Join(headerParts, "  "))

	var sepParts []string
	for _, width := range widths {
		sepParts = append(sepParts, strings.Repeat("-", width))
	}
	w.Println("%s", strings.Join(sepParts, "  "))

	for _, row := range rows {
		var rowParts []string
		for i, cell := range row {
			if i < len(widths) {
				rowParts = append(rowParts, fmt.Sprintf("%-*s", widths[i], cell))
			}
		}
		w.Println("%s", strings.Join(rowParts, "  "))
	}
}

// FormatDuration renders a duration at a human scale.
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return d.Round(time.Millisecond).String()
	case d < time.Minute:
		return d.Round(100 * time.Millisecond).String()
	default:
		return d.Round(time.Second).String()
	}
}

// isTerminal returns true if stdout is a terminal.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
