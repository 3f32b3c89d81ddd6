package progress

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/specialistvlad/rigup/internal/executor"
)

// Terminal prints one line per transition:
//
//	[1/3] ▶ devtools
//	[1/3] ✔ devtools SUCCEEDED (2 attempts, 1.2s)
type Terminal struct {
	mu sync.Mutex
	w  io.Writer
	p  palette
}

var (
	_ executor.ProgressSink = (*Terminal)(nil)
	_ executor.ResultSink   = (*Terminal)(nil)
)

// NewTerminal returns a sink writing to w.
func NewTerminal(w io.Writer, noColor bool) *Terminal {
	return &Terminal{w: w, p: newPalette(noColor)}
}

// Report implements executor.ProgressSink. Terminal states are printed by
// ReportResult, which carries the details.
func (t *Terminal) Report(index, total int, id string, state executor.State) {
	if state != executor.Running {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.w, "%s %s %s\n", t.counter(index, total), t.p.cyan("▶"), t.p.bold(id))
}

// ReportResult implements executor.ResultSink.
func (t *Terminal) ReportResult(index, total int, r executor.TaskResult) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var mark, label string
	var details []string
	switch r.State {
	case executor.Succeeded:
		mark, label = t.p.green("✔"), t.p.green(r.State.String())
		switch {
		case r.AlreadyDone:
			details = append(details, "already done")
		case r.DryRun:
			details = append(details, "dry run")
		default:
			details = append(details, attemptsText(r.Attempts), r.Duration.Round(time.Millisecond).String())
		}
	case executor.Failed:
		mark, label = t.p.red("✘"), t.p.red(r.State.String())
		if r.Attempts > 0 {
			details = append(details, attemptsText(r.Attempts))
		}
	case executor.Skipped:
		mark, label = t.p.yellow("↷"), t.p.yellow(r.State.String())
		if r.BlockedBy != "" {
			details = append(details, "requires "+r.BlockedBy)
		}
	default:
		return
	}

	line := fmt.Sprintf("%s %s %s %s", t.counter(index, total), mark, t.p.bold(r.ID), label)
	if len(details) > 0 {
		line += " " + t.p.dim("("+strings.Join(details, ", ")+")")
	}
	fmt.Fprintln(t.w, line)
	if r.State == executor.Failed && r.Err != nil {
		fmt.Fprintf(t.w, "      %s %v\n", t.p.red("error:"), r.Err)
	}
}

func (t *Terminal) counter(index, total int) string {
	width := len(fmt.Sprint(total))
	return t.p.dim(fmt.Sprintf("[%*d/%d]", width, index, total))
}

func attemptsText(n int) string {
	if n == 1 {
		return "1 attempt"
	}
	return fmt.Sprintf("%d attempts", n)
}

// WriteSummary prints the final counts and the ids that did not succeed.
func WriteSummary(w io.Writer, s *executor.Summary, noColor bool) {
	p := newPalette(noColor)

	succeeded := fmt.Sprintf("%d succeeded", s.Succeeded)
	if s.AlreadyDone > 0 {
		succeeded += fmt.Sprintf(" (%d already done)", s.AlreadyDone)
	}
	fmt.Fprintf(w, "\n%s %s, %s, %s\n",
		p.bold("Summary:"),
		p.green(succeeded),
		p.red(fmt.Sprintf("%d failed", s.Failed)),
		p.yellow(fmt.Sprintf("%d skipped", s.Skipped)),
	)
	if failed := s.IDs(executor.Failed); len(failed) > 0 {
		fmt.Fprintf(w, "  %s %s\n", p.red("failed:"), strings.Join(failed, ", "))
	}
	if skipped := s.IDs(executor.Skipped); len(skipped) > 0 {
		fmt.Fprintf(w, "  %s %s\n", p.yellow("skipped:"), strings.Join(skipped, ", "))
	}
	if s.Interrupted {
		fmt.Fprintf(w, "  %s %d of %d components not started\n", p.yellow("interrupted:"), s.Total-len(s.Results), s.Total)
	}
}
