package results

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
)

var (
	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// ConsoleWriter renders per-scenario progress lines and the final summary
// table to a terminal.
type ConsoleWriter struct {
	out io.Writer
}

// NewConsoleWriter creates a console writer targeting out.
func NewConsoleWriter(out io.Writer) *ConsoleWriter {
	return &ConsoleWriter{out: out}
}

// ProgressLine prints one line for a completed scenario: verdict, id,
// timing, throughput, and the failure reason when present.
func (w *ConsoleWriter) ProgressLine(r *Result) {
	verdict := passStyle.Render("PASS")
	if !r.Passed {
		verdict = failStyle.Render("FAIL")
	}

	line := fmt.Sprintf("%s  %-28s %8s  %7.1f tok/s",
		verdict, r.ScenarioID,
		r.Latency.Round(time.Millisecond),
		r.TokensPerSecond,
	)
	if !r.Passed && r.Reason != "" {
		line += "  " + dimStyle.Render(r.Reason)
	}
	fmt.Fprintln(w.out, line)
}

// WriteSummary renders the per-category table and the overall verdict.
func (w *ConsoleWriter) WriteSummary(summary *Summary) {
	fmt.Fprintln(w.out)

	table := tablewriter.NewWriter(w.out)
	table.SetHeader([]string{"Category", "Total", "Passed", "Failed", "Avg Latency", "Avg Tok/s"})
	table.SetBorder(false)
	table.SetColumnSeparator(" ")

	for _, stats := range summary.Categories {
		table.Append([]string{
			stats.Category,
			fmt.Sprintf("%d", stats.Total),
			fmt.Sprintf("%d", stats.Passed),
			fmt.Sprintf("%d", stats.Failed),
			stats.AvgLatency.Round(time.Millisecond).String(),
			fmt.Sprintf("%.1f", stats.AvgTokensPerSecond),
		})
	}
	table.Render()

	verdict := passStyle.Render("PASS")
	if !summary.AllPassed() {
		verdict = failStyle.Render("FAIL")
	}
	fmt.Fprintf(w.out, "\n%s  %d/%d scenarios passed (%.0f%%)  run %s\n",
		verdict, summary.Passed, summary.Total, summary.PassRate*100, summary.RunID)
}
