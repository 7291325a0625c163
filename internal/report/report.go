// Package report renders batch results for humans: a per-item table, a
// colored summary line and an optional progress bar fed by completion
// events.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// Color helpers
var (
	Bold  = color.New(color.Bold)
	Green = color.New(color.FgGreen)
	Red   = color.New(color.FgRed)
	Cyan  = color.New(color.FgCyan)
)

// Row is one result slot prepared for display.
type Row struct {
	Index    int
	Input    string
	Output   string
	Worker   int
	Duration time.Duration
	Err      error
}

// Summary describes a finished batch.
type Summary struct {
	Workload string
	Items    int
	Failed   int
	PoolSize int
	Dispatch string
	Elapsed  time.Duration
}

// RenderTable writes one table row per slot, in slot order.
func RenderTable(w io.Writer, rows []Row) error {
	table := tablewriter.NewWriter(w)
	table.Header("#", "Input", "Result", "Worker", "Time", "Status")

	for _, r := range rows {
		worker := "-"
		if r.Worker >= 0 {
			worker = fmt.Sprintf("%d", r.Worker)
		}

		status, output := "ok", r.Output
		if r.Err != nil {
			status, output = "failed", r.Err.Error()
		}

		if err := table.Append(
			fmt.Sprintf("%d", r.Index),
			r.Input,
			output,
			worker,
			FormatLatency(r.Duration),
			status,
		); err != nil {
			return err
		}
	}

	return table.Render()
}

// RenderSummary writes the closing lines of a run: how many items, how many
// failed and how long the whole batch took.
func RenderSummary(w io.Writer, s Summary) {
	fmt.Fprintln(w)
	_, _ = Bold.Fprintf(w, "%s: %s item(s) on %d worker(s), %s dispatch\n",
		s.Workload, humanize.Comma(int64(s.Items)), s.PoolSize, s.Dispatch)

	if s.Failed > 0 {
		_, _ = Red.Fprintf(w, "✗ %s of %s item(s) failed\n",
			humanize.Comma(int64(s.Failed)), humanize.Comma(int64(s.Items)))
	} else {
		_, _ = Green.Fprintf(w, "✓ all %s item(s) succeeded\n", humanize.Comma(int64(s.Items)))
	}

	_, _ = Cyan.Fprintf(w, "Overall time: %s\n", FormatLatency(s.Elapsed))
}

var latencyUnits = []struct {
	size   time.Duration
	suffix string
}{
	{time.Second, "s"},
	{time.Millisecond, "ms"},
	{time.Microsecond, "µs"},
}

// FormatLatency renders d in the largest unit that keeps it at or above
// one, with at most two decimals.
func FormatLatency(d time.Duration) string {
	if d <= 0 {
		return "0"
	}
	for _, u := range latencyUnits {
		if d >= u.size {
			return humanize.FtoaWithDigits(float64(d)/float64(u.size), 2) + u.suffix
		}
	}
	return fmt.Sprintf("%dns", d.Nanoseconds())
}
