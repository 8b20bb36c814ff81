// Package report renders simulation results as text: a Gantt line, a
// per-instance table and a side by side comparison of several runs.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"ticksched/internal/sched"
)

const cellWidth = 8

// Write prints the title, Gantt line, instance table and misses of res.
func Write(w io.Writer, title string, res *sched.Result) {
	Title(w, title)
	Gantt(w, res)
	Instances(w, res)
	if len(res.Misses) > 0 {
		Misses(w, res)
	}
}

// Title prints a framed heading.
func Title(w io.Writer, title string) {
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*2))
	_, _ = fmt.Fprintln(w, strings.Repeat(" ", len(title)/2), title)
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*2))
}

// Gantt prints one cell per execution interval, with idle gaps shown as
// "-", followed by the boundary ticks.
func Gantt(w io.Writer, res *sched.Result) {
	_, _ = fmt.Fprintln(w, "Gantt schedule")

	type cell struct {
		label      string
		start, end int64
	}

	var cells []cell
	var at int64
	for _, iv := range res.Schedule {
		if iv.Start > at {
			cells = append(cells, cell{"-", at, iv.Start})
		}
		cells = append(cells, cell{string(iv.TaskID), iv.Start, iv.End})
		at = iv.End
	}
	if res.ElapsedTime > at {
		cells = append(cells, cell{"-", at, res.ElapsedTime})
	}

	if len(cells) == 0 {
		_, _ = fmt.Fprintf(w, "(empty)\n\n")
		return
	}

	var top, bottom strings.Builder
	top.WriteString("|")
	for i, c := range cells {
		top.WriteString(pad(c.label, cellWidth))
		top.WriteString("|")

		bottom.WriteString(fmt.Sprintf("%-*d", cellWidth+1, c.start))
		if i == len(cells)-1 {
			bottom.WriteString(strconv.FormatInt(c.end, 10))
		}
	}

	_, _ = fmt.Fprintln(w, top.String())
	_, _ = fmt.Fprintln(w, bottom.String())
	_, _ = fmt.Fprintln(w)
}

// Instances prints a row per completed instance with the run averages in the
// footer.
func Instances(w io.Writer, res *sched.Result) {
	_, _ = fmt.Fprintln(w, "Schedule table")

	rows := make([][]string, 0, len(res.Completed))
	for _, st := range res.Completed {
		rows = append(rows, []string{
			string(st.TaskID),
			strconv.Itoa(st.Instance),
			strconv.FormatInt(st.Release, 10),
			strconv.FormatInt(st.Burst, 10),
			strconv.FormatInt(st.Waiting, 10),
			strconv.FormatInt(st.Turnaround, 10),
			strconv.FormatInt(st.Response, 10),
			strconv.FormatInt(st.Finish, 10),
		})
	}

	m := res.Metrics
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Instance", "Release", "Burst", "Wait", "Turnaround", "Response", "Exit"})
	table.AppendBulk(rows)
	table.SetFooter([]string{"", "", "", "",
		"Average\n" + average(m.AverageWaiting()),
		"Average\n" + average(m.AverageTurnaround()),
		"Average\n" + average(m.AverageResponse()),
		fmt.Sprintf("Throughput\n%.2f/t", m.Throughput())})
	table.Render()
}

// Misses prints every deadline miss of res.
func Misses(w io.Writer, res *sched.Result) {
	_, _ = fmt.Fprintln(w, "Deadline misses")

	rows := make([][]string, 0, len(res.Misses))
	for _, m := range res.Misses {
		state := "queued"
		if m.Running {
			state = "running"
		}
		rows = append(rows, []string{
			string(m.TaskID),
			strconv.Itoa(m.Instance),
			strconv.FormatInt(m.Release, 10),
			strconv.FormatInt(m.Deadline, 10),
			strconv.FormatInt(m.At, 10),
			strconv.FormatInt(m.Remaining, 10),
			state,
		})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Instance", "Release", "Deadline", "Detected", "Remaining", "State"})
	table.AppendBulk(rows)
	table.Render()
}

// Comparison prints one row per result so several algorithms can be judged
// on the same workload.
func Comparison(w io.Writer, results []*sched.Result) {
	rows := make([][]string, 0, len(results))
	for _, res := range results {
		m := res.Metrics
		rows = append(rows, []string{
			res.Algorithm.String(),
			strconv.FormatInt(res.ElapsedTime, 10),
			average(m.AverageWaiting()),
			average(m.AverageTurnaround()),
			fmt.Sprintf("%.2f", m.Utilization()),
			strconv.Itoa(m.Completed),
			strconv.Itoa(m.Missed),
		})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Algorithm", "Elapsed", "Avg waiting", "Avg turnaround", "Utilization", "Completed", "Missed"})
	table.AppendBulk(rows)
	table.Render()
}

// average formats a metric that is undefined without completions.
func average(v float64, err error) string {
	if err != nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", v)
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-left-len(s))
}
