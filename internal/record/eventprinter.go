package record

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"ticksched/internal/sched"
)

// EventPrinter prints one line per status event and optionally mirrors the
// events into a CSV file. It is a sched.Observer.
type EventPrinter struct {
	out       io.Writer
	showIdle  bool
	ranTotals map[sched.TaskID]int64
	lastTick  int64
	running   sched.TaskID
	instance  int

	csvFile   *os.File
	csvWriter *csv.Writer
}

// NewEventPrinter creates a printer writing to out. Idle ticks are skipped
// unless showIdle is set.
func NewEventPrinter(out io.Writer, showIdle bool) *EventPrinter {
	return &EventPrinter{
		out:       out,
		showIdle:  showIdle,
		ranTotals: make(map[sched.TaskID]int64),
	}
}

// EnableCSVLogging opens the given file path for CSV logging of events.
// Must be called before the run starts.
func (p *EventPrinter) EnableCSVLogging(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)

	// write header
	if err := w.Write([]string{"tick", "event", "task_id", "instance", "ran_ticks", "remaining"}); err != nil {
		f.Close()
		return err
	}
	p.csvFile = f
	p.csvWriter = w
	return nil
}

// Observe implements sched.Observer.
func (p *EventPrinter) Observe(ev sched.StatusEvent) {
	p.account(ev)

	if ev.Kind != sched.StatusIdle || p.showIdle {
		fmt.Fprintf(p.out, "Tick: %07d [%s] => Task: %-6s #%-3d Total ran: %04d ticks, remaining=%d\n",
			ev.Tick,
			center(ev.Kind.String(), 12),
			ev.TaskID,
			ev.Instance,
			p.ranTotals[ev.TaskID],
			ev.Remaining,
		)
	}

	if p.csvWriter != nil {
		p.csvWriter.Write([]string{
			strconv.FormatInt(ev.Tick, 10),
			ev.Kind.String(),
			string(ev.TaskID),
			strconv.Itoa(ev.Instance),
			strconv.FormatInt(p.ranTotals[ev.TaskID], 10),
			strconv.FormatInt(ev.Remaining, 10),
		})
	}
}

// account credits the ticks between a dispatch and the next event that takes
// the CPU away.
func (p *EventPrinter) account(ev sched.StatusEvent) {
	switch ev.Kind {
	case sched.StatusDispatch:
		p.running = ev.TaskID
		p.instance = ev.Instance
		p.lastTick = ev.Tick
	case sched.StatusPreempt, sched.StatusFinish, sched.StatusMiss:
		if p.running == ev.TaskID && p.instance == ev.Instance {
			p.ranTotals[ev.TaskID] += ev.Tick - p.lastTick
			p.running = ""
		}
	}
}

// Close flushes and closes the CSV file, if any.
func (p *EventPrinter) Close() error {
	if p.csvFile == nil {
		return nil
	}

	p.csvWriter.Flush()
	if err := p.csvWriter.Error(); err != nil {
		p.csvFile.Close()
		return err
	}
	return p.csvFile.Close()
}

// center pads s to width, used to line up the event kinds.
func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	spaces := (width - len(s)) / 2
	return strings.Repeat(" ", spaces) + s + strings.Repeat(" ", width-(spaces+len(s)))
}
