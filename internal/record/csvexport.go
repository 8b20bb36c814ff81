package record

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"ticksched/internal/sched"
)

// CSVExporter writes the schedule, ready trace and misses of each result
// into <dir>/<run id>_<kind>.csv.
type CSVExporter struct {
	dir string
}

// NewCSVExporter creates the output directory if needed.
func NewCSVExporter(dir string) (*CSVExporter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &CSVExporter{dir: dir}, nil
}

// Record implements the runner's recorder contract.
func (e *CSVExporter) Record(res *sched.Result) error {
	schedule := [][]string{{"task_id", "instance", "start", "end"}}
	for _, iv := range res.Schedule {
		schedule = append(schedule, []string{
			string(iv.TaskID),
			strconv.Itoa(iv.Instance),
			strconv.FormatInt(iv.Start, 10),
			strconv.FormatInt(iv.End, 10),
		})
	}

	ready := [][]string{{"task_id", "instance", "enter", "leave", "missed"}}
	for _, ev := range res.ReadyTrace {
		ready = append(ready, []string{
			string(ev.TaskID),
			strconv.Itoa(ev.Instance),
			optString(ev.Enter),
			optString(ev.Leave),
			strconv.FormatBool(ev.Missed),
		})
	}

	misses := [][]string{{"task_id", "instance", "release", "deadline", "at", "remaining", "running"}}
	for _, m := range res.Misses {
		misses = append(misses, []string{
			string(m.TaskID),
			strconv.Itoa(m.Instance),
			strconv.FormatInt(m.Release, 10),
			strconv.FormatInt(m.Deadline, 10),
			strconv.FormatInt(m.At, 10),
			strconv.FormatInt(m.Remaining, 10),
			strconv.FormatBool(m.Running),
		})
	}

	for kind, rows := range map[string][][]string{
		"schedule": schedule,
		"ready":    ready,
		"misses":   misses,
	} {
		if err := e.write(e.Path(res, kind), rows); err != nil {
			return err
		}
	}

	return nil
}

// Path returns the file a result's table is written to.
func (e *CSVExporter) Path(res *sched.Result, kind string) string {
	return filepath.Join(e.dir, fmt.Sprintf("%s_%s_%s.csv", res.RunID, res.Algorithm, kind))
}

// Close is a no-op; every file is closed as soon as it is written.
func (e *CSVExporter) Close() error {
	return nil
}

func (e *CSVExporter) write(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return f.Close()
}

// optString leaves absent timestamps empty.
func optString(o sched.OptTick) string {
	if t, ok := o.Get(); ok {
		return strconv.FormatInt(t, 10)
	}
	return ""
}
