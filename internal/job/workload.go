package job

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	yaml "github.com/goccy/go-yaml"

	"ticksched/internal/sched"
)

// ErrUnknownFormat is returned for workload files that are neither YAML nor
// CSV.
var ErrUnknownFormat = errors.New("unknown workload format")

// File mirrors a YAML workload file.
type File struct {
	Tasks []sched.Task `yaml:"tasks"`
}

// Load reads a workload file, choosing the parser by extension.
func Load(path string) ([]sched.Task, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var tasks []sched.Task
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		tasks, err = ReadYAML(f)
	case ".csv":
		tasks, err = ReadCSV(f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return tasks, nil
}

// ReadYAML parses a `tasks:` document and validates every task.
func ReadYAML(r io.Reader) ([]sched.Task, error) {
	var file File
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decoding workload: %w", err)
	}

	for _, t := range file.Tasks {
		if err := t.Validate(); err != nil {
			return nil, err
		}
	}

	return file.Tasks, nil
}

// WriteYAML writes tasks in the format ReadYAML accepts.
func WriteYAML(w io.Writer, tasks []sched.Task) error {
	return yaml.NewEncoder(w).Encode(File{Tasks: tasks})
}

// ReadCSV parses rows of id,arrival,burst[,period[,deadline]]. A first row
// starting with "id" is treated as a header.
func ReadCSV(r io.Reader) ([]sched.Task, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}

	var tasks []sched.Task
	for i, row := range rows {
		if i == 0 && len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), "id") {
			continue
		}
		if len(row) < 3 || len(row) > 5 {
			return nil, fmt.Errorf("line %d: want 3 to 5 fields, got %d", i+1, len(row))
		}

		var nums [4]int64
		for j, field := range row[1:] {
			v, err := strconv.ParseInt(strings.TrimSpace(field), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d field %d: %w", i+1, j+2, err)
			}
			nums[j] = v
		}

		t, err := sched.NewTask(sched.TaskID(strings.TrimSpace(row[0])), nums[0], nums[1], nums[2], nums[3])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		tasks = append(tasks, t)
	}

	return tasks, nil
}
