package sched

import "fmt"

// TaskID uniquely identifies a task within one simulation run.
type TaskID string

// Task describes one workload entry. A Task with a positive Period is
// periodic and releases a fresh instance every Period ticks.
type Task struct {
	ID       TaskID `yaml:"id"`
	Arrival  int64  `yaml:"arrival"`            // first release tick
	Burst    int64  `yaml:"burst"`              // CPU ticks needed per instance
	Period   int64  `yaml:"period,omitempty"`   // 0 = aperiodic
	Deadline int64  `yaml:"deadline,omitempty"` // relative to each release, 0 = implicit
}

// NewTask creates a task and validates it.
func NewTask(id TaskID, arrival, burst, period, deadline int64) (Task, error) {
	t := Task{
		ID:       id,
		Arrival:  arrival,
		Burst:    burst,
		Period:   period,
		Deadline: deadline,
	}

	if err := t.Validate(); err != nil {
		return Task{}, err
	}

	return t, nil
}

// Periodic reports whether the task recurs.
func (t Task) Periodic() bool {
	return t.Period > 0
}

// RelativeDeadline returns the deadline offset used for each instance.
// Periodic tasks without an explicit deadline use their period.
func (t Task) RelativeDeadline() int64 {
	if t.Deadline > 0 {
		return t.Deadline
	}
	return t.Period
}

// Validate checks the fields that do not depend on the selected algorithm.
func (t Task) Validate() error {
	switch {
	case t.Burst <= 0:
		return fmt.Errorf("%w: task %q has burst %d", ErrInvalidBurst, t.ID, t.Burst)
	case t.Arrival < 0:
		return fmt.Errorf("%w: task %q arrives at %d", ErrNegativeArrival, t.ID, t.Arrival)
	case t.Period < 0:
		return fmt.Errorf("%w: task %q has period %d", ErrInvalidPeriod, t.ID, t.Period)
	case t.Deadline < 0:
		return fmt.Errorf("%w: task %q has deadline %d", ErrInvalidDeadline, t.ID, t.Deadline)
	case t.Periodic() && t.Deadline > t.Period:
		return fmt.Errorf("%w: task %q deadline %d > period %d",
			ErrDeadlineExceedsPeriod, t.ID, t.Deadline, t.Period)
	}

	return nil
}
