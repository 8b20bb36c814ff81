package sched

import "errors"

// Workload validation errors. They are returned before a run starts.
var (
	ErrEmptyWorkload         = errors.New("empty workload")
	ErrInvalidBurst          = errors.New("burst time must be positive")
	ErrNegativeArrival       = errors.New("arrival time must not be negative")
	ErrDuplicateID           = errors.New("duplicate task id")
	ErrInvalidPeriod         = errors.New("period must not be negative")
	ErrNotPeriodic           = errors.New("algorithm requires a periodic task")
	ErrInvalidDeadline       = errors.New("deadline must not be negative")
	ErrDeadlineExceedsPeriod = errors.New("deadline exceeds period")
	ErrInvalidQuantum        = errors.New("quantum must be positive")
	ErrHorizonTooLarge       = errors.New("hyperperiod exceeds the maximum horizon")
	ErrUnknownAlgorithm      = errors.New("unknown algorithm")
)

// ErrNoCompletions is reported by metrics when no instance finished.
var ErrNoCompletions = errors.New("no completed instances")
