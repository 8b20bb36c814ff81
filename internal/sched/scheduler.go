// internal/sched/scheduler.go

package sched

import (
	"io"
	"log/slog"
)

// DefaultQuantum is the Round-Robin time slice when none is configured.
const DefaultQuantum = 4

// DefaultMaxHorizon bounds the horizon of periodic runs.
const DefaultMaxHorizon = 100000

// Config tunes the engine.
type Config struct {
	Quantum    int64 // Round-Robin time slice in ticks
	MaxHorizon int64 // upper bound on the RM/EDF horizon
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		Quantum:    DefaultQuantum,
		MaxHorizon: DefaultMaxHorizon,
	}
}

// Scheduler runs simulations. It holds no run state, so one Scheduler can
// serve any number of sequential runs.
type Scheduler struct {
	cfg       Config
	log       *slog.Logger
	observers []Observer
}

// Option customizes a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger. Runs log a summary at Info and every
// dispatch, preemption and miss at Debug.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.log = l
		}
	}
}

// WithObserver registers an observer for the status events of every run.
func WithObserver(o Observer) Option {
	return func(s *Scheduler) {
		s.observers = append(s.observers, o)
	}
}

// New creates a new Scheduler with the given configuration. Non-positive
// values fall back to the defaults.
func New(cfg Config, opts ...Option) *Scheduler {
	if cfg.Quantum <= 0 {
		cfg.Quantum = DefaultQuantum
	}
	if cfg.MaxHorizon <= 0 {
		cfg.MaxHorizon = DefaultMaxHorizon
	}

	s := &Scheduler{
		cfg: cfg,
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Run simulates alg over tasks. The caller's slice is copied and never
// modified. Validation errors are returned before anything is simulated.
func (s *Scheduler) Run(alg Algorithm, tasks []Task) (*Result, error) {
	horizon, err := Validate(alg, tasks, s.cfg)
	if err != nil {
		return nil, err
	}

	run := newRun(alg, tasks, horizon, s.cfg, s.observers, s.log)
	res := run.Run()

	avg, err := res.AverageWaitingTime()
	attrs := []any{
		"run", res.RunID,
		"algorithm", alg.String(),
		"tasks", len(tasks),
		"elapsed", res.ElapsedTime,
		"completed", res.Metrics.Completed,
		"missed", res.Metrics.Missed,
	}
	if err == nil {
		attrs = append(attrs, "avg_waiting", avg)
	}
	s.log.Info("simulation finished", attrs...)

	return res, nil
}

// Simulate runs alg over tasks with the default configuration.
func Simulate(alg Algorithm, tasks []Task) (*Result, error) {
	return New(DefaultConfig()).Run(alg, tasks)
}
