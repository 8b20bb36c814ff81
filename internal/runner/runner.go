// Package runner ties the engine to its outputs: it runs one or several
// algorithms on a workload and hands every result to the configured
// recorders.
package runner

import (
	"errors"
	"fmt"
	"log/slog"

	"ticksched/internal/sched"
)

// Recorder persists results.
type Recorder interface {
	Record(res *sched.Result) error
	Close() error
}

// Runner runs workloads through a Scheduler.
type Runner struct {
	sched     *sched.Scheduler
	recorders []Recorder
	log       *slog.Logger
}

// New creates a Runner. The recorders are closed by Close.
func New(s *sched.Scheduler, log *slog.Logger, recorders ...Recorder) *Runner {
	if log == nil {
		log = slog.Default()
	}
	return &Runner{
		sched:     s,
		recorders: recorders,
		log:       log,
	}
}

// Run simulates alg over tasks and records the result.
func (r *Runner) Run(alg sched.Algorithm, tasks []sched.Task) (*sched.Result, error) {
	res, err := r.sched.Run(alg, tasks)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", alg, err)
	}

	if err := r.record(res); err != nil {
		return res, err
	}

	return res, nil
}

// Compare runs every algorithm in algs on its own copy of tasks. An
// algorithm that cannot take the workload (aperiodic tasks for RM/EDF, or a
// hyperperiod beyond the maximum horizon) is skipped with a warning; any
// other error stops the comparison.
func (r *Runner) Compare(algs []sched.Algorithm, tasks []sched.Task) ([]*sched.Result, error) {
	results := make([]*sched.Result, 0, len(algs))

	var skipped error
	for _, alg := range algs {
		workload := append([]sched.Task(nil), tasks...)

		res, err := r.Run(alg, workload)
		if skippable(err) {
			r.log.Warn("skipping algorithm", "algorithm", alg.String(), "reason", err)
			skipped = err
			continue
		}
		if err != nil {
			return results, err
		}

		results = append(results, res)
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("no algorithm accepted the workload: %w", skipped)
	}

	return results, nil
}

// Close closes every recorder and joins their errors.
func (r *Runner) Close() error {
	var errs []error
	for _, rec := range r.recorders {
		if err := rec.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func skippable(err error) bool {
	return errors.Is(err, sched.ErrNotPeriodic) || errors.Is(err, sched.ErrHorizonTooLarge)
}

func (r *Runner) record(res *sched.Result) error {
	for _, rec := range r.recorders {
		if err := rec.Record(res); err != nil {
			return fmt.Errorf("recording run %s: %w", res.RunID, err)
		}
	}

	r.log.Debug("run recorded", "run", res.RunID, "recorders", len(r.recorders))

	return nil
}
