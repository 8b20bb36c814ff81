package sched

import "fmt"

// Validate checks a workload against an algorithm before any run state is
// built. For periodic algorithms it also returns the release horizon: the
// latest first arrival plus the hyperperiod.
func Validate(alg Algorithm, tasks []Task, cfg Config) (horizon int64, err error) {
	if len(tasks) == 0 {
		return 0, ErrEmptyWorkload
	}

	if alg < FCFS || alg > EDF {
		return 0, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, int(alg))
	}

	if alg == RR && cfg.Quantum <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidQuantum, cfg.Quantum)
	}

	seen := make(map[TaskID]struct{}, len(tasks))
	var latest int64
	for _, t := range tasks {
		if err := t.Validate(); err != nil {
			return 0, err
		}

		if _, dup := seen[t.ID]; dup {
			return 0, fmt.Errorf("%w: %q", ErrDuplicateID, t.ID)
		}
		seen[t.ID] = struct{}{}

		if alg.Periodic() && !t.Periodic() {
			return 0, fmt.Errorf("%w: %s needs a period on task %q", ErrNotPeriodic, alg, t.ID)
		}

		if t.Arrival > latest {
			latest = t.Arrival
		}
	}

	if !alg.Periodic() {
		return 0, nil
	}

	h, err := Hyperperiod(tasks, cfg.MaxHorizon)
	if err != nil {
		return 0, err
	}

	if latest > cfg.MaxHorizon-h {
		return 0, fmt.Errorf("%w: %d + %d > %d", ErrHorizonTooLarge, latest, h, cfg.MaxHorizon)
	}

	return latest + h, nil
}
