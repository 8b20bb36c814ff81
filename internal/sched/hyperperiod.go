package sched

import "fmt"

// Hyperperiod returns the least common multiple of the periods of the
// periodic tasks. It fails with ErrHorizonTooLarge when the result would
// exceed limit.
func Hyperperiod(tasks []Task, limit int64) (int64, error) {
	h := int64(1)
	for _, t := range tasks {
		if !t.Periodic() {
			continue
		}

		g := gcd(h, t.Period)
		if h/g > limit/t.Period {
			return 0, fmt.Errorf("%w: lcm exceeds %d at task %q", ErrHorizonTooLarge, limit, t.ID)
		}
		h = h / g * t.Period
	}

	if h > limit {
		return 0, fmt.Errorf("%w: %d > %d", ErrHorizonTooLarge, h, limit)
	}

	return h, nil
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
