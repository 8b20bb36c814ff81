package sched

import (
	"fmt"
	"strings"
)

// Algorithm selects the scheduling policy of a run.
type Algorithm int

const (
	FCFS Algorithm = iota
	SJN
	RR
	RM
	EDF
)

// Algorithms lists every supported policy in display order.
var Algorithms = []Algorithm{FCFS, SJN, RR, RM, EDF}

func (a Algorithm) String() string {
	switch a {
	case FCFS:
		return "FCFS"
	case SJN:
		return "SJN"
	case RR:
		return "RR"
	case RM:
		return "RM"
	case EDF:
		return "EDF"
	default:
		return "Unknown"
	}
}

// Periodic reports whether the policy releases periodic instances and runs
// up to the hyperperiod.
func (a Algorithm) Periodic() bool {
	return a == RM || a == EDF
}

// Preemptive reports whether a running instance can lose the CPU before it
// completes.
func (a Algorithm) Preemptive() bool {
	return a == RR || a == RM || a == EDF
}

// ParseAlgorithm accepts the short names case-insensitively, plus a few
// long spellings.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fcfs", "fifo":
		return FCFS, nil
	case "sjn", "sjf":
		return SJN, nil
	case "rr", "round-robin", "roundrobin":
		return RR, nil
	case "rm", "rate-monotonic":
		return RM, nil
	case "edf", "earliest-deadline-first":
		return EDF, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}

// ParseAlgorithms parses a comma separated list such as "fcfs,rr".
func ParseAlgorithms(s string) ([]Algorithm, error) {
	var algs []Algorithm
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}

		a, err := ParseAlgorithm(part)
		if err != nil {
			return nil, err
		}
		algs = append(algs, a)
	}

	if len(algs) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
	}

	return algs, nil
}

// MarshalText lets algorithms appear by name in YAML.
func (a Algorithm) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(a.String())), nil
}

// UnmarshalText parses an algorithm name.
func (a *Algorithm) UnmarshalText(text []byte) error {
	parsed, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
