package sched

// Metrics aggregates the outcome of a run.
type Metrics struct {
	Completed       int
	Missed          int
	TotalWaiting    int64
	TotalTurnaround int64
	TotalResponse   int64
	BusyTicks       int64
	Elapsed         int64
}

// AverageWaiting is TotalWaiting / Completed. It returns ErrNoCompletions
// when nothing finished.
func (m Metrics) AverageWaiting() (float64, error) {
	if m.Completed == 0 {
		return 0, ErrNoCompletions
	}
	return float64(m.TotalWaiting) / float64(m.Completed), nil
}

// AverageTurnaround is TotalTurnaround / Completed.
func (m Metrics) AverageTurnaround() (float64, error) {
	if m.Completed == 0 {
		return 0, ErrNoCompletions
	}
	return float64(m.TotalTurnaround) / float64(m.Completed), nil
}

// AverageResponse is the mean delay between release and first dispatch of
// the completed instances.
func (m Metrics) AverageResponse() (float64, error) {
	if m.Completed == 0 {
		return 0, ErrNoCompletions
	}
	return float64(m.TotalResponse) / float64(m.Completed), nil
}

// Utilization is the fraction of elapsed ticks the CPU was busy.
func (m Metrics) Utilization() float64 {
	if m.Elapsed == 0 {
		return 0
	}
	return float64(m.BusyTicks) / float64(m.Elapsed)
}

// Throughput is completions per tick.
func (m Metrics) Throughput() float64 {
	if m.Elapsed == 0 {
		return 0
	}
	return float64(m.Completed) / float64(m.Elapsed)
}

// MissRatio is the share of finished-or-missed instances that missed.
func (m Metrics) MissRatio() float64 {
	total := m.Completed + m.Missed
	if total == 0 {
		return 0
	}
	return float64(m.Missed) / float64(total)
}

func (m *Metrics) addCompletion(in *Instance) InstanceStat {
	st := InstanceStat{
		TaskID:     in.ID(),
		Instance:   in.Seq,
		Release:    in.Release,
		Burst:      in.Task.Burst,
		Finish:     in.Finish.Tick,
		Turnaround: in.Turnaround(),
		Waiting:    in.Waiting(),
		Response:   in.Response(),
	}

	m.Completed++
	m.TotalWaiting += st.Waiting
	m.TotalTurnaround += st.Turnaround
	m.TotalResponse += st.Response

	return st
}
