package sched

// ExecutionInterval is a contiguous span during which one instance held the
// CPU.
type ExecutionInterval struct {
	TaskID   TaskID
	Instance int
	Start    int64
	End      int64
}

// Len returns the number of ticks covered.
func (iv ExecutionInterval) Len() int64 {
	return iv.End - iv.Start
}

// ReadyEvent records an instance entering or leaving the ready queue. Exactly
// one of Enter and Leave is set. Missed marks a leave caused by an expired
// deadline.
type ReadyEvent struct {
	TaskID   TaskID
	Instance int
	Enter    OptTick
	Leave    OptTick
	Missed   bool
}

// Miss records an instance that did not finish before its deadline.
type Miss struct {
	TaskID    TaskID
	Instance  int
	Release   int64
	Deadline  int64
	At        int64
	Remaining int64
	Running   bool // true if the instance held the CPU when it expired
}

// InstanceStat is the per-instance outcome of a completed instance.
type InstanceStat struct {
	TaskID     TaskID
	Instance   int
	Release    int64
	Burst      int64
	Finish     int64
	Turnaround int64
	Waiting    int64
	Response   int64
}

// Result is everything a run produces.
type Result struct {
	RunID       string
	Algorithm   Algorithm
	Quantum     int64 // RR only
	Horizon     int64 // RM/EDF only
	Schedule    []ExecutionInterval
	ReadyTrace  []ReadyEvent
	Completed   []InstanceStat
	Misses      []Miss
	Metrics     Metrics
	ElapsedTime int64
}

// AverageWaitingTime is a shortcut for Metrics.AverageWaiting.
func (r *Result) AverageWaitingTime() (float64, error) {
	return r.Metrics.AverageWaiting()
}

// Timeline expands the schedule into one entry per tick in
// [0, ElapsedTime). Idle ticks hold the empty id.
func (r *Result) Timeline() []TaskID {
	line := make([]TaskID, r.ElapsedTime)
	for _, iv := range r.Schedule {
		for t := iv.Start; t < iv.End; t++ {
			line[t] = iv.TaskID
		}
	}
	return line
}

// ReadySpan is one stay of an instance in the ready queue.
type ReadySpan struct {
	TaskID   TaskID
	Instance int
	Enter    int64
	Leave    OptTick // unset if the instance was still queued at the end
	Missed   bool
}

// ReadyIntervals pairs the enter and leave records of the ready trace in
// emission order.
func (r *Result) ReadyIntervals() []ReadySpan {
	type key struct {
		id  TaskID
		seq int
	}

	var spans []ReadySpan
	open := make(map[key]int)

	for _, ev := range r.ReadyTrace {
		k := key{ev.TaskID, ev.Instance}
		if t, ok := ev.Enter.Get(); ok {
			open[k] = len(spans)
			spans = append(spans, ReadySpan{TaskID: ev.TaskID, Instance: ev.Instance, Enter: t})
			continue
		}

		i, ok := open[k]
		if !ok {
			continue
		}
		spans[i].Leave = ev.Leave
		spans[i].Missed = ev.Missed
		delete(open, k)
	}

	return spans
}
