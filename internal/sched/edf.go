package sched

// earliestDeadline orders instances by absolute deadline, recomputed for
// each release.
type earliestDeadline struct{}

// beforeDispatch drops expired queued instances, then preempts the running
// instance if a ready one has a strictly earlier deadline.
func (earliestDeadline) beforeDispatch(r *SimulationRun) {
	r.expireQueued()

	if r.running == nil || r.queue.Empty() {
		return
	}

	if r.queue.Peek().Deadline < r.running.Deadline {
		r.preempt()
	}
}

// afterExecute aborts the running instance once its deadline is reached
// with work left.
func (earliestDeadline) afterExecute(r *SimulationRun) {
	if r.clock.Now() >= r.running.Deadline {
		r.missRunning()
	}
}

func (earliestDeadline) jumpIdle() bool { return false }
