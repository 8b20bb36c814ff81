package sched

// rateMonotonic gives fixed priority by period: the shorter the period, the
// higher the priority of every instance of the task.
type rateMonotonic struct{}

// beforeDispatch preempts the running instance as soon as a ready instance
// has a strictly shorter period.
func (rateMonotonic) beforeDispatch(r *SimulationRun) {
	if r.running == nil || r.queue.Empty() {
		return
	}

	if r.queue.Peek().Task.Period < r.running.Task.Period {
		r.preempt()
	}
}

func (rateMonotonic) afterExecute(*SimulationRun) {}

func (rateMonotonic) jumpIdle() bool { return false }
