package sched

// roundRobin hands out fixed quanta. A dispatch starts a fresh quantum; an
// instance that uses it up without completing goes to the tail of the queue.
type roundRobin struct{}

func (roundRobin) beforeDispatch(*SimulationRun) {}

func (roundRobin) afterExecute(r *SimulationRun) {
	if r.slice >= r.quantum {
		r.preempt()
	}
}

func (roundRobin) jumpIdle() bool { return false }
