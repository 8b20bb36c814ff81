package sched

// nonPreemptive serves FCFS and SJN. The two differ only in the ready queue
// order: FCFS pops in enqueue order, SJN pops the shortest burst. Once
// dispatched an instance keeps the CPU until it completes, and idle gaps are
// skipped straight to the next arrival.
type nonPreemptive struct{}

func (nonPreemptive) beforeDispatch(*SimulationRun) {}

func (nonPreemptive) afterExecute(*SimulationRun) {}

func (nonPreemptive) jumpIdle() bool { return true }
