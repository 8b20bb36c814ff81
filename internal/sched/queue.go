package sched

import (
	"github.com/emirpasic/gods/queues"
	"github.com/emirpasic/gods/queues/linkedlistqueue"
	"github.com/emirpasic/gods/queues/priorityqueue"
	"github.com/emirpasic/gods/utils"
)

// ReadyQueue holds instances that have arrived and wait for the CPU.
// Pop and Peek must not be called on an empty queue.
type ReadyQueue interface {
	Push(in *Instance)
	Peek() *Instance
	Pop() *Instance
	Len() int
	Empty() bool
}

// NewReadyQueue returns the queue discipline used by the algorithm.
func NewReadyQueue(alg Algorithm) ReadyQueue {
	switch alg {
	case SJN:
		return newHeapQueue(byBurst)
	case RM:
		return newHeapQueue(byPeriod)
	case EDF:
		return newHeapQueue(byDeadline)
	default:
		return &readyQueue{q: linkedlistqueue.New()}
	}
}

func newHeapQueue(cmp utils.Comparator) ReadyQueue {
	return &readyQueue{q: priorityqueue.NewWith(cmp)}
}

// readyQueue adapts a gods queue. For a priority queue the minimum under the
// comparator is at the head; for a linked list queue the oldest entry is.
type readyQueue struct {
	q queues.Queue
}

func (r *readyQueue) Push(in *Instance) {
	r.q.Enqueue(in)
}

func (r *readyQueue) Peek() *Instance {
	v, ok := r.q.Peek()
	if !ok {
		panic("peek on empty ready queue")
	}
	return v.(*Instance)
}

func (r *readyQueue) Pop() *Instance {
	v, ok := r.q.Dequeue()
	if !ok {
		panic("pop on empty ready queue")
	}
	return v.(*Instance)
}

func (r *readyQueue) Len() int {
	return r.q.Size()
}

func (r *readyQueue) Empty() bool {
	return r.q.Empty()
}

func byBurst(a, b any) int {
	x, y := a.(*Instance), b.(*Instance)
	if c := utils.Int64Comparator(x.Task.Burst, y.Task.Burst); c != 0 {
		return c
	}
	return byArrival(x, y)
}

func byPeriod(a, b any) int {
	x, y := a.(*Instance), b.(*Instance)
	if c := utils.Int64Comparator(x.Task.Period, y.Task.Period); c != 0 {
		return c
	}
	return byArrival(x, y)
}

func byDeadline(a, b any) int {
	x, y := a.(*Instance), b.(*Instance)
	if c := utils.Int64Comparator(x.Deadline, y.Deadline); c != 0 {
		return c
	}
	return byArrival(x, y)
}

// byArrival breaks ties by release tick, then workload order, then release
// number.
func byArrival(x, y *Instance) int {
	if c := utils.Int64Comparator(x.Release, y.Release); c != 0 {
		return c
	}
	if c := utils.IntComparator(x.TaskIndex, y.TaskIndex); c != 0 {
		return c
	}
	return utils.IntComparator(x.Seq, y.Seq)
}
