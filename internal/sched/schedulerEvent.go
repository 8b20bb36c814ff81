// internal/sched/schedulerEvent.go

package sched

// StatusKind represents the type of scheduler event
type StatusKind int

const (
	StatusIdle StatusKind = iota
	StatusEnqueue
	StatusDispatch
	StatusPreempt
	StatusFinish
	StatusMiss
)

// StatusEvent is emitted on every state change of an instance, and once per
// idle tick.
type StatusEvent struct {
	Tick      int64
	Kind      StatusKind
	TaskID    TaskID
	Instance  int
	Remaining int64
}

func (sk StatusKind) String() string {
	switch sk {
	case StatusIdle:
		return "Idle"
	case StatusEnqueue:
		return "Enqueued"
	case StatusDispatch:
		return "Dispatch"
	case StatusPreempt:
		return "Preempt"
	case StatusFinish:
		return "Finish"
	case StatusMiss:
		return "Miss"
	default:
		return "Unknown"
	}
}

// Observer receives status events. Observers see the run but never change
// its outcome.
type Observer interface {
	Observe(ev StatusEvent)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ev StatusEvent)

// Observe calls f(ev).
func (f ObserverFunc) Observe(ev StatusEvent) { f(ev) }
