package sched

import "math"

// InstanceState is the lifecycle position of one instance.
type InstanceState int

const (
	StateNotArrived InstanceState = iota
	StateReady
	StateRunning
	StateCompleted
	StateMissed
)

func (s InstanceState) String() string {
	switch s {
	case StateNotArrived:
		return "NotArrived"
	case StateReady:
		return "Ready"
	case StateRunning:
		return "Running"
	case StateCompleted:
		return "Completed"
	case StateMissed:
		return "Missed"
	default:
		return "Unknown"
	}
}

// noDeadline orders instances without a deadline after every real one.
const noDeadline = math.MaxInt64

// Instance is one release of a task. Aperiodic tasks have exactly one
// instance; periodic tasks release one per period.
type Instance struct {
	Task      *Task
	TaskIndex int   // position of Task in the workload
	Seq       int   // 0 for the first release of the task
	Release   int64 // arrival tick of this instance
	Deadline  int64 // absolute deadline, noDeadline if none
	Remaining int64

	State        InstanceState
	FirstRun     OptTick
	LastDispatch int64
	Executed     int64
	Finish       OptTick
}

func newInstance(t *Task, index, seq int, release int64, withDeadline bool) *Instance {
	deadline := int64(noDeadline)
	if withDeadline && t.RelativeDeadline() > 0 {
		deadline = release + t.RelativeDeadline()
	}

	return &Instance{
		Task:      t,
		TaskIndex: index,
		Seq:       seq,
		Release:   release,
		Deadline:  deadline,
		Remaining: t.Burst,
		State:     StateNotArrived,
	}
}

// ID returns the owning task id.
func (in *Instance) ID() TaskID {
	return in.Task.ID
}

// HasDeadline reports whether the instance carries an absolute deadline.
func (in *Instance) HasDeadline() bool {
	return in.Deadline != noDeadline
}

// Turnaround is completion time minus release time. Only meaningful once
// the instance has completed.
func (in *Instance) Turnaround() int64 {
	return in.Finish.Tick - in.Release
}

// Waiting is turnaround minus burst.
func (in *Instance) Waiting() int64 {
	return in.Turnaround() - in.Task.Burst
}

// Response is the delay between release and first dispatch.
func (in *Instance) Response() int64 {
	return in.FirstRun.Tick - in.Release
}

// OptTick is a simulated timestamp that may be absent.
type OptTick struct {
	Tick int64
	Set  bool
}

// At returns a present timestamp.
func At(t int64) OptTick {
	return OptTick{Tick: t, Set: true}
}

// Get returns the timestamp and whether it is present.
func (o OptTick) Get() (int64, bool) {
	return o.Tick, o.Set
}
