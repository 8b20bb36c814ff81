package sched

import (
	"log/slog"

	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/rs/xid"
)

// release is a calendar key: task index is released at tick at.
type release struct {
	at    int64
	index int
}

func releaseCmp(a, b any) int {
	ka, kb := a.(release), b.(release)
	switch {
	case ka.at < kb.at:
		return -1
	case ka.at > kb.at:
		return 1
	case ka.index < kb.index:
		return -1
	case ka.index > kb.index:
		return 1
	default:
		return 0
	}
}

// policy is the algorithm specific part of the tick loop.
type policy interface {
	// beforeDispatch runs after the releases of the tick are admitted.
	beforeDispatch(r *SimulationRun)
	// afterExecute runs after a tick of execution that did not complete the
	// running instance.
	afterExecute(r *SimulationRun)
	// jumpIdle reports whether idle gaps are skipped in one step.
	jumpIdle() bool
}

func policyFor(alg Algorithm) policy {
	switch alg {
	case RR:
		return roundRobin{}
	case RM:
		return rateMonotonic{}
	case EDF:
		return earliestDeadline{}
	default:
		return nonPreemptive{}
	}
}

// SimulationRun owns every piece of state of one algorithm invocation.
type SimulationRun struct {
	id      string
	alg     Algorithm
	pol     policy
	quantum int64
	horizon int64

	tasks     []Task
	instances []*Instance
	nextSeq   []int
	calendar  *redblacktree.Tree

	clock   SimClock
	queue   ReadyQueue
	running *Instance
	slice   int64

	schedule  []ExecutionInterval
	trace     []ReadyEvent
	completed []InstanceStat
	misses    []Miss
	metrics   Metrics

	observers []Observer
	log       *slog.Logger
}

func newRun(alg Algorithm, tasks []Task, horizon int64, cfg Config, observers []Observer, log *slog.Logger) *SimulationRun {
	r := &SimulationRun{
		id:        xid.New().String(),
		alg:       alg,
		pol:       policyFor(alg),
		quantum:   cfg.Quantum,
		horizon:   horizon,
		tasks:     append([]Task(nil), tasks...),
		nextSeq:   make([]int, len(tasks)),
		calendar:  redblacktree.NewWith(releaseCmp),
		queue:     NewReadyQueue(alg),
		observers: observers,
	}
	r.log = log.With("run", r.id, "algorithm", alg.String())

	for i, t := range r.tasks {
		r.calendar.Put(release{at: t.Arrival, index: i}, struct{}{})
	}

	return r
}

// Run drives the clock until every released instance is settled and, for
// periodic algorithms, the horizon is reached.
func (r *SimulationRun) Run() *Result {
	for r.pending() || r.clock.Now() < r.horizon {
		r.admit()
		r.pol.beforeDispatch(r)

		if r.running == nil && !r.queue.Empty() {
			r.dispatch()
		}

		if r.running == nil {
			r.idle()
			continue
		}

		r.execute()
		if r.running.Remaining == 0 {
			r.complete()
		} else {
			r.pol.afterExecute(r)
		}
	}

	return r.result()
}

func (r *SimulationRun) pending() bool {
	return r.calendar.Size() > 0 || r.running != nil || !r.queue.Empty()
}

// admit moves every release due at the current tick into the ready queue.
// Periodic tasks schedule their next release while it stays below the
// horizon.
func (r *SimulationRun) admit() {
	now := r.clock.Now()
	for {
		node := r.calendar.Left()
		if node == nil {
			return
		}

		rel := node.Key.(release)
		if rel.at > now {
			return
		}
		r.calendar.Remove(rel)

		t := &r.tasks[rel.index]
		in := newInstance(t, rel.index, r.nextSeq[rel.index], rel.at, r.alg == EDF)
		r.nextSeq[rel.index]++
		r.instances = append(r.instances, in)
		r.enqueue(in)

		if r.alg.Periodic() {
			if next := rel.at + t.Period; next < r.horizon {
				r.calendar.Put(release{at: next, index: rel.index}, struct{}{})
			}
		}
	}
}

func (r *SimulationRun) enqueue(in *Instance) {
	now := r.clock.Now()
	in.State = StateReady
	r.queue.Push(in)
	r.trace = append(r.trace, ReadyEvent{TaskID: in.ID(), Instance: in.Seq, Enter: At(now)})
	r.emit(StatusEnqueue, in)
}

func (r *SimulationRun) dispatch() {
	if r.running != nil {
		panic("dispatch while the CPU is busy")
	}

	now := r.clock.Now()
	in := r.queue.Pop()
	r.trace = append(r.trace, ReadyEvent{TaskID: in.ID(), Instance: in.Seq, Leave: At(now)})

	in.State = StateRunning
	in.LastDispatch = now
	if !in.FirstRun.Set {
		in.FirstRun = At(now)
	}
	r.running = in
	r.slice = 0

	r.log.Debug("dispatch", "tick", now, "task", in.ID(), "instance", in.Seq, "remaining", in.Remaining)
	r.emit(StatusDispatch, in)
}

// execute gives the running instance one tick of CPU.
func (r *SimulationRun) execute() {
	in := r.running
	if in.Remaining <= 0 {
		panic("running instance has no remaining work")
	}

	in.Remaining--
	in.Executed++
	r.slice++
	r.metrics.BusyTicks++
	r.clock.Advance()
}

func (r *SimulationRun) idle() {
	r.emit(StatusIdle, nil)

	if r.pol.jumpIdle() {
		if node := r.calendar.Left(); node != nil {
			r.clock.JumpTo(node.Key.(release).at)
			return
		}
	}
	r.clock.Advance()
}

func (r *SimulationRun) closeInterval() {
	in := r.running
	if in == nil {
		panic("closing an interval with an idle CPU")
	}

	if now := r.clock.Now(); now > in.LastDispatch {
		r.schedule = append(r.schedule, ExecutionInterval{
			TaskID:   in.ID(),
			Instance: in.Seq,
			Start:    in.LastDispatch,
			End:      now,
		})
	}
}

func (r *SimulationRun) complete() {
	in := r.running
	if in.State != StateRunning {
		panic("completing an instance that is not running")
	}

	r.closeInterval()
	in.Finish = At(r.clock.Now())
	in.State = StateCompleted
	r.completed = append(r.completed, r.metrics.addCompletion(in))
	r.running = nil

	r.emit(StatusFinish, in)
}

// preempt returns the running instance to the ready queue.
func (r *SimulationRun) preempt() {
	in := r.running
	r.closeInterval()
	r.running = nil

	r.log.Debug("preempt", "tick", r.clock.Now(), "task", in.ID(), "instance", in.Seq, "remaining", in.Remaining)
	r.emit(StatusPreempt, in)
	r.enqueue(in)
}

// missRunning aborts the running instance after its deadline passed.
func (r *SimulationRun) missRunning() {
	in := r.running
	r.closeInterval()
	r.running = nil
	r.recordMiss(in, true)
}

// expireQueued drops queued instances whose deadline is not after now.
// The queue must be ordered by deadline.
func (r *SimulationRun) expireQueued() {
	now := r.clock.Now()
	for !r.queue.Empty() && r.queue.Peek().Deadline <= now {
		in := r.queue.Pop()
		r.trace = append(r.trace, ReadyEvent{TaskID: in.ID(), Instance: in.Seq, Leave: At(now), Missed: true})
		r.recordMiss(in, false)
	}
}

func (r *SimulationRun) recordMiss(in *Instance, running bool) {
	if !in.HasDeadline() {
		panic("deadline miss on an instance without a deadline")
	}

	now := r.clock.Now()
	in.State = StateMissed
	r.misses = append(r.misses, Miss{
		TaskID:    in.ID(),
		Instance:  in.Seq,
		Release:   in.Release,
		Deadline:  in.Deadline,
		At:        now,
		Remaining: in.Remaining,
		Running:   running,
	})
	r.metrics.Missed++

	r.log.Debug("deadline miss", "tick", now, "task", in.ID(), "instance", in.Seq, "remaining", in.Remaining)
	r.emit(StatusMiss, in)
}

func (r *SimulationRun) emit(kind StatusKind, in *Instance) {
	if len(r.observers) == 0 {
		return
	}

	ev := StatusEvent{Tick: r.clock.Now(), Kind: kind}
	if in != nil {
		ev.TaskID = in.ID()
		ev.Instance = in.Seq
		ev.Remaining = in.Remaining
	}

	for _, o := range r.observers {
		o.Observe(ev)
	}
}

func (r *SimulationRun) result() *Result {
	for _, in := range r.instances {
		if in.State != StateCompleted && in.State != StateMissed {
			panic("run ended with an unsettled instance")
		}
	}
	r.metrics.Elapsed = r.clock.Now()

	res := &Result{
		RunID:       r.id,
		Algorithm:   r.alg,
		Schedule:    r.schedule,
		ReadyTrace:  r.trace,
		Completed:   r.completed,
		Misses:      r.misses,
		Metrics:     r.metrics,
		ElapsedTime: r.clock.Now(),
	}
	if r.alg == RR {
		res.Quantum = r.quantum
	}
	if r.alg.Periodic() {
		res.Horizon = r.horizon
	}

	return res
}
