// internal/sched/tickclock.go

package sched

// SimClock is the simulated time of a run. It only moves forward and is
// owned by a single run.
type SimClock struct {
	now int64
}

// Now returns the current tick.
func (c *SimClock) Now() int64 {
	return c.now
}

// Advance moves the clock forward by one tick.
func (c *SimClock) Advance() {
	c.now++
}

// JumpTo moves the clock forward to t. Jumping backwards is a bug in the
// caller.
func (c *SimClock) JumpTo(t int64) {
	if t < c.now {
		panic("simulated clock cannot move backwards")
	}
	c.now = t
}
