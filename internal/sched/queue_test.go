package sched

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ReadyQueue", func() {
	var (
		a, b, c Task
	)

	BeforeEach(func() {
		a = mustTask("A", 0, 5, 10, 0)
		b = mustTask("B", 0, 2, 4, 3)
		c = mustTask("C", 1, 2, 4, 0)
	})

	popIDs := func(q ReadyQueue) []TaskID {
		var ids []TaskID
		for !q.Empty() {
			ids = append(ids, q.Pop().ID())
		}
		return ids
	}

	It("should pop in enqueue order for FCFS and RR", func() {
		for _, alg := range []Algorithm{FCFS, RR} {
			q := NewReadyQueue(alg)
			q.Push(newInstance(&c, 2, 0, 1, false))
			q.Push(newInstance(&a, 0, 0, 0, false))
			q.Push(newInstance(&b, 1, 0, 0, false))

			Expect(q.Len()).To(Equal(3))
			Expect(q.Peek().ID()).To(Equal(TaskID("C")))
			Expect(popIDs(q)).To(Equal([]TaskID{"C", "A", "B"}))
		}
	})

	It("should pop the shortest burst for SJN, ties by arrival", func() {
		q := NewReadyQueue(SJN)
		q.Push(newInstance(&a, 0, 0, 0, false))
		q.Push(newInstance(&c, 2, 0, 1, false))
		q.Push(newInstance(&b, 1, 0, 0, false))

		Expect(popIDs(q)).To(Equal([]TaskID{"B", "C", "A"}))
	})

	It("should pop the shortest period for RM", func() {
		q := NewReadyQueue(RM)
		q.Push(newInstance(&a, 0, 0, 0, false))
		q.Push(newInstance(&c, 2, 0, 1, false))
		q.Push(newInstance(&b, 1, 0, 0, false))

		Expect(popIDs(q)).To(Equal([]TaskID{"B", "C", "A"}))
	})

	It("should pop the earliest absolute deadline for EDF", func() {
		q := NewReadyQueue(EDF)
		q.Push(newInstance(&a, 0, 0, 0, true)) // 10
		q.Push(newInstance(&c, 2, 0, 1, true)) // 5
		q.Push(newInstance(&b, 1, 0, 0, true)) // 3
		q.Push(newInstance(&b, 1, 1, 2, true)) // 5, released later than C

		var got []TaskID
		var deadlines []int64
		for !q.Empty() {
			in := q.Pop()
			got = append(got, in.ID())
			deadlines = append(deadlines, in.Deadline)
		}
		Expect(got).To(Equal([]TaskID{"B", "C", "B", "A"}))
		Expect(deadlines).To(Equal([]int64{3, 5, 5, 10}))
	})

	It("should give absolute deadlines only to deadline-driven instances", func() {
		withDeadline := newInstance(&b, 1, 1, 6, true)
		Expect(withDeadline.HasDeadline()).To(BeTrue())
		Expect(withDeadline.Deadline).To(Equal(int64(9)))

		without := newInstance(&b, 1, 0, 0, false)
		Expect(without.HasDeadline()).To(BeFalse())
	})

	It("should panic when popped empty", func() {
		for _, alg := range Algorithms {
			q := NewReadyQueue(alg)
			Expect(q.Empty()).To(BeTrue())
			Expect(func() { q.Pop() }).To(Panic())
			Expect(func() { q.Peek() }).To(Panic())
		}
	})
})

var _ = Describe("SimClock", func() {
	It("should only move forward", func() {
		var c SimClock
		c.Advance()
		c.JumpTo(5)
		Expect(c.Now()).To(Equal(int64(5)))
		Expect(func() { c.JumpTo(4) }).To(Panic())
	})
})
