package sched

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("RR", func() {
	It("should rotate with the default quantum", func() {
		res, err := Simulate(RR, threeTasks())
		Expect(err).NotTo(HaveOccurred())

		Expect(res.Quantum).To(Equal(int64(DefaultQuantum)))
		Expect(spans(res.Schedule)).To(Equal([]ExecutionInterval{
			iv("A", 0, 4), iv("B", 4, 7), iv("C", 7, 11), iv("A", 11, 12), iv("C", 12, 16),
		}))

		avg, err := res.AverageWaitingTime()
		Expect(err).NotTo(HaveOccurred())
		Expect(avg).To(BeNumerically("~", 16.0/3.0, 1e-9))
	})

	It("should honour a quantum override", func() {
		s := New(Config{Quantum: 2})
		res, err := s.Run(RR, []Task{
			mustTask("A", 0, 3, 0, 0),
			mustTask("B", 0, 2, 0, 0),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(spans(res.Schedule)).To(Equal([]ExecutionInterval{
			iv("A", 0, 2), iv("B", 2, 4), iv("A", 4, 5),
		}))
	})

	It("should keep one interval per dispatch for a lone task", func() {
		s := New(Config{Quantum: 2})
		res, err := s.Run(RR, []Task{mustTask("A", 0, 5, 0, 0)})
		Expect(err).NotTo(HaveOccurred())
		Expect(spans(res.Schedule)).To(Equal([]ExecutionInterval{
			iv("A", 0, 2), iv("A", 2, 4), iv("A", 4, 5),
		}))

		Expect(res.ReadyIntervals()).To(Equal([]ReadySpan{
			{TaskID: "A", Enter: 0, Leave: At(0)},
			{TaskID: "A", Enter: 2, Leave: At(2)},
			{TaskID: "A", Enter: 4, Leave: At(4)},
		}))
	})

	It("should requeue a preempted task ahead of the next tick's arrivals", func() {
		s := New(Config{Quantum: 2})
		res, err := s.Run(RR, []Task{
			mustTask("A", 0, 4, 0, 0),
			mustTask("B", 2, 1, 0, 0),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(spans(res.Schedule)).To(Equal([]ExecutionInterval{
			iv("A", 0, 2), iv("A", 2, 4), iv("B", 4, 5),
		}))
	})

	It("should count idle ticks one at a time", func() {
		var idle int
		s := New(DefaultConfig(), WithObserver(ObserverFunc(func(ev StatusEvent) {
			if ev.Kind == StatusIdle {
				idle++
			}
		})))
		res, err := s.Run(RR, []Task{mustTask("A", 3, 1, 0, 0)})
		Expect(err).NotTo(HaveOccurred())
		Expect(idle).To(Equal(3))
		Expect(spans(res.Schedule)).To(Equal([]ExecutionInterval{iv("A", 3, 4)}))
	})
})
