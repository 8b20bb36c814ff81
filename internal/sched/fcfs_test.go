package sched

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("FCFS", func() {
	It("should run the three-task scenario in arrival order", func() {
		res, err := Simulate(FCFS, threeTasks())
		Expect(err).NotTo(HaveOccurred())

		Expect(spans(res.Schedule)).To(Equal([]ExecutionInterval{
			iv("A", 0, 5), iv("B", 5, 8), iv("C", 8, 16),
		}))
		Expect(res.ElapsedTime).To(Equal(int64(16)))

		avg, err := res.AverageWaitingTime()
		Expect(err).NotTo(HaveOccurred())
		Expect(avg).To(BeNumerically("~", 10.0/3.0, 1e-9))
	})

	It("should emit the ready trace", func() {
		res, err := Simulate(FCFS, threeTasks())
		Expect(err).NotTo(HaveOccurred())

		Expect(res.ReadyTrace).To(Equal([]ReadyEvent{
			{TaskID: "A", Enter: At(0)},
			{TaskID: "A", Leave: At(0)},
			{TaskID: "B", Enter: At(1)},
			{TaskID: "C", Enter: At(2)},
			{TaskID: "B", Leave: At(5)},
			{TaskID: "C", Leave: At(8)},
		}))

		Expect(res.ReadyIntervals()).To(Equal([]ReadySpan{
			{TaskID: "A", Enter: 0, Leave: At(0)},
			{TaskID: "B", Enter: 1, Leave: At(5)},
			{TaskID: "C", Enter: 2, Leave: At(8)},
		}))
	})

	It("should not be overtaken by a later short job", func() {
		tasks := []Task{
			mustTask("long", 0, 10, 0, 0),
			mustTask("short", 1, 1, 0, 0),
		}
		res, err := Simulate(FCFS, tasks)
		Expect(err).NotTo(HaveOccurred())
		Expect(spans(res.Schedule)).To(Equal([]ExecutionInterval{
			iv("long", 0, 10), iv("short", 10, 11),
		}))
	})

	It("should jump over idle gaps", func() {
		tasks := []Task{
			mustTask("A", 0, 2, 0, 0),
			mustTask("B", 5, 1, 0, 0),
		}

		var idle int
		s := New(DefaultConfig(), WithObserver(ObserverFunc(func(ev StatusEvent) {
			if ev.Kind == StatusIdle {
				idle++
			}
		})))
		res, err := s.Run(FCFS, tasks)
		Expect(err).NotTo(HaveOccurred())

		Expect(spans(res.Schedule)).To(Equal([]ExecutionInterval{iv("A", 0, 2), iv("B", 5, 6)}))
		Expect(res.ElapsedTime).To(Equal(int64(6)))
		Expect(idle).To(Equal(1))
		Expect(res.Metrics.Utilization()).To(BeNumerically("~", 0.5, 1e-9))
		Expect(res.Timeline()).To(Equal([]TaskID{"A", "A", "", "", "", "B"}))
	})

	It("should ignore periods", func() {
		tasks := []Task{mustTask("P", 0, 2, 3, 0)}
		res, err := Simulate(FCFS, tasks)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Completed).To(HaveLen(1))
		Expect(res.Horizon).To(BeZero())
	})

	It("should not modify the caller's tasks", func() {
		tasks := threeTasks()
		orig := append([]Task(nil), tasks...)
		_, err := Simulate(FCFS, tasks)
		Expect(err).NotTo(HaveOccurred())
		Expect(tasks).To(Equal(orig))
	})

	It("should report validation errors before running", func() {
		var events int
		s := New(DefaultConfig(), WithObserver(ObserverFunc(func(StatusEvent) { events++ })))
		_, err := s.Run(FCFS, []Task{{ID: "bad", Burst: -1}})
		Expect(err).To(MatchError(ErrInvalidBurst))
		Expect(events).To(BeZero())
	})
})

var _ = Describe("SJN", func() {
	It("should run the three-task scenario", func() {
		res, err := Simulate(SJN, threeTasks())
		Expect(err).NotTo(HaveOccurred())
		Expect(spans(res.Schedule)).To(Equal([]ExecutionInterval{
			iv("A", 0, 5), iv("B", 5, 8), iv("C", 8, 16),
		}))
	})

	It("should pick the shortest arrived job at each decision point", func() {
		tasks := []Task{
			mustTask("A", 0, 4, 0, 0),
			mustTask("B", 1, 6, 0, 0),
			mustTask("C", 2, 2, 0, 0),
			mustTask("D", 3, 1, 0, 0),
		}
		res, err := Simulate(SJN, tasks)
		Expect(err).NotTo(HaveOccurred())
		Expect(spans(res.Schedule)).To(Equal([]ExecutionInterval{
			iv("A", 0, 4), iv("D", 4, 5), iv("C", 5, 7), iv("B", 7, 13),
		}))

		avg, err := res.AverageWaitingTime()
		Expect(err).NotTo(HaveOccurred())
		// A 0, D 1, C 3, B 6
		Expect(avg).To(BeNumerically("~", 10.0/4.0, 1e-9))
	})

	It("should break ties by arrival order", func() {
		tasks := []Task{
			mustTask("X", 0, 3, 0, 0),
			mustTask("Y", 0, 3, 0, 0),
			mustTask("Z", 0, 1, 0, 0),
		}
		res, err := Simulate(SJN, tasks)
		Expect(err).NotTo(HaveOccurred())
		Expect(spans(res.Schedule)).To(Equal([]ExecutionInterval{
			iv("Z", 0, 1), iv("X", 1, 4), iv("Y", 4, 7),
		}))
	})
})
