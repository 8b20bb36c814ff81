package runner

import (
	"errors"
	"io"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"

	"ticksched/internal/job"
	"ticksched/internal/sched"
)

func mustTask(id sched.TaskID, arrival, burst, period, deadline int64) sched.Task {
	t, err := sched.NewTask(id, arrival, burst, period, deadline)
	Expect(err).NotTo(HaveOccurred())
	return t
}

var _ = Describe("Runner", func() {
	var (
		mockCtrl *gomock.Controller
		rec      *MockRecorder
		r        *Runner
		logger   *slog.Logger
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		rec = NewMockRecorder(mockCtrl)
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		r = New(sched.New(sched.DefaultConfig()), logger, rec)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should record the result of a run", func() {
		tasks := []sched.Task{
			mustTask("A", 0, 5, 0, 0),
			mustTask("B", 1, 3, 0, 0),
		}

		var recorded *sched.Result
		rec.EXPECT().Record(gomock.Any()).DoAndReturn(func(res *sched.Result) error {
			recorded = res
			return nil
		})

		res, err := r.Run(sched.FCFS, tasks)

		Expect(err).NotTo(HaveOccurred())
		Expect(recorded).To(BeIdenticalTo(res))
		Expect(res.Algorithm).To(Equal(sched.FCFS))
	})

	It("should not record a rejected workload", func() {
		_, err := r.Run(sched.FCFS, nil)

		Expect(err).To(MatchError(sched.ErrEmptyWorkload))
	})

	It("should report recorder failures", func() {
		boom := errors.New("disk full")
		rec.EXPECT().Record(gomock.Any()).Return(boom)

		res, err := r.Run(sched.SJN, []sched.Task{mustTask("A", 0, 1, 0, 0)})

		Expect(err).To(MatchError(boom))
		Expect(res).NotTo(BeNil())
	})

	It("should compare algorithms on independent copies", func() {
		tasks := []sched.Task{
			mustTask("A", 0, 5, 0, 0),
			mustTask("B", 1, 3, 0, 0),
			mustTask("C", 2, 8, 0, 0),
		}
		rec.EXPECT().Record(gomock.Any()).Return(nil).Times(3)

		results, err := r.Compare([]sched.Algorithm{sched.FCFS, sched.SJN, sched.RR}, tasks)

		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(3))
		Expect(results[0].Algorithm).To(Equal(sched.FCFS))
		Expect(results[1].Algorithm).To(Equal(sched.SJN))
		Expect(results[2].Algorithm).To(Equal(sched.RR))
		Expect(tasks[0]).To(Equal(mustTask("A", 0, 5, 0, 0)))

		for _, res := range results {
			Expect(res.ElapsedTime).To(Equal(int64(16)))
		}
	})

	It("should skip periodic algorithms for aperiodic workloads", func() {
		tasks := []sched.Task{mustTask("A", 0, 2, 0, 0)}
		rec.EXPECT().Record(gomock.Any()).Return(nil)

		results, err := r.Compare([]sched.Algorithm{sched.FCFS, sched.RM, sched.EDF}, tasks)

		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(1))
		Expect(results[0].Algorithm).To(Equal(sched.FCFS))
	})

	It("should skip periodic algorithms whose hyperperiod is too long", func() {
		r = New(sched.New(sched.Config{MaxHorizon: 50}), logger, rec)
		tasks := []sched.Task{
			mustTask("A", 0, 1, 7, 0),
			mustTask("B", 0, 1, 9, 0),
			mustTask("C", 0, 1, 11, 0),
		}
		rec.EXPECT().Record(gomock.Any()).Return(nil).Times(3)

		results, err := r.Compare(sched.Algorithms, tasks)

		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(3))
		for _, res := range results {
			Expect(res.Algorithm.Periodic()).To(BeFalse())
		}
	})

	It("should compare generated difficulty 4 workloads", func() {
		rec.EXPECT().Record(gomock.Any()).Return(nil).AnyTimes()

		for seed := uint64(1); seed <= 50; seed++ {
			tasks := job.NewGenerator(4, seed, false).Generate()

			results, err := r.Compare(sched.Algorithms, tasks)

			Expect(err).NotTo(HaveOccurred(), "seed %d", seed)
			Expect(len(results)).To(BeNumerically(">=", 3), "seed %d", seed)
		}
	})

	It("should fail when every algorithm hits the horizon limit", func() {
		r = New(sched.New(sched.Config{MaxHorizon: 50}), logger, rec)
		tasks := []sched.Task{
			mustTask("A", 0, 1, 7, 0),
			mustTask("B", 0, 1, 9, 0),
		}

		_, err := r.Compare([]sched.Algorithm{sched.RM, sched.EDF}, tasks)

		Expect(err).To(MatchError(sched.ErrHorizonTooLarge))
	})

	It("should fail when no algorithm accepts the workload", func() {
		tasks := []sched.Task{mustTask("A", 0, 2, 0, 0)}

		_, err := r.Compare([]sched.Algorithm{sched.RM}, tasks)

		Expect(err).To(MatchError(sched.ErrNotPeriodic))
	})

	It("should close every recorder", func() {
		other := NewMockRecorder(mockCtrl)
		r = New(sched.New(sched.DefaultConfig()), logger, rec, other)

		rec.EXPECT().Close().Return(errors.New("a"))
		other.EXPECT().Close().Return(nil)

		Expect(r.Close()).To(MatchError("a"))
	})
})
