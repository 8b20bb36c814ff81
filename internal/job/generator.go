package job

import (
	"fmt"
	"math/rand/v2"

	"ticksched/internal/sched"
)

// Level bounds the random workloads of one difficulty.
type Level struct {
	MinTasks   int
	MaxTasks   int
	MaxArrival int64
	MaxPeriod  int64 // 0 = aperiodic tasks only
}

// Levels holds difficulties 1 to 4.
var Levels = [...]Level{
	{MinTasks: 3, MaxTasks: 5, MaxArrival: 5},
	{MinTasks: 5, MaxTasks: 10, MaxArrival: 10},
	{MinTasks: 10, MaxTasks: 15, MaxArrival: 20, MaxPeriod: 5},
	{MinTasks: 15, MaxTasks: 20, MaxArrival: 30, MaxPeriod: 15},
}

const (
	minBurst = 1
	maxBurst = 8
)

// periodicPeriods keeps the hyperperiod of periodic workloads at 120 or
// below.
var periodicPeriods = []int64{4, 5, 6, 8, 10, 12, 15, 20}

// Generator produces random workloads. The same seed and difficulty always
// give the same workload.
type Generator struct {
	level    Level
	periodic bool
	rng      *rand.Rand
}

// NewGenerator creates a generator. difficulty is clamped to 1..4. With
// periodic set every task gets a period at least as long as its burst, so
// the workload is accepted by RM and EDF.
func NewGenerator(difficulty int, seed uint64, periodic bool) *Generator {
	if difficulty < 1 {
		difficulty = 1
	} else if difficulty > len(Levels) {
		difficulty = len(Levels)
	}

	return &Generator{
		level:    Levels[difficulty-1],
		periodic: periodic,
		rng:      rand.New(rand.NewPCG(seed, uint64(difficulty))),
	}
}

// Level returns the bounds in use.
func (g *Generator) Level() Level {
	return g.level
}

// Generate returns a fresh workload named L0..Ln.
func (g *Generator) Generate() []sched.Task {
	n := g.level.MinTasks + g.rng.IntN(g.level.MaxTasks-g.level.MinTasks+1)

	tasks := make([]sched.Task, 0, n)
	for i := 0; i < n; i++ {
		burst := minBurst + g.rng.Int64N(maxBurst-minBurst+1)
		t := sched.Task{
			ID:      sched.TaskID(fmt.Sprintf("L%d", i)),
			Arrival: g.rng.Int64N(g.level.MaxArrival + 1),
			Burst:   burst,
			Period:  g.period(burst),
		}
		if t.Periodic() {
			t.Deadline = min(2*burst, t.Period)
		}
		tasks = append(tasks, t)
	}

	return tasks
}

func (g *Generator) period(burst int64) int64 {
	if g.periodic {
		var fits []int64
		for _, p := range periodicPeriods {
			if p >= burst {
				fits = append(fits, p)
			}
		}
		return fits[g.rng.IntN(len(fits))]
	}

	if g.level.MaxPeriod == 0 {
		return 0
	}
	return g.rng.Int64N(g.level.MaxPeriod + 1)
}
