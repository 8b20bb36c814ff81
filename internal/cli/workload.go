package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"ticksched/internal/config"
	"ticksched/internal/job"
	"ticksched/internal/record"
	"ticksched/internal/runner"
	"ticksched/internal/sched"
)

// simFlags are shared by run and compare.
type simFlags struct {
	workload   string
	quantum    int64
	csvDir     string
	sqlitePath string
	record     bool
	trace      bool
	traceCSV   string
	showIdle   bool
	genFlags
}

// genFlags select a generated workload.
type genFlags struct {
	difficulty int
	seed       uint64
	periodic   bool
}

func (g *genFlags) bind(cmd *cobra.Command) {
	cmd.Flags().IntVar(&g.difficulty, "difficulty", 1, "Generated workload difficulty (1-4)")
	cmd.Flags().Uint64Var(&g.seed, "seed", 1, "Generator seed")
	cmd.Flags().BoolVar(&g.periodic, "periodic", false, "Give every generated task a period")
}

func (g *genFlags) apply(cmd *cobra.Command, c *config.Config) {
	f := cmd.Flags()
	if f.Changed("difficulty") {
		c.Generator.Difficulty = g.difficulty
	}
	if f.Changed("seed") {
		c.Generator.Seed = g.seed
	}
	if f.Changed("periodic") {
		c.Generator.Periodic = g.periodic
	}
}

func (s *simFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.workload, "workload", "w", "", "Workload file (.yml, .yaml or .csv); generated when empty")
	cmd.Flags().Int64VarP(&s.quantum, "quantum", "q", sched.DefaultQuantum, "Round-Robin time slice in ticks")
	cmd.Flags().StringVar(&s.csvDir, "csv-dir", "", "Export schedule, ready trace and misses as CSV into this directory")
	cmd.Flags().StringVar(&s.sqlitePath, "sqlite", "", "Record runs into this SQLite database")
	cmd.Flags().BoolVar(&s.record, "record", false, "Record runs into SQLite, using a generated file name unless --sqlite is set")
	cmd.Flags().BoolVar(&s.trace, "trace", false, "Print every scheduler event")
	cmd.Flags().StringVar(&s.traceCSV, "trace-csv", "", "Log every scheduler event as CSV into this file")
	cmd.Flags().BoolVar(&s.showIdle, "show-idle", false, "Include idle ticks in the trace")
	s.genFlags.bind(cmd)
}

func (s *simFlags) apply(cmd *cobra.Command, c *config.Config) error {
	f := cmd.Flags()
	if f.Changed("quantum") {
		if s.quantum <= 0 {
			return fmt.Errorf("%w: %d", sched.ErrInvalidQuantum, s.quantum)
		}
		c.Quantum = s.quantum
	}
	if f.Changed("csv-dir") {
		c.CSVDir = s.csvDir
	}
	if f.Changed("sqlite") {
		c.SQLitePath = s.sqlitePath
	}
	if f.Changed("trace") {
		c.Trace = s.trace
	}
	if f.Changed("trace-csv") {
		c.TraceCSV = s.traceCSV
	}
	s.genFlags.apply(cmd, c)
	return nil
}

// loadWorkload reads the workload file, or generates one from the
// generator settings when no file is given.
func loadWorkload(path string, c config.Config) ([]sched.Task, error) {
	if path != "" {
		tasks, err := job.Load(path)
		if err != nil {
			return nil, err
		}
		logger.Info("workload loaded", "path", path, "tasks", len(tasks))
		return tasks, nil
	}

	g := job.NewGenerator(c.Generator.Difficulty, c.Generator.Seed, c.Generator.Periodic)
	tasks := g.Generate()
	logger.Info("workload generated",
		"difficulty", c.Generator.Difficulty,
		"seed", c.Generator.Seed,
		"periodic", c.Generator.Periodic,
		"tasks", len(tasks))

	return tasks, nil
}

// session holds the runner of one command and whatever must be closed
// after it.
type session struct {
	*runner.Runner
	printer *record.EventPrinter
}

func newSession(out io.Writer, c config.Config, s *simFlags) (*session, error) {
	opts := []sched.Option{sched.WithLogger(logger)}

	var printer *record.EventPrinter
	if c.Trace || c.TraceCSV != "" {
		w := out
		if !c.Trace {
			w = io.Discard
		}
		printer = record.NewEventPrinter(w, s.showIdle)

		if c.TraceCSV != "" {
			if err := printer.EnableCSVLogging(c.TraceCSV); err != nil {
				return nil, err
			}
			logger.Info("logging events", "path", c.TraceCSV)
		}
		opts = append(opts, sched.WithObserver(printer))
	}

	recorders, err := newRecorders(c, s)
	if err != nil {
		if printer != nil {
			printer.Close()
		}
		return nil, err
	}

	engine := sched.New(sched.Config{
		Quantum:    c.Quantum,
		MaxHorizon: c.MaxHorizon,
	}, opts...)

	return &session{
		Runner:  runner.New(engine, logger, recorders...),
		printer: printer,
	}, nil
}

func newRecorders(c config.Config, s *simFlags) ([]runner.Recorder, error) {
	var recorders []runner.Recorder

	if c.CSVDir != "" {
		e, err := record.NewCSVExporter(c.CSVDir)
		if err != nil {
			return nil, err
		}
		recorders = append(recorders, e)
	}

	if c.SQLitePath != "" || s.record {
		db, err := record.NewSQLiteRecorder(c.SQLitePath, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("recording runs", "database", db.Path())
		recorders = append(recorders, db)
	}

	return recorders, nil
}

func (s *session) Close() error {
	err := s.Runner.Close()
	if s.printer != nil {
		if perr := s.printer.Close(); err == nil {
			err = perr
		}
	}
	return err
}
