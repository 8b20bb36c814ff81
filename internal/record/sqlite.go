package record

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"

	"github.com/rs/xid"
	"github.com/tebeka/atexit"

	"ticksched/internal/sched"
)

// ErrRecorderClosed is returned when recording into a closed recorder.
var ErrRecorderClosed = errors.New("recorder closed")

// SQLiteRecorder stores results in a SQLite database. Results are buffered
// and written in one transaction per batch.
type SQLiteRecorder struct {
	*sql.DB

	path      string
	log       *slog.Logger
	pending   []*sched.Result
	batchSize int
	closed    bool
}

// NewSQLiteRecorder opens (or creates) the database at path. An empty path
// creates ticksched_<xid>.sqlite3 in the working directory. Buffered results
// are flushed when the process exits through atexit; a failed flush is
// logged to log, or to the default logger when log is nil.
func NewSQLiteRecorder(path string, log *slog.Logger) (*SQLiteRecorder, error) {
	if path == "" {
		path = "ticksched_" + xid.New().String() + ".sqlite3"
	}

	if log == nil {
		log = slog.Default()
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	r := &SQLiteRecorder{
		DB:        db,
		path:      path,
		log:       log,
		batchSize: 16,
	}
	if err := r.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	atexit.Register(func() {
		if err := r.Flush(); err != nil {
			r.log.Error("flushing recorder at exit", "database", r.path, "err", err)
		}
	})

	return r, nil
}

// Path returns the database file name.
func (r *SQLiteRecorder) Path() string {
	return r.path
}

func (r *SQLiteRecorder) createTables() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT PRIMARY KEY,
			algorithm TEXT NOT NULL,
			quantum INTEGER,
			horizon INTEGER,
			elapsed INTEGER NOT NULL,
			completed INTEGER NOT NULL,
			missed INTEGER NOT NULL,
			avg_waiting REAL,
			utilization REAL NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS intervals (
			run_id TEXT NOT NULL,
			task_id TEXT NOT NULL,
			instance INTEGER NOT NULL,
			start_tick INTEGER NOT NULL,
			end_tick INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS ready_events (
			run_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			task_id TEXT NOT NULL,
			instance INTEGER NOT NULL,
			enter_tick INTEGER,
			leave_tick INTEGER,
			missed INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS misses (
			run_id TEXT NOT NULL,
			task_id TEXT NOT NULL,
			instance INTEGER NOT NULL,
			release_tick INTEGER NOT NULL,
			deadline INTEGER NOT NULL,
			at_tick INTEGER NOT NULL,
			remaining INTEGER NOT NULL,
			running INTEGER NOT NULL
		)`,
	}

	for _, s := range stmts {
		if _, err := r.Exec(s); err != nil {
			return fmt.Errorf("creating tables: %w", err)
		}
	}
	return nil
}

// Record buffers a result.
func (r *SQLiteRecorder) Record(res *sched.Result) error {
	if r.closed {
		return ErrRecorderClosed
	}

	r.pending = append(r.pending, res)
	if len(r.pending) >= r.batchSize {
		return r.Flush()
	}
	return nil
}

// Flush writes all buffered results. It does nothing once the recorder is
// closed.
func (r *SQLiteRecorder) Flush() error {
	if r.closed || len(r.pending) == 0 {
		return nil
	}

	tx, err := r.Begin()
	if err != nil {
		return err
	}

	for _, res := range r.pending {
		if err := insertResult(tx, res); err != nil {
			tx.Rollback()
			return fmt.Errorf("recording run %s: %w", res.RunID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	r.pending = nil
	return nil
}

// Close flushes and closes the database. Closing twice is a no-op.
func (r *SQLiteRecorder) Close() error {
	if r.closed {
		return nil
	}

	err := r.Flush()
	r.closed = true
	if cerr := r.DB.Close(); err == nil {
		err = cerr
	}
	return err
}

func insertResult(tx *sql.Tx, res *sched.Result) error {
	var avg sql.NullFloat64
	if v, err := res.AverageWaitingTime(); err == nil {
		avg = sql.NullFloat64{Float64: v, Valid: true}
	}

	_, err := tx.Exec(
		`INSERT INTO runs VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		res.RunID, res.Algorithm.String(), res.Quantum, res.Horizon, res.ElapsedTime,
		res.Metrics.Completed, res.Metrics.Missed, avg, res.Metrics.Utilization(),
	)
	if err != nil {
		return err
	}

	ivStmt, err := tx.Prepare(`INSERT INTO intervals VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer ivStmt.Close()
	for _, iv := range res.Schedule {
		if _, err := ivStmt.Exec(res.RunID, string(iv.TaskID), iv.Instance, iv.Start, iv.End); err != nil {
			return err
		}
	}

	evStmt, err := tx.Prepare(`INSERT INTO ready_events VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer evStmt.Close()
	for i, ev := range res.ReadyTrace {
		_, err := evStmt.Exec(res.RunID, i, string(ev.TaskID), ev.Instance,
			nullTick(ev.Enter), nullTick(ev.Leave), ev.Missed)
		if err != nil {
			return err
		}
	}

	missStmt, err := tx.Prepare(`INSERT INTO misses VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer missStmt.Close()
	for _, m := range res.Misses {
		_, err := missStmt.Exec(res.RunID, string(m.TaskID), m.Instance,
			m.Release, m.Deadline, m.At, m.Remaining, m.Running)
		if err != nil {
			return err
		}
	}

	return nil
}

func nullTick(o sched.OptTick) sql.NullInt64 {
	t, ok := o.Get()
	return sql.NullInt64{Int64: t, Valid: ok}
}
