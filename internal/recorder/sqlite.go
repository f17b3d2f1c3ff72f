package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"math"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists screening runs and matched records to SQLite.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so ad hoc readers don't block run inserts.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS screen_runs (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			end_date   TEXT,
			mode       TEXT,
			detectors  TEXT,
			evaluated  INTEGER,
			matched    INTEGER,
			skipped    INTEGER,
			elapsed_ms INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON screen_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS screen_results (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id     INTEGER NOT NULL,
			symbol     TEXT NOT NULL,
			last_close REAL,
			matched    TEXT,
			rsi        REAL,
			mfi        REAL,
			macd       REAL,
			macd_sig   REAL,
			adx        REAL,
			band_width REAL,
			ma         REAL,
			FOREIGN KEY(run_id) REFERENCES screen_runs(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_results_run ON screen_results(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_results_symbol ON screen_results(symbol)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordRun inserts the run summary and one row per matched symbol.
func (r *SQLiteRecorder) RecordRun(run *RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rep := run.Report
	res, err := r.db.Exec(`INSERT INTO screen_runs
		(timestamp, end_date, mode, detectors, evaluated, matched, skipped, elapsed_ms)
		VALUES (?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), rep.EndDate.Format("2006-01-02"), run.Mode,
		strings.Join(run.Detectors, ", "),
		rep.Evaluated, rep.Matched, rep.Skipped, rep.Elapsed.Milliseconds(),
	)
	if err != nil {
		return err
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	for _, rec := range rep.Records {
		ind := rec.Indicators
		_, err := r.db.Exec(`INSERT INTO screen_results
			(run_id, symbol, last_close, matched, rsi, mfi, macd, macd_sig, adx, band_width, ma)
			VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
			runID, rec.Symbol, rec.LastClose, strings.Join(rec.Matched, ", "),
			nullable(ind.RSI), nullable(ind.MFI), nullable(ind.MACD), nullable(ind.Signal),
			nullable(ind.ADX), nullable(ind.BandWidth), nullable(ind.MA),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// nullable maps NaN indicator values to SQL NULL.
func nullable(v float64) interface{} {
	if math.IsNaN(v) {
		return nil
	}
	return v
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
