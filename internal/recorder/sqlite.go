package recorder

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/jentichuang-afk/stock-watchlist/internal/logger"
	"github.com/jentichuang-afk/stock-watchlist/internal/model"
	"github.com/jentichuang-afk/stock-watchlist/internal/narrative"
)

// SQLiteRecorder persists scan history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Info("sqlite recorder opened", logger.String("path", dbPath))
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS scan_runs (
			id           TEXT PRIMARY KEY,
			trigger_kind TEXT NOT NULL,
			started_at   INTEGER NOT NULL,
			finished_at  INTEGER NOT NULL,
			row_count    INTEGER NOT NULL,
			skip_count   INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started ON scan_runs(started_at)`,

		`CREATE TABLE IF NOT EXISTS scan_rows (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id       TEXT NOT NULL REFERENCES scan_runs(id),
			position     INTEGER NOT NULL,
			code         TEXT NOT NULL,
			name         TEXT,
			symbol       TEXT,
			price        REAL,
			change_pct   REAL,
			volume_ratio REAL,
			rsi          REAL,
			macd         REAL,
			macd_hist    REAL,
			k            REAL,
			d            REAL,
			obv          REAL,
			ma5          REAL,
			ma20         REAL,
			ma60         REAL,
			boll_upper   REAL,
			boll_lower   REAL,
			trend        TEXT,
			signal       TEXT,
			composite    TEXT,
			cross_label  TEXT,
			direction    TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_rows_code ON scan_rows(code, run_id)`,

		`CREATE TABLE IF NOT EXISTS scan_skips (
			id     INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES scan_runs(id),
			code   TEXT NOT NULL,
			reason TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS narratives (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id     TEXT NOT NULL,
			model      TEXT,
			summary    TEXT,
			error      TEXT,
			created_at INTEGER NOT NULL DEFAULT (strftime('%s','now'))
		)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordScan writes the run, its rows and its skips in one transaction.
func (r *SQLiteRecorder) RecordScan(runID, trigger string, res *model.ScanResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO scan_runs
		(id, trigger_kind, started_at, finished_at, row_count, skip_count)
		VALUES (?,?,?,?,?,?)`,
		runID, trigger, res.StartedAt.Unix(), res.FinishedAt.Unix(), len(res.Rows), len(res.Skipped),
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for i, row := range res.Rows {
		if _, err := tx.Exec(`INSERT INTO scan_rows
			(run_id, position, code, name, symbol, price, change_pct, volume_ratio,
			 rsi, macd, macd_hist, k, d, obv, ma5, ma20, ma60, boll_upper, boll_lower,
			 trend, signal, composite, cross_label, direction)
			VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
			runID, i, row.Code, row.Name, row.Symbol, row.Price, row.ChangePct, row.VolumeRatio,
			row.RSI.NullFloat64(), row.MACD.NullFloat64(), row.Histogram.NullFloat64(),
			row.K.NullFloat64(), row.D.NullFloat64(), row.OBV.NullFloat64(),
			row.MA5.NullFloat64(), row.MA20.NullFloat64(), row.MA60.NullFloat64(),
			row.BollUpper.NullFloat64(), row.BollLower.NullFloat64(),
			string(row.Trend), string(row.Signal), string(row.Composite), string(row.Cross), string(row.Direction),
		); err != nil {
			return fmt.Errorf("insert row %s: %w", row.Code, err)
		}
	}

	for _, s := range res.Skipped {
		if _, err := tx.Exec(`INSERT INTO scan_skips (run_id, code, reason) VALUES (?,?,?)`,
			runID, s.Code, s.Reason); err != nil {
			return fmt.Errorf("insert skip %s: %w", s.Code, err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) RecordNarrative(runID string, results []narrative.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, res := range results {
		if _, err := r.db.Exec(`INSERT INTO narratives (run_id, model, summary, error) VALUES (?,?,?,?)`,
			runID, res.Model, res.Commentary.Text(), res.Err); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRecorder) Close() error {
	logger.Info("closing sqlite recorder")
	return r.db.Close()
}
