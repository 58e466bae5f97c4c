package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"EquityPulse/internal/model"
)

// SQLiteRecorder persists build runs and enriched rows to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs
// migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so analysis tools can read while a build writes.
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
		`CREATE TABLE IF NOT EXISTS build_runs (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			built_at         INTEGER NOT NULL,
			ticker           TEXT NOT NULL,
			row_count        INTEGER,
			article_count    INTEGER,
			dropped_articles INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ticker ON build_runs(ticker, built_at)`,

		`CREATE TABLE IF NOT EXISTS dataset_rows (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id    INTEGER NOT NULL REFERENCES build_runs(id),
			date      TEXT NOT NULL,
			open      REAL,
			high      REAL,
			low       REAL,
			close     REAL,
			volume    REAL,
			rsi       REAL,
			headlines TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_rows_run ON dataset_rows(run_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordBuild stores the run metadata and every enriched row in one
// transaction. A NaN RSI is stored as NULL; an unmatched headline column is
// stored as NULL, distinct from a matched-but-empty string.
func (r *SQLiteRecorder) RecordBuild(ds *model.Dataset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO build_runs
		(built_at, ticker, row_count, article_count, dropped_articles)
		VALUES (?,?,?,?,?)`,
		ds.BuiltAt.Unix(), ds.Ticker, len(ds.Rows), ds.ArticleCount, ds.DroppedArticles,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("run id: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO dataset_rows
		(run_id, date, open, high, low, close, volume, rsi, headlines)
		VALUES (?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare rows: %w", err)
	}
	defer stmt.Close()

	for _, row := range ds.Rows {
		var rsi interface{}
		if !math.IsNaN(row.RSI) {
			rsi = row.RSI
		}
		var headlines interface{}
		if row.Headlines != nil {
			headlines = *row.Headlines
		}
		if _, err := stmt.Exec(runID,
			row.Time.UTC().Format(time.DateOnly),
			row.Open, row.High, row.Low, row.Close, row.Volume,
			rsi, headlines,
		); err != nil {
			return fmt.Errorf("insert row: %w", err)
		}
	}

	return tx.Commit()
}

// RunCount returns the number of recorded build runs for a ticker.
func (r *SQLiteRecorder) RunCount(ticker string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM build_runs WHERE ticker = ?`, ticker).Scan(&n)
	return n, err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
