package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Busy timeout for SQLite (in milliseconds)
const sqliteBusyTimeout = 20000

// Record is one benchmark measurement as stored.
type Record struct {
	RunID     int64
	Image     string
	Width     int
	Height    int
	Codec     string
	Encoder   string
	Param     string
	Seconds   float64
	Score     float64
	Bytes     int
	ZstdBytes int
}

// ResultsDB persists benchmark runs in SQLite.
type ResultsDB struct {
	DB        *sql.DB
	stmtPut   *sql.Stmt
	stmtList  *sql.Stmt
	stmtBegin *sql.Stmt
	stmtEnd   *sql.Stmt
}

// NewResultsDB opens or creates the database at path.
func NewResultsDB(path string) (*ResultsDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_busy_timeout=%d&_journal_mode=WAL", path, sqliteBusyTimeout))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	rdb := &ResultsDB{DB: db}
	if err := rdb.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize tables: %w", err)
	}
	if err := rdb.prepare(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare statements: %w", err)
	}
	return rdb, nil
}

func (rdb *ResultsDB) initTables() error {
	_, err := rdb.DB.Exec(`
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started TEXT NOT NULL,
		finished TEXT,
		threads INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id),
		image TEXT NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		codec TEXT NOT NULL,
		encoder TEXT NOT NULL,
		param TEXT NOT NULL,
		seconds REAL NOT NULL,
		score REAL NOT NULL,
		bytes INTEGER NOT NULL,
		zstd_bytes INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS results_run ON results(run_id);`)
	return err
}

func (rdb *ResultsDB) prepare() error {
	var err error
	rdb.stmtBegin, err = rdb.DB.Prepare("INSERT INTO runs (started, threads) VALUES (?, ?)")
	if err != nil {
		return err
	}
	rdb.stmtEnd, err = rdb.DB.Prepare("UPDATE runs SET finished = ? WHERE id = ?")
	if err != nil {
		return err
	}
	rdb.stmtPut, err = rdb.DB.Prepare(`INSERT INTO results
		(run_id, image, width, height, codec, encoder, param, seconds, score, bytes, zstd_bytes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	rdb.stmtList, err = rdb.DB.Prepare(`SELECT run_id, image, width, height, codec, encoder, param,
		seconds, score, bytes, zstd_bytes FROM results WHERE run_id = ? ORDER BY id`)
	return err
}

// BeginRun records the start of a benchmark run and returns its id.
func (rdb *ResultsDB) BeginRun(started time.Time, threads int) (int64, error) {
	res, err := rdb.stmtBegin.Exec(started.UTC().Format(time.RFC3339Nano), threads)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	return res.LastInsertId()
}

// FinishRun stamps the end time of a run.
func (rdb *ResultsDB) FinishRun(runID int64, finished time.Time) error {
	if _, err := rdb.stmtEnd.Exec(finished.UTC().Format(time.RFC3339Nano), runID); err != nil {
		return fmt.Errorf("failed to finish run %d: %w", runID, err)
	}
	return nil
}

// PutResult stores one measurement.
func (rdb *ResultsDB) PutResult(r Record) error {
	_, err := rdb.stmtPut.Exec(r.RunID, r.Image, r.Width, r.Height, r.Codec, r.Encoder, r.Param,
		r.Seconds, r.Score, r.Bytes, r.ZstdBytes)
	if err != nil {
		return fmt.Errorf("failed to store result %s %s (%s): %w", r.Image, r.Codec, r.Encoder, err)
	}
	return nil
}

// ListResults returns the measurements of a run in insertion order.
func (rdb *ResultsDB) ListResults(runID int64) ([]Record, error) {
	rows, err := rdb.stmtList.Query(runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.RunID, &r.Image, &r.Width, &r.Height, &r.Codec, &r.Encoder, &r.Param,
			&r.Seconds, &r.Score, &r.Bytes, &r.ZstdBytes); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close releases the prepared statements and the database.
func (rdb *ResultsDB) Close() error {
	for _, s := range []*sql.Stmt{rdb.stmtBegin, rdb.stmtEnd, rdb.stmtPut, rdb.stmtList} {
		if s != nil {
			s.Close()
		}
	}
	return rdb.DB.Close()
}
