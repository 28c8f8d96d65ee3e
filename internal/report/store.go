// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report persists training runs to a local SQLite database and
// exports run summaries as YAML.
package report

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/corpus-learn/internal/train"
	"github.com/pdiddy/corpus-learn/pkg/types"
)

const dbFile = "runs.db"

// Store manages the training-run SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the run database at reportDir/runs.db,
// creating the schema if it does not exist.
func NewStore(cfg types.ReportConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.ReportDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating report directory: %w", err)
	}

	dbPath := filepath.Join(cfg.ReportDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started TEXT NOT NULL,
			positive_class TEXT NOT NULL,
			batch_size INTEGER NOT NULL,
			batches INTEGER NOT NULL,
			test_docs INTEGER NOT NULL,
			test_pos INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS observations (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			classifier TEXT NOT NULL,
			train_docs INTEGER NOT NULL,
			train_pos INTEGER NOT NULL,
			accuracy REAL NOT NULL,
			fit_ms INTEGER NOT NULL,
			score_ms INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS history (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			classifier TEXT NOT NULL,
			train_docs INTEGER NOT NULL,
			accuracy REAL NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_observations_run ON observations(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_history_run ON history(run_id, classifier)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SaveRun inserts a run with its per-classifier observations and accuracy
// history, returning the new run ID. The insert is transactional: a
// partial run is never visible.
func (s *Store) SaveRun(res *train.Result, started time.Time) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	r, err := tx.Exec(
		`INSERT INTO runs (started, positive_class, batch_size, batches, test_docs, test_pos)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		started.UTC().Format(time.RFC3339), res.PositiveClass, res.BatchSize,
		res.Batches, res.TestDocs, res.TestPos,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := r.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	for _, st := range res.Stats {
		_, err := tx.Exec(
			`INSERT INTO observations (run_id, classifier, train_docs, train_pos, accuracy, fit_ms, score_ms)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			runID, st.Classifier, st.TrainDocs, st.TrainPos, st.Accuracy,
			st.FitTime.Milliseconds(), st.ScoreTime.Milliseconds(),
		)
		if err != nil {
			return 0, fmt.Errorf("inserting observation for %s: %w", st.Classifier, err)
		}
		for _, pt := range st.History {
			_, err := tx.Exec(
				`INSERT INTO history (run_id, classifier, train_docs, accuracy) VALUES (?, ?, ?, ?)`,
				runID, st.Classifier, pt.TrainDocs, pt.Accuracy,
			)
			if err != nil {
				return 0, fmt.Errorf("inserting history for %s: %w", st.Classifier, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// RunRecord is one saved training run.
type RunRecord struct {
	ID            int64
	Started       time.Time
	PositiveClass string
	BatchSize     int
	Batches       int
	TestDocs      int
	TestPos       int
}

// ListRuns returns saved runs, newest first, up to limit (0 means 20).
func (s *Store) ListRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, started, positive_class, batch_size, batches, test_docs, test_pos
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var rec RunRecord
		var started string
		if err := rows.Scan(&rec.ID, &started, &rec.PositiveClass, &rec.BatchSize,
			&rec.Batches, &rec.TestDocs, &rec.TestPos); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339, started); parseErr == nil {
			rec.Started = t
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// History returns the accuracy curve for one classifier in one run, in
// training order.
func (s *Store) History(runID int64, classifier string) ([]train.AccuracyPoint, error) {
	rows, err := s.db.Query(
		`SELECT train_docs, accuracy FROM history
		 WHERE run_id = ? AND classifier = ? ORDER BY train_docs`, runID, classifier)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var out []train.AccuracyPoint
	for rows.Next() {
		var pt train.AccuracyPoint
		if err := rows.Scan(&pt.TrainDocs, &pt.Accuracy); err != nil {
			return nil, fmt.Errorf("scanning history point: %w", err)
		}
		out = append(out, pt)
	}
	return out, rows.Err()
}
