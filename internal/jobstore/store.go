package jobstore

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"subfuse/internal/config"
)

// Store is the per-machine ledger of fusion runs, backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// JobRecord is one completed fusion run.
type JobRecord struct {
	JobID             string
	CreatedAt         time.Time
	Source            string
	SegmentsIn        int
	CuesOut           int
	LyricRuns         int
	HallucinationRuns int
	DroppedSegments   int
	Warnings          int
	ElapsedMS         int64
}

// Open initializes or connects to the job database and applies migrations.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.StoreDir, "jobs.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// RecordJob appends a completed fusion run to the ledger.
func (s *Store) RecordJob(ctx context.Context, rec JobRecord) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO fusion_jobs (
            job_id, created_at, source, segments_in, cues_out,
            lyric_runs, hallucination_runs, dropped_segments, warnings, elapsed_ms
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.JobID,
		rec.CreatedAt.UTC().Format(time.RFC3339Nano),
		rec.Source,
		rec.SegmentsIn,
		rec.CuesOut,
		rec.LyricRuns,
		rec.HallucinationRuns,
		rec.DroppedSegments,
		rec.Warnings,
		rec.ElapsedMS,
	)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

// ListRecent returns the most recent fusion runs, newest first.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]JobRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT job_id, created_at, source, segments_in, cues_out,
            lyric_runs, hallucination_runs, dropped_segments, warnings, elapsed_ms
        FROM fusion_jobs ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}
	defer rows.Close()

	var records []JobRecord
	for rows.Next() {
		var rec JobRecord
		var created string
		if err := rows.Scan(
			&rec.JobID,
			&created,
			&rec.Source,
			&rec.SegmentsIn,
			&rec.CuesOut,
			&rec.LyricRuns,
			&rec.HallucinationRuns,
			&rec.DroppedSegments,
			&rec.Warnings,
			&rec.ElapsedMS,
		); err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		if parsed, parseErr := time.Parse(time.RFC3339Nano, created); parseErr == nil {
			rec.CreatedAt = parsed
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate jobs: %w", err)
	}
	return records, nil
}
