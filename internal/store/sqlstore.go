package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// nowUTC returns the current UTC time as an ISO 8601 string.
func nowUTC() string { return time.Now().UTC().Format(time.RFC3339) }

// nullStr converts a sql.NullString to a plain string (empty if null).
func nullStr(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// SqlStore implements Store with SQLite.
type SqlStore struct {
	db *sql.DB
}

// Open opens or creates a SQLite DB at path and runs migrations.
// Creates the parent directory (e.g. .critpath) if it does not exist.
func Open(path string) (*SqlStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	s := &SqlStore{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SqlStore) migrate() error {
	var tableCount int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableCount)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableCount == 0 {
		// Fresh database.
		if _, err := s.db.Exec(schemaV1); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_version(version) VALUES(?)", schemaVersionV1); err != nil {
			return fmt.Errorf("set schema version: %w", err)
		}
		return nil
	}

	var v int
	err = s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&v)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("read schema version: %w", err)
	}
	if errors.Is(err, sql.ErrNoRows) {
		v = schemaVersionV1
		if _, err := s.db.Exec("INSERT INTO schema_version(version) VALUES(?)", v); err != nil {
			return fmt.Errorf("set schema version: %w", err)
		}
	}
	if v != schemaVersionV1 {
		return fmt.Errorf("unknown schema version %d", v)
	}
	return nil
}

// Close releases the database handle.
func (s *SqlStore) Close() error { return s.db.Close() }

// CreateRun implements Store.
func (s *SqlStore) CreateRun(run *Run) (int64, error) {
	if run == nil {
		return 0, errors.New("run is nil")
	}
	createdAt := run.CreatedAt
	if createdAt == "" {
		createdAt = nowUTC()
	}
	res, err := s.db.Exec(
		`INSERT INTO runs(created_at, start_time, end_time, discovered_by, source, path_count)
		 VALUES(?, ?, ?, ?, ?, ?)`,
		createdAt, run.StartTime, run.EndTime, run.DiscoveredBy, run.Source, run.PathCount,
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("run id: %w", err)
	}
	run.ID = id
	run.CreatedAt = createdAt
	return id, nil
}

// GetRun implements Store.
func (s *SqlStore) GetRun(id int64) (*Run, error) {
	row := s.db.QueryRow(
		`SELECT id, created_at, start_time, end_time, discovered_by, source, path_count
		 FROM runs WHERE id = ?`, id,
	)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %d not found", id)
	}
	return run, err
}

// ListRuns implements Store.
func (s *SqlStore) ListRuns() ([]*Run, error) {
	rows, err := s.db.Query(
		`SELECT id, created_at, start_time, end_time, discovered_by, source, path_count
		 FROM runs ORDER BY id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var run Run
	var source sql.NullString
	err := row.Scan(&run.ID, &run.CreatedAt, &run.StartTime, &run.EndTime,
		&run.DiscoveredBy, &source, &run.PathCount)
	if err != nil {
		return nil, err
	}
	run.Source = nullStr(source)
	return &run, nil
}

// SavePath implements Store.
func (s *SqlStore) SavePath(rec *PathRecord) (int64, error) {
	if rec == nil {
		return 0, errors.New("path record is nil")
	}
	services, err := marshalServices(rec.Services)
	if err != nil {
		return 0, err
	}
	res, err := s.db.Exec(
		`INSERT INTO paths(run_id, path_id, name, description, services, start_service,
			end_service, request_count, avg_latency, error_rate, p99_latency,
			priority, severity, last_updated)
		 VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID, rec.PathID, rec.Name, rec.Description, services, rec.StartService,
		rec.EndService, rec.RequestCount, rec.AvgLatency, rec.ErrorRate, rec.P99Latency,
		rec.Priority, rec.Severity, rec.LastUpdated,
	)
	if err != nil {
		return 0, fmt.Errorf("insert path: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("path id: %w", err)
	}
	rec.ID = id
	return id, nil
}

// ListPathsByRun implements Store.
func (s *SqlStore) ListPathsByRun(runID int64) ([]*PathRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, run_id, path_id, name, description, services, start_service,
			end_service, request_count, avg_latency, error_rate, p99_latency,
			priority, severity, last_updated
		 FROM paths WHERE run_id = ? ORDER BY id`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query paths: %w", err)
	}
	defer rows.Close()

	var recs []*PathRecord
	for rows.Next() {
		var rec PathRecord
		var description sql.NullString
		var services string
		err := rows.Scan(&rec.ID, &rec.RunID, &rec.PathID, &rec.Name, &description,
			&services, &rec.StartService, &rec.EndService, &rec.RequestCount,
			&rec.AvgLatency, &rec.ErrorRate, &rec.P99Latency,
			&rec.Priority, &rec.Severity, &rec.LastUpdated)
		if err != nil {
			return nil, fmt.Errorf("scan path: %w", err)
		}
		rec.Description = nullStr(description)
		rec.Services, err = unmarshalServices(services)
		if err != nil {
			return nil, err
		}
		recs = append(recs, &rec)
	}
	return recs, rows.Err()
}
