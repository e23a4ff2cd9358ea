package store

import (
	"errors"
	"fmt"
	"sync"
)

// MemStore is an in-memory Store for tests. Implements Store.
type MemStore struct {
	mu     sync.Mutex
	nextID int64
	runs   map[int64]*Run
	paths  map[int64][]*PathRecord // keyed by run id
}

// NewMemStore returns a new in-memory Store.
func NewMemStore() *MemStore {
	return &MemStore{
		runs:  make(map[int64]*Run),
		paths: make(map[int64][]*PathRecord),
	}
}

// Close implements Store.
func (s *MemStore) Close() error { return nil }

// CreateRun implements Store.
func (s *MemStore) CreateRun(run *Run) (int64, error) {
	if run == nil {
		return 0, errors.New("run is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	run.ID = s.nextID
	if run.CreatedAt == "" {
		run.CreatedAt = nowUTC()
	}
	cp := *run
	s.runs[run.ID] = &cp
	return run.ID, nil
}

// GetRun implements Store.
func (s *MemStore) GetRun(id int64) (*Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	run, ok := s.runs[id]
	if !ok {
		return nil, fmt.Errorf("run %d not found", id)
	}
	cp := *run
	return &cp, nil
}

// ListRuns implements Store.
func (s *MemStore) ListRuns() ([]*Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Run, 0, len(s.runs))
	for id := s.nextID; id > 0; id-- {
		if run, ok := s.runs[id]; ok {
			cp := *run
			out = append(out, &cp)
		}
	}
	return out, nil
}

// SavePath implements Store.
func (s *MemStore) SavePath(rec *PathRecord) (int64, error) {
	if rec == nil {
		return 0, errors.New("path record is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	rec.ID = s.nextID
	cp := *rec
	s.paths[rec.RunID] = append(s.paths[rec.RunID], &cp)
	return rec.ID, nil
}

// ListPathsByRun implements Store.
func (s *MemStore) ListPathsByRun(runID int64) ([]*PathRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	recs := s.paths[runID]
	out := make([]*PathRecord, 0, len(recs))
	for _, r := range recs {
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}
