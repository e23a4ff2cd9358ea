package store

import "testing"

// MemStore must satisfy Store.
var _ Store = (*MemStore)(nil)

func TestMemStore_RunRoundtrip(t *testing.T) {
	s := NewMemStore()

	id, err := s.CreateRun(sampleRun())
	if err != nil {
		t.Fatalf("create run: %v", err)
	}
	got, err := s.GetRun(id)
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if got.DiscoveredBy != "statistical" {
		t.Errorf("unexpected run: %+v", got)
	}
	if _, err := s.GetRun(id + 99); err == nil {
		t.Error("expected error for missing run")
	}
}

func TestMemStore_PathsIsolatedPerRun(t *testing.T) {
	s := NewMemStore()
	run1, _ := s.CreateRun(sampleRun())
	run2, _ := s.CreateRun(sampleRun())

	if _, err := s.SavePath(&PathRecord{RunID: run1, PathID: "path-1", Services: []string{"a"}}); err != nil {
		t.Fatalf("save path: %v", err)
	}
	if _, err := s.SavePath(&PathRecord{RunID: run2, PathID: "path-1", Services: []string{"b"}}); err != nil {
		t.Fatalf("save path: %v", err)
	}

	recs, err := s.ListPathsByRun(run1)
	if err != nil {
		t.Fatalf("list paths: %v", err)
	}
	if len(recs) != 1 || recs[0].Services[0] != "a" {
		t.Errorf("unexpected paths for run1: %+v", recs)
	}
}

func TestMemStore_CopiesOnRead(t *testing.T) {
	s := NewMemStore()
	runID, _ := s.CreateRun(sampleRun())
	s.SavePath(&PathRecord{RunID: runID, PathID: "path-1", Services: []string{"a"}})

	recs, _ := s.ListPathsByRun(runID)
	recs[0].PathID = "mutated"

	again, _ := s.ListPathsByRun(runID)
	if again[0].PathID != "path-1" {
		t.Error("store contents mutated through a returned record")
	}
}
