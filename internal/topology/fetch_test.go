package topology

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testWindow() TimeRange {
	return TimeRange{
		StartTime: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 8, 1, 1, 0, 0, 0, time.UTC),
	}
}

func TestFetchSnapshot(t *testing.T) {
	var gotAuth, gotStart string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotStart = r.URL.Query().Get("start")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"services": [{"serviceName": "gateway", "callCount": 1000}]}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "secret")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	snap, err := c.FetchSnapshot(context.Background(), testWindow())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("auth header = %q, want bearer token", gotAuth)
	}
	if gotStart != "2026-08-01T00:00:00Z" {
		t.Errorf("start param = %q", gotStart)
	}
	if len(snap.Services) != 1 || snap.Services[0].ServiceName != "gateway" {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
	// The collector omitted its own window: the requested one is echoed.
	if !snap.TimeRange.StartTime.Equal(testWindow().StartTime) {
		t.Errorf("timeRange not defaulted to the requested window: %+v", snap.TimeRange)
	}
}

func TestFetchSnapshot_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "window too large", http.StatusBadRequest)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, err = c.FetchSnapshot(context.Background(), testWindow())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", apiErr.StatusCode)
	}
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	if _, err := NewClient("", ""); err == nil {
		t.Error("expected error for empty baseURL")
	}
}
