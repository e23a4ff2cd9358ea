package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplitServices(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []string
		wantErr bool
	}{
		{"simple", "a,b,c", []string{"a", "b", "c"}, false},
		{"spaces trimmed", " gateway , orders ", []string{"gateway", "orders"}, false},
		{"empty parts dropped", "a,,b,", []string{"a", "b"}, false},
		{"single", "gateway", []string{"gateway"}, false},
		{"only commas", ",,", nil, true},
		{"empty", "", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := splitServices(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("splitServices(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("splitServices(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestParseWindow(t *testing.T) {
	start, end, ok, err := parseWindow("2026-08-01T00:00:00Z", "2026-08-01T01:00:00Z")
	if err != nil || !ok {
		t.Fatalf("unexpected: ok=%v err=%v", ok, err)
	}
	if !start.Before(end) {
		t.Errorf("start %v not before end %v", start, end)
	}

	if _, _, ok, err := parseWindow("", ""); err != nil || ok {
		t.Errorf("neither flag set should be ok=false, err=nil; got ok=%v err=%v", ok, err)
	}
	if _, _, _, err := parseWindow("2026-08-01T00:00:00Z", ""); err == nil {
		t.Error("expected error when only one flag is set")
	}
	if _, _, _, err := parseWindow("2026-08-01T01:00:00Z", "2026-08-01T00:00:00Z"); err == nil {
		t.Error("expected error for inverted window")
	}
	if _, _, _, err := parseWindow("noon", "2026-08-01T01:00:00Z"); err == nil {
		t.Error("expected error for unparseable time")
	}
}
