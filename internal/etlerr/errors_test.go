package etlerr_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"skillsetl/internal/etlerr"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := etlerr.Wrap(etlerr.ErrIO, "stage2", "open", "jobs.tsv", base)
	if !errors.Is(err, etlerr.ErrIO) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"stage2", "open", "jobs.tsv", "boom"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapNilMarkerDefaultsToIO(t *testing.T) {
	err := etlerr.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, etlerr.ErrIO) {
		t.Fatalf("expected io marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "pipeline failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestRowErrorMatchesDataIntegrity(t *testing.T) {
	err := fmt.Errorf("reconcile: %w", etlerr.Row("jobs_skills_count.tsv", 7, "unknown occupation code %q", "11-1011.00"))
	if !errors.Is(err, etlerr.ErrDataIntegrity) {
		t.Fatalf("expected data integrity classification, got %v", err)
	}
	var rowErr *etlerr.RowError
	if !errors.As(err, &rowErr) {
		t.Fatalf("expected RowError in chain")
	}
	if rowErr.Line != 7 {
		t.Fatalf("line = %d, want 7", rowErr.Line)
	}
	for _, fragment := range []string{"jobs_skills_count.tsv:7", "11-1011.00"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Fatalf("expected %q in %q", fragment, err.Error())
		}
	}
}

func TestExitCodeMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"configuration", etlerr.Configuration("stage2", "route", "unknown file"), etlerr.ExitConfiguration},
		{"row", etlerr.Row("a.tsv", 1, "short"), etlerr.ExitDataIntegrity},
		{"io", etlerr.Wrap(etlerr.ErrIO, "stage3", "write", "", errors.New("disk full")), etlerr.ExitIO},
		{"other", errors.New("plain"), etlerr.ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := etlerr.ExitCode(tt.err); got != tt.want {
				t.Fatalf("ExitCode = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestKind(t *testing.T) {
	if got := etlerr.Kind(etlerr.Row("a", 1, "x")); got != "data_integrity" {
		t.Fatalf("Kind = %q", got)
	}
	if got := etlerr.Kind(nil); got != "" {
		t.Fatalf("Kind(nil) = %q", got)
	}
}
