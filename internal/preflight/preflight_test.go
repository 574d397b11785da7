package preflight

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"skillsetl/internal/config"
	"skillsetl/internal/etlerr"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if !strings.Contains(result.Detail, "does not exist") {
		t.Fatalf("unexpected detail %q", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if CheckDirectoryAccess("test", f).Passed {
		t.Fatal("expected failure for file path")
	}
	if !CheckFileReadable("test", f).Passed {
		t.Fatal("expected regular file to be readable")
	}
}

func TestCheckFileReadable_Directory(t *testing.T) {
	if CheckFileReadable("test", t.TempDir()).Passed {
		t.Fatal("expected failure for directory")
	}
}

func TestRunAllAndErr(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.InputDir = filepath.Join(base, "in")
	cfg.Paths.IntermediateDir = filepath.Join(base, "mid")
	cfg.Paths.OutputDir = filepath.Join(base, "out")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	for _, dir := range []string{cfg.Paths.IntermediateDir, cfg.Paths.OutputDir, cfg.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}

	results := RunAll(&cfg)
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	err := Err("run", results...)
	if !errors.Is(err, etlerr.ErrConfiguration) {
		t.Fatalf("expected configuration error for missing input dir, got %v", err)
	}
	if !strings.Contains(err.Error(), "Input directory") {
		t.Fatalf("expected failing check name in %v", err)
	}

	if err := os.MkdirAll(cfg.Paths.InputDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := Err("run", RunAll(&cfg)...); err != nil {
		t.Fatalf("expected all checks to pass, got %v", err)
	}
}
