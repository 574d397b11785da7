package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"skillsetl/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Every directory exists on return; the input directory is empty.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.InputDir = filepath.Join(base, "input")
	cfgVal.Paths.IntermediateDir = filepath.Join(base, "stage2")
	cfgVal.Paths.OutputDir = filepath.Join(base, "output")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Ledger.Path = filepath.Join(base, "logs", "ledger.db")
	cfgVal.Logging.Level = "info"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	for _, dir := range []string{
		builder.cfg.Paths.InputDir,
		builder.cfg.Paths.IntermediateDir,
		builder.cfg.Paths.OutputDir,
		builder.cfg.Paths.LogDir,
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
	return builder.cfg
}

// WithLenientSkills disables reconcile.strict_skills.
func WithLenientSkills() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Reconcile.StrictSkills = false
	}
}

// WithLedgerDisabled turns the run ledger off.
func WithLedgerDisabled() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Ledger.Enabled = false
	}
}

// WithSources writes the standard fixture exports into the input directory.
func WithSources() ConfigOption {
	return func(b *configBuilder) {
		if err := os.MkdirAll(b.cfg.Paths.InputDir, 0o755); err != nil {
			b.t.Fatalf("mkdir input: %v", err)
		}
		WriteSources(b.t, b.cfg.Paths.InputDir)
	}
}
