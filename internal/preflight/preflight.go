package preflight

import (
	"strings"

	"skillsetl/internal/config"
	"skillsetl/internal/etlerr"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll checks every configured directory. The input directory only needs
// to be readable; the others must be writable.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	return []Result{
		CheckDirectoryReadable("Input directory", cfg.Paths.InputDir),
		CheckDirectoryAccess("Intermediate directory", cfg.Paths.IntermediateDir),
		CheckDirectoryAccess("Output directory", cfg.Paths.OutputDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
	}
}

// Err folds failed results into one configuration error, or nil when every
// check passed.
func Err(stage string, results ...Result) error {
	var failed []string
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r.Name+": "+r.Detail)
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return etlerr.Configuration(stage, "preflight", strings.Join(failed, "; "))
}
