package pipeline

import (
	"time"

	"skillsetl/internal/ledger"
	"skillsetl/internal/transform"
)

// FileReport describes one stage-2 source file.
type FileReport struct {
	Source   string
	Path     string
	Skipped  bool
	Tables   []transform.TableResult
	Duration time.Duration
}

// Stage2Report collects the outcome of a stage-2 run.
type Stage2Report struct {
	RunID     string
	OutputDir string
	Files     []FileReport
}

// Tables flattens the tables of every file.
func (r Stage2Report) Tables() []transform.TableResult {
	var out []transform.TableResult
	for _, f := range r.Files {
		out = append(out, f.Tables...)
	}
	return out
}

// Stage3Report collects the outcome of a stage-3 run.
type Stage3Report struct {
	RunID     string
	InputDir  string
	OutputDir string
	Tables    []transform.TableResult
	Duration  time.Duration
}

// Report is the combined outcome of Run.
type Report struct {
	Stage2 Stage2Report
	Stage3 Stage3Report
}

func tableCounts(tables []transform.TableResult) []ledger.TableCount {
	counts := make([]ledger.TableCount, 0, len(tables))
	for _, t := range tables {
		counts = append(counts, ledger.TableCount{Name: t.Name, Rows: t.Rows})
	}
	return counts
}
