package reconcile

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"skillsetl/internal/etlerr"
	"skillsetl/internal/extract"
	"skillsetl/internal/keygen"
	"skillsetl/internal/logging"
	"skillsetl/internal/transform"
	"skillsetl/internal/tsv"
)

// Options tunes a reconciliation run.
type Options struct {
	// AllowUnknownSkills downgrades a counted skill that is absent from the
	// skills master from a data-integrity error to a warning.
	AllowUnknownSkills bool
	Logger             *slog.Logger
}

// Result lists the tables written by Reconcile.
type Result struct {
	Tables []transform.TableResult
}

// Rows returns the total data rows across every table.
func (r Result) Rows() int {
	total := 0
	for _, t := range r.Tables {
		total += t.Rows
	}
	return total
}

// Reconcile reads the stage-2 tables in inDir and writes the load-ready
// tables into outDir. Nothing is written unless every table succeeds.
func Reconcile(ctx context.Context, inDir, outDir string, opts Options) (Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	if err := distinctDirs(inDir, outDir); err != nil {
		return Result{}, err
	}

	l, err := loadLookups(ctx, inDir, !opts.AllowUnknownSkills, logger)
	if err != nil {
		return Result{}, err
	}
	logger.Debug("lookups loaded",
		logging.Int("jobs", len(l.jobs)),
		logging.Int("skills", len(l.skills)),
		logging.Int("counted_skills", len(l.totals)),
	)

	set := tsv.NewSet(outDir)
	defer set.Abort()

	steps := []struct {
		table tsv.Table
		fn    func(context.Context, string, *lookups, *tsv.Writer) error
	}{
		{jobsMasterOut, writeJobsMaster},
		{jobsTitlesOut, writeJobsTitles},
		{skillCountsOut, writeSkillCounts},
		{jobsSkillsOut, writeJobsSkills},
		{unusualTitlesOut, writeUnusualTitles},
		{importanceOut, writeImportance},
		{skillsMasterOut, writeSkillsMaster},
	}
	for _, step := range steps {
		w, err := set.Create(step.table)
		if err != nil {
			return Result{}, err
		}
		if err := step.fn(ctx, inDir, l, w); err != nil {
			return Result{}, err
		}
		logger.Debug("table reconciled",
			logging.String(logging.FieldTable, step.table.Name),
			logging.Int(logging.FieldRows, w.Rows()),
		)
	}
	if err := set.Commit(); err != nil {
		return Result{}, err
	}

	var result Result
	for _, w := range set.Writers() {
		result.Tables = append(result.Tables, transform.TableResult{Name: w.Table().Name, Path: w.Path(), Rows: w.Rows()})
	}
	return result, nil
}

func distinctDirs(inDir, outDir string) error {
	in, err := filepath.Abs(inDir)
	if err != nil {
		return etlerr.Wrap(etlerr.ErrConfiguration, "stage3", "resolve", inDir, err)
	}
	out, err := filepath.Abs(outDir)
	if err != nil {
		return etlerr.Wrap(etlerr.ErrConfiguration, "stage3", "resolve", outDir, err)
	}
	if in == out {
		return etlerr.Configuration("stage3", "validate", "output directory must differ from stage-2 directory "+in)
	}
	if inInfo, err := os.Stat(in); err == nil {
		if outInfo, err := os.Stat(out); err == nil && os.SameFile(inInfo, outInfo) {
			return etlerr.Configuration("stage3", "validate", "output directory must differ from stage-2 directory "+in)
		}
	}
	return nil
}

func writeJobsMaster(ctx context.Context, dir string, _ *lookups, w *tsv.Writer) error {
	return scan(ctx, intermediate(dir, transform.JobsMaster), 4, func(rec extract.Record) error {
		return w.Write(rec.Field(3), rec.Field(0), rec.Field(1), rec.Field(2))
	})
}

func writeJobsTitles(ctx context.Context, dir string, _ *lookups, w *tsv.Writer) error {
	return scan(ctx, intermediate(dir, transform.JobsTitles), 4, func(rec extract.Record) error {
		return w.Write(rec.Field(2), rec.Field(0), rec.Field(1), rec.Field(3))
	})
}

func writeSkillCounts(ctx context.Context, dir string, l *lookups, w *tsv.Writer) error {
	return scan(ctx, intermediate(dir, transform.JobsSkillsCount), 4, func(rec extract.Record) error {
		job, err := l.job(rec, rec.Field(0))
		if err != nil {
			return err
		}
		return w.Write(job, l.skillKey(rec.Field(2), rec.Field(1)), rec.Field(3))
	})
}

func writeJobsSkills(ctx context.Context, dir string, l *lookups, w *tsv.Writer) error {
	return scan(ctx, intermediate(dir, transform.JobsSkills), 2, func(rec extract.Record) error {
		job, err := l.job(rec, rec.Field(1))
		if err != nil {
			return err
		}
		return w.Write(rec.Field(0), job)
	})
}

func writeUnusualTitles(ctx context.Context, dir string, l *lookups, w *tsv.Writer) error {
	return scan(ctx, intermediate(dir, transform.JobsUnusualTitles), 3, func(rec extract.Record) error {
		job, err := l.job(rec, rec.Field(0))
		if err != nil {
			return err
		}
		title := rec.Field(1)
		return w.Write(keygen.Key(title), title, rec.Field(2), job)
	})
}

func writeImportance(ctx context.Context, dir string, l *lookups, w *tsv.Writer) error {
	return scan(ctx, intermediate(dir, transform.SkillsImportance), 12, func(rec extract.Record) error {
		job, err := l.job(rec, rec.Field(0))
		if err != nil {
			return err
		}
		row := make([]string, 0, 12)
		row = append(row, job)
		row = append(row, rec.Fields[1:12]...)
		return w.Write(row...)
	})
}

func writeSkillsMaster(ctx context.Context, dir string, l *lookups, w *tsv.Writer) error {
	return scan(ctx, intermediate(dir, transform.SkillsMaster), 3, func(rec extract.Record) error {
		key := rec.Field(0)
		return w.Write(key, rec.Field(1), rec.Field(2), l.total(key))
	})
}
