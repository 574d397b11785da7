package pipeline

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"skillsetl/internal/config"
	"skillsetl/internal/etlerr"
	"skillsetl/internal/ledger"
	"skillsetl/internal/logging"
	"skillsetl/internal/preflight"
	"skillsetl/internal/reconcile"
	"skillsetl/internal/transform"
)

const (
	StageTransform = "stage2"
	StageReconcile = "stage3"
)

// Runner executes stages for one CLI invocation.
type Runner struct {
	cfg    *config.Config
	logger *slog.Logger
	ledger *ledger.Ledger
	runID  string
}

// New builds a runner with a fresh run ID. A nil ledger disables run history.
func New(cfg *config.Config, logger *slog.Logger, l *ledger.Ledger) *Runner {
	return &Runner{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "pipeline"),
		ledger: l,
		runID:  uuid.NewString(),
	}
}

// RunID identifies this runner in logs and the ledger.
func (r *Runner) RunID() string {
	return r.runID
}

func (r *Runner) stageContext(ctx context.Context, stage string) (context.Context, *slog.Logger) {
	ctx = logging.WithStage(logging.WithRunID(ctx, r.runID), stage)
	return ctx, logging.WithContext(ctx, r.logger)
}

// Stage2 transforms files into the configured intermediate directory.
// Every file is routed and checked before the first one is transformed.
func (r *Runner) Stage2(ctx context.Context, files []string) (Stage2Report, error) {
	outDir := r.cfg.Paths.IntermediateDir
	report := Stage2Report{RunID: r.runID, OutputDir: outDir}
	ctx, logger := r.stageContext(ctx, StageTransform)

	if len(files) == 0 {
		return report, etlerr.Configuration(StageTransform, "validate", "no input files")
	}
	checks := []preflight.Result{preflight.CheckDirectoryAccess("Intermediate directory", outDir)}
	for _, path := range files {
		if _, err := transform.Route(path); err != nil {
			return report, err
		}
		checks = append(checks, preflight.CheckFileReadable("Input file", path))
	}
	if err := preflight.Err(StageTransform, checks...); err != nil {
		return report, err
	}

	locks, err := acquire(StageTransform, outDir)
	if err != nil {
		return report, err
	}
	defer locks.release()

	for _, path := range files {
		file, err := r.transformFile(ctx, logger, path, outDir)
		report.Files = append(report.Files, file)
		if err != nil {
			return report, err
		}
	}
	logger.Info("stage 2 complete",
		logging.Int("files", len(report.Files)),
		logging.Int(logging.FieldRows, sumRows(report.Tables())),
	)
	return report, nil
}

func (r *Runner) transformFile(ctx context.Context, logger *slog.Logger, path, outDir string) (FileReport, error) {
	name := filepath.Base(path)
	file := FileReport{Source: name, Path: path}
	logger = logger.With(logging.String(logging.FieldFile, name))

	entry := r.begin(ctx, logger, StageTransform, name, outDir)
	start := time.Now()
	result, err := transform.Apply(ctx, path, outDir)
	file.Duration = time.Since(start)
	file.Skipped = result.Skipped
	file.Tables = result.Tables
	r.finish(ctx, logger, entry, err, result.Tables)
	if err != nil {
		logging.ErrorWithContext(logger, "transform failed", etlerr.Kind(err), logging.Error(err))
		return file, err
	}

	if file.Skipped {
		logger.Info("source recognized, not processed")
		return file, nil
	}
	for _, t := range result.Tables {
		logger.Info("table written",
			logging.String(logging.FieldTable, t.Name),
			logging.Int(logging.FieldRows, t.Rows),
		)
	}
	return file, nil
}

// Stage3 reconciles the stage-2 tables in inDir into outDir.
func (r *Runner) Stage3(ctx context.Context, inDir, outDir string) (Stage3Report, error) {
	report := Stage3Report{RunID: r.runID, InputDir: inDir, OutputDir: outDir}
	ctx, logger := r.stageContext(ctx, StageReconcile)

	checks := []preflight.Result{
		preflight.CheckDirectoryAccess("Stage-2 directory", inDir),
		preflight.CheckDirectoryAccess("Output directory", outDir),
	}
	if err := preflight.Err(StageReconcile, checks...); err != nil {
		return report, err
	}

	// The stage-2 directory is locked too so a concurrent stage 2 cannot
	// promote tables mid-read.
	locks, err := acquire(StageReconcile, inDir, outDir)
	if err != nil {
		return report, err
	}
	defer locks.release()

	entry := r.begin(ctx, logger, StageReconcile, inDir, outDir)
	start := time.Now()
	result, err := reconcile.Reconcile(ctx, inDir, outDir, reconcile.Options{
		AllowUnknownSkills: !r.cfg.Reconcile.StrictSkills,
		Logger:             logging.NewComponentLogger(logger, "reconcile"),
	})
	report.Duration = time.Since(start)
	report.Tables = result.Tables
	r.finish(ctx, logger, entry, err, result.Tables)
	if err != nil {
		logging.ErrorWithContext(logger, "reconcile failed", etlerr.Kind(err), logging.Error(err))
		return report, err
	}

	for _, t := range result.Tables {
		logger.Info("table written",
			logging.String(logging.FieldTable, t.Name),
			logging.Int(logging.FieldRows, t.Rows),
		)
	}
	logger.Info("stage 3 complete",
		logging.Int(logging.FieldRows, result.Rows()),
		logging.Duration("elapsed", report.Duration),
	)
	return report, nil
}

// Run transforms every file in the input directory, in name order, then
// reconciles into the output directory.
func (r *Runner) Run(ctx context.Context) (Report, error) {
	var report Report
	files, err := InputFiles(r.cfg.Paths.InputDir)
	if err != nil {
		return report, err
	}

	report.Stage2, err = r.Stage2(ctx, files)
	if err != nil {
		return report, err
	}
	report.Stage3, err = r.Stage3(ctx, r.cfg.Paths.IntermediateDir, r.cfg.Paths.OutputDir)
	return report, err
}

// InputFiles lists the regular, non-hidden files of dir sorted by name.
func InputFiles(dir string) ([]string, error) {
	if err := preflight.Err(StageTransform, preflight.CheckDirectoryReadable("Input directory", dir)); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, etlerr.Wrap(etlerr.ErrIO, StageTransform, "list", dir, err)
	}
	var files []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files, nil
}

func (r *Runner) begin(ctx context.Context, logger *slog.Logger, stage, source, target string) int64 {
	id, err := r.ledger.Begin(ctx, r.runID, stage, source, target)
	if err != nil {
		logger.Warn("ledger begin failed; run will not be recorded", logging.Error(err))
		return 0
	}
	return id
}

func (r *Runner) finish(ctx context.Context, logger *slog.Logger, id int64, runErr error, tables []transform.TableResult) {
	// Record the outcome even when ctx was cancelled mid-stage.
	if err := r.ledger.Finish(context.WithoutCancel(ctx), id, runErr, tableCounts(tables)); err != nil {
		logger.Warn("ledger finish failed", logging.Error(err))
	}
}

func sumRows(tables []transform.TableResult) int {
	total := 0
	for _, t := range tables {
		total += t.Rows
	}
	return total
}
