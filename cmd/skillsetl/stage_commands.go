package main

import (
	"github.com/spf13/cobra"

	"skillsetl/internal/config"
	"skillsetl/internal/etlerr"
	"skillsetl/internal/pipeline"
)

func newStage2Command(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stage2 <input-file>...",
		Short: "Transform source exports into intermediate tables",
		Long: "Route each input file to its transformer and write the resulting tables\n" +
			"into paths.intermediate_dir. Every file is checked before any is processed.",
		Args: requireArgs(func(n int) bool { return n >= 1 }, "requires at least one input file"),
		RunE: func(cmd *cobra.Command, args []string) error {
			files := make([]string, 0, len(args))
			for _, arg := range args {
				path, err := config.ExpandPath(arg)
				if err != nil {
					return etlerr.Wrap(etlerr.ErrConfiguration, pipeline.StageTransform, "resolve", arg, err)
				}
				files = append(files, path)
			}
			return ctx.withRunner(cmd, func(r *pipeline.Runner) error {
				report, err := r.Stage2(cmd.Context(), files)
				if len(report.Files) > 0 {
					printStage2(cmd.OutOrStdout(), report)
				}
				return err
			})
		},
	}
}

func newStage3Command(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stage3 [<stage2-dir> <output-dir>]",
		Short: "Reconcile intermediate tables into load-ready tables",
		Long: "Join the stage-2 tables on occupation code and write the load-ready tables.\n" +
			"Without arguments, paths.intermediate_dir and paths.output_dir are used.",
		Args: requireArgs(func(n int) bool { return n == 0 || n == 2 }, "takes no arguments or exactly <stage2-dir> <output-dir>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			inDir, outDir := cfg.Paths.IntermediateDir, cfg.Paths.OutputDir
			if len(args) == 2 {
				if inDir, err = config.ExpandPath(args[0]); err != nil {
					return etlerr.Wrap(etlerr.ErrConfiguration, pipeline.StageReconcile, "resolve", args[0], err)
				}
				if outDir, err = config.ExpandPath(args[1]); err != nil {
					return etlerr.Wrap(etlerr.ErrConfiguration, pipeline.StageReconcile, "resolve", args[1], err)
				}
			}
			return ctx.withRunner(cmd, func(r *pipeline.Runner) error {
				report, err := r.Stage3(cmd.Context(), inDir, outDir)
				if err == nil {
					printStage3(cmd.OutOrStdout(), report)
				}
				return err
			})
		},
	}
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run stage 2 over paths.input_dir, then stage 3",
		Args:  requireArgs(func(n int) bool { return n == 0 }, "takes no arguments"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRunner(cmd, func(r *pipeline.Runner) error {
				report, err := r.Run(cmd.Context())
				out := cmd.OutOrStdout()
				if len(report.Stage2.Files) > 0 {
					printStage2(out, report.Stage2)
				}
				if len(report.Stage3.Tables) > 0 {
					printStage3(out, report.Stage3)
				}
				return err
			})
		},
	}
}

// requireArgs rejects invocation shapes outside ok as configuration errors.
func requireArgs(ok func(int) bool, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if ok(len(args)) {
			return nil
		}
		return etlerr.Configuration("cli", cmd.Name(), usage+"\nusage: "+cmd.UseLine())
	}
}
