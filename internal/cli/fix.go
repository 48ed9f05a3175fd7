package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gorslint/internal/logging"
	"github.com/yaklabco/gorslint/pkg/analyze"
	"github.com/yaklabco/gorslint/pkg/config"
	"github.com/yaklabco/gorslint/pkg/diffview"
	"github.com/yaklabco/gorslint/pkg/report"
)

func newFixCommand() *cobra.Command {
	var cfg config.Config

	cmd := &cobra.Command{
		Use:   "fix [paths...]",
		Short: "Fix code quality issues automatically",
		Long:  fixLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, args, &cfg)
		},
	}

	addFixFlags(cmd, &cfg)

	return cmd
}

const fixLongDescription = `Fix code quality issues in Rust sources automatically.

Fixes are applied in a safety pipeline: the edit plan is built per file,
conflicting fixes abandon the whole plan for that file, concurrent external
modifications are detected before writing, and writes are atomic. Fixes are
stable: re-running fix on fixed files produces no further changes.

Examples:
  gorslint fix                     # Fix current directory
  gorslint fix src/                # Fix src directory
  gorslint fix --dry-run           # Show diffs without writing
  gorslint fix --backups           # Keep .gorslint.bak sidecar backups`

func runFix(cmd *cobra.Command, args []string, cfg *config.Config) error {
	cfg.Fix = true

	// --backups wins over --no-backups when both are given.
	if cmd.Flags().Changed("backups") {
		enabled, _ := cmd.Flags().GetBool("backups")
		cfg.Backups.Enabled = enabled
		cfg.NoBackups = !enabled
	}

	finalCfg, workDir, err := resolveConfig(cmd, cfg)
	if err != nil {
		return err
	}
	finalCfg.Fix = true

	ctx := cmdContext(cmd)

	result, err := executeRun(ctx, finalCfg, args, workDir)
	if err != nil {
		return err
	}

	// Dry-run shows the diffs that would be applied.
	if finalCfg.DryRun {
		renderer := diffview.NewRenderer(cmd.OutOrStdout(), finalCfg.Color)
		if err := renderer.RenderFull(result); err != nil {
			return fmt.Errorf("render diffs: %w", err)
		}
	}

	rep := report.New(report.Options{
		Writer:      cmd.OutOrStdout(),
		Color:       finalCfg.Color,
		Verbose:     finalCfg.Verbose,
		ShowContext: false,
		ShowSummary: true,
		Order:       analyze.DefaultRegistry.IDs(),
	})

	if _, err := rep.Report(ctx, result); err != nil {
		logging.Default().Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	if result.HasParseFailures() {
		return ErrParseFailures
	}

	return nil
}

func addFixFlags(cmd *cobra.Command, cfg *config.Config) {
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "show fixes without applying them")
	cmd.Flags().Bool("backups", false, "create .gorslint.bak backups before writing")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation")
	cmd.Flags().StringSliceVar(&cfg.Only, "only", nil, "analyzer IDs to run (default: all)")
	cmd.Flags().StringSliceVar(&cfg.Ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "per-issue output instead of grouped")
}
