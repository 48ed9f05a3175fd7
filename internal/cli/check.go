package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gorslint/internal/logging"
	"github.com/yaklabco/gorslint/pkg/analyze"
	"github.com/yaklabco/gorslint/pkg/config"
	"github.com/yaklabco/gorslint/pkg/report"
)

type checkFlags struct {
	noContext bool
}

func newCheckCommand() *cobra.Command {
	var cfg config.Config
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check Rust sources for code quality issues",
		Long:  checkLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, &cfg, flags)
		},
	}

	addCheckFlags(cmd, &cfg, flags)

	return cmd
}

const checkLongDescription = `Check Rust sources for code quality issues.

By default, checks all .rs files in the current directory and
subdirectories. Specify paths to check specific files or directories.

Examples:
  gorslint check                       # Check current directory
  gorslint check src/                  # Check src directory
  gorslint check src/main.rs           # Check single file
  gorslint check --only path_import    # Run one analyzer
  gorslint check --verbose             # Per-issue output with context`

func runCheck(cmd *cobra.Command, args []string, cfg *config.Config, flags *checkFlags) error {
	finalCfg, workDir, err := resolveConfig(cmd, cfg)
	if err != nil {
		return err
	}

	ctx := cmdContext(cmd)

	result, err := executeRun(ctx, finalCfg, args, workDir)
	if err != nil {
		return err
	}

	rep := report.New(report.Options{
		Writer:      cmd.OutOrStdout(),
		Color:       finalCfg.Color,
		Verbose:     finalCfg.Verbose,
		ShowContext: !flags.noContext,
		ShowSummary: true,
		Order:       analyze.DefaultRegistry.IDs(),
	})

	if _, err := rep.Report(ctx, result); err != nil {
		logging.Default().Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	switch ExitCodeFromResult(result) {
	case ExitParseError:
		return ErrParseFailures
	case ExitIssuesFound:
		return ErrIssuesFound
	default:
		return nil
	}
}

func addCheckFlags(cmd *cobra.Command, cfg *config.Config, flags *checkFlags) {
	cmd.Flags().StringSliceVar(&cfg.Only, "only", nil, "analyzer IDs to run (default: all)")
	cmd.Flags().StringSliceVar(&cfg.Ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "per-issue output instead of grouped")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in verbose output")
}
