package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/gorslint/internal/logging"
	"github.com/yaklabco/gorslint/internal/ui/review"
	"github.com/yaklabco/gorslint/pkg/analyze"
	"github.com/yaklabco/gorslint/pkg/config"
	"github.com/yaklabco/gorslint/pkg/diffview"
	"github.com/yaklabco/gorslint/pkg/fix"
	"github.com/yaklabco/gorslint/pkg/fsutil"
	"github.com/yaklabco/gorslint/pkg/rsyntax"
	"github.com/yaklabco/gorslint/pkg/runner"
)

type diffFlags struct {
	mode string
}

func newDiffCommand() *cobra.Command {
	var cfg config.Config
	flags := &diffFlags{}

	cmd := &cobra.Command{
		Use:   "diff [paths...]",
		Short: "Show fixes as diffs without applying them",
		Long:  diffLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd, args, &cfg, flags)
		},
	}

	cmd.Flags().StringVar(&flags.mode, "mode", string(config.DiffModeFull),
		"diff presentation: full, summary, interactive")
	cmd.Flags().StringSliceVar(&cfg.Only, "only", nil, "analyzer IDs to run (default: all)")
	cmd.Flags().StringSliceVar(&cfg.Ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")

	return cmd
}

const diffLongDescription = `Show the fixes gorslint would apply, as diffs.

Modes:
  full         Complete unified diff for every file (default)
  summary      Per-file change counts by analyzer
  interactive  Review each fix and choose which to apply

Interactive mode needs a terminal; without one, the summary view is shown
instead. Accepted fixes are written with the same safety pipeline as the
fix command.

Examples:
  gorslint diff                        # Full diffs for current directory
  gorslint diff --mode summary src/    # Change summary only
  gorslint diff --mode interactive     # Pick fixes one by one`

func runDiff(cmd *cobra.Command, args []string, cfg *config.Config, flags *diffFlags) error {
	mode := config.DiffMode(flags.mode)
	if !mode.IsValid() {
		return fmt.Errorf("invalid diff mode %q; must be one of: full, summary, interactive", flags.mode)
	}

	if mode == config.DiffModeInteractive && !isTerminalWriter(cmd.OutOrStdout()) {
		logging.Default().Warn("interactive mode needs a terminal; showing summary instead")
		mode = config.DiffModeSummary
	}

	cfg.Fix = true
	cfg.DryRun = true

	finalCfg, workDir, err := resolveConfig(cmd, cfg)
	if err != nil {
		return err
	}
	finalCfg.Fix = true
	finalCfg.DryRun = true

	ctx := cmdContext(cmd)

	result, err := executeRun(ctx, finalCfg, args, workDir)
	if err != nil {
		return err
	}

	switch mode {
	case config.DiffModeSummary:
		renderer := diffview.NewRenderer(cmd.OutOrStdout(), finalCfg.Color)
		if err := renderer.RenderSummary(result); err != nil {
			return fmt.Errorf("render summary: %w", err)
		}
	case config.DiffModeInteractive:
		if err := runInteractiveDiff(cmd, result, finalCfg); err != nil {
			return err
		}
	default:
		renderer := diffview.NewRenderer(cmd.OutOrStdout(), finalCfg.Color)
		if err := renderer.RenderFull(result); err != nil {
			return fmt.Errorf("render diffs: %w", err)
		}
	}

	if result.HasParseFailures() {
		return ErrParseFailures
	}

	return nil
}

// runInteractiveDiff walks fixable issues one at a time and applies the
// accepted ones with the same safety guarantees as the fix pipeline.
func runInteractiveDiff(cmd *cobra.Command, result *runner.Result, cfg *config.Config) error {
	var candidates []review.Candidate
	infoByPath := make(map[string]*fsutil.FileInfo)

	for _, file := range result.Files {
		if file.Result == nil || file.Result.FileResult == nil || file.Result.Snapshot == nil {
			continue
		}
		infoByPath[file.Path] = file.Result.OriginalInfo
		for _, issue := range file.Result.Issues {
			if !issue.HasFix() {
				continue
			}
			candidates = append(candidates, review.Candidate{
				Snapshot: file.Result.Snapshot,
				Issue:    issue,
			})
		}
	}

	if len(candidates) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No fixable issues found.")
		return nil
	}

	outcomes, err := review.Run(candidates)
	if err != nil {
		return err
	}

	return applyAcceptedFixes(cmdContext(cmd), cmd.OutOrStdout(), candidates, outcomes, infoByPath, cfg)
}

// applyAcceptedFixes writes the accepted review outcomes to disk, file by
// file: plan, race check against the pre-analysis file state, backup,
// atomic write. Files modified externally since analysis are skipped.
func applyAcceptedFixes(
	ctx context.Context,
	out io.Writer,
	candidates []review.Candidate,
	outcomes []review.Outcome,
	infoByPath map[string]*fsutil.FileInfo,
	cfg *config.Config,
) error {
	logger := logging.Default()

	byPath, order := review.Accepted(outcomes)
	if len(order) == 0 {
		fmt.Fprintln(out, "No fixes accepted.")
		return nil
	}

	backupCfg := analyze.BackupConfigFromConfig(cfg)

	applied := 0
	written := 0
	for _, path := range order {
		issues := byPath[path]

		// All accepted issues for one path share the snapshot.
		fileSnap := candidateSnapshot(candidates, path)
		if fileSnap == nil {
			continue
		}

		plan, err := analyze.BuildPlan(fileSnap, issues)
		if err != nil {
			logger.Error("plan accepted fixes", logging.FieldPath, path, logging.FieldError, err)
			continue
		}
		if !plan.HasEdits() {
			continue
		}

		// The snapshot is stale if the file changed during review.
		if info := infoByPath[path]; info != nil {
			changed, err := fsutil.CheckModified(ctx, info)
			if err != nil {
				return fmt.Errorf("check %s: %w", path, err)
			}
			if changed {
				logger.Warn("file changed since analysis; skipping", logging.FieldPath, path)
				continue
			}
		}

		modified := fix.ApplyEdits(fileSnap.Content, plan.Edits)

		if _, err := fsutil.CreateBackup(ctx, path, backupCfg); err != nil {
			return fmt.Errorf("create backup for %s: %w", path, err)
		}

		var mode os.FileMode
		if info := infoByPath[path]; info != nil {
			mode = info.Mode
		}
		if err := fsutil.WriteAtomic(ctx, path, modified, mode); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}

		applied += len(plan.Edits)
		written++
		fmt.Fprintf(out, "%s: applied %d edits\n", path, len(plan.Edits))
	}

	fmt.Fprintf(out, "Applied %d edits in %d files\n", applied, written)
	return nil
}

// candidateSnapshot finds the snapshot for a path among review candidates.
func candidateSnapshot(candidates []review.Candidate, path string) *rsyntax.FileSnapshot {
	for _, c := range candidates {
		if c.Snapshot.Path == path {
			return c.Snapshot
		}
	}
	return nil
}

// isTerminalWriter reports whether w is backed by a terminal.
func isTerminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
