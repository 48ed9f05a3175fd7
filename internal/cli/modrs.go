package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gorslint/pkg/modrs"
)

func newModRsCommand() *cobra.Command {
	var applyFix bool

	cmd := &cobra.Command{
		Use:   "modrs [path]",
		Short: "Find mod.rs files and convert them to modern module naming",
		Long: `Find mod.rs files and convert them to the modern module naming
convention, where the module file is named after its parent directory:
src/analyzers/mod.rs becomes src/analyzers.rs.

Without --fix the files are listed with their suggested replacements.
With --fix each file is moved atomically and its directory is removed
when nothing else is left in it.

Examples:
  gorslint modrs              # List mod.rs files under the current directory
  gorslint modrs src/         # List mod.rs files under src/
  gorslint modrs --fix        # Rename them`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			return runModRs(cmd, root, applyFix)
		},
	}

	cmd.Flags().BoolVar(&applyFix, "fix", false, "rename the files instead of listing them")

	return cmd
}

func runModRs(cmd *cobra.Command, root string, applyFix bool) error {
	ctx := cmdContext(cmd)
	out := cmd.OutOrStdout()

	issues, err := modrs.Find(ctx, root)
	if err != nil {
		return fmt.Errorf("find mod.rs files: %w", err)
	}

	if len(issues) == 0 {
		fmt.Fprintln(out, "No mod.rs files found")
		return nil
	}

	if applyFix {
		fixed := 0
		for _, issue := range issues {
			if err := modrs.Fix(ctx, issue); err != nil {
				return fmt.Errorf("fix %s: %w", issue.Path, err)
			}
			fixed++
		}
		fmt.Fprintf(out, "Fixed %d mod.rs %s\n", fixed, fileWord(fixed))
		return nil
	}

	fmt.Fprintf(out, "Found %d mod.rs %s:\n", len(issues), fileWord(len(issues)))
	for _, issue := range issues {
		fmt.Fprintf(out, "  %s -> %s\n", issue.Path, issue.Suggested)
	}
	fmt.Fprintln(out, "\nRun with --fix to apply changes")

	return nil
}

func fileWord(n int) string {
	if n == 1 {
		return "file"
	}
	return "files"
}
