// Package main is the entry point for the gorslint CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/gorslint/internal/cli"
	"github.com/yaklabco/gorslint/internal/logging"

	// Import analyzers package to register built-in analyzers via init().
	_ "github.com/yaklabco/gorslint/pkg/analyze/analyzers"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		// Issue and parse-failure sentinels are exit-code signals, not errors.
		switch {
		case errors.Is(err, cli.ErrIssuesFound), errors.Is(err, cli.ErrParseFailures):
		default:
			logger := logging.Default()
			logger.Error("command failed", logging.FieldError, err)
		}
		return cli.ExitCodeForError(err)
	}

	return 0
}
