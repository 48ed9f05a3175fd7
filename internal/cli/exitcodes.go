package cli

import (
	"errors"

	"github.com/yaklabco/gorslint/pkg/runner"
)

// ErrIssuesFound is returned when analysis finds issues.
var ErrIssuesFound = errors.New("issues found")

// ErrParseFailures is returned when one or more files could not be parsed.
var ErrParseFailures = errors.New("parse failures")

// Exit codes for gorslint.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitIssuesFound indicates analysis completed but found issues.
	ExitIssuesFound = 1

	// ExitParseError indicates one or more files failed to parse.
	ExitParseError = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeFromResult determines the exit code from a run result.
// Parse failures take precedence over issues: a file that cannot be parsed
// may hide any number of issues.
func ExitCodeFromResult(result *runner.Result) int {
	if result == nil {
		return ExitSuccess
	}

	if result.HasParseFailures() {
		return ExitParseError
	}

	if result.HasIssues() {
		return ExitIssuesFound
	}

	return ExitSuccess
}

// ExitCodeForError maps a sentinel error to its exit code.
func ExitCodeForError(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrIssuesFound):
		return ExitIssuesFound
	case errors.Is(err, ErrParseFailures):
		return ExitParseError
	default:
		return ExitInternalError
	}
}
