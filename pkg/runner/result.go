package runner

import (
	"errors"

	"github.com/yaklabco/gorslint/pkg/analyze"
)

// FileOutcome wraps PipelineResult with resolved path metadata.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Result contains the pipeline result for this file.
	// May be nil if the file encountered an error during processing.
	Result *analyze.PipelineResult

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files successfully processed.
	FilesProcessed int

	// FilesSkipped is the number of files skipped (concurrent modification
	// or an abandoned fix plan).
	FilesSkipped int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// ParseFailures is the number of files that failed to parse.
	// Any parse failure makes the whole run fail, regardless of the
	// other files' outcomes.
	ParseFailures int

	// IssuesTotal is the total number of issues across all files.
	IssuesTotal int

	// IssuesFixable is the number of issues that have auto-fixes.
	IssuesFixable int

	// IssuesByAnalyzer maps analyzer IDs to issue counts.
	IssuesByAnalyzer map[string]int

	// FilesWithIssues is the number of files with at least one issue.
	FilesWithIssues int

	// FilesModified is the number of files that were modified by fixes.
	FilesModified int

	// IssuesFixed is the total number of edits applied across all files.
	IssuesFixed int

	// Conflicts is the number of files whose fix plan was abandoned
	// because two fixes overlapped.
	Conflicts int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file.
	// Files are ordered deterministically (by path).
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats

	// Errors contains any non-file-specific errors encountered.
	Errors []error
}

// HasIssues reports whether any issues were found.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.IssuesTotal > 0
}

// HasParseFailures reports whether any file failed to parse.
func (r *Result) HasParseFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.ParseFailures > 0
}

// newStats creates a new Stats with initialized maps.
func newStats() Stats {
	return Stats{
		IssuesByAnalyzer: make(map[string]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		if errors.Is(outcome.Error, analyze.ErrParseFailure) {
			r.Stats.ParseFailures++
		}
		return
	}

	if outcome.Result == nil {
		return
	}

	r.Stats.FilesProcessed++

	if outcome.Result.Skipped {
		r.Stats.FilesSkipped++
	}
	if outcome.Result.Conflict != nil {
		r.Stats.Conflicts++
	}
	if outcome.Result.Written {
		r.Stats.FilesModified++
	}
	if outcome.Result.Modified && outcome.Result.Plan != nil {
		r.Stats.IssuesFixed += len(outcome.Result.Plan.Edits)
	}

	if outcome.Result.FileResult != nil {
		issueCount := len(outcome.Result.Issues)
		r.Stats.IssuesTotal += issueCount
		r.Stats.IssuesFixable += outcome.Result.FixableCount()

		if issueCount > 0 {
			r.Stats.FilesWithIssues++
		}

		for i := range outcome.Result.Issues {
			r.Stats.IssuesByAnalyzer[outcome.Result.Issues[i].AnalyzerID]++
		}
	}
}
