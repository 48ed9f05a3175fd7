// Package report aggregates analysis results for presentation.
package report

import (
	"github.com/yaklabco/gorslint/pkg/runner"
)

// Report is the aggregated view of a run, grouped for compact display.
// Analyzer order follows the fixed registry order regardless of issue
// counts, so output is deterministic across runs.
type Report struct {
	// Analyzers holds one entry per analyzer, in registry order.
	// Analyzers with zero issues are included with a zero count.
	Analyzers []*AnalyzerReport

	// Failures lists files that could not be processed.
	Failures []FileFailure

	// Totals contains run-wide counts.
	Totals Totals
}

// AnalyzerReport groups one analyzer's issues by message.
type AnalyzerReport struct {
	// ID is the analyzer identifier.
	ID string

	// IssueCount is the total number of issues from this analyzer.
	IssueCount int

	// Groups holds per-message groupings in first-seen order across
	// the file set.
	Groups []*MessageGroup
}

// MessageGroup collects every occurrence of one exact message.
type MessageGroup struct {
	// Message is the shared message text.
	Message string

	// Count is the number of occurrences across all files.
	Count int

	// Files lists the affected files in result order (sorted by path).
	Files []*FileLines
}

// FileLines is the ordered set of distinct lines where a message occurred
// in one file.
type FileLines struct {
	Path  string
	Lines []int
}

// FileFailure records a file that produced an error instead of a result.
type FileFailure struct {
	Path string
	Err  error
}

// Totals contains run-wide counts.
type Totals struct {
	Files           int
	FilesWithIssues int
	Issues          int
	Fixable         int
	ParseFailures   int
}

// Aggregate folds a runner result into a Report.
//
// order fixes the analyzer listing order; it should be the registry order
// the run used. Issues from analyzers missing from order (possible only if
// the registry changed mid-run) are appended after the known ones.
func Aggregate(result *runner.Result, order []string) *Report {
	rep := &Report{}
	byID := make(map[string]*AnalyzerReport, len(order))
	for _, id := range order {
		ar := &AnalyzerReport{ID: id}
		byID[id] = ar
		rep.Analyzers = append(rep.Analyzers, ar)
	}

	groups := make(map[string]map[string]*MessageGroup)
	fileLines := make(map[*MessageGroup]map[string]*FileLines)

	if result == nil {
		return rep
	}

	for _, file := range result.Files {
		if file.Error != nil {
			rep.Failures = append(rep.Failures, FileFailure{Path: file.Path, Err: file.Error})
			continue
		}
		if file.Result == nil || file.Result.FileResult == nil {
			continue
		}

		issues := file.Result.Issues
		if len(issues) > 0 {
			rep.Totals.FilesWithIssues++
		}

		for i := range issues {
			issue := &issues[i]

			ar := byID[issue.AnalyzerID]
			if ar == nil {
				ar = &AnalyzerReport{ID: issue.AnalyzerID}
				byID[issue.AnalyzerID] = ar
				rep.Analyzers = append(rep.Analyzers, ar)
			}
			ar.IssueCount++
			rep.Totals.Issues++
			if issue.HasFix() {
				rep.Totals.Fixable++
			}

			byMessage := groups[issue.AnalyzerID]
			if byMessage == nil {
				byMessage = make(map[string]*MessageGroup)
				groups[issue.AnalyzerID] = byMessage
			}
			group := byMessage[issue.Message]
			if group == nil {
				group = &MessageGroup{Message: issue.Message}
				byMessage[issue.Message] = group
				ar.Groups = append(ar.Groups, group)
			}
			group.Count++

			byPath := fileLines[group]
			if byPath == nil {
				byPath = make(map[string]*FileLines)
				fileLines[group] = byPath
			}
			fl := byPath[file.Path]
			if fl == nil {
				fl = &FileLines{Path: file.Path}
				byPath[file.Path] = fl
				group.Files = append(group.Files, fl)
			}

			// Issues arrive in source order, so a distinct check against
			// the last recorded line suffices.
			line := issue.Span.StartLine
			if n := len(fl.Lines); n == 0 || fl.Lines[n-1] != line {
				fl.Lines = append(fl.Lines, line)
			}
		}
	}

	rep.Totals.Files = result.Stats.FilesProcessed
	rep.Totals.ParseFailures = result.Stats.ParseFailures

	return rep
}

// HasIssues returns true if any issues were aggregated.
func (r *Report) HasIssues() bool {
	return r != nil && r.Totals.Issues > 0
}
