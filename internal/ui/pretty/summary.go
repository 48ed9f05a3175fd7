package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gorslint/pkg/runner"
)

const (
	wordFile  = "file"
	wordFiles = "files"
)

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "12 issues in 3 files, 6 fixable".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.IssuesTotal == 0 {
		msg := s.Success.Render("No issues found") + s.Dim.Render(fmt.Sprintf(" (%d files checked)", stats.FilesProcessed))
		// Show fixes applied even when no issues remain
		if stats.IssuesFixed > 0 {
			fileWord := wordFiles
			if stats.FilesModified == 1 {
				fileWord = wordFile
			}
			msg += ", " + s.Success.Render(fmt.Sprintf("%d fixed in %d %s", stats.IssuesFixed, stats.FilesModified, fileWord))
		}
		return msg + "\n"
	}

	var parts []string

	issueWord := "issues"
	if stats.IssuesTotal == 1 {
		issueWord = "issue"
	}
	parts = append(parts, fmt.Sprintf("%d %s", stats.IssuesTotal, issueWord))

	fileWord := wordFiles
	if stats.FilesWithIssues == 1 {
		fileWord = wordFile
	}
	parts = append(parts, fmt.Sprintf("in %d %s", stats.FilesWithIssues, fileWord))

	if stats.IssuesFixable > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d fixable", stats.IssuesFixable)))
	}

	if stats.IssuesFixed > 0 {
		fixedFileWord := wordFiles
		if stats.FilesModified == 1 {
			fixedFileWord = wordFile
		}
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d fixed in %d %s", stats.IssuesFixed, stats.FilesModified, fixedFileWord)))
	}

	if stats.ParseFailures > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d parse failures", stats.ParseFailures)))
	}
	if stats.Conflicts > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d conflicting fix plans", stats.Conflicts)))
	}

	return strings.Join(parts, ", ") + "\n"
}
