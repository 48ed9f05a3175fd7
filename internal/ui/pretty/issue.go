package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gorslint/pkg/analyze"
)

// FormatIssue formats a single issue for terminal output.
func (s *Styles) FormatIssue(issue *analyze.Issue, path string, showContext bool, sourceLine string) string {
	var builder strings.Builder

	// Location: path:line:col
	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(path),
		issue.Span.StartLine,
		issue.Span.StartCol,
	)

	analyzerDisplay := s.AnalyzerID.Render("(" + issue.AnalyzerID + ")")

	// Main line: location  message  (analyzer-id)
	builder.WriteString(fmt.Sprintf("  %s  %s  %s\n",
		location,
		s.Message.Render(issue.Message),
		analyzerDisplay,
	))

	if showContext && sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, issue.Span.StartCol))
	}

	if issue.Suggestion != "" {
		builder.WriteString("    " + s.Dim.Render("Suggestion:") + " " +
			s.Suggestion.Render(indentContinuations(issue.Suggestion)) + "\n")
	}

	return builder.String()
}

// FormatSourceContext formats the source line with a caret marker.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	// Indent to align with issue output
	const indent = "        "

	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	padding := indent + strings.Repeat(" ", column)
	builder.WriteString(padding + s.Caret.Render("^") + "\n")

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	if issueCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}

// FormatFixPreview renders the replacement text a fix would produce.
func (s *Styles) FormatFixPreview(fix analyze.Fix) string {
	switch fix.Kind {
	case analyze.FixSimple:
		if fix.Replacement == "" {
			return s.Dim.Render("fix: delete")
		}
		return s.Dim.Render("fix: ") + s.DiffAdd.Render(firstLine(fix.Replacement))
	case analyze.FixWithImport:
		return s.Dim.Render("fix: ") + s.DiffAdd.Render(fix.ImportLine()) +
			s.Dim.Render(" + ") + s.DiffAdd.Render(fix.Expand())
	default:
		return ""
	}
}

// indentContinuations indents the continuation lines of a multi-line string
// so they align under the first line.
func indentContinuations(text string) string {
	return strings.ReplaceAll(text, "\n", "\n      ")
}

func firstLine(text string) string {
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		return text[:idx]
	}
	return text
}
