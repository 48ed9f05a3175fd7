package analyzers

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gorslint/pkg/analyze"
	"github.com/yaklabco/gorslint/pkg/rsyntax"
)

// InlineCommentsAnalyzer detects non-doc line comments inside function and
// method bodies.
//
// The rule is advisory only: turning a comment into structured
// documentation requires judgment no tool should guess at, so the fix is
// always absent. The suggestion points at the doc block `# Notes` section
// and quotes the code line the comment describes.
type InlineCommentsAnalyzer struct {
	analyze.BaseAnalyzer
}

// NewInlineCommentsAnalyzer creates a new inline_comments analyzer.
func NewInlineCommentsAnalyzer() *InlineCommentsAnalyzer {
	return &InlineCommentsAnalyzer{
		BaseAnalyzer: analyze.NewBaseAnalyzer(
			"inline_comments",
			"inline-comments",
			"Function bodies should not contain inline comments",
			false,
		),
	}
}

// Apply flags line comments inside function bodies.
func (a *InlineCommentsAnalyzer) Apply(ctx *analyze.Context) ([]analyze.Issue, error) {
	snap := ctx.File

	var issues []analyze.Issue
	for _, c := range snap.Comments {
		if err := ctx.Cancelled(); err != nil {
			return issues, fmt.Errorf("analyzer cancelled: %w", err)
		}

		if c.Doc || c.Block || strings.HasPrefix(c.Text, "///") {
			continue
		}
		if innermostFunction(snap, c.Range.StartOffset) == nil {
			continue
		}

		text := strings.TrimSpace(strings.TrimPrefix(c.Text, "//"))

		suggestion := "Move to doc block # Notes section:\n/// - " + text
		line, _ := snap.LineAt(c.Range.StartOffset)
		if code, ok := relatedCodeLine(snap, line); ok {
			suggestion += " - `" + code + "`"
		}

		issue := analyze.NewIssue(a.ID(), snap, c.Range,
			fmt.Sprintf("Inline comment found: %q", text)).
			WithSuggestion(suggestion).
			Build()
		issues = append(issues, issue)
	}

	return issues, nil
}

// relatedCodeLine finds the code line a comment describes: the next
// non-blank, non-comment line, unless the block ends first.
func relatedCodeLine(snap *rsyntax.FileSnapshot, commentLine int) (string, bool) {
	for line := commentLine + 1; line <= len(snap.Lines); line++ {
		text := strings.TrimSpace(snap.LineText(line))
		if text == "" || strings.HasPrefix(text, "//") {
			continue
		}
		if !strings.HasPrefix(text, "}") {
			return text, true
		}
	}
	return "", false
}
