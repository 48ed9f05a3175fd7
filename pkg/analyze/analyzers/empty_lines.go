package analyzers

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gorslint/pkg/analyze"
)

// EmptyLinesAnalyzer detects blank lines inside function and method bodies.
//
// A blank line inside a body usually marks a seam where the function does
// more than one thing. Blank lines between top-level items, right after an
// opening brace, or right before a closing brace are left alone.
type EmptyLinesAnalyzer struct {
	analyze.BaseAnalyzer
}

// NewEmptyLinesAnalyzer creates a new empty_lines analyzer.
func NewEmptyLinesAnalyzer() *EmptyLinesAnalyzer {
	return &EmptyLinesAnalyzer{
		BaseAnalyzer: analyze.NewBaseAnalyzer(
			"empty_lines",
			"empty-lines",
			"Function bodies should not contain blank lines",
			true,
		),
	}
}

// Apply flags blank lines strictly inside function bodies.
// The fix deletes the whole line.
func (a *EmptyLinesAnalyzer) Apply(ctx *analyze.Context) ([]analyze.Issue, error) {
	snap := ctx.File

	var issues []analyze.Issue
	for lineNum := 1; lineNum <= len(snap.Lines); lineNum++ {
		if err := ctx.Cancelled(); err != nil {
			return issues, fmt.Errorf("analyzer cancelled: %w", err)
		}

		if !snap.IsBlankLine(lineNum) {
			continue
		}

		offset := snap.Lines[lineNum-1].StartOffset
		if snap.DepthAt(offset) == 0 {
			continue
		}

		fn := innermostFunction(snap, offset)
		if fn == nil {
			continue
		}
		if lineNum <= fn.BodyStartLine || lineNum >= fn.BodyEndLine {
			continue
		}
		if afterOpeningBrace(snap.LineText(lineNum-1)) || beforeClosingBrace(snap.LineText(lineNum+1)) {
			continue
		}

		issue := analyze.NewIssue(a.ID(), snap, snap.LineRange(lineNum),
			"Empty line in function body indicates untamed complexity").
			WithSuggestion(fmt.Sprintf("Remove the blank line in fn %s or split it into smaller functions", fn.Name)).
			WithFix(analyze.SimpleFix("")).
			Build()
		issues = append(issues, issue)
	}

	return issues, nil
}

// afterOpeningBrace reports whether the previous line opens a block.
// A blank line directly under an opening brace is stylistic, not a seam.
func afterOpeningBrace(prevLine string) bool {
	return strings.HasSuffix(strings.TrimSpace(prevLine), "{")
}

// beforeClosingBrace reports whether the next line closes a block.
func beforeClosingBrace(nextLine string) bool {
	return strings.HasPrefix(strings.TrimSpace(nextLine), "}")
}
