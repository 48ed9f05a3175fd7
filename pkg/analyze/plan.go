package analyze

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yaklabco/gorslint/pkg/fix"
	"github.com/yaklabco/gorslint/pkg/rsyntax"
)

// ConflictError reports two issues whose rewrites overlap.
// A plan with a conflict is abandoned whole; no subset is applied.
type ConflictError struct {
	First  Issue
	Second Issue
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflicting fixes: %s %q at %d:%d and %s %q at %d:%d",
		e.First.AnalyzerID, e.First.Message, e.First.Span.StartLine, e.First.Span.StartCol,
		e.Second.AnalyzerID, e.Second.Message, e.Second.Span.StartLine, e.Second.Span.StartCol)
}

// EditPlan is the complete set of edits derived from one file's fixable
// issues, including any import insertions.
type EditPlan struct {
	// Edits are sorted, non-overlapping edits ready for fix.ApplyEdits.
	Edits []fix.TextEdit

	// Imports are the import paths the plan inserts, in first-need order.
	// Paths already imported by the file are not listed.
	Imports []string
}

// HasEdits returns true if the plan changes the file.
func (p *EditPlan) HasEdits() bool {
	return p != nil && len(p.Edits) > 0
}

// plannedEdit pairs an edit with the issue that produced it, so conflicts
// can be reported in terms of issues rather than byte offsets.
type plannedEdit struct {
	edit  fix.TextEdit
	issue Issue
}

// BuildPlan converts the fixable issues of one file into an edit plan.
//
// Each FixWithImport contributes a call-site rewrite plus one import line;
// import lines are deduplicated across issues and against the file's
// existing use declarations, and inserted as a single edit before the first
// top-level use declaration (or at the top of the file if there is none).
//
// Overlapping rewrites abort planning with a *ConflictError naming both
// issues: a plan is applied in full or not at all.
func BuildPlan(snap *rsyntax.FileSnapshot, issues []Issue) (*EditPlan, error) {
	var planned []plannedEdit
	var imports []string
	importIssue := make(map[string]Issue)

	for _, issue := range issues {
		switch issue.Fix.Kind {
		case FixSimple:
			planned = append(planned, plannedEdit{
				edit: fix.TextEdit{
					StartOffset: issue.Range.StartOffset,
					EndOffset:   issue.Range.EndOffset,
					NewText:     issue.Fix.Replacement,
				},
				issue: issue,
			})

		case FixWithImport:
			planned = append(planned, plannedEdit{
				edit: fix.TextEdit{
					StartOffset: issue.Range.StartOffset,
					EndOffset:   issue.Range.EndOffset,
					NewText:     issue.Fix.Expand(),
				},
				issue: issue,
			})
			path := issue.Fix.ImportPath
			if _, seen := importIssue[path]; !seen && !hasImport(snap, path) {
				importIssue[path] = issue
				imports = append(imports, path)
			}
		}
	}

	if len(planned) == 0 {
		return &EditPlan{}, nil
	}

	if len(imports) > 0 {
		var b strings.Builder
		for _, path := range imports {
			b.WriteString("use ")
			b.WriteString(path)
			b.WriteString(";\n")
		}
		offset := importInsertOffset(snap)
		planned = append(planned, plannedEdit{
			edit: fix.TextEdit{
				StartOffset: offset,
				EndOffset:   offset,
				NewText:     b.String(),
			},
			issue: importIssue[imports[0]],
		})
	}

	sort.SliceStable(planned, func(i, j int) bool {
		if planned[i].edit.StartOffset != planned[j].edit.StartOffset {
			return planned[i].edit.StartOffset < planned[j].edit.StartOffset
		}
		return planned[i].edit.EndOffset < planned[j].edit.EndOffset
	})

	edits := make([]fix.TextEdit, len(planned))
	for i, p := range planned {
		edits[i] = p.edit
	}
	if err := fix.ValidateEdits(edits, len(snap.Content)); err != nil {
		return nil, err
	}
	for i := 1; i < len(planned); i++ {
		if planned[i].edit.StartOffset < planned[i-1].edit.EndOffset {
			return nil, &ConflictError{First: planned[i-1].issue, Second: planned[i].issue}
		}
	}

	return &EditPlan{Edits: edits, Imports: imports}, nil
}

// hasImport reports whether the file already has a use declaration for path.
func hasImport(snap *rsyntax.FileSnapshot, path string) bool {
	for i := 1; i <= len(snap.Lines); i++ {
		text := strings.TrimSpace(snap.LineText(i))
		rest, ok := strings.CutPrefix(text, "use ")
		if !ok {
			rest, ok = strings.CutPrefix(text, "pub use ")
		}
		if !ok {
			continue
		}
		rest = strings.TrimSuffix(strings.TrimSpace(rest), ";")
		if strings.TrimSpace(rest) == path {
			return true
		}
	}
	return false
}

// importInsertOffset returns the byte offset where new use declarations go:
// the start of the first top-level use declaration, or the top of the file.
// New declarations are never merged into an existing use line.
func importInsertOffset(snap *rsyntax.FileSnapshot) int {
	for i := 1; i <= len(snap.Lines); i++ {
		ln := snap.Lines[i-1]
		if snap.DepthAt(ln.StartOffset) != 0 {
			continue
		}
		text := strings.TrimSpace(snap.LineText(i))
		if strings.HasPrefix(text, "use ") || strings.HasPrefix(text, "pub use ") {
			return ln.StartOffset
		}
	}
	return 0
}
