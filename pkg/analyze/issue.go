// Package analyze provides the analyzer engine, issue model, and registry
// for gorslint.
package analyze

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/yaklabco/gorslint/pkg/rsyntax"
)

// ErrMalformedFix indicates an analyzer constructed a WithImport fix whose
// template slot count does not match its preserved arguments. This is a
// defect in the analyzer itself, never a recoverable runtime condition.
var ErrMalformedFix = errors.New("malformed fix: template slots do not match preserved args")

// FixKind discriminates the Fix variants.
type FixKind int

const (
	// FixNone means no automatic rewrite exists; the issue is informational.
	FixNone FixKind = iota

	// FixSimple replaces the issue's span with Replacement verbatim.
	FixSimple

	// FixWithImport replaces the span with a call built from CallTemplate
	// and inserts an import declaration at the file's import block.
	FixWithImport
)

// templateSlot matches the numbered placeholders in a WithImport call
// template. The template language is deliberately closed: numbered slots,
// no nesting, no escapes, so substitution is total once validated.
var templateSlot = regexp.MustCompile(`\{(\d+)\}`)

// Fix describes how to rewrite an issue's span, if at all.
type Fix struct {
	Kind FixKind

	// Replacement is the text for FixSimple.
	Replacement string

	// ImportPath is the path to import for FixWithImport.
	ImportPath string

	// CallTemplate is the call expression template for FixWithImport,
	// with one numbered slot ({0}, {1}, ...) per preserved argument.
	CallTemplate string

	// PreservedArgs are substituted into CallTemplate in order.
	PreservedArgs []string
}

// NoFix returns the absent fix.
func NoFix() Fix {
	return Fix{Kind: FixNone}
}

// SimpleFix returns a fix that replaces the span with replacement.
func SimpleFix(replacement string) Fix {
	return Fix{Kind: FixSimple, Replacement: replacement}
}

// WithImportFix returns a fix that rewrites a call site and adds an import.
// The slots in template must be exactly {0} through {len(args)-1}, each
// appearing once; a mismatch is a construction-time contract failure
// reported as ErrMalformedFix.
func WithImportFix(importPath, template string, args []string) (Fix, error) {
	matches := templateSlot.FindAllStringSubmatch(template, -1)
	if len(matches) != len(args) {
		return Fix{}, fmt.Errorf("%w: template %q has %d slots for %d args",
			ErrMalformedFix, template, len(matches), len(args))
	}
	seen := make(map[int]bool, len(matches))
	for _, m := range matches {
		idx, err := strconv.Atoi(m[1])
		if err != nil || idx >= len(args) || seen[idx] {
			return Fix{}, fmt.Errorf("%w: template %q slot %s out of range",
				ErrMalformedFix, template, m[0])
		}
		seen[idx] = true
	}
	return Fix{
		Kind:          FixWithImport,
		ImportPath:    importPath,
		CallTemplate:  template,
		PreservedArgs: args,
	}, nil
}

// Expand substitutes the preserved arguments into the call template.
// Given the construction invariant, expansion is total.
func (f Fix) Expand() string {
	return templateSlot.ReplaceAllStringFunc(f.CallTemplate, func(m string) string {
		idx, _ := strconv.Atoi(m[1 : len(m)-1])
		return f.PreservedArgs[idx]
	})
}

// ImportLine returns the import declaration for a FixWithImport.
func (f Fix) ImportLine() string {
	return "use " + f.ImportPath + ";"
}

// Issue is a single located finding produced by an analyzer.
// Issues are immutable after creation.
type Issue struct {
	// AnalyzerID is the identifier of the analyzer that produced the issue.
	AnalyzerID string

	// Message is the human-readable description of the issue.
	Message string

	// Span is the line/column range of the issue.
	Span rsyntax.Span

	// Range is the byte range the fix targets.
	Range rsyntax.ByteRange

	// Suggestion is an optional human-readable hint.
	Suggestion string

	// Fix describes how to rewrite the span, if at all.
	Fix Fix
}

// HasFix returns true if this issue carries an automatic rewrite.
func (i *Issue) HasFix() bool {
	return i.Fix.Kind != FixNone
}

// IssueBuilder helps construct Issue values.
type IssueBuilder struct {
	issue Issue
}

// NewIssue starts building an issue for the given byte range.
// The span is derived from the snapshot.
func NewIssue(analyzerID string, snap *rsyntax.FileSnapshot, r rsyntax.ByteRange, message string) *IssueBuilder {
	return &IssueBuilder{
		issue: Issue{
			AnalyzerID: analyzerID,
			Message:    message,
			Span:       snap.SpanOf(r),
			Range:      r,
			Fix:        NoFix(),
		},
	}
}

// WithSuggestion sets a human-readable hint.
func (b *IssueBuilder) WithSuggestion(s string) *IssueBuilder {
	b.issue.Suggestion = s
	return b
}

// WithFix attaches a fix.
func (b *IssueBuilder) WithFix(f Fix) *IssueBuilder {
	b.issue.Fix = f
	return b
}

// Build returns the constructed Issue.
func (b *IssueBuilder) Build() Issue {
	return b.issue
}
