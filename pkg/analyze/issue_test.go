package analyze_test

import (
	"context"
	"errors"
	"testing"

	"github.com/yaklabco/gorslint/pkg/analyze"
	"github.com/yaklabco/gorslint/pkg/rsyntax"
)

func parseSource(t *testing.T, content string) *rsyntax.FileSnapshot {
	t.Helper()

	snap, err := rsyntax.Parse(context.Background(), "test.rs", []byte(content))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return snap
}

func TestFixKinds(t *testing.T) {
	t.Parallel()

	if got := analyze.NoFix(); got.Kind != analyze.FixNone {
		t.Errorf("NoFix kind = %v", got.Kind)
	}

	simple := analyze.SimpleFix("replacement")
	if simple.Kind != analyze.FixSimple || simple.Replacement != "replacement" {
		t.Errorf("SimpleFix = %+v", simple)
	}
}

func TestWithImportFix(t *testing.T) {
	t.Parallel()

	fx, err := analyze.WithImportFix("std::fs::read_to_string", "read_to_string({0})", []string{`"a.txt"`})
	if err != nil {
		t.Fatalf("WithImportFix() error = %v", err)
	}

	if fx.Kind != analyze.FixWithImport {
		t.Errorf("kind = %v", fx.Kind)
	}
	if got := fx.Expand(); got != `read_to_string("a.txt")` {
		t.Errorf("Expand() = %q", got)
	}
	if got := fx.ImportLine(); got != "use std::fs::read_to_string;" {
		t.Errorf("ImportLine() = %q", got)
	}
}

func TestWithImportFix_NoArgs(t *testing.T) {
	t.Parallel()

	fx, err := analyze.WithImportFix("std::mem::drop", "drop", nil)
	if err != nil {
		t.Fatalf("WithImportFix() error = %v", err)
	}
	if got := fx.Expand(); got != "drop" {
		t.Errorf("Expand() = %q", got)
	}
}

func TestWithImportFix_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
		args     []string
	}{
		{
			name:     "slot count below args",
			template: "f({0})",
			args:     []string{"a", "b"},
		},
		{
			name:     "slot count above args",
			template: "f({0}, {1})",
			args:     []string{"a"},
		},
		{
			name:     "duplicate slot",
			template: "f({0}, {0})",
			args:     []string{"a", "b"},
		},
		{
			name:     "slot index out of range",
			template: "f({5})",
			args:     []string{"a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := analyze.WithImportFix("p", tt.template, tt.args)
			if !errors.Is(err, analyze.ErrMalformedFix) {
				t.Errorf("error = %v, want ErrMalformedFix", err)
			}
		})
	}
}

func TestIssueBuilder(t *testing.T) {
	t.Parallel()

	snap := parseSource(t, "fn main() {\n    let a = 1;\n}\n")
	r := snap.LineRange(2)

	issue := analyze.NewIssue("empty_lines", snap, r, "a message").
		WithSuggestion("a suggestion").
		WithFix(analyze.SimpleFix("")).
		Build()

	if issue.AnalyzerID != "empty_lines" {
		t.Errorf("analyzer = %q", issue.AnalyzerID)
	}
	if issue.Span.StartLine != 2 {
		t.Errorf("span start line = %d, want 2", issue.Span.StartLine)
	}
	if issue.Range != r {
		t.Errorf("range = %+v, want %+v", issue.Range, r)
	}
	if issue.Suggestion != "a suggestion" {
		t.Errorf("suggestion = %q", issue.Suggestion)
	}
	if !issue.HasFix() {
		t.Error("issue should carry a fix")
	}

	plain := analyze.NewIssue("inline_comments", snap, r, "no fix").Build()
	if plain.HasFix() {
		t.Error("issue without fix reports HasFix")
	}
}
