package analyze_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/yaklabco/gorslint/pkg/analyze"
	"github.com/yaklabco/gorslint/pkg/fix"
	"github.com/yaklabco/gorslint/pkg/rsyntax"
)

// importIssue builds a path_import style issue over the given call text.
func importIssue(t *testing.T, snap *rsyntax.FileSnapshot, callText, importPath, template string, args []string) analyze.Issue {
	t.Helper()

	start := strings.Index(string(snap.Content), callText)
	if start < 0 {
		t.Fatalf("call %q not found in source", callText)
	}
	r := rsyntax.ByteRange{StartOffset: start, EndOffset: start + len(callText)}

	fx, err := analyze.WithImportFix(importPath, template, args)
	if err != nil {
		t.Fatalf("WithImportFix() error = %v", err)
	}
	return analyze.NewIssue("path_import", snap, r, "Use import instead of path: "+importPath).
		WithFix(fx).
		Build()
}

func applyPlan(t *testing.T, snap *rsyntax.FileSnapshot, plan *analyze.EditPlan) string {
	t.Helper()
	return string(fix.ApplyEdits(snap.Content, plan.Edits))
}

func TestBuildPlan_SimpleFix(t *testing.T) {
	t.Parallel()

	snap := parseSource(t, "fn main() {\n    let a = 1;\n\n    let b = 2;\n}\n")
	issue := analyze.NewIssue("empty_lines", snap, snap.LineRange(3), "blank line").
		WithFix(analyze.SimpleFix("")).
		Build()

	plan, err := analyze.BuildPlan(snap, []analyze.Issue{issue})
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}
	if !plan.HasEdits() {
		t.Fatal("expected edits")
	}
	if len(plan.Imports) != 0 {
		t.Errorf("simple fix produced imports: %v", plan.Imports)
	}

	want := "fn main() {\n    let a = 1;\n    let b = 2;\n}\n"
	if got := applyPlan(t, snap, plan); got != want {
		t.Errorf("applied content = %q, want %q", got, want)
	}
}

func TestBuildPlan_WithImportInsertsUse(t *testing.T) {
	t.Parallel()

	snap := parseSource(t, "fn main() {\n    let d = std::fs::read_to_string(\"a.txt\");\n}\n")
	issue := importIssue(t, snap, `std::fs::read_to_string("a.txt")`,
		"std::fs::read_to_string", "read_to_string({0})", []string{`"a.txt"`})

	plan, err := analyze.BuildPlan(snap, []analyze.Issue{issue})
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}
	if len(plan.Imports) != 1 || plan.Imports[0] != "std::fs::read_to_string" {
		t.Fatalf("imports = %v", plan.Imports)
	}

	want := "use std::fs::read_to_string;\nfn main() {\n    let d = read_to_string(\"a.txt\");\n}\n"
	if got := applyPlan(t, snap, plan); got != want {
		t.Errorf("applied content = %q, want %q", got, want)
	}
}

func TestBuildPlan_InsertsBeforeFirstUse(t *testing.T) {
	t.Parallel()

	snap := parseSource(t, "use std::io;\n\nfn main() {\n    std::fs::read(\"a\");\n}\n")
	issue := importIssue(t, snap, `std::fs::read("a")`,
		"std::fs::read", "read({0})", []string{`"a"`})

	plan, err := analyze.BuildPlan(snap, []analyze.Issue{issue})
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}

	got := applyPlan(t, snap, plan)
	if !strings.HasPrefix(got, "use std::fs::read;\nuse std::io;\n") {
		t.Errorf("import not inserted before existing use block:\n%s", got)
	}
}

func TestBuildPlan_DeduplicatesImports(t *testing.T) {
	t.Parallel()

	snap := parseSource(t, "fn main() {\n    std::fs::read(\"a\");\n    std::fs::read(\"b\");\n}\n")
	first := importIssue(t, snap, `std::fs::read("a")`, "std::fs::read", "read({0})", []string{`"a"`})
	second := importIssue(t, snap, `std::fs::read("b")`, "std::fs::read", "read({0})", []string{`"b"`})

	plan, err := analyze.BuildPlan(snap, []analyze.Issue{first, second})
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}
	if len(plan.Imports) != 1 {
		t.Errorf("imports = %v, want single deduplicated entry", plan.Imports)
	}

	got := applyPlan(t, snap, plan)
	if strings.Count(got, "use std::fs::read;") != 1 {
		t.Errorf("duplicate use declarations:\n%s", got)
	}
}

func TestBuildPlan_SkipsExistingImport(t *testing.T) {
	t.Parallel()

	snap := parseSource(t, "use std::fs::read;\n\nfn main() {\n    std::fs::read(\"a\");\n}\n")
	issue := importIssue(t, snap, `std::fs::read("a")`, "std::fs::read", "read({0})", []string{`"a"`})

	plan, err := analyze.BuildPlan(snap, []analyze.Issue{issue})
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}
	if len(plan.Imports) != 0 {
		t.Errorf("imports = %v, want none for an already imported path", plan.Imports)
	}

	got := applyPlan(t, snap, plan)
	if !strings.Contains(got, "    read(\"a\");\n") {
		t.Errorf("call site not rewritten:\n%s", got)
	}
	if strings.Count(got, "use std::fs::read;") != 1 {
		t.Errorf("existing import duplicated:\n%s", got)
	}
}

func TestBuildPlan_ConflictAbandonsPlan(t *testing.T) {
	t.Parallel()

	snap := parseSource(t, "fn main() {\n    let a = 1;\n}\n")
	first := analyze.NewIssue("path_import", snap, rsyntax.ByteRange{StartOffset: 12, EndOffset: 22}, "first").
		WithFix(analyze.SimpleFix("x")).
		Build()
	second := analyze.NewIssue("format_args", snap, rsyntax.ByteRange{StartOffset: 18, EndOffset: 25}, "second").
		WithFix(analyze.SimpleFix("y")).
		Build()

	_, err := analyze.BuildPlan(snap, []analyze.Issue{first, second})
	if err == nil {
		t.Fatal("expected conflict error")
	}

	var conflict *analyze.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("error type = %T, want *ConflictError", err)
	}
	if conflict.First.AnalyzerID != "path_import" || conflict.Second.AnalyzerID != "format_args" {
		t.Errorf("conflict names wrong issues: %v / %v",
			conflict.First.AnalyzerID, conflict.Second.AnalyzerID)
	}
}

func TestBuildPlan_NoFixableIssues(t *testing.T) {
	t.Parallel()

	snap := parseSource(t, "fn main() {\n    let a = 1;\n}\n")
	issue := analyze.NewIssue("inline_comments", snap, snap.LineRange(2), "advisory").Build()

	plan, err := analyze.BuildPlan(snap, []analyze.Issue{issue})
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}
	if plan.HasEdits() {
		t.Errorf("plan has edits for unfixable issues: %+v", plan.Edits)
	}
}
