package report_test

import (
	"errors"
	"testing"

	"github.com/yaklabco/gorslint/pkg/analyze"
	"github.com/yaklabco/gorslint/pkg/report"
	"github.com/yaklabco/gorslint/pkg/runner"
	"github.com/yaklabco/gorslint/pkg/rsyntax"
)

var registryOrder = []string{"path_import", "format_args", "empty_lines", "inline_comments"}

func testIssue(id, msg string, line int, fixable bool) analyze.Issue {
	issue := analyze.Issue{
		AnalyzerID: id,
		Message:    msg,
		Span:       rsyntax.Span{StartLine: line, EndLine: line},
	}
	if fixable {
		issue.Fix = analyze.SimpleFix("")
	}
	return issue
}

func testOutcome(path string, issues ...analyze.Issue) runner.FileOutcome {
	return runner.FileOutcome{
		Path: path,
		Result: &analyze.PipelineResult{
			Path:       path,
			FileResult: &analyze.FileResult{Issues: issues},
		},
	}
}

func TestAggregate_RegistryOrderPreserved(t *testing.T) {
	t.Parallel()

	result := &runner.Result{
		Files: []runner.FileOutcome{
			testOutcome("a.rs", testIssue("empty_lines", "blank", 3, true)),
		},
	}

	rep := report.Aggregate(result, registryOrder)

	if len(rep.Analyzers) != len(registryOrder) {
		t.Fatalf("analyzers = %d, want %d including zero counts", len(rep.Analyzers), len(registryOrder))
	}
	for i, id := range registryOrder {
		if rep.Analyzers[i].ID != id {
			t.Errorf("analyzer[%d] = %q, want %q", i, rep.Analyzers[i].ID, id)
		}
	}
	if rep.Analyzers[0].IssueCount != 0 {
		t.Errorf("path_import count = %d, want 0", rep.Analyzers[0].IssueCount)
	}
	if rep.Analyzers[2].IssueCount != 1 {
		t.Errorf("empty_lines count = %d, want 1", rep.Analyzers[2].IssueCount)
	}
}

func TestAggregate_GroupsByMessage(t *testing.T) {
	t.Parallel()

	result := &runner.Result{
		Files: []runner.FileOutcome{
			testOutcome("a.rs",
				testIssue("empty_lines", "blank", 3, true),
				testIssue("empty_lines", "blank", 7, true),
			),
			testOutcome("b.rs",
				testIssue("empty_lines", "blank", 2, true),
			),
		},
	}

	rep := report.Aggregate(result, registryOrder)

	ar := rep.Analyzers[2]
	if len(ar.Groups) != 1 {
		t.Fatalf("groups = %d, want 1", len(ar.Groups))
	}

	group := ar.Groups[0]
	if group.Count != 3 {
		t.Errorf("group count = %d, want 3", group.Count)
	}
	if len(group.Files) != 2 {
		t.Fatalf("group files = %d, want 2", len(group.Files))
	}
	if group.Files[0].Path != "a.rs" || len(group.Files[0].Lines) != 2 {
		t.Errorf("first file = %+v", group.Files[0])
	}
	if group.Files[1].Path != "b.rs" || group.Files[1].Lines[0] != 2 {
		t.Errorf("second file = %+v", group.Files[1])
	}
}

func TestAggregate_DistinctLinesOnly(t *testing.T) {
	t.Parallel()

	result := &runner.Result{
		Files: []runner.FileOutcome{
			testOutcome("a.rs",
				testIssue("format_args", "positional", 5, false),
				testIssue("format_args", "positional", 5, false),
			),
		},
	}

	rep := report.Aggregate(result, registryOrder)

	group := rep.Analyzers[1].Groups[0]
	if len(group.Files[0].Lines) != 1 {
		t.Errorf("lines = %v, want the duplicate collapsed", group.Files[0].Lines)
	}
	if group.Count != 2 {
		t.Errorf("count = %d, both occurrences still counted", group.Count)
	}
}

func TestAggregate_FailuresAndTotals(t *testing.T) {
	t.Parallel()

	result := &runner.Result{
		Files: []runner.FileOutcome{
			{Path: "broken.rs", Error: errors.New("parse error")},
			testOutcome("a.rs",
				testIssue("empty_lines", "blank", 3, true),
				testIssue("inline_comments", "comment", 4, false),
			),
		},
		Stats: runner.Stats{FilesProcessed: 1, ParseFailures: 1},
	}

	rep := report.Aggregate(result, registryOrder)

	if len(rep.Failures) != 1 || rep.Failures[0].Path != "broken.rs" {
		t.Errorf("failures = %+v", rep.Failures)
	}
	if rep.Totals.Issues != 2 {
		t.Errorf("issues = %d, want 2", rep.Totals.Issues)
	}
	if rep.Totals.Fixable != 1 {
		t.Errorf("fixable = %d, want 1", rep.Totals.Fixable)
	}
	if rep.Totals.FilesWithIssues != 1 {
		t.Errorf("files with issues = %d, want 1", rep.Totals.FilesWithIssues)
	}
	if rep.Totals.ParseFailures != 1 {
		t.Errorf("parse failures = %d, want 1", rep.Totals.ParseFailures)
	}
	if !rep.HasIssues() {
		t.Error("report should have issues")
	}
}

func TestAggregate_NilResult(t *testing.T) {
	t.Parallel()

	rep := report.Aggregate(nil, registryOrder)
	if rep.HasIssues() {
		t.Error("nil result reports issues")
	}
	if len(rep.Analyzers) != len(registryOrder) {
		t.Errorf("analyzers = %d, want %d", len(rep.Analyzers), len(registryOrder))
	}
}
