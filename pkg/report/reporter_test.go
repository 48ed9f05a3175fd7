package report_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/yaklabco/gorslint/pkg/report"
	"github.com/yaklabco/gorslint/pkg/runner"
)

func TestReporter_NoFiles(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := report.New(report.Options{Writer: &buf, Color: "never", ShowSummary: true})

	count, err := r.Report(context.Background(), &runner.Result{})
	if err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}
	if !strings.Contains(buf.String(), "No files to check.") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestReporter_CompactGrouping(t *testing.T) {
	t.Parallel()

	result := &runner.Result{
		Files: []runner.FileOutcome{
			testOutcome("src/a.rs",
				testIssue("empty_lines", "Empty line in function body indicates untamed complexity", 3, true),
				testIssue("empty_lines", "Empty line in function body indicates untamed complexity", 7, true),
			),
		},
		Stats: runner.Stats{FilesProcessed: 1, IssuesTotal: 2, FilesWithIssues: 1},
	}

	var buf bytes.Buffer
	r := report.New(report.Options{Writer: &buf, Color: "never", Order: registryOrder})

	count, err := r.Report(context.Background(), result)
	if err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}

	out := buf.String()
	if !strings.Contains(out, "empty_lines: 2 issues") {
		t.Errorf("missing analyzer heading:\n%s", out)
	}
	if !strings.Contains(out, "src/a.rs: line 3, 7") {
		t.Errorf("missing grouped file lines:\n%s", out)
	}
	// Analyzers without issues are not listed.
	if strings.Contains(out, "path_import") {
		t.Errorf("zero-count analyzer listed:\n%s", out)
	}
}

func TestReporter_SingularIssueWord(t *testing.T) {
	t.Parallel()

	result := &runner.Result{
		Files: []runner.FileOutcome{
			testOutcome("a.rs", testIssue("format_args", "Use named format arguments instead of positional", 5, false)),
		},
		Stats: runner.Stats{FilesProcessed: 1, IssuesTotal: 1, FilesWithIssues: 1},
	}

	var buf bytes.Buffer
	r := report.New(report.Options{Writer: &buf, Color: "never", Order: registryOrder})
	if _, err := r.Report(context.Background(), result); err != nil {
		t.Fatalf("Report() error = %v", err)
	}

	if !strings.Contains(buf.String(), "format_args: 1 issue\n") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestReporter_FailuresListed(t *testing.T) {
	t.Parallel()

	result := &runner.Result{
		Files: []runner.FileOutcome{
			{Path: "broken.rs", Error: errors.New("boom")},
		},
	}

	var buf bytes.Buffer
	r := report.New(report.Options{Writer: &buf, Color: "never", Order: registryOrder})
	if _, err := r.Report(context.Background(), result); err != nil {
		t.Fatalf("Report() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "broken.rs") || !strings.Contains(out, "error: boom") {
		t.Errorf("output = %q", out)
	}
}

func TestReporter_Verbose(t *testing.T) {
	t.Parallel()

	result := &runner.Result{
		Files: []runner.FileOutcome{
			testOutcome("src/a.rs",
				testIssue("inline_comments", `Inline comment found: "note"`, 2, false),
			),
		},
		Stats: runner.Stats{FilesProcessed: 1, IssuesTotal: 1, FilesWithIssues: 1},
	}

	var buf bytes.Buffer
	r := report.New(report.Options{
		Writer:  &buf,
		Color:   "never",
		Verbose: true,
		Order:   registryOrder,
	})
	if _, err := r.Report(context.Background(), result); err != nil {
		t.Fatalf("Report() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "src/a.rs") {
		t.Errorf("missing file header:\n%s", out)
	}
	if !strings.Contains(out, `Inline comment found: "note"`) {
		t.Errorf("missing issue message:\n%s", out)
	}
}
