package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/gorslint/pkg/analyze"
	"github.com/yaklabco/gorslint/pkg/config"
	"github.com/yaklabco/gorslint/pkg/runner"

	_ "github.com/yaklabco/gorslint/pkg/analyze/analyzers" // Register built-in analyzers
)

const cleanSource = "fn main() {\n    let a = 1;\n}\n"

const blankSource = "fn main() {\n    let a = 1;\n\n    let b = 2;\n}\n"

const blankSourceFixed = "fn main() {\n    let a = 1;\n    let b = 2;\n}\n"

func newTestRunner() *runner.Runner {
	return runner.New(analyze.NewPipeline(analyze.NewEngine(analyze.DefaultRegistry)))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("setup mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("setup write: %v", err)
	}
}

func TestRun_CheckFindsIssues(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "clean.rs"), cleanSource)
	writeFile(t, filepath.Join(dir, "dirty.rs"), blankSource)

	result, err := newTestRunner().Run(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
		Config:     config.NewConfig(),
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.FilesDiscovered != 2 || result.Stats.FilesProcessed != 2 {
		t.Errorf("stats = %+v", result.Stats)
	}
	if result.Stats.IssuesTotal != 1 {
		t.Errorf("issues = %d, want 1", result.Stats.IssuesTotal)
	}
	if result.Stats.FilesWithIssues != 1 {
		t.Errorf("files with issues = %d, want 1", result.Stats.FilesWithIssues)
	}
	if result.Stats.IssuesByAnalyzer["empty_lines"] != 1 {
		t.Errorf("by analyzer = %v", result.Stats.IssuesByAnalyzer)
	}

	// Outcomes are ordered by path regardless of worker completion order.
	if len(result.Files) != 2 {
		t.Fatalf("outcomes = %d, want 2", len(result.Files))
	}
	if filepath.Base(result.Files[0].Path) != "clean.rs" {
		t.Errorf("first outcome = %q, want clean.rs", result.Files[0].Path)
	}
	if !result.HasIssues() {
		t.Error("result should report issues")
	}
}

func TestRun_ParseFailureCounted(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bad.rs"), "fn broken( {\n")

	result, err := newTestRunner().Run(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
		Config:     config.NewConfig(),
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !result.HasParseFailures() {
		t.Error("parse failure not reported")
	}
	if result.Stats.ParseFailures != 1 || result.Stats.FilesErrored != 1 {
		t.Errorf("stats = %+v", result.Stats)
	}
}

func TestRun_FixRewritesFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "dirty.rs")
	writeFile(t, path, blankSource)

	cfg := config.NewConfig()
	cfg.Fix = true

	result, err := newTestRunner().Run(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
		Config:     cfg,
		Jobs:       1,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.FilesModified != 1 {
		t.Errorf("files modified = %d, want 1", result.Stats.FilesModified)
	}
	if result.Stats.IssuesFixed != 1 {
		t.Errorf("issues fixed = %d, want 1", result.Stats.IssuesFixed)
	}

	fixed, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixed file: %v", err)
	}
	if string(fixed) != blankSourceFixed {
		t.Errorf("file content = %q, want %q", fixed, blankSourceFixed)
	}
}

func TestRun_EmptyDirectory(t *testing.T) {
	t.Parallel()

	result, err := newTestRunner().Run(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: t.TempDir(),
		Config:     config.NewConfig(),
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.FilesDiscovered != 0 || len(result.Files) != 0 {
		t.Errorf("result = %+v", result)
	}
}
