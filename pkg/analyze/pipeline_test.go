package analyze_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/gorslint/pkg/analyze"
	"github.com/yaklabco/gorslint/pkg/config"
	"github.com/yaklabco/gorslint/pkg/fsutil"
	"github.com/yaklabco/gorslint/pkg/rsyntax"
)

const blankLineSource = `fn main() {
    let a = 1;

    let b = 2;
}
`

const fixedSource = `fn main() {
    let a = 1;
    let b = 2;
}
`

func newTestPipeline(t *testing.T) *analyze.Pipeline {
	t.Helper()
	return analyze.NewPipeline(analyze.NewEngine(newTestRegistry(t)))
}

func TestProcessContent_CheckOnly(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(t)
	result, err := p.ProcessContent(context.Background(), "test.rs",
		[]byte(blankLineSource), config.NewConfig(), analyze.PipelineOptions{})
	if err != nil {
		t.Fatalf("ProcessContent() error = %v", err)
	}

	if !result.HasIssues() {
		t.Fatal("expected issues")
	}
	if result.Modified {
		t.Error("check mode must not modify content")
	}
	if result.Issues[0].AnalyzerID != "empty_lines" {
		t.Errorf("issue analyzer = %q", result.Issues[0].AnalyzerID)
	}
}

func TestProcessContent_FixAndDryRun(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(t)
	opts := analyze.PipelineOptions{Fix: true, DryRun: true}

	result, err := p.ProcessContent(context.Background(), "test.rs",
		[]byte(blankLineSource), config.NewConfig(), opts)
	if err != nil {
		t.Fatalf("ProcessContent() error = %v", err)
	}

	if !result.Modified {
		t.Fatal("expected modification")
	}
	if string(result.ModifiedContent) != fixedSource {
		t.Errorf("fixed content = %q, want %q", result.ModifiedContent, fixedSource)
	}
	if result.Diff == nil || !result.Diff.HasChanges() {
		t.Error("dry run should produce a diff")
	}
}

func TestProcessContent_FixIsStable(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(t)
	opts := analyze.PipelineOptions{Fix: true}

	first, err := p.ProcessContent(context.Background(), "test.rs",
		[]byte(blankLineSource), config.NewConfig(), opts)
	if err != nil {
		t.Fatalf("first pass error = %v", err)
	}

	second, err := p.ProcessContent(context.Background(), "test.rs",
		first.ModifiedContent, config.NewConfig(), opts)
	if err != nil {
		t.Fatalf("second pass error = %v", err)
	}
	if second.Modified {
		t.Errorf("fix is not stable, second pass changed content to %q", second.ModifiedContent)
	}
}

func TestProcessContent_ParseFailure(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(t)
	_, err := p.ProcessContent(context.Background(), "bad.rs",
		[]byte("}\n"), config.NewConfig(), analyze.PipelineOptions{})
	if !errors.Is(err, analyze.ErrParseFailure) {
		t.Errorf("error = %v, want ErrParseFailure", err)
	}
}

// overlapAnalyzer returns two fixes over overlapping ranges to force a
// plan conflict.
type overlapAnalyzer struct {
	analyze.BaseAnalyzer
}

func (a *overlapAnalyzer) Apply(ctx *analyze.Context) ([]analyze.Issue, error) {
	snap := ctx.File
	return []analyze.Issue{
		analyze.NewIssue(a.ID(), snap, rsyntax.ByteRange{StartOffset: 0, EndOffset: 6}, "first").
			WithFix(analyze.SimpleFix("x")).Build(),
		analyze.NewIssue(a.ID(), snap, rsyntax.ByteRange{StartOffset: 3, EndOffset: 9}, "second").
			WithFix(analyze.SimpleFix("y")).Build(),
	}, nil
}

func TestProcessContent_ConflictSkipsFile(t *testing.T) {
	t.Parallel()

	reg := analyze.NewRegistry()
	if err := reg.Register(&overlapAnalyzer{
		BaseAnalyzer: analyze.NewBaseAnalyzer("overlap", "overlap", "test analyzer", true),
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	p := analyze.NewPipeline(analyze.NewEngine(reg))

	result, err := p.ProcessContent(context.Background(), "test.rs",
		[]byte("fn main() {}\n"), config.NewConfig(), analyze.PipelineOptions{Fix: true})
	if err != nil {
		t.Fatalf("ProcessContent() error = %v", err)
	}

	if !result.Skipped {
		t.Error("conflicting plan should skip the file")
	}
	if result.Conflict == nil {
		t.Fatal("conflict not recorded")
	}
	if result.Modified {
		t.Error("no partial plan may be applied")
	}
	// Issues are still reported even though the plan was abandoned.
	if len(result.Issues) != 2 {
		t.Errorf("issues = %d, want 2", len(result.Issues))
	}
	if !strings.Contains(result.Summary(), "skipped") {
		t.Errorf("summary = %q", result.Summary())
	}
}

func TestProcessFile_WritesWithBackup(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "main.rs")
	if err := os.WriteFile(path, []byte(blankLineSource), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	p := newTestPipeline(t)
	opts := analyze.PipelineOptions{
		Fix:                 true,
		Backup:              fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar},
		StrictRaceDetection: true,
	}

	result, err := p.ProcessFile(context.Background(), path, config.NewConfig(), opts)
	if err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}

	if !result.Written {
		t.Fatal("file was not written")
	}
	if !result.BackupCreated {
		t.Error("backup was not created")
	}

	fixed, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixed file: %v", err)
	}
	if string(fixed) != fixedSource {
		t.Errorf("file content = %q, want %q", fixed, fixedSource)
	}

	backup, err := os.ReadFile(path + fsutil.BackupSuffix)
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if string(backup) != blankLineSource {
		t.Errorf("backup content = %q, want original", backup)
	}
}

func TestProcessFile_DryRunLeavesDiskAlone(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "main.rs")
	if err := os.WriteFile(path, []byte(blankLineSource), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	p := newTestPipeline(t)
	opts := analyze.PipelineOptions{Fix: true, DryRun: true}

	result, err := p.ProcessFile(context.Background(), path, config.NewConfig(), opts)
	if err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}

	if result.Written {
		t.Error("dry run wrote to disk")
	}
	if result.Diff == nil {
		t.Error("dry run produced no diff")
	}

	onDisk, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if string(onDisk) != blankLineSource {
		t.Error("dry run changed the file on disk")
	}
}

func TestProcessFile_MissingFile(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(t)
	_, err := p.ProcessFile(context.Background(),
		filepath.Join(t.TempDir(), "absent.rs"), config.NewConfig(), analyze.PipelineOptions{})
	if !errors.Is(err, analyze.ErrFileNotFound) {
		t.Errorf("error = %v, want ErrFileNotFound", err)
	}
}

func TestPipelineOptionsFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Fix = true
	cfg.DryRun = true
	cfg.Backups.Enabled = true
	cfg.NoBackups = true

	opts := analyze.PipelineOptionsFromConfig(cfg)
	if !opts.Fix || !opts.DryRun {
		t.Errorf("opts = %+v", opts)
	}
	if opts.Backup.Enabled {
		t.Error("NoBackups must win over Backups.Enabled")
	}

	defaults := analyze.PipelineOptionsFromConfig(nil)
	if defaults.Fix || !defaults.StrictRaceDetection {
		t.Errorf("nil config defaults = %+v", defaults)
	}
}
