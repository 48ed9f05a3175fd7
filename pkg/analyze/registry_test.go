package analyze_test

import (
	"testing"

	"github.com/yaklabco/gorslint/pkg/analyze"
	"github.com/yaklabco/gorslint/pkg/analyze/analyzers"
	"github.com/yaklabco/gorslint/pkg/config"
)

func newTestRegistry(t *testing.T) *analyze.Registry {
	t.Helper()

	reg := analyze.NewRegistry()
	analyzers.RegisterAll(reg)
	return reg
}

func TestRegistry_Order(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)

	want := []string{"path_import", "format_args", "empty_lines", "inline_comments"}
	got := reg.IDs()
	if len(got) != len(want) {
		t.Fatalf("IDs() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("IDs()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	all := reg.Analyzers()
	for i, a := range all {
		if a.ID() != want[i] {
			t.Errorf("Analyzers()[%d] = %q, want %q", i, a.ID(), want[i])
		}
	}
}

func TestRegistry_DuplicateRegistration(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)
	if err := reg.Register(analyzers.NewEmptyLinesAnalyzer()); err == nil {
		t.Error("expected error for duplicate analyzer ID")
	}
}

func TestRegistry_Get(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)

	a, ok := reg.Get("format_args")
	if !ok {
		t.Fatal("format_args not found")
	}
	if !a.CanFix() {
		t.Error("format_args should be fixable")
	}

	if _, ok := reg.Get("nonexistent"); ok {
		t.Error("unknown ID resolved")
	}
}

func TestResolveAnalyzers_Only(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)
	cfg := config.NewConfig()
	cfg.Only = []string{"empty_lines", "path_import"}

	resolved, err := analyze.ResolveAnalyzers(reg, cfg)
	if err != nil {
		t.Fatalf("ResolveAnalyzers() error = %v", err)
	}

	// Registry order wins regardless of how Only listed them.
	if len(resolved) != 2 {
		t.Fatalf("resolved %d analyzers, want 2", len(resolved))
	}
	if resolved[0].ID() != "path_import" || resolved[1].ID() != "empty_lines" {
		t.Errorf("resolved order = %q, %q", resolved[0].ID(), resolved[1].ID())
	}
}

func TestResolveAnalyzers_UnknownOnly(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)
	cfg := config.NewConfig()
	cfg.Only = []string{"no_such_analyzer"}

	_, err := analyze.ResolveAnalyzers(reg, cfg)
	if err == nil {
		t.Fatal("expected error for unknown analyzer")
	}
}

func TestResolveAnalyzers_Disabled(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)
	disabled := false
	cfg := config.NewConfig()
	cfg.Analyzers["inline_comments"] = config.AnalyzerConfig{Enabled: &disabled}

	resolved, err := analyze.ResolveAnalyzers(reg, cfg)
	if err != nil {
		t.Fatalf("ResolveAnalyzers() error = %v", err)
	}

	for _, a := range resolved {
		if a.ID() == "inline_comments" {
			t.Error("disabled analyzer was resolved")
		}
	}
	if len(resolved) != 3 {
		t.Errorf("resolved %d analyzers, want 3", len(resolved))
	}
}

func TestResolveAnalyzers_NilConfig(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)
	resolved, err := analyze.ResolveAnalyzers(reg, nil)
	if err != nil {
		t.Fatalf("ResolveAnalyzers() error = %v", err)
	}
	if len(resolved) != 4 {
		t.Errorf("resolved %d analyzers, want all 4", len(resolved))
	}
}
