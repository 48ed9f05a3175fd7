package config_test

import (
	"testing"

	"github.com/yaklabco/gorslint/pkg/config"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()

	if cfg.Color != "auto" {
		t.Errorf("Color = %q, want auto", cfg.Color)
	}
	if len(cfg.Ignore) != 1 || cfg.Ignore[0] != "target/**" {
		t.Errorf("Ignore = %v, want [target/**]", cfg.Ignore)
	}
	if cfg.Backups.Enabled {
		t.Error("backups should default to disabled")
	}
	if cfg.Backups.Mode != "sidecar" {
		t.Errorf("Backups.Mode = %q, want sidecar", cfg.Backups.Mode)
	}
	if cfg.Jobs != 0 {
		t.Errorf("Jobs = %d, want 0 (auto)", cfg.Jobs)
	}
	if cfg.Analyzers == nil {
		t.Error("Analyzers map should be initialized")
	}
}

func TestAnalyzerEnabled(t *testing.T) {
	t.Parallel()

	var nilCfg *config.Config
	if !nilCfg.AnalyzerEnabled("empty_lines") {
		t.Error("nil config should enable all analyzers")
	}

	cfg := config.NewConfig()
	if !cfg.AnalyzerEnabled("empty_lines") {
		t.Error("analyzers default to enabled")
	}

	disabled := false
	cfg.Analyzers["empty_lines"] = config.AnalyzerConfig{Enabled: &disabled}
	if cfg.AnalyzerEnabled("empty_lines") {
		t.Error("explicit false should disable the analyzer")
	}

	enabled := true
	cfg.Analyzers["empty_lines"] = config.AnalyzerConfig{Enabled: &enabled}
	if !cfg.AnalyzerEnabled("empty_lines") {
		t.Error("explicit true should enable the analyzer")
	}
}

func TestDiffModeIsValid(t *testing.T) {
	t.Parallel()

	for _, mode := range []config.DiffMode{
		config.DiffModeFull,
		config.DiffModeSummary,
		config.DiffModeInteractive,
	} {
		if !mode.IsValid() {
			t.Errorf("%q should be valid", mode)
		}
	}

	if config.DiffMode("sideways").IsValid() {
		t.Error("unknown mode should be invalid")
	}
}
