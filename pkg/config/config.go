// Package config defines core configuration types for gorslint.
// These types are pure data structures; loading and discovery live in
// internal/configloader.
package config

// AnalyzerConfig holds per-analyzer configuration options.
type AnalyzerConfig struct {
	Enabled *bool `yaml:"enabled"`
}

// BackupsConfig controls backup behavior when fixing files.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Mode    string `yaml:"mode"` // "sidecar" or "none"
}

// DiffMode selects how diffs are presented.
type DiffMode string

const (
	DiffModeFull        DiffMode = "full"
	DiffModeSummary     DiffMode = "summary"
	DiffModeInteractive DiffMode = "interactive"
)

// IsValid returns true if the diff mode is one of the known values.
func (m DiffMode) IsValid() bool {
	switch m {
	case DiffModeFull, DiffModeSummary, DiffModeInteractive:
		return true
	default:
		return false
	}
}

// Config is the root configuration structure for gorslint.
type Config struct {
	// Analyzers contains per-analyzer configuration keyed by analyzer ID.
	Analyzers map[string]AnalyzerConfig `yaml:"analyzers"`

	// Ignore contains glob patterns for files to skip during discovery.
	Ignore []string `yaml:"ignore"`

	// Backups configures backup behavior when fixing.
	Backups BackupsConfig `yaml:"backups"`

	// Color is the color mode: "auto", "always", or "never".
	Color string `yaml:"color"`

	// CLI-level options (not persisted to config files).

	// Only restricts the run to the named analyzers.
	Only []string `yaml:"-"`

	// Fix enables auto-fixing of issues.
	Fix bool `yaml:"-"`

	// DryRun shows what would be fixed without making changes.
	DryRun bool `yaml:"-"`

	// Verbose switches the report from compact to per-issue output.
	Verbose bool `yaml:"-"`

	// Jobs specifies the number of parallel workers (0 = auto).
	Jobs int `yaml:"-"`

	// NoBackups disables backup creation when fixing.
	NoBackups bool `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Analyzers: make(map[string]AnalyzerConfig),
		Ignore:    []string{"target/**"},
		Backups: BackupsConfig{
			Enabled: false,
			Mode:    "sidecar",
		},
		Color: "auto",
		Jobs:  0, // 0 means use runtime.NumCPU()
	}
}

// AnalyzerEnabled reports whether the given analyzer is enabled.
// Analyzers default to enabled when no explicit setting exists.
func (c *Config) AnalyzerEnabled(id string) bool {
	if c == nil {
		return true
	}
	if ac, ok := c.Analyzers[id]; ok && ac.Enabled != nil {
		return *ac.Enabled
	}
	return true
}
