package configloader

import "github.com/yaklabco/gorslint/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Maps: deep merge, with override's values taking precedence
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Color != "" {
		result.Color = override.Color
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	// Booleans: false is the zero value, so only a true override is
	// detectable. A config file cannot unset a CLI flag.
	if override.Fix {
		result.Fix = override.Fix
	}
	if override.DryRun {
		result.DryRun = override.DryRun
	}
	if override.Verbose {
		result.Verbose = override.Verbose
	}
	if override.NoBackups {
		result.NoBackups = override.NoBackups
	}

	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}
	if override.Backups.Enabled {
		result.Backups.Enabled = override.Backups.Enabled
	}

	result.Analyzers = mergeAnalyzers(base.Analyzers, override.Analyzers)

	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}
	if override.Only != nil {
		result.Only = override.Only
	}

	return &result
}

// mergeAnalyzers performs deep merge of analyzer configurations.
func mergeAnalyzers(base, override map[string]config.AnalyzerConfig) map[string]config.AnalyzerConfig {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]config.AnalyzerConfig, len(base)+len(override))
	for key, val := range base {
		result[key] = val
	}
	for key, val := range override {
		if existing, ok := result[key]; ok {
			result[key] = mergeAnalyzerConfig(existing, val)
		} else {
			result[key] = val
		}
	}

	return result
}

// mergeAnalyzerConfig merges one analyzer's configuration.
func mergeAnalyzerConfig(base, override config.AnalyzerConfig) config.AnalyzerConfig {
	result := base
	if override.Enabled != nil {
		result.Enabled = override.Enabled
	}
	return result
}

// MergeAll merges multiple configurations in order, with later configs
// taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
