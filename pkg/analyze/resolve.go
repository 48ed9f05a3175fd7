package analyze

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gorslint/pkg/config"
)

// ResolveAnalyzers determines which analyzers to run for the given config.
// The result preserves registry order regardless of how the selection was
// expressed.
//
// With cfg.Only set, exactly those analyzers run; an unknown name is an
// error listing the available IDs. Otherwise all analyzers run except
// those disabled in cfg.Analyzers.
func ResolveAnalyzers(registry *Registry, cfg *config.Config) ([]Analyzer, error) {
	if cfg == nil {
		return registry.Analyzers(), nil
	}

	if len(cfg.Only) > 0 {
		selected := make(map[string]bool, len(cfg.Only))
		for _, id := range cfg.Only {
			if _, ok := registry.Get(id); !ok {
				return nil, fmt.Errorf("unknown analyzer %q (available: %s)",
					id, strings.Join(registry.IDs(), ", "))
			}
			selected[id] = true
		}

		var resolved []Analyzer
		for _, a := range registry.Analyzers() {
			if selected[a.ID()] {
				resolved = append(resolved, a)
			}
		}
		return resolved, nil
	}

	var resolved []Analyzer
	for _, a := range registry.Analyzers() {
		if cfg.AnalyzerEnabled(a.ID()) {
			resolved = append(resolved, a)
		}
	}
	return resolved, nil
}
