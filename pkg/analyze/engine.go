package analyze

import (
	"context"
	"fmt"

	"github.com/yaklabco/gorslint/pkg/config"
	"github.com/yaklabco/gorslint/pkg/rsyntax"
)

// FileResult contains the results of analyzing a single file.
type FileResult struct {
	// Snapshot is the parsed file.
	Snapshot *rsyntax.FileSnapshot

	// Issues contains all findings, grouped by analyzer in registry order
	// and by source position within each analyzer.
	Issues []Issue

	// AnalyzerErrors contains any errors from analyzer execution, keyed by
	// analyzer ID. A failing analyzer does not stop the others.
	AnalyzerErrors map[string]error
}

// HasIssues returns true if any issues were found.
func (fr *FileResult) HasIssues() bool {
	return len(fr.Issues) > 0
}

// IssueCount returns the total number of issues.
func (fr *FileResult) IssueCount() int {
	return len(fr.Issues)
}

// FixableCount returns the number of issues carrying a fix.
func (fr *FileResult) FixableCount() int {
	count := 0
	for i := range fr.Issues {
		if fr.Issues[i].HasFix() {
			count++
		}
	}
	return count
}

// Engine coordinates parsing and analyzer execution.
type Engine struct {
	// Registry holds all available analyzers.
	Registry *Registry
}

// NewEngine creates an Engine backed by the given registry.
func NewEngine(registry *Registry) *Engine {
	return &Engine{Registry: registry}
}

// AnalyzeFile parses and analyzes a single file.
//
// A parse failure is returned as an error; analyzing never proceeds on a
// file that did not parse. Individual analyzer failures are recorded in
// the result and do not abort the run.
func (e *Engine) AnalyzeFile(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
) (*FileResult, error) {
	snapshot, err := rsyntax.Parse(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	resolved, err := ResolveAnalyzers(e.Registry, cfg)
	if err != nil {
		return nil, err
	}

	result := &FileResult{
		Snapshot:       snapshot,
		AnalyzerErrors: make(map[string]error),
	}

	for _, a := range resolved {
		select {
		case <-ctx.Done():
			return result, fmt.Errorf("analysis cancelled: %w", ctx.Err())
		default:
		}

		issues, err := a.Apply(NewContext(ctx, snapshot, cfg))
		if err != nil {
			result.AnalyzerErrors[a.ID()] = err
			continue
		}
		result.Issues = append(result.Issues, issues...)
	}

	return result, nil
}
