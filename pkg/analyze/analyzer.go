package analyze

// Analyzer checks one parsed source file and reports issues.
//
// Analyzers must be stateless and safe for concurrent use: the engine runs
// one analyzer over many files from multiple workers.
type Analyzer interface {
	// ID returns the unique analyzer identifier (e.g. "path_import").
	ID() string

	// Name returns the human-readable analyzer name.
	Name() string

	// Description returns a one-line description of what the analyzer checks.
	Description() string

	// CanFix returns true if the analyzer can produce automatic fixes.
	CanFix() bool

	// Apply runs the analyzer against the file in ctx and returns any issues
	// found, in source order.
	Apply(ctx *Context) ([]Issue, error)
}

// BaseAnalyzer provides common metadata for analyzers.
// Embed it and implement Apply.
type BaseAnalyzer struct {
	id          string
	name        string
	description string
	canFix      bool
}

// NewBaseAnalyzer creates analyzer metadata.
func NewBaseAnalyzer(id, name, description string, canFix bool) BaseAnalyzer {
	return BaseAnalyzer{
		id:          id,
		name:        name,
		description: description,
		canFix:      canFix,
	}
}

// ID returns the analyzer identifier.
func (b *BaseAnalyzer) ID() string { return b.id }

// Name returns the analyzer name.
func (b *BaseAnalyzer) Name() string { return b.name }

// Description returns the analyzer description.
func (b *BaseAnalyzer) Description() string { return b.description }

// CanFix returns whether the analyzer produces fixes.
func (b *BaseAnalyzer) CanFix() bool { return b.canFix }
