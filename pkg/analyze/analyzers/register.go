package analyzers

import "github.com/yaklabco/gorslint/pkg/analyze"

// RegisterAll registers the built-in analyzers with the given registry.
// The order here is the registry order: it fixes how analyzers run and how
// reports list them, so it is part of the output contract.
func RegisterAll(registry *analyze.Registry) {
	for _, a := range []analyze.Analyzer{
		NewPathImportAnalyzer(),
		NewFormatArgsAnalyzer(),
		NewEmptyLinesAnalyzer(),
		NewInlineCommentsAnalyzer(),
	} {
		if err := registry.Register(a); err != nil {
			panic(err)
		}
	}
}

func init() {
	RegisterAll(analyze.DefaultRegistry)
}
