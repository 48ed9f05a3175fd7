package analyzers

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gorslint/pkg/analyze"
	"github.com/yaklabco/gorslint/pkg/rsyntax"
)

// stdlibRoots are the standard library root modules. A path rooted here is
// always a module path, never a type path.
var stdlibRoots = map[string]bool{
	"std":   true,
	"core":  true,
	"alloc": true,
}

// PathImportAnalyzer detects module paths used inline in expressions that
// should be moved to import declarations.
//
// It distinguishes free functions on module paths (flagged) from associated
// functions, enum variants, and associated constants (never flagged). The
// classification is syntactic, based on the casing of the path segments;
// ambiguous cases are left unflagged rather than guessed at.
type PathImportAnalyzer struct {
	analyze.BaseAnalyzer
}

// NewPathImportAnalyzer creates a new path_import analyzer.
func NewPathImportAnalyzer() *PathImportAnalyzer {
	return &PathImportAnalyzer{
		BaseAnalyzer: analyze.NewBaseAnalyzer(
			"path_import",
			"path-import",
			"Module paths in expressions should be import declarations",
			true,
		),
	}
}

// Apply flags inline module paths and builds import-rewriting fixes.
func (a *PathImportAnalyzer) Apply(ctx *analyze.Context) ([]analyze.Issue, error) {
	snap := ctx.File

	var issues []analyze.Issue
	for _, pc := range snap.PathCalls {
		if err := ctx.Cancelled(); err != nil {
			return issues, fmt.Errorf("analyzer cancelled: %w", err)
		}

		if !shouldExtractToImport(pc.Segments) {
			continue
		}

		path := pc.Path()
		last := pc.Last()

		issueRange := pc.Range
		template := last
		var args []string

		if pc.HasArgs {
			open := openParenAfter(snap, pc.Range.EndOffset)
			if close := matchParen(snap, open); close >= 0 {
				args = splitArgs(snap, rsyntax.ByteRange{StartOffset: open + 1, EndOffset: close})
				template = callTemplate(last, len(args))
				issueRange = rsyntax.ByteRange{StartOffset: pc.Range.StartOffset, EndOffset: close + 1}
			}
		}

		fx, err := analyze.WithImportFix(path, template, args)
		if err != nil {
			return issues, err
		}

		issue := analyze.NewIssue(a.ID(), snap, issueRange,
			"Use import instead of path: "+path).
			WithSuggestion(fmt.Sprintf("Add `use %s;` and call `%s` directly", path, last)).
			WithFix(fx).
			Build()
		issues = append(issues, issue)
	}

	return issues, nil
}

// shouldExtractToImport classifies a path by segment casing.
//
// A path is flagged only when it looks like a free function on a module
// path: lowercase root, lowercase final segment that is not a
// SCREAMING_SNAKE constant, and no capitalized type segment directly
// before the final one. Two-segment paths are flagged only when rooted in
// the standard library, so local `fs::read(...)` style calls stay quiet.
func shouldExtractToImport(segs []string) bool {
	if len(segs) < 2 {
		return false
	}

	first := segs[0]
	if first == "" || isUpperByte(first[0]) {
		return false
	}

	last := segs[len(segs)-1]
	if last == "" || isUpperByte(last[0]) || isScreamingSnakeCase(last) {
		return false
	}

	secondToLast := segs[len(segs)-2]
	if secondToLast != "" && isUpperByte(secondToLast[0]) {
		return false
	}

	if stdlibRoots[first] {
		return true
	}
	return len(segs) >= 3 && isLowerByte(first[0])
}

// isScreamingSnakeCase reports whether s is an ALL_CAPS constant name.
func isScreamingSnakeCase(s string) bool {
	for i := 0; i < len(s); i++ {
		b := s[i]
		if !isUpperByte(b) && b != '_' && !(b >= '0' && b <= '9') {
			return false
		}
	}
	return true
}

// callTemplate builds "name({0}, {1}, ...)" with one slot per argument.
func callTemplate(name string, argCount int) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('(')
	for i := 0; i < argCount; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "{%d}", i)
	}
	b.WriteByte(')')
	return b.String()
}

// openParenAfter returns the offset of the '(' following a path, skipping
// whitespace. The parser guarantees one exists when HasArgs is true.
func openParenAfter(snap *rsyntax.FileSnapshot, offset int) int {
	for i := offset; i < len(snap.Content); i++ {
		switch snap.Content[i] {
		case ' ', '\t', '\n', '\r':
		default:
			return i
		}
	}
	return len(snap.Content) - 1
}

func isUpperByte(b byte) bool { return b >= 'A' && b <= 'Z' }
func isLowerByte(b byte) bool { return b >= 'a' && b <= 'z' }
