package analyzers

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gorslint/pkg/analyze"
	"github.com/yaklabco/gorslint/pkg/rsyntax"
)

// formatThreshold is the positional slot count at which a format string is
// flagged. Below it, positional placeholders stay readable.
const formatThreshold = 3

// formatMacros are the formatting macros whose template strings are checked.
var formatMacros = map[string]bool{
	"format":  true,
	"println": true,
	"print":   true,
	"write":   true,
	"writeln": true,
}

// formatSlot is one {...} placeholder inside a format string literal.
type formatSlot struct {
	// start and end are byte offsets within the literal, including braces.
	start, end int

	// name is the placeholder text before any ':' format spec.
	// Empty for a purely positional slot.
	name string

	// spec is the format spec from ':' onward, empty if absent.
	spec string
}

// FormatArgsAnalyzer detects format macro calls with enough positional
// placeholders that matching them to trailing arguments becomes error-prone.
//
// The fix inlines each trailing argument into its placeholder as a named
// slot, but only when every matched argument is a bare identifier;
// expression arguments are reported without a rewrite.
type FormatArgsAnalyzer struct {
	analyze.BaseAnalyzer
}

// NewFormatArgsAnalyzer creates a new format_args analyzer.
func NewFormatArgsAnalyzer() *FormatArgsAnalyzer {
	return &FormatArgsAnalyzer{
		BaseAnalyzer: analyze.NewBaseAnalyzer(
			"format_args",
			"format-args",
			"Format macros should use named arguments over many positional slots",
			true,
		),
	}
}

// Apply flags format macros at or above the positional slot threshold.
func (a *FormatArgsAnalyzer) Apply(ctx *analyze.Context) ([]analyze.Issue, error) {
	snap := ctx.File

	var issues []analyze.Issue
	for _, mc := range snap.MacroCalls {
		if err := ctx.Cancelled(); err != nil {
			return issues, fmt.Errorf("analyzer cancelled: %w", err)
		}

		if !formatMacros[mc.Name] {
			continue
		}

		litRange, ok := firstStringIn(snap, mc.Args)
		if !ok {
			continue
		}
		lit := string(snap.Content[litRange.StartOffset:litRange.EndOffset])

		slots := parseFormatSlots(lit)
		positional := 0
		rewritable := true
		for _, s := range slots {
			if s.name == "" {
				positional++
			} else if isAllDigits(s.name) {
				// Indexed slots count as positional but are left alone.
				positional++
				rewritable = false
			}
		}
		if positional < formatThreshold {
			continue
		}

		builder := analyze.NewIssue(a.ID(), snap, mc.Range,
			"Use named format arguments instead of positional").
			WithSuggestion(fmt.Sprintf("%d positional placeholders in %s!; name them after their arguments", positional, mc.Name))

		trailing := splitArgs(snap, rsyntax.ByteRange{
			StartOffset: litRange.EndOffset,
			EndOffset:   mc.Args.EndOffset,
		})
		if rewritable && allBareIdents(trailing) && len(trailing) == positional {
			builder.WithFix(analyze.SimpleFix(rewriteNamed(snap, mc, litRange, lit, slots, trailing)))
		}

		issues = append(issues, builder.Build())
	}

	return issues, nil
}

// parseFormatSlots extracts the placeholders from a format string literal.
// Doubled braces are escapes, not placeholders.
func parseFormatSlots(lit string) []formatSlot {
	var slots []formatSlot
	for i := 0; i < len(lit); i++ {
		switch lit[i] {
		case '{':
			if i+1 < len(lit) && lit[i+1] == '{' {
				i++
				continue
			}
			end := strings.IndexByte(lit[i:], '}')
			if end < 0 {
				return slots
			}
			end += i
			inner := lit[i+1 : end]
			name, spec := inner, ""
			if colon := strings.IndexByte(inner, ':'); colon >= 0 {
				name, spec = inner[:colon], inner[colon:]
			}
			slots = append(slots, formatSlot{start: i, end: end + 1, name: name, spec: spec})
			i = end
		case '}':
			if i+1 < len(lit) && lit[i+1] == '}' {
				i++
			}
		}
	}
	return slots
}

// rewriteNamed rebuilds the macro invocation with each positional slot
// named after its matching argument and the trailing arguments removed.
// Arguments before the format string (the writer in write!/writeln!) are
// kept verbatim.
func rewriteNamed(
	snap *rsyntax.FileSnapshot,
	mc rsyntax.MacroCall,
	litRange rsyntax.ByteRange,
	lit string,
	slots []formatSlot,
	idents []string,
) string {
	var newLit strings.Builder
	cursor := 0
	next := 0
	for _, s := range slots {
		newLit.WriteString(lit[cursor:s.start])
		if s.name == "" {
			newLit.WriteString("{" + idents[next] + s.spec + "}")
			next++
		} else {
			newLit.WriteString(lit[s.start:s.end])
		}
		cursor = s.end
	}
	newLit.WriteString(lit[cursor:])

	open := snap.Content[mc.Args.StartOffset-1]
	var b strings.Builder
	b.WriteString(mc.Name)
	b.WriteByte('!')
	b.WriteByte(open)
	b.Write(snap.Content[mc.Args.StartOffset:litRange.StartOffset])
	b.WriteString(newLit.String())
	b.WriteByte(closingDelim(open))
	return b.String()
}

func closingDelim(open byte) byte {
	switch open {
	case '(':
		return ')'
	case '[':
		return ']'
	default:
		return '}'
	}
}

func allBareIdents(args []string) bool {
	if len(args) == 0 {
		return false
	}
	for _, arg := range args {
		if !isBareIdent(arg) {
			return false
		}
	}
	return true
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
