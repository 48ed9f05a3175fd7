package analyzers

import (
	"sort"
	"strings"

	"github.com/yaklabco/gorslint/pkg/rsyntax"
)

// inString reports whether the byte at offset is inside a string literal.
func inString(snap *rsyntax.FileSnapshot, offset int) bool {
	idx := sort.Search(len(snap.Strings), func(i int) bool {
		return snap.Strings[i].EndOffset > offset
	})
	return idx < len(snap.Strings) && snap.Strings[idx].Contains(offset)
}

// firstStringIn returns the first string literal fully inside r.
func firstStringIn(snap *rsyntax.FileSnapshot, r rsyntax.ByteRange) (rsyntax.ByteRange, bool) {
	for _, s := range snap.Strings {
		if s.StartOffset >= r.StartOffset && s.EndOffset <= r.EndOffset {
			return s, true
		}
	}
	return rsyntax.ByteRange{}, false
}

// matchParen returns the offset of the ')' matching the '(' at open,
// ignoring parentheses inside string literals. Returns -1 if unmatched.
func matchParen(snap *rsyntax.FileSnapshot, open int) int {
	if open < 0 || open >= len(snap.Content) || snap.Content[open] != '(' {
		return -1
	}
	depth := 0
	for i := open; i < len(snap.Content); i++ {
		if inString(snap, i) {
			continue
		}
		switch snap.Content[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitArgs splits the text of r at top-level commas, respecting nested
// delimiters and string literals. Each argument is returned trimmed.
// An empty or all-whitespace range yields no arguments.
func splitArgs(snap *rsyntax.FileSnapshot, r rsyntax.ByteRange) []string {
	var args []string
	depth := 0
	start := r.StartOffset

	flush := func(end int) {
		text := strings.TrimSpace(string(snap.Content[start:end]))
		if text != "" {
			args = append(args, text)
		}
	}

	for i := r.StartOffset; i < r.EndOffset && i < len(snap.Content); i++ {
		if inString(snap, i) {
			continue
		}
		switch snap.Content[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				flush(i)
				start = i + 1
			}
		}
	}
	flush(r.EndOffset)
	return args
}

// isBareIdent reports whether s is a plain identifier with no operators,
// calls, or field accesses.
func isBareIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		b := s[i]
		switch {
		case b == '_':
		case b >= 'a' && b <= 'z':
		case b >= 'A' && b <= 'Z':
		case b >= '0' && b <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// innermostFunction returns the function with the smallest body containing
// offset, or nil. Nested functions shadow their enclosing function so a
// line is attributed to exactly one body.
func innermostFunction(snap *rsyntax.FileSnapshot, offset int) *rsyntax.Function {
	var best *rsyntax.Function
	for i := range snap.Functions {
		fn := &snap.Functions[i]
		if !fn.Body.Contains(offset) {
			continue
		}
		if best == nil || fn.Body.Len() < best.Body.Len() {
			best = fn
		}
	}
	return best
}
