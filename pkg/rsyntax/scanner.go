package rsyntax

import (
	"fmt"
	"strings"
)

// ParseError reports a syntax problem that prevents building a snapshot.
// A parse error is fatal for the file but never for the whole run.
type ParseError struct {
	Path string
	Line int
	Col  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Col, e.Msg)
}

// scanResult holds the output of the masking scan.
type scanResult struct {
	// masked is a copy of the content with string literals, char literals,
	// and comment bodies replaced by spaces. Newlines are preserved so
	// offsets and line numbers stay aligned with the original.
	masked []byte

	comments []Comment
	strings  []ByteRange
}

// scan walks content once, recording comments and string literals and
// producing a masked copy for structural analysis.
func scan(path string, content []byte, lines []Line) (*scanResult, error) {
	res := &scanResult{masked: make([]byte, len(content))}
	copy(res.masked, content)

	errAt := func(offset int, msg string) *ParseError {
		line, col := lineColAt(lines, offset)
		return &ParseError{Path: path, Line: line, Col: col, Msg: msg}
	}

	i := 0
	for i < len(content) {
		c := content[i]

		switch {
		case c == '/' && i+1 < len(content) && content[i+1] == '/':
			end := i
			for end < len(content) && content[end] != '\n' {
				end++
			}
			text := string(content[i:end])
			r := ByteRange{StartOffset: i, EndOffset: end}
			res.comments = append(res.comments, Comment{
				Text:  text,
				Range: r,
				Doc:   isDocLine(text),
			})
			maskRange(res.masked, i, end)
			i = end

		case c == '/' && i+1 < len(content) && content[i+1] == '*':
			end, ok := scanBlockComment(content, i)
			if !ok {
				return nil, errAt(i, "unterminated block comment")
			}
			text := string(content[i:end])
			r := ByteRange{StartOffset: i, EndOffset: end}
			res.comments = append(res.comments, Comment{
				Text:  text,
				Range: r,
				Doc:   strings.HasPrefix(text, "/**") || strings.HasPrefix(text, "/*!"),
				Block: true,
			})
			maskRange(res.masked, i, end)
			i = end

		case c == '"':
			end, ok := scanString(content, i)
			if !ok {
				return nil, errAt(i, "unterminated string literal")
			}
			res.strings = append(res.strings, ByteRange{StartOffset: i, EndOffset: end})
			maskRange(res.masked, i, end)
			i = end

		case c == 'r' && isRawStringStart(content, i):
			end, ok := scanRawString(content, i)
			if !ok {
				return nil, errAt(i, "unterminated raw string literal")
			}
			res.strings = append(res.strings, ByteRange{StartOffset: i, EndOffset: end})
			maskRange(res.masked, i, end)
			i = end

		case c == 'b' && i+1 < len(content) && content[i+1] == '"':
			end, ok := scanString(content, i+1)
			if !ok {
				return nil, errAt(i, "unterminated byte string literal")
			}
			res.strings = append(res.strings, ByteRange{StartOffset: i, EndOffset: end})
			maskRange(res.masked, i, end)
			i = end

		case c == '\'':
			if end, isChar := scanCharLiteral(content, i); isChar {
				maskRange(res.masked, i, end)
				i = end
			} else {
				// Lifetime such as 'a or '_: keep the tick, it is harmless
				// for structural scanning.
				i++
			}

		default:
			i++
		}
	}

	for idx := range res.comments {
		// Spans are filled in here so the scan loop stays simple.
		c := &res.comments[idx]
		sl, sc := lineColAt(lines, c.Range.StartOffset)
		el, ec := lineColAt(lines, c.Range.EndOffset)
		c.Span = Span{StartLine: sl, StartCol: sc, EndLine: el, EndCol: ec}
	}

	return res, nil
}

// isDocLine reports whether a line comment is a doc comment.
// "///" and "//!" are docs; "////" and beyond are treated as plain
// decoration, matching rustdoc behavior.
func isDocLine(text string) bool {
	if strings.HasPrefix(text, "//!") {
		return true
	}
	return strings.HasPrefix(text, "///") && !strings.HasPrefix(text, "////")
}

// maskRange blanks [start, end) with spaces, preserving newlines.
func maskRange(masked []byte, start, end int) {
	for i := start; i < end && i < len(masked); i++ {
		if masked[i] != '\n' {
			masked[i] = ' '
		}
	}
}

// scanBlockComment returns the offset just past a (possibly nested) block
// comment starting at i.
func scanBlockComment(content []byte, i int) (int, bool) {
	depth := 0
	for i < len(content) {
		if content[i] == '/' && i+1 < len(content) && content[i+1] == '*' {
			depth++
			i += 2
			continue
		}
		if content[i] == '*' && i+1 < len(content) && content[i+1] == '/' {
			depth--
			i += 2
			if depth == 0 {
				return i, true
			}
			continue
		}
		i++
	}
	return i, false
}

// scanString returns the offset just past a quoted string starting at i.
func scanString(content []byte, i int) (int, bool) {
	i++ // opening quote
	for i < len(content) {
		switch content[i] {
		case '\\':
			i += 2
		case '"':
			return i + 1, true
		default:
			i++
		}
	}
	return i, false
}

// isRawStringStart reports whether content[i] begins r"..." or r#"..."#,
// including the br / rb prefixed byte forms.
func isRawStringStart(content []byte, i int) bool {
	j := i + 1
	for j < len(content) && content[j] == '#' {
		j++
	}
	return j < len(content) && content[j] == '"' &&
		(i == 0 || !isIdentByte(content[i-1]))
}

// scanRawString returns the offset just past a raw string starting at i.
func scanRawString(content []byte, i int) (int, bool) {
	i++ // 'r'
	hashes := 0
	for i < len(content) && content[i] == '#' {
		hashes++
		i++
	}
	if i >= len(content) || content[i] != '"' {
		return i, false
	}
	i++
	for i < len(content) {
		if content[i] == '"' {
			j := i + 1
			n := 0
			for j < len(content) && content[j] == '#' && n < hashes {
				j++
				n++
			}
			if n == hashes {
				return j, true
			}
		}
		i++
	}
	return i, false
}

// scanCharLiteral distinguishes 'x' style char literals from lifetimes.
// Returns (end, true) for a char literal, (_, false) for a lifetime tick.
func scanCharLiteral(content []byte, i int) (int, bool) {
	if i+1 >= len(content) {
		return i + 1, false
	}
	next := content[i+1]

	if next == '\\' {
		// Escaped char: scan to the closing quote.
		j := i + 2
		if j < len(content) {
			j++ // escaped character
		}
		for j < len(content) && content[j] != '\'' && content[j] != '\n' {
			j++
		}
		if j < len(content) && content[j] == '\'' {
			return j + 1, true
		}
		return j, true
	}

	// 'x' where x is a single char followed by a closing quote.
	if i+2 < len(content) && content[i+2] == '\'' {
		return i + 3, true
	}

	// Otherwise it is a lifetime ('a, '_ or 'static).
	return i + 1, false
}

func isIdentByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

// lineColAt is the line lookup used before a snapshot exists.
func lineColAt(lines []Line, offset int) (int, int) {
	for i, ln := range lines {
		if offset <= ln.EndOffset {
			return i + 1, offset - ln.StartOffset
		}
	}
	if len(lines) == 0 {
		return 1, 0
	}
	last := len(lines) - 1
	return last + 1, offset - lines[last].StartOffset
}
