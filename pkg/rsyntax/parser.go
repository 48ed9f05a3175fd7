package rsyntax

import (
	"context"
	"fmt"
	"strings"
)

// Parse builds a FileSnapshot for one source file.
//
// The returned snapshot satisfies:
//   - snapshot.Path == path
//   - snapshot.Content is the content slice passed in (not copied)
//   - all recorded elements appear in source order
//
// Parse is deterministic for a given (path, content) pair and performs no
// I/O; path is used only for error messages and diagnostics.
func Parse(ctx context.Context, path string, content []byte) (*FileSnapshot, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("parse %s: %w", path, ctx.Err())
	default:
	}

	lines := splitLines(content)

	scanned, err := scan(path, content, lines)
	if err != nil {
		return nil, err
	}

	snap := &FileSnapshot{
		Path:     path,
		Content:  content,
		Lines:    lines,
		Comments: scanned.comments,
		Strings:  scanned.strings,
	}

	if err := snap.buildDepth(scanned.masked); err != nil {
		return nil, err
	}
	snap.collectFunctions(scanned.masked)
	snap.collectPathCalls(scanned.masked)
	snap.collectMacroCalls(scanned.masked)

	return snap, nil
}

// buildDepth computes the brace depth at every byte position.
// depth[i] is the depth before consuming byte i.
func (s *FileSnapshot) buildDepth(masked []byte) error {
	s.depth = make([]int, len(masked)+1)
	d := 0
	for i, b := range masked {
		s.depth[i] = d
		switch b {
		case '{':
			d++
		case '}':
			d--
			if d < 0 {
				line, col := s.LineAt(i)
				return &ParseError{Path: s.Path, Line: line, Col: col, Msg: "unbalanced closing brace"}
			}
		}
	}
	s.depth[len(masked)] = d
	if d != 0 {
		line, col := s.LineAt(len(masked))
		return &ParseError{Path: s.Path, Line: line, Col: col, Msg: fmt.Sprintf("%d unclosed brace(s)", d)}
	}
	return nil
}

// collectFunctions finds fn items and records their body ranges.
func (s *FileSnapshot) collectFunctions(masked []byte) {
	i := 0
	for i < len(masked) {
		kw := indexWord(masked, i, "fn")
		if kw < 0 {
			return
		}
		fnStart := kw
		j := kw + len("fn")
		j = skipSpaces(masked, j)

		nameStart := j
		for j < len(masked) && isIdentByte(masked[j]) {
			j++
		}
		if j == nameStart {
			i = kw + 2
			continue
		}
		name := string(masked[nameStart:j])

		// Find the body's opening brace. A semicolon first means a trait or
		// extern declaration without a body.
		bodyOpen := -1
		for k := j; k < len(masked); k++ {
			if masked[k] == ';' {
				break
			}
			if masked[k] == '{' {
				bodyOpen = k
				break
			}
		}
		if bodyOpen < 0 {
			i = j
			continue
		}

		bodyClose := matchBrace(masked, bodyOpen)
		if bodyClose < 0 {
			return
		}

		startLine, _ := s.LineAt(bodyOpen)
		endLine, _ := s.LineAt(bodyClose)
		s.Functions = append(s.Functions, Function{
			Name:          name,
			Span:          s.SpanOf(ByteRange{StartOffset: fnStart, EndOffset: bodyClose + 1}),
			Body:          ByteRange{StartOffset: bodyOpen + 1, EndOffset: bodyClose},
			BodyStartLine: startLine,
			BodyEndLine:   endLine,
		})

		// Continue after the signature; nested fns inside the body are
		// found because the search resumes before the body.
		i = bodyOpen + 1
	}
}

// collectPathCalls finds seg::seg::name expressions outside use statements.
func (s *FileSnapshot) collectPathCalls(masked []byte) {
	i := 0
	for i < len(masked) {
		if !isIdentStartByte(masked[i]) {
			i++
			continue
		}
		start := i
		segs, end := scanPathSegments(masked, i)
		if len(segs) < 2 {
			i = end
			continue
		}

		if s.inImportOrAttribute(start) {
			i = end
			continue
		}

		hasArgs := false
		k := skipSpaces(masked, end)
		if k < len(masked) && masked[k] == '(' {
			hasArgs = true
		}

		r := ByteRange{StartOffset: start, EndOffset: end}
		s.PathCalls = append(s.PathCalls, PathCall{
			Segments: segs,
			HasArgs:  hasArgs,
			Range:    r,
			Span:     s.SpanOf(r),
		})
		i = end
	}
}

// inImportOrAttribute reports whether the line containing offset is a use
// declaration, a mod declaration, or an attribute. Paths there are not
// expressions and must not be flagged.
func (s *FileSnapshot) inImportOrAttribute(offset int) bool {
	line, _ := s.LineAt(offset)
	text := strings.TrimSpace(s.LineText(line))
	for _, prefix := range []string{"use ", "pub use ", "pub(crate) use ", "mod ", "pub mod ", "#"} {
		if strings.HasPrefix(text, prefix) {
			return true
		}
	}
	return false
}

// collectMacroCalls finds name!(...) invocations with any delimiter.
func (s *FileSnapshot) collectMacroCalls(masked []byte) {
	i := 0
	for i < len(masked) {
		if !isIdentStartByte(masked[i]) {
			i++
			continue
		}
		start := i
		for i < len(masked) && isIdentByte(masked[i]) {
			i++
		}
		if i >= len(masked) || masked[i] != '!' {
			continue
		}
		name := string(masked[start:i])
		j := skipSpaces(masked, i+1)
		if j >= len(masked) {
			return
		}
		open := masked[j]
		if open != '(' && open != '[' && open != '{' {
			continue
		}
		closeIdx := matchDelim(masked, j)
		if closeIdx < 0 {
			return
		}

		r := ByteRange{StartOffset: start, EndOffset: closeIdx + 1}
		s.MacroCalls = append(s.MacroCalls, MacroCall{
			Name:  name,
			Range: r,
			Args:  ByteRange{StartOffset: j + 1, EndOffset: closeIdx},
			Span:  s.SpanOf(r),
		})
		i = j + 1
	}
}

// scanPathSegments reads ident(::ident)* starting at i on masked content.
// Returns the segments and the offset just past the last segment.
// A "<" inside the path (turbofish or generics) terminates the scan before
// the generic arguments; the path up to that point is kept.
func scanPathSegments(masked []byte, i int) ([]string, int) {
	var segs []string
	end := i
	for {
		segStart := end
		for end < len(masked) && isIdentByte(masked[end]) {
			end++
		}
		if end == segStart {
			break
		}
		segs = append(segs, string(masked[segStart:end]))
		if end+1 < len(masked) && masked[end] == ':' && masked[end+1] == ':' {
			next := end + 2
			if next < len(masked) && isIdentStartByte(masked[next]) {
				end = next
				continue
			}
		}
		break
	}
	if len(segs) < 2 {
		// Advance past the single identifier so the caller makes progress.
		for end < len(masked) && isIdentByte(masked[end]) {
			end++
		}
	}
	return segs, end
}

// matchBrace returns the offset of the '}' matching the '{' at open.
func matchBrace(masked []byte, open int) int {
	depth := 0
	for i := open; i < len(masked); i++ {
		switch masked[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// matchDelim returns the offset of the delimiter matching the one at open.
func matchDelim(masked []byte, open int) int {
	var close byte
	switch masked[open] {
	case '(':
		close = ')'
	case '[':
		close = ']'
	case '{':
		close = '}'
	default:
		return -1
	}
	depth := 0
	for i := open; i < len(masked); i++ {
		switch masked[i] {
		case masked[open]:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// indexWord finds the next occurrence of word at or after i that is
// delimited by non-identifier bytes on both sides.
func indexWord(masked []byte, i int, word string) int {
	for {
		idx := indexFrom(masked, i, word)
		if idx < 0 {
			return -1
		}
		beforeOK := idx == 0 || !isIdentByte(masked[idx-1])
		afterIdx := idx + len(word)
		afterOK := afterIdx >= len(masked) || !isIdentByte(masked[afterIdx])
		if beforeOK && afterOK {
			return idx
		}
		i = idx + 1
	}
}

func indexFrom(masked []byte, i int, sub string) int {
	idx := strings.Index(string(masked[i:]), sub)
	if idx < 0 {
		return -1
	}
	return i + idx
}

func skipSpaces(masked []byte, i int) int {
	for i < len(masked) && (masked[i] == ' ' || masked[i] == '\t' || masked[i] == '\n' || masked[i] == '\r') {
		i++
	}
	return i
}

func isIdentStartByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z')
}
