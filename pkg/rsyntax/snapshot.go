package rsyntax

import (
	"sort"
	"strings"
)

// Line describes one physical line of the source file.
type Line struct {
	// StartOffset is the byte offset of the first character of the line.
	StartOffset int

	// EndOffset is the byte offset just past the last character of the line,
	// excluding the trailing newline.
	EndOffset int
}

// Comment is a single comment found in the source.
type Comment struct {
	// Text is the raw comment text including the leading slashes.
	Text string

	// Range is the byte range of the comment.
	Range ByteRange

	// Span is the line/column range of the comment.
	Span Span

	// Doc is true for doc comments (/// or //!).
	Doc bool

	// Block is true for /* ... */ comments.
	Block bool
}

// Function describes a fn item or method and its body.
type Function struct {
	// Name is the function identifier.
	Name string

	// Span covers the signature through the closing body brace.
	Span Span

	// Body is the byte range between the body braces, exclusive of both.
	Body ByteRange

	// BodyStartLine is the line containing the opening brace.
	BodyStartLine int

	// BodyEndLine is the line containing the closing brace.
	BodyEndLine int
}

// PathCall is a seg::seg::name expression, optionally followed by a call
// argument list.
type PathCall struct {
	// Segments are the :: separated path segments in order.
	Segments []string

	// HasArgs is true when the path is immediately followed by "(".
	// Type::CONST references have HasArgs == false.
	HasArgs bool

	// Range is the byte range of the path itself, excluding arguments.
	Range ByteRange

	// Span is the line/column range of the path.
	Span Span
}

// Path returns the full path joined with "::".
func (p PathCall) Path() string {
	return strings.Join(p.Segments, "::")
}

// Last returns the final path segment.
func (p PathCall) Last() string {
	if len(p.Segments) == 0 {
		return ""
	}
	return p.Segments[len(p.Segments)-1]
}

// MacroCall is a name!(...) invocation.
type MacroCall struct {
	// Name is the macro identifier without the bang.
	Name string

	// Range covers the full invocation, from the name through the closing
	// delimiter.
	Range ByteRange

	// Args is the byte range inside the delimiters.
	Args ByteRange

	// Span is the line/column range of the full invocation.
	Span Span
}

// FileSnapshot is the parsed representation of one source file.
// It is immutable after parsing and safe for concurrent readers.
type FileSnapshot struct {
	// Path is the file path used in diagnostics.
	Path string

	// Content is the raw file content.
	Content []byte

	// Lines indexes the physical lines of Content.
	Lines []Line

	// Comments are all comments in source order.
	Comments []Comment

	// Functions are all fn items in source order.
	Functions []Function

	// PathCalls are all multi-segment path expressions in source order.
	PathCalls []PathCall

	// MacroCalls are all macro invocations in source order.
	MacroCalls []MacroCall

	// Strings are the byte ranges of all string literals, in source order,
	// including the surrounding quotes.
	Strings []ByteRange

	// depth[i] is the brace depth at byte i, with string and comment
	// content masked out.
	depth []int
}

// LineAt returns the 1-based line and 0-based column for a byte offset.
func (s *FileSnapshot) LineAt(offset int) (line, col int) {
	if len(s.Lines) == 0 {
		return 1, 0
	}
	idx := sort.Search(len(s.Lines), func(i int) bool {
		return s.Lines[i].EndOffset+1 > offset
	})
	if idx >= len(s.Lines) {
		idx = len(s.Lines) - 1
	}
	return idx + 1, offset - s.Lines[idx].StartOffset
}

// SpanOf converts a byte range into a line/column span.
func (s *FileSnapshot) SpanOf(r ByteRange) Span {
	startLine, startCol := s.LineAt(r.StartOffset)
	endLine, endCol := s.LineAt(r.EndOffset)
	return Span{
		StartLine: startLine,
		StartCol:  startCol,
		EndLine:   endLine,
		EndCol:    endCol,
	}
}

// LineText returns the text of the given 1-based line, without the newline.
func (s *FileSnapshot) LineText(lineNum int) string {
	if lineNum < 1 || lineNum > len(s.Lines) {
		return ""
	}
	ln := s.Lines[lineNum-1]
	return string(s.Content[ln.StartOffset:ln.EndOffset])
}

// IsBlankLine returns true if the given 1-based line is empty or whitespace.
func (s *FileSnapshot) IsBlankLine(lineNum int) bool {
	return strings.TrimSpace(s.LineText(lineNum)) == ""
}

// LineRange returns the byte range of a 1-based line including its trailing
// newline, if any. Deleting this range removes the whole line.
func (s *FileSnapshot) LineRange(lineNum int) ByteRange {
	if lineNum < 1 || lineNum > len(s.Lines) {
		return ByteRange{}
	}
	ln := s.Lines[lineNum-1]
	end := ln.EndOffset
	if end < len(s.Content) && s.Content[end] == '\n' {
		end++
	}
	return ByteRange{StartOffset: ln.StartOffset, EndOffset: end}
}

// DepthAt returns the brace depth at the given byte offset.
// Depth is computed on masked content, so braces inside strings and
// comments do not count.
func (s *FileSnapshot) DepthAt(offset int) int {
	if offset < 0 || offset >= len(s.depth) {
		return 0
	}
	return s.depth[offset]
}

// EnclosingFunction returns the function whose body contains the given
// byte offset, or nil if the offset is not inside any body.
func (s *FileSnapshot) EnclosingFunction(offset int) *Function {
	for i := range s.Functions {
		if s.Functions[i].Body.Contains(offset) {
			return &s.Functions[i]
		}
	}
	return nil
}

// splitLines builds the line index for content.
func splitLines(content []byte) []Line {
	lines := []Line{}
	start := 0
	for i, b := range content {
		if b == '\n' {
			lines = append(lines, Line{StartOffset: start, EndOffset: i})
			start = i + 1
		}
	}
	// Final line without trailing newline.
	if start < len(content) || len(lines) == 0 {
		lines = append(lines, Line{StartOffset: start, EndOffset: len(content)})
	}
	return lines
}
