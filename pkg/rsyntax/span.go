// Package rsyntax provides a lightweight syntax model for Rust-style source
// files. It parses a file once into a FileSnapshot that analyzers share
// read-only: lines, comments, function bodies, path-call expressions, and
// macro invocations, each carrying both byte offsets and line/column spans.
package rsyntax

// ByteRange represents a byte range in the source content.
type ByteRange struct {
	// StartOffset is the byte index where the range begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the range ends (exclusive).
	EndOffset int
}

// Len returns the length of the range in bytes.
func (r ByteRange) Len() int {
	return r.EndOffset - r.StartOffset
}

// IsEmpty returns true if the range has zero length.
func (r ByteRange) IsEmpty() bool {
	return r.StartOffset == r.EndOffset
}

// Contains returns true if the given offset is within this range.
func (r ByteRange) Contains(offset int) bool {
	return offset >= r.StartOffset && offset < r.EndOffset
}

// Span represents a source range in line/column terms.
// Lines are 1-based; columns are 0-based byte columns within the line.
type Span struct {
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// IsValid returns true if the span has positive line numbers and
// non-negative columns.
func (s Span) IsValid() bool {
	return s.StartLine > 0 && s.EndLine > 0 && s.StartCol >= 0 && s.EndCol >= 0
}

// IsSingleLine returns true if start and end are on the same line.
func (s Span) IsSingleLine() bool {
	return s.StartLine == s.EndLine
}
