// Package langdetect confirms that files handed to the analyzer actually
// contain Rust source. Discovery matches on extension; this guards against
// mislabeled files that would otherwise surface as parse failures.
package langdetect

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// langRust is the go-enry name for Rust.
const langRust = "Rust"

// sniffLen is how many bytes of a file are read for detection.
const sniffLen = 8192

// IsRust reports whether content looks like Rust source.
// Empty content is accepted; an empty source file is valid.
func IsRust(filename string, content []byte) bool {
	if len(bytes.TrimSpace(content)) == 0 {
		return true
	}

	if lang := enry.GetLanguage(filename, content); lang == langRust {
		return true
	}

	// enry leans on the classifier for short snippets; fall back to
	// unambiguous surface patterns before rejecting.
	return hasRustPattern(string(content))
}

// ConfirmFile reads a prefix of the file at path and confirms Rust content.
// Unreadable files are rejected; the pipeline will report the read error
// in full when it processes them.
func ConfirmFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return false
	}

	return IsRust(filepath.Base(path), buf[:n])
}

// hasRustPattern checks for constructs that identify Rust with high
// confidence even in small fragments.
func hasRustPattern(content string) bool {
	patterns := []string{
		"fn ",
		"let mut ",
		"println!",
		"impl ",
		"pub fn ",
		"#[derive(",
		"-> Result<",
	}
	for _, p := range patterns {
		if strings.Contains(content, p) {
			return true
		}
	}
	return strings.Contains(content, "use ") && strings.Contains(content, "::")
}
