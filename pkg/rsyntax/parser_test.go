package rsyntax_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/yaklabco/gorslint/pkg/rsyntax"
)

func mustParse(t *testing.T, content string) *rsyntax.FileSnapshot {
	t.Helper()

	snap, err := rsyntax.Parse(context.Background(), "test.rs", []byte(content))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return snap
}

func rangeText(snap *rsyntax.FileSnapshot, r rsyntax.ByteRange) string {
	return string(snap.Content[r.StartOffset:r.EndOffset])
}

func TestParse_CommentClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		doc     bool
		block   bool
	}{
		{
			name:    "plain line comment",
			content: "// plain\n",
			doc:     false,
			block:   false,
		},
		{
			name:    "outer doc comment",
			content: "/// documented\n",
			doc:     true,
			block:   false,
		},
		{
			name:    "inner doc comment",
			content: "//! module docs\n",
			doc:     true,
			block:   false,
		},
		{
			name:    "quadruple slash is decoration",
			content: "//// ------------\n",
			doc:     false,
			block:   false,
		},
		{
			name:    "block comment",
			content: "/* block */\n",
			doc:     false,
			block:   true,
		},
		{
			name:    "block doc comment",
			content: "/** block docs */\n",
			doc:     true,
			block:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			snap := mustParse(t, tt.content)
			if len(snap.Comments) != 1 {
				t.Fatalf("expected 1 comment, got %d", len(snap.Comments))
			}

			c := snap.Comments[0]
			if c.Doc != tt.doc {
				t.Errorf("Doc = %v, want %v", c.Doc, tt.doc)
			}
			if c.Block != tt.block {
				t.Errorf("Block = %v, want %v", c.Block, tt.block)
			}
			if !strings.HasPrefix(tt.content, c.Text) {
				t.Errorf("Text %q is not a prefix of the source", c.Text)
			}
		})
	}
}

func TestParse_NestedBlockComment(t *testing.T) {
	t.Parallel()

	snap := mustParse(t, "/* outer /* inner */ still outer */\nfn main() {}\n")

	if len(snap.Comments) != 1 {
		t.Fatalf("expected 1 comment, got %d", len(snap.Comments))
	}
	if got := snap.Comments[0].Text; got != "/* outer /* inner */ still outer */" {
		t.Errorf("comment text = %q", got)
	}
	if len(snap.Functions) != 1 {
		t.Errorf("expected 1 function after comment, got %d", len(snap.Functions))
	}
}

func TestParse_Functions(t *testing.T) {
	t.Parallel()

	content := `fn outer() {
    fn inner() {
        let x = 1;
    }
}
`
	snap := mustParse(t, content)

	if len(snap.Functions) != 2 {
		t.Fatalf("expected 2 functions, got %d", len(snap.Functions))
	}

	outer := snap.Functions[0]
	if outer.Name != "outer" {
		t.Errorf("first function = %q, want outer", outer.Name)
	}
	if outer.BodyStartLine != 1 || outer.BodyEndLine != 5 {
		t.Errorf("outer body lines = %d..%d, want 1..5", outer.BodyStartLine, outer.BodyEndLine)
	}

	inner := snap.Functions[1]
	if inner.Name != "inner" {
		t.Errorf("second function = %q, want inner", inner.Name)
	}
	if inner.BodyStartLine != 2 || inner.BodyEndLine != 4 {
		t.Errorf("inner body lines = %d..%d, want 2..4", inner.BodyStartLine, inner.BodyEndLine)
	}
	if inner.Body.Len() >= outer.Body.Len() {
		t.Errorf("inner body should be smaller than outer body")
	}
}

func TestParse_FunctionWithoutBody(t *testing.T) {
	t.Parallel()

	content := `trait Shape {
    fn area(&self) -> f64;
}
`
	snap := mustParse(t, content)

	if len(snap.Functions) != 0 {
		t.Errorf("trait declarations have no body, got %d functions", len(snap.Functions))
	}
}

func TestParse_FunctionKeywordInComment(t *testing.T) {
	t.Parallel()

	snap := mustParse(t, "// fn fake() {}\nfn real() {}\n")

	if len(snap.Functions) != 1 {
		t.Fatalf("expected 1 function, got %d", len(snap.Functions))
	}
	if snap.Functions[0].Name != "real" {
		t.Errorf("function = %q, want real", snap.Functions[0].Name)
	}
}

func TestParse_PathCalls(t *testing.T) {
	t.Parallel()

	content := `use std::fs;

fn main() {
    let d = std::fs::read_to_string("a.txt");
    let v = Vec::new();
}
`
	snap := mustParse(t, content)

	if len(snap.PathCalls) != 2 {
		t.Fatalf("expected 2 path calls, got %d: %+v", len(snap.PathCalls), snap.PathCalls)
	}

	first := snap.PathCalls[0]
	if first.Path() != "std::fs::read_to_string" {
		t.Errorf("first path = %q", first.Path())
	}
	if first.Last() != "read_to_string" {
		t.Errorf("first last segment = %q", first.Last())
	}
	if !first.HasArgs {
		t.Error("first path call should have args")
	}
	if got := rangeText(snap, first.Range); got != "std::fs::read_to_string" {
		t.Errorf("first range text = %q", got)
	}

	second := snap.PathCalls[1]
	if second.Path() != "Vec::new" {
		t.Errorf("second path = %q", second.Path())
	}
	if !second.HasArgs {
		t.Error("second path call should have args")
	}
}

func TestParse_PathWithoutArgs(t *testing.T) {
	t.Parallel()

	content := "fn main() {\n    let max = i32::MAX;\n}\n"
	snap := mustParse(t, content)

	if len(snap.PathCalls) != 1 {
		t.Fatalf("expected 1 path call, got %d", len(snap.PathCalls))
	}
	pc := snap.PathCalls[0]
	if pc.Path() != "i32::MAX" {
		t.Errorf("path = %q", pc.Path())
	}
	if pc.HasArgs {
		t.Error("constant reference should not have args")
	}
}

func TestParse_PathsOnDeclarationLinesIgnored(t *testing.T) {
	t.Parallel()

	content := `use std::collections::HashMap;
pub use crate::util::helpers;
mod tests;
#[derive(Debug)]
struct S;
`
	snap := mustParse(t, content)

	if len(snap.PathCalls) != 0 {
		t.Errorf("declaration lines must not produce path calls, got %+v", snap.PathCalls)
	}
}

func TestParse_MacroCalls(t *testing.T) {
	t.Parallel()

	content := `fn main() {
    println!("hello {}", name);
    let v = vec![1, 2];
}
`
	snap := mustParse(t, content)

	if len(snap.MacroCalls) != 2 {
		t.Fatalf("expected 2 macro calls, got %d", len(snap.MacroCalls))
	}

	pl := snap.MacroCalls[0]
	if pl.Name != "println" {
		t.Errorf("first macro = %q", pl.Name)
	}
	if got := rangeText(snap, pl.Args); got != `"hello {}", name` {
		t.Errorf("println args = %q", got)
	}
	if got := rangeText(snap, pl.Range); got != `println!("hello {}", name)` {
		t.Errorf("println range = %q", got)
	}

	vc := snap.MacroCalls[1]
	if vc.Name != "vec" {
		t.Errorf("second macro = %q", vc.Name)
	}
	if got := rangeText(snap, vc.Args); got != "1, 2" {
		t.Errorf("vec args = %q", got)
	}
}

func TestParse_StringsAndDepth(t *testing.T) {
	t.Parallel()

	content := "fn main() {\n    let s = \"}}{\";\n}\n"
	snap := mustParse(t, content)

	if len(snap.Strings) != 1 {
		t.Fatalf("expected 1 string, got %d", len(snap.Strings))
	}
	if got := rangeText(snap, snap.Strings[0]); got != `"}}{"` {
		t.Errorf("string text = %q", got)
	}

	letOffset := strings.Index(content, "let")
	if d := snap.DepthAt(letOffset); d != 1 {
		t.Errorf("depth inside body = %d, want 1", d)
	}
	if d := snap.DepthAt(0); d != 0 {
		t.Errorf("depth at top level = %d, want 0", d)
	}
}

func TestParse_RawString(t *testing.T) {
	t.Parallel()

	content := "fn main() {\n    let s = r#\"has \"quotes\" and { brace\"#;\n}\n"
	snap := mustParse(t, content)

	if len(snap.Strings) != 1 {
		t.Fatalf("expected 1 string, got %d", len(snap.Strings))
	}
	if got := rangeText(snap, snap.Strings[0]); got != `r#"has "quotes" and { brace"#` {
		t.Errorf("raw string text = %q", got)
	}
}

func TestParse_CharLiteralsAndLifetimes(t *testing.T) {
	t.Parallel()

	content := "fn main() {\n    let c = '}';\n    let s: &'static str = \"x\";\n}\n"
	snap := mustParse(t, content)

	if len(snap.Functions) != 1 {
		t.Errorf("expected 1 function, got %d", len(snap.Functions))
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{
			name:    "unbalanced closing brace",
			content: "}\n",
			wantMsg: "unbalanced closing brace",
		},
		{
			name:    "unclosed brace",
			content: "fn main() {\n",
			wantMsg: "unclosed brace",
		},
		{
			name:    "unterminated string",
			content: "fn main() {\n    let s = \"abc;\n}\n",
			wantMsg: "unterminated string literal",
		},
		{
			name:    "unterminated block comment",
			content: "/* never ends\n",
			wantMsg: "unterminated block comment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := rsyntax.Parse(context.Background(), "bad.rs", []byte(tt.content))
			if err == nil {
				t.Fatal("expected parse error")
			}

			var perr *rsyntax.ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("error type = %T, want *ParseError", err)
			}
			if perr.Path != "bad.rs" {
				t.Errorf("error path = %q", perr.Path)
			}
			if !strings.Contains(perr.Msg, tt.wantMsg) {
				t.Errorf("error msg = %q, want substring %q", perr.Msg, tt.wantMsg)
			}
		})
	}
}

func TestParse_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := rsyntax.Parse(ctx, "test.rs", []byte("fn main() {}\n"))
	if err == nil {
		t.Fatal("expected error from cancelled context")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
