package analyzers_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/gorslint/pkg/analyze/analyzers"
)

func TestInlineComments_FlagsBodyComment(t *testing.T) {
	t.Parallel()

	content := `fn main() {
    // tricky edge case
    let x = compute();
}
`
	a := analyzers.NewInlineCommentsAnalyzer()
	issues := runAnalyzer(t, a, content)

	if len(issues) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(issues))
	}

	issue := issues[0]
	if issue.Message != `Inline comment found: "tricky edge case"` {
		t.Errorf("message = %q", issue.Message)
	}
	if issue.HasFix() {
		t.Error("inline comment issues are advisory and carry no fix")
	}
	if !strings.Contains(issue.Suggestion, "# Notes") {
		t.Errorf("suggestion = %q, should mention the doc Notes section", issue.Suggestion)
	}
	if !strings.Contains(issue.Suggestion, "`let x = compute();`") {
		t.Errorf("suggestion = %q, should quote the described code line", issue.Suggestion)
	}
}

func TestInlineComments_NoRelatedCodeBeforeClosingBrace(t *testing.T) {
	t.Parallel()

	content := `fn main() {
    let a = 1;
    // trailing note
}
`
	a := analyzers.NewInlineCommentsAnalyzer()
	issues := runAnalyzer(t, a, content)

	if len(issues) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(issues))
	}
	if strings.Contains(issues[0].Suggestion, "`") {
		t.Errorf("suggestion = %q, should not quote a code line", issues[0].Suggestion)
	}
}

func TestInlineComments_QuietCases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "doc comment inside body",
			content: "fn main() {\n    /// documented helper\n    fn helper() {}\n}\n",
		},
		{
			name:    "block comment inside body",
			content: "fn main() {\n    /* block */\n    let a = 1;\n}\n",
		},
		{
			name:    "comment outside any function",
			content: "// file header note\nfn main() {}\n",
		},
	}

	a := analyzers.NewInlineCommentsAnalyzer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if issues := runAnalyzer(t, a, tt.content); len(issues) != 0 {
				t.Errorf("expected no issues, got %+v", issues)
			}
		})
	}
}
