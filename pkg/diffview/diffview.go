// Package diffview renders pending fixes as diffs in three modes: full
// unified diffs, a per-analyzer change summary, and per-issue previews for
// interactive review.
package diffview

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/gorslint/internal/ui/pretty"
	"github.com/yaklabco/gorslint/pkg/analyze"
	"github.com/yaklabco/gorslint/pkg/fix"
	"github.com/yaklabco/gorslint/pkg/runner"
	"github.com/yaklabco/gorslint/pkg/rsyntax"
)

// batchedAnalyzer is summarized as one note listing line numbers instead of
// per-change entries; blank-line deletions are reviewed as a batch.
const batchedAnalyzer = "empty_lines"

// Renderer writes diff output for a run.
type Renderer struct {
	bw     *bufio.Writer
	styles *pretty.Styles
}

// NewRenderer creates a diff renderer.
// colorMode is "auto", "always", or "never".
func NewRenderer(w io.Writer, colorMode string) *Renderer {
	if w == nil {
		w = os.Stdout
	}
	return &Renderer{
		bw:     bufio.NewWriter(w),
		styles: pretty.NewStyles(pretty.IsColorEnabled(colorMode, w)),
	}
}

// RenderFull writes the complete unified diff for every modified file.
func (r *Renderer) RenderFull(result *runner.Result) error {
	for _, file := range result.Files {
		if file.Result == nil || file.Result.Diff == nil {
			continue
		}
		r.writeDiff(file.Result.Diff)
		fmt.Fprintln(r.bw)
	}
	return r.bw.Flush()
}

// RenderSummary writes one line per file per analyzer: "<analyzer>: N changes".
// Issues from the batched analyzer collapse into a single note listing the
// affected line numbers. Ends with "Total: N changes in M files".
func (r *Renderer) RenderSummary(result *runner.Result) error {
	fmt.Fprintln(r.bw, r.styles.DiffHeader.Render("DIFF SUMMARY"))
	fmt.Fprintln(r.bw)

	totalChanges := 0
	changedFiles := 0

	for _, file := range result.Files {
		if file.Result == nil || file.Result.FileResult == nil {
			continue
		}

		counts, batchedLines, order := summarizeFixable(file.Result.Issues)
		if len(order) == 0 {
			continue
		}
		changedFiles++

		fmt.Fprintf(r.bw, "%s\n", r.styles.FilePath.Render(file.Path))
		for _, id := range order {
			if id == batchedAnalyzer {
				fmt.Fprintf(r.bw, "  %s: removed blank lines at %s\n",
					id, joinLineNumbers(batchedLines))
			} else {
				changeWord := "changes"
				if counts[id] == 1 {
					changeWord = "change"
				}
				fmt.Fprintf(r.bw, "  %s: %d %s\n", id, counts[id], changeWord)
			}
			totalChanges += counts[id]
		}
	}

	fmt.Fprintln(r.bw)
	fileWord := "files"
	if changedFiles == 1 {
		fileWord = "file"
	}
	fmt.Fprintf(r.bw, "Total: %d changes in %d %s\n", totalChanges, changedFiles, fileWord)

	return r.bw.Flush()
}

// writeDiff writes one styled unified diff.
func (r *Renderer) writeDiff(d *fix.Diff) {
	for _, line := range strings.Split(strings.TrimSuffix(d.String(), "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
			fmt.Fprintln(r.bw, r.styles.DiffHeader.Render(line))
		case strings.HasPrefix(line, "@@"):
			fmt.Fprintln(r.bw, r.styles.DiffHunk.Render(line))
		case strings.HasPrefix(line, "+"):
			fmt.Fprintln(r.bw, r.styles.DiffAdd.Render(line))
		case strings.HasPrefix(line, "-"):
			fmt.Fprintln(r.bw, r.styles.DiffRemove.Render(line))
		default:
			fmt.Fprintln(r.bw, r.styles.DiffContext.Render(line))
		}
	}
}

// summarizeFixable counts fixable issues per analyzer in first-seen order
// and collects the batched analyzer's affected lines.
func summarizeFixable(issues []analyze.Issue) (map[string]int, []int, []string) {
	counts := make(map[string]int)
	var batchedLines []int
	var order []string

	for i := range issues {
		issue := &issues[i]
		if !issue.HasFix() {
			continue
		}
		if counts[issue.AnalyzerID] == 0 {
			order = append(order, issue.AnalyzerID)
		}
		counts[issue.AnalyzerID]++
		if issue.AnalyzerID == batchedAnalyzer {
			batchedLines = append(batchedLines, issue.Span.StartLine)
		}
	}
	return counts, batchedLines, order
}

// IssuePreview builds the diff that accepting a single issue would produce.
// Issues without a fix have no preview.
func IssuePreview(snap *rsyntax.FileSnapshot, issue analyze.Issue) (*fix.Diff, error) {
	if issue.Fix.Kind == analyze.FixNone {
		return nil, nil
	}
	plan, err := analyze.BuildPlan(snap, []analyze.Issue{issue})
	if err != nil {
		return nil, fmt.Errorf("preview %s: %w", snap.Path, err)
	}
	if !plan.HasEdits() {
		return nil, nil
	}
	modified := fix.ApplyEdits(snap.Content, plan.Edits)
	return fix.GenerateDiff(snap.Path, snap.Content, modified), nil
}

func joinLineNumbers(lines []int) string {
	parts := make([]string, len(lines))
	for i, n := range lines {
		parts[i] = strconv.Itoa(n)
	}
	word := "lines"
	if len(lines) == 1 {
		word = "line"
	}
	return word + " " + strings.Join(parts, ", ")
}
