package fix

import (
	"fmt"
	"strings"
)

// Diff represents a unified diff between original and modified content.
type Diff struct {
	// Path is the file path for the diff header.
	Path string

	// Hunks contains the diff hunks.
	Hunks []DiffHunk

	// Additions is the number of lines added.
	Additions int

	// Deletions is the number of lines deleted.
	Deletions int
}

// DiffHunk represents a single hunk in a unified diff.
type DiffHunk struct {
	OriginalStart int
	OriginalCount int
	ModifiedStart int
	ModifiedCount int
	Lines         []DiffLine
}

// DiffLine represents a single line in a diff hunk.
type DiffLine struct {
	Kind    DiffLineKind
	Content string
}

// DiffLineKind indicates the type of diff line.
type DiffLineKind int

const (
	// DiffLineContext is an unchanged context line.
	DiffLineContext DiffLineKind = iota

	// DiffLineAdd is a line added in the modified version.
	DiffLineAdd

	// DiffLineRemove is a line removed from the original version.
	DiffLineRemove
)

// contextLines is the number of context lines to show around changes.
const contextLines = 3

// GenerateDiff creates a unified diff between original and modified content.
// Returns nil if there are no changes.
func GenerateDiff(path string, original, modified []byte) *Diff {
	origLines := splitContentLines(original)
	modLines := splitContentLines(modified)

	ops := diffOps(origLines, modLines)

	changed := false
	for _, op := range ops {
		if op.kind != DiffLineContext {
			changed = true
			break
		}
	}
	if !changed {
		return nil
	}

	d := &Diff{
		Path:  path,
		Hunks: groupHunks(ops),
	}
	for _, hunk := range d.Hunks {
		for _, line := range hunk.Lines {
			switch line.Kind {
			case DiffLineAdd:
				d.Additions++
			case DiffLineRemove:
				d.Deletions++
			}
		}
	}
	return d
}

// String returns the diff in unified diff format.
func (d *Diff) String() string {
	if d == nil || len(d.Hunks) == 0 {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n", path)
	fmt.Fprintf(&b, "+++ b/%s\n", path)

	for _, hunk := range d.Hunks {
		fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n",
			hunk.OriginalStart, hunk.OriginalCount,
			hunk.ModifiedStart, hunk.ModifiedCount)
		for _, line := range hunk.Lines {
			switch line.Kind {
			case DiffLineContext:
				fmt.Fprintf(&b, " %s\n", line.Content)
			case DiffLineAdd:
				fmt.Fprintf(&b, "+%s\n", line.Content)
			case DiffLineRemove:
				fmt.Fprintf(&b, "-%s\n", line.Content)
			}
		}
	}

	return b.String()
}

// HasChanges returns true if the diff contains any changes.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// diffOp is one line-level operation in the diff.
type diffOp struct {
	kind    DiffLineKind
	content string
}

// diffOps computes the line operations using an LCS table.
func diffOps(orig, mod []string) []diffOp {
	m, n := len(orig), len(mod)

	// dp[i][j] = LCS length of orig[i:], mod[j:].
	dp := make([][]int, m+1)
	for i := range dp {
		dp[i] = make([]int, n+1)
	}
	for i := m - 1; i >= 0; i-- {
		for j := n - 1; j >= 0; j-- {
			if orig[i] == mod[j] {
				dp[i][j] = dp[i+1][j+1] + 1
			} else {
				dp[i][j] = max(dp[i+1][j], dp[i][j+1])
			}
		}
	}

	var ops []diffOp
	i, j := 0, 0
	for i < m && j < n {
		switch {
		case orig[i] == mod[j]:
			ops = append(ops, diffOp{DiffLineContext, orig[i]})
			i++
			j++
		case dp[i+1][j] >= dp[i][j+1]:
			ops = append(ops, diffOp{DiffLineRemove, orig[i]})
			i++
		default:
			ops = append(ops, diffOp{DiffLineAdd, mod[j]})
			j++
		}
	}
	for ; i < m; i++ {
		ops = append(ops, diffOp{DiffLineRemove, orig[i]})
	}
	for ; j < n; j++ {
		ops = append(ops, diffOp{DiffLineAdd, mod[j]})
	}
	return ops
}

// groupHunks groups operations into hunks with surrounding context,
// merging changes whose gap is within twice the context width.
func groupHunks(ops []diffOp) []DiffHunk {
	type region struct{ start, end int }

	var regions []region
	for i := 0; i < len(ops); {
		if ops[i].kind == DiffLineContext {
			i++
			continue
		}
		start := i
		for i < len(ops) && ops[i].kind != DiffLineContext {
			i++
		}
		regions = append(regions, region{start, i})
	}
	if len(regions) == 0 {
		return nil
	}

	// Merge nearby regions.
	merged := []region{regions[0]}
	for _, r := range regions[1:] {
		last := &merged[len(merged)-1]
		if r.start-last.end <= contextLines*2 {
			last.end = r.end
		} else {
			merged = append(merged, r)
		}
	}

	var hunks []DiffHunk
	for _, r := range merged {
		start := max(0, r.start-contextLines)
		end := min(len(ops), r.end+contextLines)

		hunk := DiffHunk{OriginalStart: 1, ModifiedStart: 1}
		for k := 0; k < start; k++ {
			if ops[k].kind != DiffLineAdd {
				hunk.OriginalStart++
			}
			if ops[k].kind != DiffLineRemove {
				hunk.ModifiedStart++
			}
		}
		for k := start; k < end; k++ {
			hunk.Lines = append(hunk.Lines, DiffLine{Kind: ops[k].kind, Content: ops[k].content})
			if ops[k].kind != DiffLineAdd {
				hunk.OriginalCount++
			}
			if ops[k].kind != DiffLineRemove {
				hunk.ModifiedCount++
			}
		}
		hunks = append(hunks, hunk)
	}
	return hunks
}

// splitContentLines splits content into lines, dropping the final empty
// element produced by a trailing newline.
func splitContentLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	lines := strings.Split(string(content), "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
