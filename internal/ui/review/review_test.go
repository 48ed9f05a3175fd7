package review

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yaklabco/gorslint/pkg/analyze"
	"github.com/yaklabco/gorslint/pkg/rsyntax"
)

const reviewSource = "fn main() {\n    let a = 1;\n\n    let b = 2;\n\n}\n"

func parseReviewSource(t *testing.T) *rsyntax.FileSnapshot {
	t.Helper()

	snap, err := rsyntax.Parse(context.Background(), "main.rs", []byte(reviewSource))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return snap
}

func blankLineCandidate(snap *rsyntax.FileSnapshot, line int) Candidate {
	return Candidate{
		Snapshot: snap,
		Issue: analyze.Issue{
			AnalyzerID: "empty_lines",
			Message:    "blank line",
			Span:       rsyntax.Span{StartLine: line, EndLine: line},
			Range:      snap.LineRange(line),
			Fix:        analyze.SimpleFix(""),
		},
	}
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func step(t *testing.T, m reviewModel, msg tea.Msg) (reviewModel, tea.Cmd) {
	t.Helper()

	model, cmd := m.Update(msg)
	next, ok := model.(reviewModel)
	if !ok {
		t.Fatalf("Update() returned %T", model)
	}
	return next, cmd
}

func TestReview_AcceptAndSkip(t *testing.T) {
	t.Parallel()

	snap := parseReviewSource(t)
	m := newReviewModel([]Candidate{
		blankLineCandidate(snap, 3),
		blankLineCandidate(snap, 5),
	})

	if m.preview == "" {
		t.Error("first candidate should have a diff preview")
	}

	m, cmd := step(t, m, keyRune('y'))
	if cmd != nil {
		t.Error("review should continue after the first decision")
	}

	m, cmd = step(t, m, keyRune('n'))
	if cmd == nil {
		t.Error("review should quit after the last decision")
	}

	if m.decisions[0] != DecisionAccepted {
		t.Errorf("decisions[0] = %v, want accepted", m.decisions[0])
	}
	if m.decisions[1] != DecisionSkipped {
		t.Errorf("decisions[1] = %v, want skipped", m.decisions[1])
	}
	if !m.done {
		t.Error("model should be done")
	}
}

func TestReview_EnterAccepts(t *testing.T) {
	t.Parallel()

	snap := parseReviewSource(t)
	m := newReviewModel([]Candidate{blankLineCandidate(snap, 3)})

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.decisions[0] != DecisionAccepted {
		t.Errorf("decisions[0] = %v, want accepted", m.decisions[0])
	}
}

func TestReview_AcceptAll(t *testing.T) {
	t.Parallel()

	snap := parseReviewSource(t)
	m := newReviewModel([]Candidate{
		blankLineCandidate(snap, 3),
		blankLineCandidate(snap, 5),
	})

	m, cmd := step(t, m, keyRune('a'))
	if cmd == nil {
		t.Error("accept-all should quit the review")
	}
	for i, d := range m.decisions {
		if d != DecisionAccepted {
			t.Errorf("decisions[%d] = %v, want accepted", i, d)
		}
	}
}

func TestReview_OverlapAutoSkipped(t *testing.T) {
	t.Parallel()

	snap := parseReviewSource(t)
	m := newReviewModel([]Candidate{
		blankLineCandidate(snap, 3),
		blankLineCandidate(snap, 3),
	})

	m, cmd := step(t, m, keyRune('y'))
	if cmd == nil {
		t.Error("review should quit once the overlapping candidate is skipped")
	}

	if m.decisions[0] != DecisionAccepted {
		t.Errorf("decisions[0] = %v, want accepted", m.decisions[0])
	}
	if m.decisions[1] != DecisionSkipped {
		t.Errorf("decisions[1] = %v, overlapping fix should be auto-skipped", m.decisions[1])
	}
}

func TestReview_QuitLeavesPending(t *testing.T) {
	t.Parallel()

	snap := parseReviewSource(t)
	m := newReviewModel([]Candidate{
		blankLineCandidate(snap, 3),
		blankLineCandidate(snap, 5),
	})

	m, cmd := step(t, m, keyRune('q'))
	if cmd == nil {
		t.Error("quit should stop the program")
	}
	if !m.quitting {
		t.Error("model should record the quit")
	}
	if m.decisions[0] != DecisionPending || m.decisions[1] != DecisionPending {
		t.Errorf("decisions = %v, want pending", m.decisions)
	}
}

func TestRun_NoCandidates(t *testing.T) {
	t.Parallel()

	outcomes, err := Run(nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if outcomes != nil {
		t.Errorf("outcomes = %v, want nil", outcomes)
	}
}

func TestAccepted(t *testing.T) {
	t.Parallel()

	snapA := parseReviewSource(t)
	snapB, err := rsyntax.Parse(context.Background(), "other.rs", []byte(reviewSource))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	outcomes := []Outcome{
		{Candidate: blankLineCandidate(snapA, 3), Decision: DecisionAccepted},
		{Candidate: Candidate{Snapshot: snapB, Issue: analyze.Issue{AnalyzerID: "empty_lines"}}, Decision: DecisionAccepted},
		{Candidate: blankLineCandidate(snapA, 5), Decision: DecisionAccepted},
		{Candidate: blankLineCandidate(snapB, 3), Decision: DecisionSkipped},
	}

	byPath, order := Accepted(outcomes)

	if len(order) != 2 || order[0] != "main.rs" || order[1] != "other.rs" {
		t.Errorf("order = %v, want first-seen path order", order)
	}
	if len(byPath["main.rs"]) != 2 {
		t.Errorf("main.rs issues = %d, want 2", len(byPath["main.rs"]))
	}
	if len(byPath["other.rs"]) != 1 {
		t.Errorf("other.rs issues = %d, skipped fixes must not appear", len(byPath["other.rs"]))
	}
}
