// Package review implements the interactive fix review flow. Each fixable
// issue is presented with its diff preview; the user accepts or skips them
// one at a time, in source order.
package review

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/gorslint/pkg/analyze"
	"github.com/yaklabco/gorslint/pkg/diffview"
	"github.com/yaklabco/gorslint/pkg/rsyntax"
)

// Decision is the review outcome for one candidate.
type Decision int

const (
	// DecisionPending means the candidate has not been reviewed yet.
	DecisionPending Decision = iota

	// DecisionAccepted means the fix will be applied.
	DecisionAccepted

	// DecisionSkipped means the fix will not be applied.
	DecisionSkipped
)

// Candidate is one fixable issue offered for review.
type Candidate struct {
	Snapshot *rsyntax.FileSnapshot
	Issue    analyze.Issue
}

// Outcome pairs a candidate with its final decision.
type Outcome struct {
	Candidate Candidate
	Decision  Decision
}

// keyMap defines the review keybindings.
type keyMap struct {
	Accept    key.Binding
	Skip      key.Binding
	AcceptAll key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Accept: key.NewBinding(
			key.WithKeys("y", "enter"),
			key.WithHelp("y", "accept"),
		),
		Skip: key.NewBinding(
			key.WithKeys("n", "s"),
			key.WithHelp("n", "skip"),
		),
		AcceptAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "accept remaining"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Accept, k.Skip, k.AcceptAll, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// acceptedRange tracks an applied edit region so later overlapping
// candidates in the same file are skipped instead of conflicting.
type acceptedRange struct {
	path string
	r    rsyntax.ByteRange
}

// reviewModel is the Bubble Tea model for the review session.
type reviewModel struct {
	candidates []Candidate
	decisions  []Decision
	index      int

	accepted []acceptedRange

	keys keyMap
	help help.Model

	headerStyle lipgloss.Style
	fileStyle   lipgloss.Style
	msgStyle    lipgloss.Style
	addStyle    lipgloss.Style
	delStyle    lipgloss.Style
	hunkStyle   lipgloss.Style
	dimStyle    lipgloss.Style

	preview    string
	previewErr error
	quitting   bool
	done       bool
}

func newReviewModel(candidates []Candidate) reviewModel {
	m := reviewModel{
		candidates: candidates,
		decisions:  make([]Decision, len(candidates)),
		keys:       defaultKeyMap(),
		help:       help.New(),

		headerStyle: lipgloss.NewStyle().Bold(true),
		fileStyle:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		msgStyle:    lipgloss.NewStyle(),
		addStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		delStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		hunkStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		dimStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
	m.skipOverlapping()
	m.loadPreview()
	return m
}

// Init implements tea.Model.
func (m reviewModel) Init() tea.Cmd {
	if m.index >= len(m.candidates) {
		return tea.Quit
	}
	return nil
}

// Update implements tea.Model.
func (m reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Accept):
			m.accept()
			m.advance()
		case key.Matches(msg, m.keys.Skip):
			m.decisions[m.index] = DecisionSkipped
			m.advance()
		case key.Matches(msg, m.keys.AcceptAll):
			for m.index < len(m.candidates) {
				m.accept()
				m.advance()
			}
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		}
		if m.index >= len(m.candidates) {
			m.done = true
			return m, tea.Quit
		}
		return m, nil
	}
	return m, nil
}

// View implements tea.Model.
func (m reviewModel) View() string {
	if m.quitting || m.done || m.index >= len(m.candidates) {
		return ""
	}

	c := m.candidates[m.index]

	var b strings.Builder
	b.WriteString(m.headerStyle.Render(fmt.Sprintf("Fix %d of %d", m.index+1, len(m.candidates))))
	b.WriteString("\n\n")
	b.WriteString(m.fileStyle.Render(fmt.Sprintf("%s:%d:%d",
		c.Snapshot.Path, c.Issue.Span.StartLine, c.Issue.Span.StartCol)))
	b.WriteString("\n")
	b.WriteString(m.msgStyle.Render(c.Issue.Message))
	b.WriteString(m.dimStyle.Render("  (" + c.Issue.AnalyzerID + ")"))
	b.WriteString("\n\n")

	switch {
	case m.previewErr != nil:
		b.WriteString(m.delStyle.Render("preview failed: " + m.previewErr.Error()))
		b.WriteString("\n")
	case m.preview == "":
		b.WriteString(m.dimStyle.Render("(no changes)"))
		b.WriteString("\n")
	default:
		b.WriteString(m.renderDiff(m.preview))
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

// renderDiff colors a unified diff line by line.
func (m reviewModel) renderDiff(diff string) string {
	var b strings.Builder
	for _, line := range strings.Split(strings.TrimSuffix(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
			b.WriteString(m.headerStyle.Render(line))
		case strings.HasPrefix(line, "@@"):
			b.WriteString(m.hunkStyle.Render(line))
		case strings.HasPrefix(line, "+"):
			b.WriteString(m.addStyle.Render(line))
		case strings.HasPrefix(line, "-"):
			b.WriteString(m.delStyle.Render(line))
		default:
			b.WriteString(m.dimStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// accept records the current candidate as accepted and remembers its edit
// region for overlap skipping.
func (m *reviewModel) accept() {
	c := m.candidates[m.index]
	m.decisions[m.index] = DecisionAccepted
	m.accepted = append(m.accepted, acceptedRange{
		path: c.Snapshot.Path,
		r:    c.Issue.Range,
	})
}

// advance moves to the next pending candidate, auto-skipping any that
// overlap an already accepted region, then loads its preview.
func (m *reviewModel) advance() {
	m.index++
	m.skipOverlapping()
	m.loadPreview()
}

// skipOverlapping marks candidates overlapping accepted regions as skipped
// and positions index on the next reviewable candidate.
func (m *reviewModel) skipOverlapping() {
	for m.index < len(m.candidates) {
		c := m.candidates[m.index]
		if !m.overlapsAccepted(c) {
			return
		}
		m.decisions[m.index] = DecisionSkipped
		m.index++
	}
}

func (m *reviewModel) overlapsAccepted(c Candidate) bool {
	for _, ar := range m.accepted {
		if ar.path != c.Snapshot.Path {
			continue
		}
		if rangesOverlap(ar.r, c.Issue.Range) {
			return true
		}
	}
	return false
}

func rangesOverlap(a, b rsyntax.ByteRange) bool {
	return a.StartOffset < b.EndOffset && b.StartOffset < a.EndOffset
}

// loadPreview computes the diff the current candidate would produce.
func (m *reviewModel) loadPreview() {
	m.preview = ""
	m.previewErr = nil
	if m.index >= len(m.candidates) {
		return
	}
	c := m.candidates[m.index]
	d, err := diffview.IssuePreview(c.Snapshot, c.Issue)
	if err != nil {
		m.previewErr = err
		return
	}
	if d != nil {
		m.preview = d.String()
	}
}

// Run walks the candidates interactively and returns the decisions.
// Candidates left pending after a quit count as skipped.
func Run(candidates []Candidate) ([]Outcome, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	model := newReviewModel(candidates)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return nil, fmt.Errorf("interactive review: %w", err)
	}

	m, ok := final.(reviewModel)
	if !ok {
		return nil, fmt.Errorf("interactive review: unexpected model type %T", final)
	}

	outcomes := make([]Outcome, len(candidates))
	for i, c := range candidates {
		d := m.decisions[i]
		if d == DecisionPending {
			d = DecisionSkipped
		}
		outcomes[i] = Outcome{Candidate: c, Decision: d}
	}
	return outcomes, nil
}

// Accepted filters outcomes down to the accepted issues, grouped by file
// path in first-seen order.
func Accepted(outcomes []Outcome) (map[string][]analyze.Issue, []string) {
	byPath := make(map[string][]analyze.Issue)
	var order []string
	for _, o := range outcomes {
		if o.Decision != DecisionAccepted {
			continue
		}
		path := o.Candidate.Snapshot.Path
		if _, seen := byPath[path]; !seen {
			order = append(order, path)
		}
		byPath[path] = append(byPath[path], o.Candidate.Issue)
	}
	return byPath, order
}
