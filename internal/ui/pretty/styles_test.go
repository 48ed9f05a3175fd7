package pretty_test

import (
	"bytes"
	"testing"

	"github.com/yaklabco/gorslint/internal/ui/pretty"
)

func TestIsColorEnabled(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	if pretty.IsColorEnabled("never", &buf) {
		t.Error(`"never" should disable color`)
	}
	if !pretty.IsColorEnabled("always", &buf) {
		t.Error(`"always" should enable color even for non-TTY writers`)
	}
	if pretty.IsColorEnabled("auto", &buf) {
		t.Error(`"auto" should disable color for non-TTY writers`)
	}
}

func TestNewStyles_NoColorIsPlain(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	const text = "src/main.rs:3"
	if got := styles.FilePath.Render(text); got != text {
		t.Errorf("Render() = %q, want unstyled %q", got, text)
	}
	if got := styles.DiffAdd.Render("+line"); got != "+line" {
		t.Errorf("Render() = %q, want unstyled", got)
	}
}
