package report

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/gorslint/internal/ui/pretty"
	"github.com/yaklabco/gorslint/pkg/runner"
)

// bufWriterSize is the buffer size for report output.
const bufWriterSize = 32 * 1024

// Options controls report output.
type Options struct {
	// Writer receives the formatted output. Defaults to os.Stdout.
	Writer io.Writer

	// Color is the color mode: "auto", "always", or "never".
	Color string

	// Verbose emits one entry per issue instead of compact grouping.
	Verbose bool

	// ShowContext includes the source line under each issue in verbose mode.
	ShowContext bool

	// ShowSummary appends a one-line run summary.
	ShowSummary bool

	// Order is the analyzer listing order, normally the registry order.
	Order []string
}

// DefaultOptions returns reporter defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Color:       "auto",
		ShowContext: true,
		ShowSummary: true,
	}
}

// Reporter formats and writes analysis results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of issues reported and any write errors.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// Compile-time interface check.
var _ Reporter = (*TextReporter)(nil)

// TextReporter formats results as styled terminal output, either compact
// (grouped by analyzer and message) or verbose (one entry per issue).
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// New creates a text reporter for the given options.
func New(opts Options) *TextReporter {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	rep := Aggregate(result, r.opts.Order)

	r.reportFailures(rep)

	if r.opts.Verbose {
		r.reportVerbose(result)
	} else {
		r.reportCompact(rep)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return rep.Totals.Issues, nil
}

// reportFailures writes per-file processing errors.
func (r *TextReporter) reportFailures(rep *Report) {
	for _, failure := range rep.Failures {
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(failure.Path),
			r.styles.Error.Render(fmt.Sprintf("error: %v", failure.Err)),
		)
	}
	if len(rep.Failures) > 0 {
		fmt.Fprintln(r.bw)
	}
}

// reportCompact writes issues grouped by analyzer and message.
// Analyzers appear in registry order; messages in first-seen order;
// analyzers with no issues are omitted from the listing.
func (r *TextReporter) reportCompact(rep *Report) {
	for _, ar := range rep.Analyzers {
		if ar.IssueCount == 0 {
			continue
		}

		issueWord := "issues"
		if ar.IssueCount == 1 {
			issueWord = "issue"
		}
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.Bold.Render(ar.ID),
			r.styles.SummaryValue.Render(fmt.Sprintf("%d %s", ar.IssueCount, issueWord)),
		)

		for _, group := range ar.Groups {
			fmt.Fprintf(r.bw, "  %s\n", r.styles.Message.Render(firstLine(group.Message)))
			for _, fl := range group.Files {
				fmt.Fprintf(r.bw, "    %s: %s\n",
					r.styles.FilePath.Render(fl.Path),
					r.styles.Location.Render("line "+joinLines(fl.Lines)),
				)
			}
		}
		fmt.Fprintln(r.bw)
	}
}

// reportVerbose writes one entry per issue, grouped by file.
func (r *TextReporter) reportVerbose(result *runner.Result) {
	for _, file := range result.Files {
		if file.Error != nil || file.Result == nil || file.Result.FileResult == nil {
			continue
		}
		issues := file.Result.Issues
		if len(issues) == 0 {
			continue
		}

		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(file.Path, len(issues)))

		for i := range issues {
			issue := &issues[i]

			var sourceLine string
			if r.opts.ShowContext && file.Result.Snapshot != nil {
				sourceLine = file.Result.Snapshot.LineText(issue.Span.StartLine)
			}

			fmt.Fprint(r.bw, r.styles.FormatIssue(issue, file.Path, r.opts.ShowContext, sourceLine))
			if issue.HasFix() {
				fmt.Fprintf(r.bw, "    %s\n", r.styles.FormatFixPreview(issue.Fix))
			}
		}

		fmt.Fprintln(r.bw)
	}
}

// joinLines renders "4" or "4, 12, 30".
func joinLines(lines []int) string {
	parts := make([]string, len(lines))
	for i, n := range lines {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}

func firstLine(text string) string {
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		return text[:idx]
	}
	return text
}
