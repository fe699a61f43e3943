package browser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gologging "gopkg.in/op/go-logging.v1"

	"github.com/dkoosis/pylens/internal/logging"
	"github.com/dkoosis/pylens/pkg/diag"
	"github.com/dkoosis/pylens/pkg/pattern"
	"github.com/dkoosis/pylens/pkg/pylint"
	"github.com/dkoosis/pylens/pkg/runner"
	"github.com/dkoosis/pylens/pkg/tool"
)

type acquireResult struct {
	report *diag.Report
	err    error
}

// scripted returns each result in turn and repeats the last one.
func scripted(results ...acquireResult) (Acquirer, *int) {
	calls := 0
	return func(context.Context) (*diag.Report, error) {
		r := results[min(calls, len(results)-1)]
		calls++
		return r.report, r.err
	}, &calls
}

func twoFileReport(score float64) *diag.Report {
	issues := []diag.Issue{
		{File: "foo.py", Start: diag.CodeLocation{Line: 3}, Category: diag.Convention, Message: "C0114: missing docstring"},
		{File: "bar.py", Start: diag.CodeLocation{Line: 7}, Category: diag.Warning, Message: "W0612: unused variable"},
		{File: "bar.py", Start: diag.CodeLocation{Line: 2}, Category: diag.Error, Message: "E0602: undefined name"},
	}
	return diag.Aggregate("pylint", issues, []string{"foo.py", "bar.py"}, diag.LineStyle.Known(), &score)
}

func newTestSession(acquire Acquirer) (*Session, *RecordingSink) {
	sink := &RecordingSink{}
	s := NewSession(acquire, diag.LineStyle.Known(), sink)
	s.now = func() time.Time { return time.Time{} }
	return s, sink
}

func notices(patterns []pattern.Pattern) []*pattern.Notice {
	var out []*pattern.Notice
	for _, p := range patterns {
		if n, ok := p.(*pattern.Notice); ok {
			out = append(out, n)
		}
	}
	return out
}

func issueTables(patterns []pattern.Pattern) []*pattern.IssueTable {
	var out []*pattern.IssueTable
	for _, p := range patterns {
		if t, ok := p.(*pattern.IssueTable); ok {
			out = append(out, t)
		}
	}
	return out
}

func TestSession_SummaryOrdinalsAndDetailOne(t *testing.T) {
	t.Parallel()

	acquire, _ := scripted(acquireResult{report: twoFileReport(8.5)})
	s, sink := newTestSession(acquire)
	s.Start(context.Background())

	assert.Equal(t, Summary, s.State())
	assert.Equal(t, []string{"foo.py", "bar.py"}, s.Ordinals())
	table, ok := sink.Drain()[1].(*pattern.FileTable)
	require.True(t, ok)
	assert.Equal(t, 1, table.Rows[0].Ordinal)
	assert.Equal(t, "foo.py", table.Rows[0].File)
	assert.Equal(t, 2, table.Rows[1].Ordinal)

	err := s.Open("3")
	require.ErrorIs(t, err, ErrInvalidSelection)
	assert.Equal(t, Summary, s.State(), "rejected ordinal keeps Summary")

	require.NoError(t, s.Open("1"))
	assert.Equal(t, DetailOne, s.State())
	assert.Equal(t, "foo.py", s.Selected())
	tables := issueTables(sink.Drain())
	require.Len(t, tables, 1)
	assert.Equal(t, "foo.py", tables[0].Label)
	require.Len(t, tables[0].Results, 1)

	require.NoError(t, s.Ack())
	assert.Equal(t, Summary, s.State())
	assert.Empty(t, s.Selected())
}

func TestSession_RunScriptedInput(t *testing.T) {
	t.Parallel()

	acquire, calls := scripted(acquireResult{report: twoFileReport(8.5)})
	s, sink := newTestSession(acquire)

	// detail-one with a bad ordinal then a good one, ack, bad menu choice,
	// detail-all, ack, summary, quit.
	in := strings.NewReader("1\n3\n1\n\n9\n3\n\n2\n5\n")
	var prompts strings.Builder
	require.NoError(t, s.Run(context.Background(), NewLinePrompter(in, &prompts)))

	assert.Equal(t, Quit, s.State())
	assert.Equal(t, 1, *calls, "no rerun requested")

	shown := sink.Drain()
	ns := notices(shown)
	require.Len(t, ns, 2)
	assert.Contains(t, ns[0].Text, "3 is not between 1 and 2")
	assert.Contains(t, ns[1].Text, `"9" is not one of 1-5`)

	var labels []string
	for _, tb := range issueTables(shown) {
		labels = append(labels, tb.Label)
	}
	assert.Equal(t, []string{"foo.py", "foo.py", "bar.py"}, labels)

	assert.Contains(t, prompts.String(), "5) Quit")
	assert.Contains(t, prompts.String(), "File number (1-2): ")
}

func TestSession_EOFQuits(t *testing.T) {
	t.Parallel()

	acquire, _ := scripted(acquireResult{report: twoFileReport(8.5)})
	s, _ := newTestSession(acquire)
	require.NoError(t, s.Run(context.Background(), NewLinePrompter(strings.NewReader("1\n"), io.Discard)))
	assert.Equal(t, Quit, s.State())
}

type missingBinary struct{ calls int }

func (m *missingBinary) Run(_ context.Context, spec runner.Spec) (*runner.Output, error) {
	m.calls++
	return nil, fmt.Errorf("%s (%s): %w", spec.Name, spec.Command, runner.ErrToolNotInstalled)
}

// Replaces the process-wide log backend, so no t.Parallel.
func TestSession_ToolNotInstalledShownOnce(t *testing.T) {
	var logged bytes.Buffer
	logging.Init(&logged, gologging.WARNING)
	t.Cleanup(func() { logging.Init(os.Stderr, gologging.WARNING) })

	exec := &missingBinary{}
	analyzer := &tool.Analyzer{Tool: tool.NewPylint(tool.Options{}), Path: "foo.py", Exec: exec}
	s, sink := newTestSession(analyzer.Analyze)

	in := strings.NewReader("1\n2\n3\n\n5\n")
	require.NoError(t, s.Run(context.Background(), NewLinePrompter(in, io.Discard)))

	assert.Equal(t, 1, exec.calls)
	assert.Equal(t, Quit, s.State())
	assert.True(t, s.Report().IsClean())

	ns := notices(sink.Drain())
	var toolErrors int
	for _, n := range ns {
		if n.Kind == pattern.KindError {
			toolErrors++
			assert.Contains(t, n.Text, "not installed")
		}
	}
	assert.Equal(t, 1, toolErrors)
	assert.Empty(t, logged.String(), "the notice is the only report of the missing binary")
}

func TestSession_FailedRerunReturnsToSummary(t *testing.T) {
	t.Parallel()

	first := twoFileReport(6)
	failed := &runner.ExecutionError{Tool: "pylint", ExitCode: 32, Stderr: "usage error"}
	acquire, calls := scripted(
		acquireResult{report: first},
		acquireResult{report: diag.Empty("pylint"), err: failed},
	)
	s, sink := newTestSession(acquire)

	in := strings.NewReader("4\n2\n5\n")
	require.NoError(t, s.Run(context.Background(), NewLinePrompter(in, io.Discard)))

	assert.Equal(t, 2, *calls)
	assert.Equal(t, Quit, s.State(), "a failed rerun never reaches Clean")
	assert.Same(t, first, s.Report(), "previous report kept")
	assert.Equal(t, []string{"foo.py", "bar.py"}, s.Ordinals())
	assert.Equal(t, []float64{6}, s.Scores())

	shown := sink.Drain()
	ns := notices(shown)
	require.Len(t, ns, 1)
	assert.Equal(t, pattern.KindError, ns[0].Kind)
	assert.Contains(t, ns[0].Text, "pylint")
	for _, p := range shown {
		_, isCmp := p.(*pattern.Comparison)
		assert.False(t, isCmp, "no comparison against a failed run")
		if sum, ok := p.(*pattern.Summary); ok {
			assert.NotEqual(t, pattern.SummaryKindClean, sum.Kind)
		}
	}
}

func TestSession_RerunWithIssuesReturnsToSummary(t *testing.T) {
	t.Parallel()

	first := twoFileReport(6)
	second := diag.Aggregate("pylint", []diag.Issue{
		{File: "bar.py", Start: diag.CodeLocation{Line: 7}, Category: diag.Warning, Message: "W0612: unused variable"},
	}, []string{"bar.py"}, diag.LineStyle.Known(), ptr(9.0))

	acquire, calls := scripted(acquireResult{report: first}, acquireResult{report: second})
	s, sink := newTestSession(acquire)
	s.Start(context.Background())
	sink.Drain()

	require.NoError(t, s.Rerun(context.Background()))
	assert.Equal(t, 2, *calls)
	assert.Equal(t, Summary, s.State())
	assert.Same(t, second, s.Report(), "report replaced wholesale")
	assert.Equal(t, []string{"bar.py"}, s.Ordinals())
	assert.Equal(t, []float64{6, 9}, s.Scores())

	shown := sink.Drain()
	require.GreaterOrEqual(t, len(shown), 3)
	cmp, ok := shown[0].(*pattern.Comparison)
	require.True(t, ok)
	assert.InDelta(t, -2, cmp.Changes[0].Change, 1e-9)
	_, ok = shown[1].(*pattern.Sparkline)
	assert.True(t, ok, "score trend after two scored runs")
}

func TestSession_RerunCleanEnds(t *testing.T) {
	t.Parallel()

	clean := diag.Aggregate("pylint", nil, []string{"foo.py"}, diag.LineStyle.Known(), ptr(10.0))
	acquire, _ := scripted(acquireResult{report: twoFileReport(7)}, acquireResult{report: clean})
	s, sink := newTestSession(acquire)

	in := strings.NewReader("4\n")
	require.NoError(t, s.Run(context.Background(), NewLinePrompter(in, io.Discard)))
	assert.Equal(t, Clean, s.State())

	shown := sink.Drain()
	last, ok := shown[len(shown)-1].(*pattern.Summary)
	require.True(t, ok)
	assert.Equal(t, pattern.SummaryKindClean, last.Kind)
}

func TestSession_EmptyFirstRunStartsInSummary(t *testing.T) {
	t.Parallel()

	acquire, _ := scripted(acquireResult{report: diag.Empty("mypy")})
	s, sink := newTestSession(acquire)
	s.Start(context.Background())
	assert.Equal(t, Summary, s.State())
	assert.Empty(t, s.Ordinals())

	shown := sink.Drain()
	require.Len(t, shown, 1)
	assert.Equal(t, pattern.SummaryKindClean, shown[0].(*pattern.Summary).Kind)
}

func TestSession_NoFilesRejectsDetailOne(t *testing.T) {
	t.Parallel()

	acquire, _ := scripted(acquireResult{report: diag.Empty("mypy")})
	s, sink := newTestSession(acquire)
	require.NoError(t, s.Run(context.Background(), NewLinePrompter(strings.NewReader("1\n5\n"), io.Discard)))
	assert.Equal(t, Quit, s.State())
	ns := notices(sink.Drain())
	require.Len(t, ns, 1)
	assert.Contains(t, ns[0].Text, "no files")
}

func TestSession_MissingScoreIsAWarning(t *testing.T) {
	t.Parallel()

	r := diag.Aggregate("pylint", []diag.Issue{
		{File: "foo.py", Start: diag.CodeLocation{Line: 1}, Category: diag.Convention, Message: "C0114: x"},
	}, nil, diag.LineStyle.Known(), nil)
	acquire, _ := scripted(acquireResult{report: r, err: fmt.Errorf("pylint: %w", pylint.ErrNoScore)})
	s, sink := newTestSession(acquire)
	s.Start(context.Background())

	ns := notices(sink.Drain())
	require.Len(t, ns, 1)
	assert.Equal(t, pattern.KindWarning, ns[0].Kind)
	assert.Equal(t, 1, s.Report().TotalIssues(), "parsed report is kept")
	assert.Empty(t, s.Scores())
}

func TestSession_OperationsOutsideTheirState(t *testing.T) {
	t.Parallel()

	acquire, _ := scripted(acquireResult{report: twoFileReport(5)})
	s, _ := newTestSession(acquire)
	s.Start(context.Background())

	assert.ErrorIs(t, s.Ack(), ErrInvalidTransition)
	assert.ErrorIs(t, s.FinishRerun(nil, nil), ErrInvalidTransition)

	require.NoError(t, s.ShowAll())
	assert.Equal(t, DetailAll, s.State())
	assert.ErrorIs(t, s.Open("1"), ErrInvalidTransition)
	assert.ErrorIs(t, s.Quit(), ErrInvalidTransition)
}

func TestWriterSink(t *testing.T) {
	t.Parallel()

	var out strings.Builder
	sink := NewWriterSink(&out, stubRenderer{})
	sink.Show()
	assert.Empty(t, out.String())
	sink.Show(&pattern.Notice{Text: "a"}, &pattern.Notice{Text: "b"})
	assert.Equal(t, "a|b\n", out.String())
}

type stubRenderer struct{}

func (stubRenderer) Render(patterns []pattern.Pattern) string {
	parts := make([]string, len(patterns))
	for i, p := range patterns {
		parts[i] = p.(*pattern.Notice).Text
	}
	return strings.Join(parts, "|")
}

func ptr(v float64) *float64 { return &v }
