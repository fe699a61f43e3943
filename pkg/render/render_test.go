package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/pylens/pkg/pattern"
)

func TestTerminal_RenderSummaryView(t *testing.T) {
	t.Parallel()

	out := NewTerminal(MonoTheme(), 80).Render([]pattern.Pattern{
		&pattern.Summary{
			Label:   "Pylint: 3 issues in 2 files",
			Kind:    pattern.SummaryKindReport,
			Metrics: []pattern.SummaryItem{{Label: "Error", Value: "1", Kind: pattern.KindError}},
		},
		&pattern.FileTable{
			Label:   "Files",
			Columns: []string{"Convention", "Error"},
			Rows: []pattern.FileRow{
				{Ordinal: 1, File: "a.py", Total: 2, Counts: []int{2, 0}},
				{Ordinal: 2, File: "pkg/b.py", Total: 1, Counts: []int{0, 1}},
			},
		},
	})

	assert.Contains(t, out, "Pylint: 3 issues in 2 files")
	assert.Contains(t, out, "x Error: 1")
	assert.Contains(t, out, "File")
	assert.Contains(t, out, "Convention")
	assert.Contains(t, out, "1  a.py    ")
	assert.Contains(t, out, "2  pkg/b.py")
}

func TestTerminal_RenderFileTableTruncatesLongNames(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("deep/", 30) + "mod.py"
	out := NewTerminal(MonoTheme(), 60).Render([]pattern.Pattern{
		&pattern.FileTable{
			Columns: []string{"Error"},
			Rows:    []pattern.FileRow{{Ordinal: 1, File: long, Total: 1, Counts: []int{1}}},
		},
	})
	assert.NotContains(t, out, long)
	assert.Contains(t, out, "...")
}

func TestTerminal_RenderIssueTable(t *testing.T) {
	t.Parallel()

	out := NewTerminal(MonoTheme(), 80).Render([]pattern.Pattern{
		&pattern.IssueTable{Label: "a.py", Results: []pattern.IssueItem{
			{Location: "10:2-10:8", Category: "Error", Kind: pattern.KindError, Message: "Name undefined", Excerpt: "    x = y\n    ^"},
		}},
		&pattern.IssueTable{Label: "empty.py"},
	})

	assert.Contains(t, out, "a.py\n")
	assert.Contains(t, out, "10:2-10:8  Error  Name undefined")
	assert.Contains(t, out, "\n          x = y")
	assert.Contains(t, out, "empty.py\n  + no issues")
}

func TestTerminal_RenderIssueTableTruncatesExcerptLines(t *testing.T) {
	t.Parallel()

	long := "    result = compute(" + strings.Repeat("argument, ", 8) + ")"
	out := NewTerminal(MonoTheme(), 120).Render([]pattern.Pattern{
		&pattern.IssueTable{Label: "a.py", Results: []pattern.IssueItem{
			{Location: "3:1", Category: "Error", Kind: pattern.KindError, Message: "bad call", Excerpt: long + "\n    ^"},
		}},
	})

	assert.NotContains(t, out, long)
	want := long[:excerptWidth-3] + "..."
	assert.Contains(t, out, "\n      "+want+"\n")
	assert.Contains(t, out, "\n          ^")
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n")[1:] {
		if strings.HasPrefix(line, "      ") {
			assert.LessOrEqual(t, len(line), 6+excerptWidth)
		}
	}
}

func TestTheme_Category(t *testing.T) {
	t.Parallel()

	theme := DefaultTheme()
	tests := []struct {
		label string
		want  lipgloss.Color
	}{
		{label: "Convention", want: "75"},
		{label: "Refactor", want: "141"},
		{label: "Warning", want: "214"},
		{label: "warning", want: "214"},
		{label: "Error", want: "196"},
		{label: "Note", want: "44"},
		{label: "Unknown", want: "250"},
		{label: "misc", want: "250"},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, theme.Category(tt.label).GetForeground())
		})
	}
	assert.True(t, theme.Category("Fatal").GetBold())
	assert.Equal(t, lipgloss.NoColor{}, MonoTheme().Category("Error").GetForeground())
}

func TestTerminal_RenderComparisonAndSparkline(t *testing.T) {
	t.Parallel()

	out := NewTerminal(MonoTheme(), 80).Render([]pattern.Pattern{
		&pattern.Comparison{Label: "Since last run", Changes: []pattern.ComparisonItem{
			{Label: "Issues", Before: "4", After: "1", Change: -3},
			{Label: "Score", Before: "7.00", After: "9.50", Change: 2.5, HigherIsBetter: true},
		}},
		&pattern.Sparkline{Label: "Score", Values: []float64{0, 10}, Max: 10, Unit: "/10"},
		&pattern.Notice{Kind: pattern.KindWarning, Text: "no score reported"},
	})

	assert.Contains(t, out, "Issues: 4 → 1 v 3")
	assert.Contains(t, out, "Score: 7.00 → 9.50 ^ 2.50")
	assert.Contains(t, out, "Score: ▁█ 10.0/10")
	assert.Contains(t, out, "! no score reported")
}

func TestJSON_Render(t *testing.T) {
	t.Parallel()

	out := NewJSON().Render([]pattern.Pattern{
		&pattern.Summary{Label: "Mypy: no issues", Kind: pattern.SummaryKindClean},
		&pattern.Notice{Kind: pattern.KindInfo, Text: "hi"},
	})

	var doc struct {
		Version  string `json:"version"`
		Patterns []struct {
			Type string          `json:"type"`
			Data json.RawMessage `json:"data"`
		} `json:"patterns"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, JSONVersion, doc.Version)
	require.Len(t, doc.Patterns, 2)
	assert.Equal(t, "summary", doc.Patterns[0].Type)
	assert.Equal(t, "notice", doc.Patterns[1].Type)
	assert.Contains(t, string(doc.Patterns[0].Data), `"Label": "Mypy: no issues"`)
}

func TestNew(t *testing.T) {
	t.Parallel()

	for _, f := range Formats {
		r, err := New(f, DefaultTheme(), 80)
		require.NoError(t, err, f)
		assert.NotNil(t, r)
	}
	_, err := New("xml", DefaultTheme(), 80)
	assert.Error(t, err)
}

func TestThemeByName(t *testing.T) {
	t.Parallel()

	for _, name := range Themes {
		assert.Equal(t, name, ThemeByName(name).Name)
	}
	assert.Equal(t, "default", ThemeByName("neon").Name)
}
