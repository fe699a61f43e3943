package sarif

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/pylens/pkg/diag"
)

func TestFromReport_Pylint(t *testing.T) {
	t.Parallel()

	score := 8.5
	r := diag.Aggregate("pylint", []diag.Issue{
		{File: "foo.py", Start: diag.CodeLocation{Line: 3, Column: 0}, Category: diag.Convention, Message: "C0114: Missing module docstring (missing-module-docstring)"},
		{File: "foo.py", Start: diag.CodeLocation{Line: 7, Column: 4}, Category: diag.Error, Message: "E0602: Undefined variable 'y' (undefined-variable)"},
	}, []string{"foo.py"}, diag.LineStyle.Known(), &score)

	doc := FromReport(r, "3.2.0").Document()
	require.Len(t, doc.Runs, 1)
	run := doc.Runs[0]
	assert.Equal(t, "pylint", run.Tool.Driver.Name)
	assert.Equal(t, "3.2.0", run.Tool.Driver.Version)
	assert.InDelta(t, 8.5, run.Properties["score"], 1e-9)
	require.Len(t, run.Results, 2)

	first := run.Results[0]
	assert.Equal(t, "C0114", first.RuleID)
	assert.Equal(t, "note", first.Level)
	assert.Equal(t, "Missing module docstring (missing-module-docstring)", first.Message.Text)
	assert.Equal(t, Region{StartLine: 3, StartColumn: 1}, first.Locations[0].PhysicalLocation.Region)
	assert.Equal(t, "Convention", first.Properties["category"])

	assert.Equal(t, "error", run.Results[1].Level)
	assert.Equal(t, 5, run.Results[1].Locations[0].PhysicalLocation.Region.StartColumn)
}

func TestFromReport_Mypy(t *testing.T) {
	t.Parallel()

	r := diag.Aggregate("mypy", []diag.Issue{{
		File:     "a.py",
		Start:    diag.CodeLocation{Line: 10, Column: 2},
		End:      diag.CodeLocation{Line: 10, Column: 8},
		Category: diag.Error,
		Message:  `Name "y" is not defined  [name-defined]`,
		Excerpt:  "    x = y",
	}}, nil, diag.RangeStyle.Known(), nil)

	doc := FromReport(r, "").Document()
	assert.Nil(t, doc.Runs[0].Properties)
	res := doc.Runs[0].Results[0]
	assert.Equal(t, "name-defined", res.RuleID)
	assert.Equal(t, `Name "y" is not defined`, res.Message.Text)
	assert.Equal(t, Region{
		StartLine: 10, StartColumn: 2, EndLine: 10, EndColumn: 8,
		Snippet: &Snippet{Text: "    x = y"},
	}, res.Locations[0].PhysicalLocation.Region)
}

func TestFromReport_NoRuleCode(t *testing.T) {
	t.Parallel()

	b := NewBuilder("mypy", "").AddIssue(diag.Issue{File: "a.py", Start: diag.CodeLocation{Line: 1}, Category: diag.Note, Message: "see here"})
	res := b.Document().Runs[0].Results[0]
	assert.Equal(t, "note", res.RuleID)
	assert.Equal(t, "see here", res.Message.Text)
	assert.Zero(t, res.Locations[0].PhysicalLocation.Region.StartColumn)
}

func TestWriteTo_EmptyReportHasResultsArray(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	_, err := FromReport(diag.Empty("mypy"), "").WriteTo(&buf)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	assert.Equal(t, Version, raw["version"])
	runs := raw["runs"].([]any)
	assert.Equal(t, []any{}, runs[0].(map[string]any)["results"])
}

func TestLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cat  diag.Category
		want string
	}{
		{diag.Fatal, "error"},
		{diag.Error, "error"},
		{diag.Warning, "warning"},
		{"warning", "warning"},
		{diag.Refactor, "note"},
		{diag.Unknown, "note"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Level(tc.cat), tc.cat)
	}
}
