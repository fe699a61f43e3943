package mypy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/pylens/pkg/diag"
	"github.com/dkoosis/pylens/pkg/mypy"
)

const prettyOutput = `pkg/app.py: note: In function "main":
pkg/app.py:14:5:14:22: error: Incompatible types in assignment (expression has type "str", variable has type "int")  [assignment]
        count = read_name()
                ^~~~~~~~~~~~~~~~~
pkg/app.py:3:1:3:10: error: Function is missing a return type annotation  [no-untyped-def]
    def helper(x):
    ^~~~~~~~~
pkg/app.py:3:1:3:10: note: Use "-> None" if function does not return a value
lib/io.py:7:12:9:4: error: Returning Any from function declared to return "bytes"  [no-any-return]
            return json.loads(
                   ^
Found 3 errors in 2 files (checked 4 source files)
`

func TestParse_RangeWithExcerpt(t *testing.T) {
	t.Parallel()

	input := "a.py:10:2:10:8: error: Name undefined\n    x = y\nb.py:1:1:1:1: note: see here\n"

	res, err := mypy.NewAdapter().ParseString(input)
	require.NoError(t, err)

	r := res.Report
	require.Len(t, r.Files, 2)
	assert.Nil(t, r.Score)

	a := r.Files[0]
	assert.Equal(t, "a.py", a.File)
	require.Len(t, a.Issues, 1)
	assert.Equal(t, "    x = y", a.Issues[0].Excerpt)
	assert.Equal(t, diag.Error, a.Issues[0].Category)
	assert.Equal(t, "Name undefined", a.Issues[0].Message)
	assert.Equal(t, diag.CodeLocation{Line: 10, Column: 2}, a.Issues[0].Start)
	assert.Equal(t, diag.CodeLocation{Line: 10, Column: 8}, a.Issues[0].End)

	b := r.Files[1]
	assert.Equal(t, "b.py", b.File)
	require.Len(t, b.Issues, 1)
	assert.Equal(t, diag.Note, b.Issues[0].Category)
	assert.False(t, b.Issues[0].HasExcerpt())
}

func TestParse_PrettyOutput(t *testing.T) {
	t.Parallel()

	res, err := mypy.NewAdapter().ParseString(prettyOutput)
	require.NoError(t, err)

	r := res.Report
	require.Len(t, r.Files, 2)
	assert.Equal(t, "pkg/app.py", r.Files[0].File)
	assert.Equal(t, "lib/io.py", r.Files[1].File)

	app := r.Files[0]
	require.Len(t, app.Issues, 3)
	assert.Equal(t, 3, app.Issues[0].Start.Line, "sorted by line")
	assert.Equal(t, diag.Error, app.Issues[0].Category)
	assert.Equal(t, "    def helper(x):\n    ^~~~~~~~~", app.Issues[0].Excerpt)
	assert.Equal(t, diag.Note, app.Issues[1].Category, "stable for equal lines")
	assert.Equal(t, 14, app.Issues[2].Start.Line)
	assert.Contains(t, app.Issues[2].Message, "[assignment]")
	assert.Equal(t, 2, app.Count(diag.Error))
	assert.Equal(t, 1, app.Count(diag.Note))

	io := r.Files[1]
	require.Len(t, io.Issues, 1)
	assert.Equal(t, diag.CodeLocation{Line: 9, Column: 4}, io.Issues[0].End)
	assert.NotContains(t, io.Issues[0].Excerpt, "Found 3 errors", "summary footer is not excerpt")

	assert.NoError(t, diag.Validate(r))
}

func TestParse_UnknownCategoryPassesThrough(t *testing.T) {
	t.Parallel()

	res, err := mypy.NewAdapter().ParseString("x.py:1:1:1:2: warning: unused 'type: ignore' comment\n")
	require.NoError(t, err)
	require.Len(t, res.Report.Files, 1)
	issue := res.Report.Files[0].Issues[0]
	assert.Equal(t, diag.Category("warning"), issue.Category)
	assert.Equal(t, "unused 'type: ignore' comment", issue.Message)
	assert.Equal(t, 1, res.Report.Files[0].Count("warning"))
}

func TestParse_MalformedHeaderBeforeAnyIssueIsDropped(t *testing.T) {
	t.Parallel()

	res, err := mypy.NewAdapter().ParseString("x.py:a:b:c:d: error: nope\n")
	require.NoError(t, err)
	assert.Empty(t, res.Report.Files)
	assert.Equal(t, 1, res.Malformed)
}

func TestParse_ColonHeavyExcerptStaysWithIssue(t *testing.T) {
	t.Parallel()

	input := "m.py:2:5:2:30: error: Dict entry 0 has incompatible type\n    d: dict[str, int] = {\"a\": \"b\", \"c\": 1}\n"
	res, err := mypy.NewAdapter().ParseString(input)
	require.NoError(t, err)
	require.Len(t, res.Report.Files, 1)
	assert.Equal(t, `    d: dict[str, int] = {"a": "b", "c": 1}`, res.Report.Files[0].Issues[0].Excerpt)
	assert.Equal(t, 0, res.Malformed)
}

func TestParse_SuccessOutputIsClean(t *testing.T) {
	t.Parallel()

	res, err := mypy.NewAdapter().ParseString("Success: no issues found in 3 source files\n")
	require.NoError(t, err)
	assert.True(t, res.Report.IsClean())
	assert.Nil(t, res.Report.Score)
}

func TestParse_Deterministic(t *testing.T) {
	t.Parallel()

	a := mypy.NewAdapter()
	first, err := a.ParseString(prettyOutput)
	require.NoError(t, err)
	second, err := a.ParseString(prettyOutput)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestIsMypyOutput(t *testing.T) {
	t.Parallel()

	assert.True(t, mypy.IsMypyOutput([]byte("a.py:1:1:1:2: error: x\n")))
	assert.True(t, mypy.IsMypyOutput([]byte("Success: no issues found in 1 source file\n")))
	assert.False(t, mypy.IsMypyOutput([]byte("************* Module foo\n")))
	assert.False(t, mypy.IsMypyOutput(nil))
}
