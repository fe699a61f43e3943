// Package mapper converts diagnostic reports to visualization patterns.
package mapper

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dkoosis/pylens/pkg/diag"
	"github.com/dkoosis/pylens/pkg/pattern"
)

const topFiles = 10

var titleCase = cases.Title(language.English)

// FromReport builds the summary view of a report:
// Summary + FileTable (ordinals start at 1 in report order) + Leaderboard
// when more than one file has issues. A clean report maps to a single
// clean Summary. ranAt, when set, is shown as "ran 3 seconds ago".
func FromReport(r *diag.Report, known []diag.Category, ranAt time.Time) []pattern.Pattern {
	if r.IsClean() && len(r.Files) == 0 {
		return []pattern.Pattern{Clean(r, ranAt)}
	}

	patterns := []pattern.Pattern{summary(r, known, ranAt)}
	patterns = append(patterns, fileTable(r, known))
	if lb := leaderboard(r); lb != nil {
		patterns = append(patterns, lb)
	}
	return patterns
}

// Clean is the summary shown when a run reports no issues.
func Clean(r *diag.Report, ranAt time.Time) *pattern.Summary {
	metrics := []pattern.SummaryItem{{Label: "Issues", Value: "0", Kind: pattern.KindSuccess}}
	if r.HasScore() {
		metrics = append(metrics, scoreItem(*r.Score))
	}
	return &pattern.Summary{
		Label:   header(r.Tool, "no issues", ranAt),
		Kind:    pattern.SummaryKindClean,
		Metrics: metrics,
	}
}

func summary(r *diag.Report, known []diag.Category, ranAt time.Time) *pattern.Summary {
	total := r.TotalIssues()
	desc := fmt.Sprintf("%s in %s",
		english.Plural(total, "issue", ""),
		english.Plural(len(r.Files), "file", ""))

	totals := r.Totals()
	var metrics []pattern.SummaryItem
	for _, c := range r.Categories(known) {
		n := totals[c]
		if n == 0 {
			continue
		}
		metrics = append(metrics, pattern.SummaryItem{
			Label: string(c),
			Value: humanize.Comma(int64(n)),
			Kind:  Kind(c),
		})
	}
	if r.HasScore() {
		metrics = append(metrics, scoreItem(*r.Score))
	}
	if total == 0 {
		metrics = append(metrics, pattern.SummaryItem{Label: "Issues", Value: "0", Kind: pattern.KindSuccess})
	}

	return &pattern.Summary{
		Label:   header(r.Tool, desc, ranAt),
		Kind:    pattern.SummaryKindReport,
		Metrics: metrics,
	}
}

func header(tool, desc string, ranAt time.Time) string {
	label := titleCase.String(tool) + ": " + desc
	if !ranAt.IsZero() {
		label += " (ran " + humanize.Time(ranAt) + ")"
	}
	return label
}

func scoreItem(score float64) pattern.SummaryItem {
	kind := pattern.KindSuccess
	switch {
	case score < 5:
		kind = pattern.KindError
	case score < 8:
		kind = pattern.KindWarning
	}
	return pattern.SummaryItem{Label: "Score", Value: fmt.Sprintf("%.2f/10", score), Kind: kind}
}

func fileTable(r *diag.Report, known []diag.Category) *pattern.FileTable {
	cats := r.Categories(known)
	cols := make([]string, len(cats))
	for i, c := range cats {
		cols[i] = string(c)
	}

	rows := make([]pattern.FileRow, len(r.Files))
	for i, f := range r.Files {
		counts := make([]int, len(cats))
		for j, c := range cats {
			counts[j] = f.Count(c)
		}
		rows[i] = pattern.FileRow{Ordinal: i + 1, File: f.File, Total: f.Total(), Counts: counts}
	}
	return &pattern.FileTable{Label: "Files", Columns: cols, Rows: rows}
}

func leaderboard(r *diag.Report) *pattern.Leaderboard {
	var withIssues []diag.FileResult
	for _, f := range r.Files {
		if f.Total() > 0 {
			withIssues = append(withIssues, f)
		}
	}
	if len(withIssues) <= 1 {
		return nil
	}
	sort.SliceStable(withIssues, func(i, j int) bool {
		return withIssues[i].Total() > withIssues[j].Total()
	})
	total := len(withIssues)
	if len(withIssues) > topFiles {
		withIssues = withIssues[:topFiles]
	}

	items := make([]pattern.LeaderboardItem, len(withIssues))
	for i, f := range withIssues {
		items[i] = pattern.LeaderboardItem{
			Name:    displayName(f.File),
			Metric:  english.Plural(f.Total(), "issue", ""),
			Value:   float64(f.Total()),
			Rank:    i + 1,
			Context: f.File,
		}
	}
	return &pattern.Leaderboard{
		Label:      "Files with Most Issues",
		MetricName: "Issues",
		Items:      items,
		TotalCount: total,
		ShowRank:   true,
	}
}

// displayName keeps the parent directory for context: "pkg/mod.py".
func displayName(file string) string {
	name := filepath.Base(file)
	if dir := filepath.Dir(file); dir != "." && dir != "/" {
		name = filepath.Join(filepath.Base(dir), name)
	}
	return name
}

// Kind maps a category to a coloring kind. Pass-through categories are
// matched by name so mypy's "warning" colors like pylint's Warning.
func Kind(c diag.Category) string {
	switch strings.ToLower(string(c)) {
	case "error", "fatal":
		return pattern.KindError
	case "warning":
		return pattern.KindWarning
	default:
		return pattern.KindInfo
	}
}
