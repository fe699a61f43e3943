package mapper

import (
	"fmt"

	"github.com/dkoosis/pylens/pkg/diag"
	"github.com/dkoosis/pylens/pkg/pattern"
)

// RerunDelta compares two consecutive runs: total issues, every category
// present in either run, and the score when both runs have one.
func RerunDelta(before, after *diag.Report, known []diag.Category) *pattern.Comparison {
	changes := []pattern.ComparisonItem{countChange("Issues", before.TotalIssues(), after.TotalIssues())}

	bt, at := before.Totals(), after.Totals()
	seen := make(map[diag.Category]bool)
	for _, r := range []*diag.Report{before, after} {
		for _, c := range r.Categories(known) {
			if seen[c] {
				continue
			}
			seen[c] = true
			if bt[c] == 0 && at[c] == 0 {
				continue
			}
			changes = append(changes, countChange(string(c), bt[c], at[c]))
		}
	}

	if before.HasScore() && after.HasScore() {
		changes = append(changes, pattern.ComparisonItem{
			Label:          "Score",
			Before:         fmt.Sprintf("%.2f", *before.Score),
			After:          fmt.Sprintf("%.2f", *after.Score),
			Change:         *after.Score - *before.Score,
			HigherIsBetter: true,
		})
	}
	return &pattern.Comparison{Label: "Since last run", Changes: changes}
}

func countChange(label string, before, after int) pattern.ComparisonItem {
	return pattern.ComparisonItem{
		Label:  label,
		Before: fmt.Sprintf("%d", before),
		After:  fmt.Sprintf("%d", after),
		Change: float64(after - before),
	}
}

// ScoreTrend charts the scores recorded this session. It returns nil until
// there are at least two.
func ScoreTrend(scores []float64) *pattern.Sparkline {
	if len(scores) < 2 {
		return nil
	}
	values := make([]float64, len(scores))
	copy(values, scores)
	return &pattern.Sparkline{Label: "Score", Values: values, Min: 0, Max: 10, Unit: "/10"}
}

// Notice wraps a status line.
func Notice(kind, format string, args ...any) *pattern.Notice {
	return &pattern.Notice{Kind: kind, Text: fmt.Sprintf(format, args...)}
}
