package diag

import "sort"

// Aggregate groups issues by file and computes per-category counts.
//
// Files appear in the order given by order, followed by any file that only
// shows up in issues (in first-seen order). Issues within a file are stable
// sorted by start line. Every category in known starts at zero so summaries
// can show empty columns.
func Aggregate(tool string, issues []Issue, order []string, known []Category, score *float64) *Report {
	byFile := make(map[string][]Issue)
	files := make([]string, 0, len(order))
	seen := make(map[string]bool, len(order))

	for _, name := range order {
		if !seen[name] {
			seen[name] = true
			files = append(files, name)
		}
	}
	for _, is := range issues {
		if !seen[is.File] {
			seen[is.File] = true
			files = append(files, is.File)
		}
		byFile[is.File] = append(byFile[is.File], is)
	}

	report := &Report{Tool: tool, Files: make([]FileResult, 0, len(files))}
	for _, name := range files {
		report.Files = append(report.Files, newFileResult(name, byFile[name], known))
	}
	if score != nil {
		s := *score
		report.Score = &s
	}
	return report
}

func newFileResult(name string, issues []Issue, known []Category) FileResult {
	sorted := make([]Issue, len(issues))
	copy(sorted, issues)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Line < sorted[j].Start.Line
	})

	counts := make(map[Category]int, len(known))
	for _, c := range known {
		counts[c] = 0
	}
	for _, is := range sorted {
		counts[is.Category]++
	}
	return FileResult{File: name, Issues: sorted, Counts: counts}
}
