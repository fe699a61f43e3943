// Package diag holds the normalized diagnostic model shared by every parser:
// issues, per-file results and the aggregate report for one tool run.
//
// Reports are built once by Aggregate and treated as immutable afterwards.
// Consumers that need a different report (a rerun, for example) replace the
// pointer instead of editing the value.
package diag

import "sort"

// CodeLocation is a point in a source file.
type CodeLocation struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Issue is one diagnostic finding.
type Issue struct {
	File     string       `json:"file"`
	Start    CodeLocation `json:"start"`
	End      CodeLocation `json:"end,omitzero"`
	Category Category     `json:"category"`
	Message  string       `json:"message"`
	Excerpt  string       `json:"excerpt,omitempty"`
}

// HasExcerpt reports whether the tool printed source context for the issue.
func (i Issue) HasExcerpt() bool { return i.Excerpt != "" }

// HasRange reports whether the issue carries an end location.
func (i Issue) HasRange() bool { return i.End.Line > 0 }

// FileResult is every issue reported for one file.
type FileResult struct {
	File   string           `json:"file"`
	Issues []Issue          `json:"issues"`
	Counts map[Category]int `json:"counts"`
}

// Total returns the number of issues in the file.
func (f FileResult) Total() int { return len(f.Issues) }

// Count returns the number of issues of category c.
func (f FileResult) Count(c Category) int { return f.Counts[c] }

// Report is the parse result for one tool invocation.
type Report struct {
	Tool  string       `json:"tool"`
	Files []FileResult `json:"files"`
	// Score is nil unless the tool output reported one.
	Score *float64 `json:"score,omitempty"`
}

// Empty returns a report with no files and no score.
func Empty(tool string) *Report {
	return &Report{Tool: tool, Files: []FileResult{}}
}

// HasScore reports whether the tool reported an overall score.
func (r *Report) HasScore() bool { return r != nil && r.Score != nil }

// TotalIssues returns the issue count across all files.
func (r *Report) TotalIssues() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, f := range r.Files {
		n += len(f.Issues)
	}
	return n
}

// IsClean reports whether the report holds no issues.
func (r *Report) IsClean() bool { return r.TotalIssues() == 0 }

// File returns the result for name.
func (r *Report) File(name string) (FileResult, bool) {
	if r == nil {
		return FileResult{}, false
	}
	for _, f := range r.Files {
		if f.File == name {
			return f, true
		}
	}
	return FileResult{}, false
}

// Totals sums per-category counts across all files.
func (r *Report) Totals() map[Category]int {
	totals := make(map[Category]int)
	if r == nil {
		return totals
	}
	for _, f := range r.Files {
		for c, n := range f.Counts {
			totals[c] += n
		}
	}
	return totals
}

// Categories returns the categories seen in the report, ordered with the
// classifier's known categories first and any pass-through ones after them
// alphabetically.
func (r *Report) Categories(known []Category) []Category {
	seen := make(map[Category]bool, len(known))
	out := make([]Category, 0, len(known))
	for _, c := range known {
		seen[c] = true
		out = append(out, c)
	}
	var extra []Category
	for c := range r.Totals() {
		if !seen[c] {
			seen[c] = true
			extra = append(extra, c)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}
