package mapper

import (
	"fmt"
	"time"

	"github.com/dkoosis/pylens/pkg/diag"
	"github.com/dkoosis/pylens/pkg/pattern"
)

// FileDetail lists one file's issues in line order.
func FileDetail(f diag.FileResult) *pattern.IssueTable {
	items := make([]pattern.IssueItem, len(f.Issues))
	for i, is := range f.Issues {
		items[i] = pattern.IssueItem{
			Location: location(is),
			Category: string(is.Category),
			Kind:     Kind(is.Category),
			Message:  is.Message,
			Excerpt:  is.Excerpt,
		}
	}
	return &pattern.IssueTable{Label: f.File, Results: items}
}

// AllDetail renders every file of the report, including files without
// issues, headed by a detail summary.
func AllDetail(r *diag.Report) []pattern.Pattern {
	patterns := make([]pattern.Pattern, 0, len(r.Files)+1)
	patterns = append(patterns, &pattern.Summary{
		Label: header(r.Tool, fmt.Sprintf("all %d files", len(r.Files)), time.Time{}),
		Kind:  pattern.SummaryKindDetail,
	})
	for _, f := range r.Files {
		patterns = append(patterns, FileDetail(f))
	}
	return patterns
}

func location(is diag.Issue) string {
	start := fmt.Sprintf("%d:%d", is.Start.Line, is.Start.Column)
	if !is.HasRange() {
		return start
	}
	return fmt.Sprintf("%s-%d:%d", start, is.End.Line, is.End.Column)
}
