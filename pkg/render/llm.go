package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dkoosis/pylens/pkg/pattern"
)

// maxExcerptLines caps source context per issue.
const maxExcerptLines = 3

// LLM renders patterns as terse plain text optimized for AI consumption.
// Zero ANSI codes, one fact per line, input order preserved.
type LLM struct{}

// NewLLM creates an LLM renderer.
func NewLLM() *LLM {
	return &LLM{}
}

// Render formats all patterns for LLM consumption.
func (l *LLM) Render(patterns []pattern.Pattern) string {
	var sb strings.Builder
	for _, p := range patterns {
		switch v := p.(type) {
		case *pattern.Summary:
			l.renderSummary(&sb, v)
		case *pattern.FileTable:
			l.renderFileTable(&sb, v)
		case *pattern.IssueTable:
			l.renderIssueTable(&sb, v)
		case *pattern.Comparison:
			l.renderComparison(&sb, v)
		case *pattern.Sparkline:
			vals := make([]string, len(v.Values))
			for i, x := range v.Values {
				vals[i] = strconv.FormatFloat(x, 'f', 2, 64)
			}
			sb.WriteString("TREND " + v.Label + ": " + strings.Join(vals, " ") + "\n")
		case *pattern.Notice:
			sb.WriteString(noticePrefix(v.Kind) + v.Text + "\n")
		}
		// Leaderboards repeat the file table; skipped.
	}
	return sb.String()
}

func (l *LLM) renderSummary(sb *strings.Builder, s *pattern.Summary) {
	sb.WriteString("SCOPE: " + s.Label + "\n")
	if len(s.Metrics) == 0 {
		return
	}
	parts := make([]string, len(s.Metrics))
	for i, m := range s.Metrics {
		parts[i] = m.Label + "=" + m.Value
	}
	sb.WriteString(strings.Join(parts, " ") + "\n")
}

func (l *LLM) renderFileTable(sb *strings.Builder, ft *pattern.FileTable) {
	sb.WriteString("\n")
	for _, r := range ft.Rows {
		var counts []string
		for i, n := range r.Counts {
			if n > 0 && i < len(ft.Columns) {
				counts = append(counts, fmt.Sprintf("%s %d", ft.Columns[i], n))
			}
		}
		line := fmt.Sprintf("%d %s %d", r.Ordinal, r.File, r.Total)
		if len(counts) > 0 {
			line += " (" + strings.Join(counts, ", ") + ")"
		}
		sb.WriteString(line + "\n")
	}
}

func (l *LLM) renderIssueTable(sb *strings.Builder, it *pattern.IssueTable) {
	sb.WriteString("\n## " + it.Label + "\n")
	for _, r := range it.Results {
		fmt.Fprintf(sb, "  %s %s %s %s\n", levelTag(r.Kind), r.Location, r.Category, r.Message)
		if r.Excerpt == "" {
			continue
		}
		lines := strings.Split(r.Excerpt, "\n")
		shown := min(len(lines), maxExcerptLines)
		for _, line := range lines[:shown] {
			sb.WriteString("    " + line + "\n")
		}
		if len(lines) > maxExcerptLines {
			fmt.Fprintf(sb, "    ... (%d more lines)\n", len(lines)-maxExcerptLines)
		}
	}
}

func (l *LLM) renderComparison(sb *strings.Builder, c *pattern.Comparison) {
	for _, item := range c.Changes {
		sign := "+"
		if item.Change < 0 {
			sign = "-"
		}
		delta := "="
		if item.Change != 0 {
			delta = sign + formatChange(item.Change)
		}
		fmt.Fprintf(sb, "DELTA %s %s->%s (%s)\n", item.Label, item.Before, item.After, delta)
	}
}

func levelTag(kind string) string {
	switch kind {
	case pattern.KindError:
		return "ERR"
	case pattern.KindWarning:
		return "WARN"
	default:
		return "NOTE"
	}
}

func noticePrefix(kind string) string {
	switch kind {
	case pattern.KindError:
		return "ERROR: "
	case pattern.KindWarning:
		return "WARNING: "
	default:
		return ""
	}
}
