package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/dkoosis/pylens/pkg/pattern"
)

// Terminal renders patterns as styled terminal output via lipgloss.
type Terminal struct {
	theme Theme
	width int
}

// NewTerminal creates a terminal renderer with the given theme.
func NewTerminal(theme Theme, width int) *Terminal {
	if width <= 0 {
		width = 80
	}
	return &Terminal{theme: theme, width: width}
}

// Render formats all patterns for terminal display.
func (t *Terminal) Render(patterns []pattern.Pattern) string {
	var sections []string
	for _, p := range patterns {
		s := t.renderOne(p)
		if s != "" {
			sections = append(sections, s)
		}
	}
	return strings.Join(sections, "\n")
}

func (t *Terminal) renderOne(p pattern.Pattern) string {
	switch v := p.(type) {
	case *pattern.Summary:
		return t.renderSummary(v)
	case *pattern.FileTable:
		return t.renderFileTable(v)
	case *pattern.IssueTable:
		return t.renderIssueTable(v)
	case *pattern.Leaderboard:
		return t.renderLeaderboard(v)
	case *pattern.Sparkline:
		return t.renderSparkline(v)
	case *pattern.Comparison:
		return t.renderComparison(v)
	case *pattern.Notice:
		return t.renderNotice(v)
	default:
		return ""
	}
}

func (t *Terminal) renderSummary(s *pattern.Summary) string {
	var sb strings.Builder
	if s.Label != "" {
		label := s.Label
		if s.Kind == pattern.SummaryKindClean {
			label = t.theme.Icons.Pass + " " + label
			sb.WriteString(t.theme.Success.Render(label))
		} else {
			sb.WriteString(t.theme.Bold.Render(label))
		}
		sb.WriteString("\n")
	}
	for _, m := range s.Metrics {
		sb.WriteString("  ")
		icon, style := t.iconStyle(m.Kind)
		sb.WriteString(style.Render(icon + " " + m.Label + ": " + m.Value))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (t *Terminal) renderFileTable(ft *pattern.FileTable) string {
	if len(ft.Rows) == 0 {
		return ""
	}
	var sb strings.Builder
	if ft.Label != "" {
		sb.WriteString(t.theme.Bold.Render(ft.Label))
		sb.WriteString("\n")
	}

	ordW := len(strconv.Itoa(len(ft.Rows)))
	nameW := runewidth.StringWidth("File")
	totalW := len("Total")
	for _, r := range ft.Rows {
		nameW = max(nameW, runewidth.StringWidth(r.File))
		totalW = max(totalW, len(strconv.Itoa(r.Total)))
	}
	colW := make([]int, len(ft.Columns))
	for i, c := range ft.Columns {
		colW[i] = runewidth.StringWidth(c)
		for _, r := range ft.Rows {
			if i < len(r.Counts) {
				colW[i] = max(colW[i], len(strconv.Itoa(r.Counts[i])))
			}
		}
	}

	// Shrink the file column so the row fits the terminal.
	fixed := 2 + ordW + 2 + 2 + totalW
	for _, w := range colW {
		fixed += 2 + w
	}
	if avail := t.width - fixed; avail < nameW {
		nameW = max(avail, 12)
	}

	var head strings.Builder
	head.WriteString("  " + strings.Repeat(" ", ordW) + "  ")
	head.WriteString(padRight("File", nameW))
	head.WriteString("  " + padLeft("Total", totalW))
	for i, c := range ft.Columns {
		head.WriteString("  " + padLeft(c, colW[i]))
	}
	sb.WriteString(t.theme.Muted.Render(head.String()))
	sb.WriteString("\n")

	for _, r := range ft.Rows {
		sb.WriteString("  ")
		sb.WriteString(t.theme.Ordinal.Render(padLeft(strconv.Itoa(r.Ordinal), ordW)))
		sb.WriteString("  ")
		sb.WriteString(t.theme.Primary.Render(padRight(truncate(r.File, nameW), nameW)))
		sb.WriteString("  ")
		sb.WriteString(t.theme.Bold.Render(padLeft(strconv.Itoa(r.Total), totalW)))
		for i, n := range r.Counts {
			if i >= len(colW) {
				break
			}
			cell := padLeft(strconv.Itoa(n), colW[i])
			sb.WriteString("  ")
			if n == 0 {
				sb.WriteString(t.theme.Muted.Render(cell))
			} else {
				sb.WriteString(t.theme.Category(ft.Columns[i]).Render(cell))
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// excerptWidth caps each source line shown under an issue.
const excerptWidth = 50

func (t *Terminal) renderIssueTable(it *pattern.IssueTable) string {
	var sb strings.Builder
	if it.Label != "" {
		sb.WriteString(t.theme.Bold.Render(it.Label))
		sb.WriteString("\n")
	}
	if len(it.Results) == 0 {
		sb.WriteString("  ")
		sb.WriteString(t.theme.Success.Render(t.theme.Icons.Pass + " no issues"))
		sb.WriteString("\n")
		return sb.String()
	}

	locW, catW := 0, 0
	for _, r := range it.Results {
		locW = max(locW, runewidth.StringWidth(r.Location))
		catW = max(catW, runewidth.StringWidth(r.Category))
	}

	for _, r := range it.Results {
		icon, style := t.iconStyle(r.Kind)
		sb.WriteString("  ")
		sb.WriteString(style.Render(icon + " "))
		sb.WriteString(t.theme.Muted.Render(padRight(r.Location, locW)))
		sb.WriteString("  ")
		sb.WriteString(t.theme.Category(r.Category).Render(padRight(r.Category, catW)))
		sb.WriteString("  ")
		sb.WriteString(r.Message)
		if r.Excerpt != "" {
			for _, line := range strings.Split(r.Excerpt, "\n") {
				sb.WriteString("\n      ")
				sb.WriteString(t.theme.Muted.Render(truncate(line, excerptWidth)))
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (t *Terminal) renderLeaderboard(l *pattern.Leaderboard) string {
	if len(l.Items) == 0 {
		return ""
	}
	var sb strings.Builder
	if l.Label != "" {
		header := l.Label
		if l.TotalCount > len(l.Items) {
			header += fmt.Sprintf(" (top %d of %d)", len(l.Items), l.TotalCount)
		}
		sb.WriteString(t.theme.Bold.Render(header))
		sb.WriteString("\n")
	}

	maxName, maxMetric := 0, 0
	for _, item := range l.Items {
		maxName = max(maxName, runewidth.StringWidth(item.Name))
		maxMetric = max(maxMetric, runewidth.StringWidth(item.Metric))
	}
	maxName = min(maxName, 50)

	for _, item := range l.Items {
		sb.WriteString("  ")
		if l.ShowRank {
			sb.WriteString(t.theme.Muted.Render(fmt.Sprintf("%2d. ", item.Rank)))
		}
		sb.WriteString(t.theme.Primary.Render(padRight(truncate(item.Name, maxName), maxName)))
		sb.WriteString("  ")
		sb.WriteString(t.theme.Warning.Render(padLeft(item.Metric, maxMetric)))
		sb.WriteString("\n")
	}
	return sb.String()
}

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

func (t *Terminal) renderSparkline(s *pattern.Sparkline) string {
	if len(s.Values) == 0 {
		return ""
	}
	var sb strings.Builder
	if s.Label != "" {
		sb.WriteString(t.theme.Primary.Render(s.Label + ": "))
	}
	sb.WriteString(t.theme.Success.Render(spark(s)))
	latest := s.Values[len(s.Values)-1]
	sb.WriteString(t.theme.Muted.Render(fmt.Sprintf(" %.1f%s", latest, s.Unit)))
	sb.WriteString("\n")
	return sb.String()
}

// spark maps each value onto one of eight block heights.
func spark(s *pattern.Sparkline) string {
	minVal, maxVal := s.Min, s.Max
	if minVal == 0 && maxVal == 0 {
		minVal, maxVal = s.Values[0], s.Values[0]
		for _, v := range s.Values {
			minVal = min(minVal, v)
			maxVal = max(maxVal, v)
		}
	}
	valueRange := maxVal - minVal
	if valueRange == 0 {
		valueRange = 1
	}
	var b strings.Builder
	for _, v := range s.Values {
		idx := int((v - minVal) / valueRange * 7)
		idx = min(max(idx, 0), 7)
		b.WriteRune(sparkBlocks[idx])
	}
	return b.String()
}

func (t *Terminal) renderComparison(c *pattern.Comparison) string {
	if len(c.Changes) == 0 {
		return ""
	}
	var sb strings.Builder
	if c.Label != "" {
		sb.WriteString(t.theme.Bold.Render(c.Label))
		sb.WriteString("\n")
	}
	for _, item := range c.Changes {
		sb.WriteString("  ")
		sb.WriteString(item.Label + ": ")
		sb.WriteString(t.theme.Muted.Render(item.Before + " → " + item.After))
		sb.WriteString(" ")

		var arrow string
		var style lipgloss.Style
		better := item.Change < 0
		if item.HigherIsBetter {
			better = item.Change > 0
		}
		switch {
		case item.Change == 0:
			arrow, style = "=", t.theme.Muted
		case item.Change > 0:
			arrow = t.theme.Icons.Up
		default:
			arrow = t.theme.Icons.Down
		}
		if item.Change != 0 {
			style = t.theme.Warning
			if better {
				style = t.theme.Success
			}
		}
		sb.WriteString(style.Render(arrow + " " + formatChange(item.Change) + item.Unit))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (t *Terminal) renderNotice(n *pattern.Notice) string {
	icon, style := t.iconStyle(n.Kind)
	return style.Render(icon+" "+n.Text) + "\n"
}

func (t *Terminal) iconStyle(kind string) (string, lipgloss.Style) {
	switch kind {
	case pattern.KindSuccess:
		return t.theme.Icons.Pass, t.theme.Success
	case pattern.KindError:
		return t.theme.Icons.Fail, t.theme.Error
	case pattern.KindWarning:
		return t.theme.Icons.Warn, t.theme.Warning
	default:
		return t.theme.Icons.Info, t.theme.Primary
	}
}

// formatChange prints whole-number deltas without decimals.
func formatChange(v float64) string {
	if v < 0 {
		v = -v
	}
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}

func padRight(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

func padLeft(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return strings.Repeat(" ", width-w) + s
}
