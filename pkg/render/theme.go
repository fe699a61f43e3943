package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dkoosis/pylens/pkg/diag"
)

// Themes lists the accepted --theme values.
var Themes = []string{"default", "orca", "mono"}

// Palette is the set of colors a theme is built from. Category colors are
// keyed by diag category so pylint and mypy findings share one scheme; an
// empty color leaves the text unstyled.
type Palette struct {
	Accent lipgloss.Color // file names, labels
	Good   lipgloss.Color // clean runs, improving scores
	Bad    lipgloss.Color // failures
	Dim    lipgloss.Color // headers, locations, excerpts

	Categories map[diag.Category]lipgloss.Color
}

// Theme holds the styles the terminal renderer and TUI draw with.
type Theme struct {
	Name    string
	Primary lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
	Ordinal lipgloss.Style // file numbers in the summary table
	Icons   ThemeIcons

	categories map[diag.Category]lipgloss.Style
	unknown    lipgloss.Style
}

// ThemeIcons defines the icon set for a theme.
type ThemeIcons struct {
	Pass   string
	Fail   string
	Warn   string
	Info   string
	Bullet string
	Up     string
	Down   string
}

func fg(c lipgloss.Color) lipgloss.Style {
	if c == "" {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(c)
}

// NewTheme derives a theme's styles from a palette.
func NewTheme(name string, p Palette, icons ThemeIcons) Theme {
	t := Theme{
		Name:       name,
		Primary:    fg(p.Accent),
		Success:    fg(p.Good),
		Warning:    fg(p.Categories[diag.Warning]),
		Error:      fg(p.Bad),
		Muted:      fg(p.Dim),
		Bold:       lipgloss.NewStyle().Bold(true),
		Ordinal:    fg(p.Accent).Bold(true),
		Icons:      icons,
		categories: make(map[diag.Category]lipgloss.Style, len(p.Categories)),
		unknown:    fg(p.Categories[diag.Unknown]),
	}
	for cat, c := range p.Categories {
		t.categories[cat] = fg(c)
	}
	t.categories[diag.Fatal] = t.categories[diag.Fatal].Bold(true)
	return t
}

// Category returns the style for a category label. Labels are matched
// case-insensitively so mypy's pass-through severities ("warning") pick up
// the matching pylint color; anything else gets the Unknown style.
func (t Theme) Category(label string) lipgloss.Style {
	if s, ok := t.categories[diag.Category(label)]; ok {
		return s
	}
	for cat, s := range t.categories {
		if strings.EqualFold(string(cat), label) {
			return s
		}
	}
	return t.unknown
}

var unicodeIcons = ThemeIcons{Pass: "✓", Fail: "✗", Warn: "⚠", Info: "●", Bullet: "·", Up: "↑", Down: "↓"}

// DefaultTheme colors each category distinctly on a 256-color terminal.
func DefaultTheme() Theme {
	return NewTheme("default", Palette{
		Accent: "39",
		Good:   "34",
		Bad:    "196",
		Dim:    "242",
		Categories: map[diag.Category]lipgloss.Color{
			diag.Convention: "75",
			diag.Refactor:   "141",
			diag.Warning:    "214",
			diag.Error:      "196",
			diag.Fatal:      "199",
			diag.Note:       "44",
			diag.Unknown:    "250",
		},
	}, unicodeIcons)
}

// OrcaTheme is a low-contrast variant of DefaultTheme.
func OrcaTheme() Theme {
	icons := unicodeIcons
	icons.Warn, icons.Info = "!", "·"
	return NewTheme("orca", Palette{
		Accent: "75",
		Good:   "108",
		Bad:    "167",
		Dim:    "245",
		Categories: map[diag.Category]lipgloss.Color{
			diag.Convention: "110",
			diag.Refactor:   "139",
			diag.Warning:    "179",
			diag.Error:      "167",
			diag.Fatal:      "168",
			diag.Note:       "109",
			diag.Unknown:    "246",
		},
	}, icons)
}

// MonoTheme uses no colors and ASCII icons. Fatal stays bold.
func MonoTheme() Theme {
	return NewTheme("mono", Palette{
		Categories: map[diag.Category]lipgloss.Color{
			diag.Convention: "",
			diag.Refactor:   "",
			diag.Warning:    "",
			diag.Error:      "",
			diag.Fatal:      "",
			diag.Note:       "",
			diag.Unknown:    "",
		},
	}, ThemeIcons{Pass: "+", Fail: "x", Warn: "!", Info: "*", Bullet: "-", Up: "^", Down: "v"})
}

// ThemeByName returns a theme by name, defaulting to DefaultTheme.
// NO_COLOR handling happens in config, which maps it to "mono".
func ThemeByName(name string) Theme {
	switch name {
	case "orca":
		return OrcaTheme()
	case "mono":
		return MonoTheme()
	default:
		return DefaultTheme()
	}
}
