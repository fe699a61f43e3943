package diag

import "strings"

// Category classifies an issue by severity or kind.
type Category string

const (
	Convention Category = "Convention"
	Refactor   Category = "Refactor"
	Warning    Category = "Warning"
	Error      Category = "Error"
	Fatal      Category = "Fatal"
	Note       Category = "Note"
	Unknown    Category = "Unknown"
)

// Classifier maps a tool-specific short code to a Category.
// Classify is total: codes missing from the table map to Unknown, or pass
// through verbatim when the classifier was built with passthrough set.
type Classifier struct {
	table       map[string]Category
	order       []Category
	passthrough bool
	firstRune   bool
}

// LineStyle classifies pylint message codes by their first letter
// ("C0114" -> Convention).
var LineStyle = &Classifier{
	table: map[string]Category{
		"C": Convention,
		"R": Refactor,
		"W": Warning,
		"E": Error,
		"F": Fatal,
	},
	order:     []Category{Convention, Refactor, Warning, Error, Fatal, Unknown},
	firstRune: true,
}

// RangeStyle classifies mypy severity keywords. Keywords it does not know
// are returned as-is.
var RangeStyle = &Classifier{
	table: map[string]Category{
		"error": Error,
		"note":  Note,
	},
	order:       []Category{Error, Note, Unknown},
	passthrough: true,
}

// Classify returns the category for code.
func (c *Classifier) Classify(code string) Category {
	key := strings.TrimSpace(code)
	if c.firstRune && key != "" {
		key = string([]rune(key)[0])
	}
	if cat, ok := c.table[key]; ok {
		return cat
	}
	if c.passthrough && key != "" {
		return Category(key)
	}
	return Unknown
}

// Known returns the categories every FileResult counts, in display order.
func (c *Classifier) Known() []Category {
	out := make([]Category, len(c.order))
	copy(out, c.order)
	return out
}
