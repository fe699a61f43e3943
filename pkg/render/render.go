// Package render turns patterns into text for a terminal, an LLM or a
// machine.
package render

import (
	"fmt"

	"github.com/dkoosis/pylens/pkg/pattern"
)

// Renderer converts patterns to formatted output.
type Renderer interface {
	Render(patterns []pattern.Pattern) string
}

// Formats lists the accepted --format values.
var Formats = []string{"terminal", "llm", "json"}

// New returns the renderer for format. width only applies to the terminal
// renderer.
func New(format string, theme Theme, width int) (Renderer, error) {
	switch format {
	case "", "terminal":
		return NewTerminal(theme, width), nil
	case "llm":
		return NewLLM(), nil
	case "json":
		return NewJSON(), nil
	default:
		return nil, fmt.Errorf("unknown format %q (want one of %v)", format, Formats)
	}
}
