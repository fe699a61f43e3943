package browser

import (
	"fmt"
	"io"

	"github.com/dkoosis/pylens/pkg/pattern"
	"github.com/dkoosis/pylens/pkg/render"
)

// WriterSink renders patterns to a writer.
type WriterSink struct {
	w        io.Writer
	renderer render.Renderer
}

// NewWriterSink creates a sink that renders with r and writes to w.
func NewWriterSink(w io.Writer, r render.Renderer) *WriterSink {
	return &WriterSink{w: w, renderer: r}
}

// Show renders patterns as one block followed by a blank line.
func (s *WriterSink) Show(patterns ...pattern.Pattern) {
	if len(patterns) == 0 {
		return
	}
	fmt.Fprintln(s.w, s.renderer.Render(patterns))
}

// RecordingSink keeps every pattern it is shown. The TUI uses it to
// collect a view before drawing it.
type RecordingSink struct {
	Shown []pattern.Pattern
}

// Show appends patterns.
func (s *RecordingSink) Show(patterns ...pattern.Pattern) {
	s.Shown = append(s.Shown, patterns...)
}

// Drain returns the recorded patterns and clears the sink.
func (s *RecordingSink) Drain() []pattern.Pattern {
	out := s.Shown
	s.Shown = nil
	return out
}
