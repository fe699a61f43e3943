package sarif

import (
	"encoding/json"
	"io"
	"regexp"
	"strings"

	"github.com/dkoosis/pylens/pkg/diag"
)

var (
	// "C0114: Missing module docstring (missing-module-docstring)"
	codePrefixRe = regexp.MustCompile(`^([A-Z]\d{4}):\s*(.*)$`)
	// `Name "y" is not defined  [name-defined]`
	codeSuffixRe = regexp.MustCompile(`^(.*?)\s*\[([a-z][a-z0-9-]*)\]$`)
)

// Builder constructs SARIF 2.1.0 documents with a single run.
type Builder struct {
	doc *Document
	// added to every column; pylint counts from 0, SARIF from 1
	colOffset int
}

// NewBuilder creates a builder for the given tool.
func NewBuilder(toolName, toolVersion string) *Builder {
	return &Builder{doc: &Document{
		Version: Version,
		Schema:  schemaURI,
		Runs: []Run{{
			Tool:    Tool{Driver: Driver{Name: toolName, Version: toolVersion}},
			Results: []Result{},
		}},
	}}
}

// FromReport converts every issue of r, in report order. The pylint score,
// when present, is kept as a run property.
func FromReport(r *diag.Report, toolVersion string) *Builder {
	b := NewBuilder(r.Tool, toolVersion)
	if r.Tool == "pylint" {
		b.colOffset = 1
	}
	for _, f := range r.Files {
		for _, issue := range f.Issues {
			b.AddIssue(issue)
		}
	}
	if r.HasScore() {
		b.doc.Runs[0].Properties = map[string]any{"score": *r.Score}
	}
	return b
}

// AddIssue appends one issue to the run.
func (b *Builder) AddIssue(issue diag.Issue) *Builder {
	rule, text := splitRule(issue.Message, issue.Category)
	region := Region{
		StartLine:   issue.Start.Line,
		StartColumn: b.column(issue.Start.Column),
		EndLine:     issue.End.Line,
		EndColumn:   b.column(issue.End.Column),
	}
	if issue.HasExcerpt() {
		region.Snippet = &Snippet{Text: issue.Excerpt}
	}

	run := &b.doc.Runs[0]
	run.Results = append(run.Results, Result{
		RuleID:  rule,
		Level:   Level(issue.Category),
		Message: Message{Text: text},
		Locations: []Location{{PhysicalLocation: PhysicalLocation{
			ArtifactLocation: ArtifactLocation{URI: issue.File},
			Region:           region,
		}}},
		Properties: map[string]string{"category": string(issue.Category)},
	})
	return b
}

// Document returns the constructed SARIF document.
func (b *Builder) Document() *Document {
	return b.doc
}

// WriteTo writes the SARIF document as JSON to w.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	data, err := json.MarshalIndent(b.doc, "", "  ")
	if err != nil {
		return 0, err
	}
	data = append(data, '\n')
	n, err := w.Write(data)
	return int64(n), err
}

// Level maps a category to a SARIF result level.
func Level(c diag.Category) string {
	switch strings.ToLower(string(c)) {
	case "error", "fatal":
		return "error"
	case "warning":
		return "warning"
	default:
		return "note"
	}
}

// splitRule pulls the tool's rule code out of a message. Messages without
// one are filed under the lower-cased category.
func splitRule(msg string, c diag.Category) (rule, text string) {
	if m := codePrefixRe.FindStringSubmatch(msg); m != nil {
		return m[1], m[2]
	}
	if m := codeSuffixRe.FindStringSubmatch(msg); m != nil {
		return m[2], m[1]
	}
	return strings.ToLower(string(c)), msg
}

// column returns a 1-based column, or 0 (omitted) when unknown.
func (b *Builder) column(c int) int {
	if c+b.colOffset <= 0 {
		return 0
	}
	return c + b.colOffset
}
