// Package mypy parses mypy's text output when run with --show-column-numbers
// and --show-error-end.
//
// Every finding starts with a location range header, optionally followed by
// the source lines mypy prints beneath it (with --pretty):
//
//	a.py:10:2:10:8: error: Name "y" is not defined  [name-defined]
//	        x = y
//	            ^
//	b.py:1:1:1:1: note: See https://mypy.rtfd.io
//
// Lines that follow a header up to the next header become that issue's
// excerpt.
package mypy

import (
	"bufio"
	"bytes"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/dkoosis/pylens/internal/logging"
	"github.com/dkoosis/pylens/pkg/diag"
)

var log = logging.Log

// ToolName is the report's Tool value.
const ToolName = "mypy"

var (
	headerRe = regexp.MustCompile(`^[^:\s][^:]*:\d+:\d+:\d+:\d+:\s*\S+:`)
	footerRe = regexp.MustCompile(`^(Found \d+ errors? in \d+ files?|Success: no issues found)`)
)

// Result is parsed mypy output.
type Result struct {
	Report *diag.Report
	// Malformed counts header-shaped lines dropped because a location field
	// was not numeric and no issue was open to take them as excerpt.
	Malformed int
}

// Adapter parses mypy text output.
type Adapter struct {
	classifier *diag.Classifier
}

// NewAdapter creates an adapter using the range-style category table.
func NewAdapter() *Adapter {
	return &Adapter{classifier: diag.RangeStyle}
}

// Parse reads mypy output from r.
func (a *Adapter) Parse(r io.Reader) (*Result, error) {
	var (
		issues    []diag.Issue
		current   = -1
		excerpt   []string
		malformed int
	)

	flush := func() {
		if current >= 0 && len(excerpt) > 0 {
			issues[current].Excerpt = strings.Join(excerpt, "\n")
		}
		excerpt = excerpt[:0]
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if issue, ok := a.parseHeader(line); ok {
			flush()
			issues = append(issues, issue)
			current = len(issues) - 1
			continue
		}

		switch {
		case footerRe.MatchString(line), isContextLine(line):
			continue
		case current >= 0:
			excerpt = append(excerpt, line)
		case len(strings.SplitN(line, ":", 5)) == 5:
			malformed++
			log.Debug("dropping malformed mypy line: %q", line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()

	return &Result{
		Report:    diag.Aggregate(ToolName, issues, nil, a.classifier.Known(), nil),
		Malformed: malformed,
	}, nil
}

// parseHeader splits "file:l1:c1:l2:c2: category: message".
func (a *Adapter) parseHeader(line string) (diag.Issue, bool) {
	if !headerRe.MatchString(line) {
		return diag.Issue{}, false
	}
	parts := strings.SplitN(line, ":", 5)
	if len(parts) < 5 {
		return diag.Issue{}, false
	}
	startLine, err1 := strconv.Atoi(strings.TrimSpace(parts[1]))
	startCol, err2 := strconv.Atoi(strings.TrimSpace(parts[2]))
	endLine, err3 := strconv.Atoi(strings.TrimSpace(parts[3]))
	if err1 != nil || err2 != nil || err3 != nil {
		return diag.Issue{}, false
	}

	// parts[4] is "<endCol>: <category>: <message>"
	endColText, rest, ok := strings.Cut(parts[4], ":")
	if !ok {
		return diag.Issue{}, false
	}
	endCol, err := strconv.Atoi(strings.TrimSpace(endColText))
	if err != nil {
		return diag.Issue{}, false
	}
	categoryText, message, _ := strings.Cut(rest, ":")
	category := strings.TrimSuffix(strings.TrimSpace(categoryText), ":")
	message = strings.TrimSpace(message)
	if message == "" {
		return diag.Issue{}, false
	}

	return diag.Issue{
		File:     parts[0],
		Start:    diag.CodeLocation{Line: startLine, Column: startCol},
		End:      diag.CodeLocation{Line: endLine, Column: endCol},
		Category: a.classifier.Classify(category),
		Message:  message,
	}, true
}

// isContextLine matches the scope lines --show-error-context prints ahead of
// a finding, e.g. `a.py: note: In function "f":`.
func isContextLine(line string) bool {
	if line[0] == ' ' || line[0] == '\t' {
		return false
	}
	parts := strings.SplitN(line, ":", 3)
	if len(parts) != 3 {
		return false
	}
	kind := strings.TrimSpace(parts[1])
	return kind == "note" || kind == "error"
}

// ParseBytes parses mypy output from bytes.
func (a *Adapter) ParseBytes(data []byte) (*Result, error) {
	return a.Parse(bytes.NewReader(data))
}

// ParseString parses mypy output from a string.
func (a *Adapter) ParseString(s string) (*Result, error) {
	return a.Parse(strings.NewReader(s))
}

// IsMypyOutput detects mypy's range headers or its summary footer.
func IsMypyOutput(data []byte) bool {
	for _, line := range bytes.Split(data, []byte("\n")) {
		line = bytes.TrimRight(line, "\r")
		if headerRe.Match(line) || footerRe.Match(line) {
			return true
		}
	}
	return false
}
