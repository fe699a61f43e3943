// Package pylint parses pylint's default text report.
//
// The report is a series of per-module blocks:
//
//	************* Module foo
//	foo.py:3:0: C0114: Missing module docstring (missing-module-docstring)
//	foo.py:7:4: W0612: Unused variable 'x' (unused-variable)
//
//	------------------------------------------------------------------
//	Your code has been rated at 8.50/10
//
// Each module header opens a file bucket keyed "<module>.py"; issue lines are
// attributed to the bucket that is open when they appear.
package pylint

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/dkoosis/pylens/internal/logging"
	"github.com/dkoosis/pylens/pkg/diag"
)

var log = logging.Log

// ToolName is the report's Tool value.
const ToolName = "pylint"

const (
	moduleHeader = "************* Module "
	sourceExt    = ".py"
	emptyMessage = "(empty message)"
)

var scoreRe = regexp.MustCompile(`rated at\s+(-?\d+(?:\.\d+)?)/10`)

// ErrNoScore is returned, together with the parsed result, when the output
// never reported a score. pylint always prints one when it runs to
// completion, so its absence means the run was cut short.
var ErrNoScore = errors.New("pylint output has no score line")

// Result is a parsed pylint report.
type Result struct {
	Report *diag.Report
	// Malformed counts issue-shaped lines that were dropped because their
	// line number was not a non-negative integer.
	Malformed int
}

// Adapter parses pylint text output.
type Adapter struct {
	classifier *diag.Classifier
}

// NewAdapter creates an adapter using the line-style category table.
func NewAdapter() *Adapter {
	return &Adapter{classifier: diag.LineStyle}
}

// Parse reads pylint output from r.
// A missing score line yields a complete Result and ErrNoScore.
func (a *Adapter) Parse(r io.Reader) (*Result, error) {
	var (
		issues    []diag.Issue
		order     []string
		seen      = make(map[string]bool)
		current   string
		score     *float64
		malformed int
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()

		if s, ok := parseScore(line); ok {
			score = &s
		}

		if strings.HasPrefix(line, moduleHeader) {
			fields := strings.Fields(line)
			current = fields[len(fields)-1] + sourceExt
			if !seen[current] {
				seen[current] = true
				order = append(order, current)
			}
			continue
		}

		if current == "" || !strings.Contains(line, ":") {
			continue
		}
		issue, ok, bad := a.parseIssue(current, line)
		if bad {
			malformed++
			log.Debug("dropping malformed line in %s: %q", current, line)
			continue
		}
		if ok {
			issues = append(issues, issue)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	res := &Result{
		Report:    diag.Aggregate(ToolName, issues, order, a.classifier.Known(), score),
		Malformed: malformed,
	}
	if score == nil {
		return res, ErrNoScore
	}
	return res, nil
}

// parseIssue turns "path:line:col:message" into an Issue. ok is false for
// lines of any other shape; bad is true when the shape matches but the
// line number does not parse.
func (a *Adapter) parseIssue(file, line string) (issue diag.Issue, ok, bad bool) {
	parts := strings.SplitN(line, ":", 4)
	if len(parts) != 4 {
		return diag.Issue{}, false, false
	}
	lineText := strings.TrimSpace(parts[1])
	if !isDigits(lineText) {
		return diag.Issue{}, false, true
	}
	lineNo, err := strconv.Atoi(lineText)
	if err != nil {
		return diag.Issue{}, false, true
	}
	col, _ := strconv.Atoi(strings.TrimSpace(parts[2]))

	message := strings.TrimSpace(parts[3])
	category := diag.Unknown
	if message != "" {
		code := strings.TrimSpace(strings.SplitN(message, ":", 2)[0])
		if code != "" {
			category = a.classifier.Classify(code)
		}
	} else {
		message = emptyMessage
	}

	return diag.Issue{
		File:     file,
		Start:    diag.CodeLocation{Line: lineNo, Column: col},
		Category: category,
		Message:  message,
	}, true, false
}

// isDigits reports whether s is a non-empty run of ASCII digits; signs are
// not line numbers.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// parseScore extracts the "rated at X/10" value, clamped to [0,10].
func parseScore(line string) (float64, bool) {
	if !strings.Contains(line, "rated at") {
		return 0, false
	}
	m := scoreRe.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	s, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	if s < 0 || s > 10 {
		log.Debug("clamping out-of-range score %.2f", s)
		s = min(max(s, 0), 10)
	}
	return s, true
}

// ParseBytes parses pylint output from bytes.
func (a *Adapter) ParseBytes(data []byte) (*Result, error) {
	return a.Parse(bytes.NewReader(data))
}

// ParseString parses pylint output from a string.
func (a *Adapter) ParseString(s string) (*Result, error) {
	return a.Parse(strings.NewReader(s))
}

// IsPylintOutput detects pylint's text report by its module headers or
// score line.
func IsPylintOutput(data []byte) bool {
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(line, []byte(moduleHeader)) {
			return true
		}
		if scoreRe.Match(line) {
			return true
		}
	}
	return false
}
