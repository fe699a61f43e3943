package tool

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dkoosis/pylens/pkg/diag"
	"github.com/dkoosis/pylens/pkg/pylint"
	"github.com/dkoosis/pylens/pkg/runner"
)

// pylint's exit status is a bit mask of message classes found
// (1 fatal, 2 error, 4 warning, 8 refactor, 16 convention); 32 is a usage error.
const pylintUsageError = 32

// Pylint runs pylint with its default text reporter.
type Pylint struct {
	opts    Options
	adapter *pylint.Adapter
}

// NewPylint creates the pylint tool.
func NewPylint(opts Options) *Pylint {
	return &Pylint{opts: opts, adapter: pylint.NewAdapter()}
}

func (p *Pylint) Name() string                 { return pylint.ToolName }
func (p *Pylint) Options() Options             { return p.opts }
func (p *Pylint) Classifier() *diag.Classifier { return diag.LineStyle }
func (p *Pylint) Ran(code int) bool            { return code >= 0 && code < pylintUsageError }

// Spec builds `pylint [--rcfile cfg] [extra...] targets...`.
func (p *Pylint) Spec(path string) (runner.Spec, error) {
	extra, err := splitArgs(p.opts.ExtraArgs)
	if err != nil {
		return runner.Spec{}, err
	}
	targets, err := pylintTargets(path)
	if err != nil {
		return runner.Spec{}, err
	}

	var args []string
	if p.opts.Config != "" {
		log.Info("using configuration file: %s", p.opts.Config)
		args = append(args, "--rcfile", p.opts.Config)
	}
	args = append(args, extra...)
	args = append(args, targets...)
	return runner.Spec{Name: p.Name(), Command: binary(p.opts, "pylint"), Args: args}, nil
}

// Parse reads pylint's text report.
func (p *Pylint) Parse(stdout []byte) (*diag.Report, error) {
	res, err := p.adapter.ParseBytes(stdout)
	if res == nil {
		return nil, err
	}
	if res.Malformed > 0 {
		log.Debug("pylint: skipped %d malformed line(s)", res.Malformed)
	}
	return res.Report, err
}

// pylintTargets expands a directory into the Python files directly inside
// it. pylint refuses directories without __init__.py, so "src/" and "src"
// become "src/*.py"; a .py path is used as-is.
func pylintTargets(path string) ([]string, error) {
	var pattern string
	switch {
	case strings.HasSuffix(path, ".py"):
		return []string{path}, nil
	case strings.HasSuffix(path, "/"):
		pattern = path + "*.py"
	default:
		pattern = path + "/*.py"
	}
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("expanding %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		// Let pylint report the missing module itself.
		return []string{pattern}, nil
	}
	return matches, nil
}
