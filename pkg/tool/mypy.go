package tool

import (
	"github.com/dkoosis/pylens/pkg/diag"
	"github.com/dkoosis/pylens/pkg/mypy"
	"github.com/dkoosis/pylens/pkg/runner"
)

// mypyFlags produce the range headers and excerpts the parser expects.
var mypyFlags = []string{
	"--strict",
	"--pretty",
	"--show-error-context",
	"--show-column-numbers",
	"--show-error-codes",
	"--show-error-end",
	"--disallow-any-expr",
	"--disallow-any-decorated",
	"--disallow-any-explicit",
	"--disallow-any-generics",
	"--disallow-untyped-calls",
	"--disallow-untyped-defs",
	"--check-untyped-defs",
	"--warn-redundant-casts",
	"--warn-unused-ignores",
	"--warn-unreachable",
	"--ignore-missing-imports",
}

// Mypy runs mypy in strict mode with range locations.
type Mypy struct {
	opts    Options
	adapter *mypy.Adapter
}

// NewMypy creates the mypy tool.
func NewMypy(opts Options) *Mypy {
	return &Mypy{opts: opts, adapter: mypy.NewAdapter()}
}

func (m *Mypy) Name() string                 { return mypy.ToolName }
func (m *Mypy) Options() Options             { return m.opts }
func (m *Mypy) Classifier() *diag.Classifier { return diag.RangeStyle }

// Ran accepts 0 (clean) and 1 (findings reported); 2 is a crash or usage error.
func (m *Mypy) Ran(code int) bool { return code == 0 || code == 1 }

// Spec builds `mypy <flags> [extra...] path [--config-file=cfg]`.
func (m *Mypy) Spec(path string) (runner.Spec, error) {
	extra, err := splitArgs(m.opts.ExtraArgs)
	if err != nil {
		return runner.Spec{}, err
	}
	args := make([]string, 0, len(mypyFlags)+len(extra)+2)
	args = append(args, mypyFlags...)
	args = append(args, extra...)
	args = append(args, path)
	if m.opts.Config != "" {
		log.Info("using configuration file: %s", m.opts.Config)
		args = append(args, "--config-file="+m.opts.Config)
	}
	return runner.Spec{Name: m.Name(), Command: binary(m.opts, "mypy"), Args: args}, nil
}

// Parse reads mypy's text output.
func (m *Mypy) Parse(stdout []byte) (*diag.Report, error) {
	res, err := m.adapter.ParseBytes(stdout)
	if err != nil {
		return nil, err
	}
	if res.Malformed > 0 {
		log.Debug("mypy: skipped %d malformed line(s)", res.Malformed)
	}
	return res.Report, nil
}
