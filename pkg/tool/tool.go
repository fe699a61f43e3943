// Package tool binds each supported analysis tool to its command line,
// accepted exit statuses and output parser.
package tool

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/shlex"

	"github.com/dkoosis/pylens/internal/logging"
	"github.com/dkoosis/pylens/pkg/diag"
	"github.com/dkoosis/pylens/pkg/runner"
)

var log = logging.Log

// Options configure a tool invocation.
type Options struct {
	Binary    string // executable; defaults to the tool name
	Config    string // configuration file passed to the tool
	ExtraArgs string // shell-style argument string appended before the path
}

// Tool knows how to run one analyzer and read its output.
type Tool interface {
	Name() string
	Options() Options
	// Spec builds the invocation for analysing path.
	Spec(path string) (runner.Spec, error)
	// Ran reports whether an exit status means the output is authoritative.
	Ran(code int) bool
	// Parse turns captured stdout into a report.
	Parse(stdout []byte) (*diag.Report, error)
	Classifier() *diag.Classifier
}

var registry = map[string]func(Options) Tool{
	"pylint": func(o Options) Tool { return NewPylint(o) },
	"mypy":   func(o Options) Tool { return NewMypy(o) },
}

// Names lists the supported tools.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// New returns the tool registered under name.
func New(name string, opts Options) (Tool, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unsupported tool %q (supported: %v)", name, Names())
	}
	return ctor(opts), nil
}

func splitArgs(extra string) ([]string, error) {
	if extra == "" {
		return nil, nil
	}
	args, err := shlex.Split(extra)
	if err != nil {
		return nil, fmt.Errorf("parsing extra args %q: %w", extra, err)
	}
	return args, nil
}

func binary(o Options, fallback string) string {
	if o.Binary != "" {
		return o.Binary
	}
	return fallback
}

// Analyzer runs a tool over one path and parses the result.
type Analyzer struct {
	Tool Tool
	Path string
	Exec runner.Executor
}

// NewAnalyzer creates an analyzer that runs t as a subprocess.
func NewAnalyzer(t Tool, path string) *Analyzer {
	return &Analyzer{Tool: t, Path: path, Exec: runner.Exec{}}
}

// Analyze checks the configuration, runs the tool and parses its output.
//
// It always returns a non-nil report. Invocation failures (missing
// configuration, missing binary, unexpected exit status) and reports that
// fail validation come back with an empty report; a parse that completed
// with a warning (pylint's missing score) comes back with the parsed report
// and the error.
func (a *Analyzer) Analyze(ctx context.Context) (*diag.Report, error) {
	name := a.Tool.Name()
	empty := diag.Empty(name)

	if err := runner.CheckConfiguration(a.Tool.Options().Config, name); err != nil {
		return empty, err
	}
	spec, err := a.Tool.Spec(a.Path)
	if err != nil {
		return empty, err
	}
	out, err := a.Exec.Run(ctx, spec)
	if err != nil {
		if errors.Is(err, runner.ErrToolNotInstalled) {
			log.Debug("%s is not installed or not on PATH", name)
		}
		return empty, err
	}
	if err := runner.Accept(name, out, a.Tool.Ran); err != nil {
		return empty, err
	}

	report, err := ParseOutput(a.Tool, out.Stdout)
	if err != nil {
		return report, err
	}
	log.Info("%s: %d issues in %d files", name, report.TotalIssues(), len(report.Files))
	return report, nil
}

// ParseOutput parses stdout with t and validates the result. It always
// returns a non-nil report. A report that breaks diag.Validate is replaced
// by an empty one and the violations come back wrapping
// diag.ErrInvalidReport; pylint's missing score keeps the parsed report.
func ParseOutput(t Tool, stdout []byte) (*diag.Report, error) {
	name := t.Name()
	report, err := t.Parse(stdout)
	if report == nil {
		if err == nil {
			err = errors.New("parser returned no report")
		}
		return diag.Empty(name), fmt.Errorf("%s: %w", name, err)
	}
	if verr := diag.Validate(report); verr != nil {
		log.Debug("%s: rejecting parsed report: %v", name, verr)
		return diag.Empty(name), fmt.Errorf("%s: %w", name, verr)
	}
	if err != nil {
		return report, fmt.Errorf("%s: %w", name, err)
	}
	return report, nil
}
