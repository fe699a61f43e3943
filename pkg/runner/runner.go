// Package runner invokes an external analysis tool and captures its output.
//
// Run reports a missing binary as ErrToolNotInstalled and otherwise returns
// whatever exit status the tool produced; deciding which statuses mean "the
// tool ran" is left to the caller (see Accept).
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"
	"time"

	"github.com/dkoosis/pylens/internal/logging"
)

var log = logging.Log

// Spec describes one tool invocation.
type Spec struct {
	Name    string   // display name, e.g. "pylint"
	Command string   // executable
	Args    []string // arguments
	Dir     string   // working directory (empty = current)
	Env     []string // extra KEY=VALUE entries appended to the environment
}

// String renders the command line for logs.
func (s Spec) String() string {
	return strings.TrimSpace(s.Command + " " + strings.Join(s.Args, " "))
}

// Output is the captured result of a finished invocation.
type Output struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
	Duration time.Duration
}

// ErrToolNotInstalled means the tool's executable could not be found.
var ErrToolNotInstalled = errors.New("tool not installed")

// ExecutionError means the tool could not run to completion.
type ExecutionError struct {
	Tool     string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ExecutionError) Error() string {
	msg := fmt.Sprintf("%s failed", e.Tool)
	if e.ExitCode >= 0 {
		msg += fmt.Sprintf(" with exit status %d", e.ExitCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += "\n" + stderr
	}
	return msg
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// Executor runs a Spec. Exec is the real implementation; tests substitute
// canned output.
type Executor interface {
	Run(ctx context.Context, spec Spec) (*Output, error)
}

// Exec runs specs as subprocesses.
type Exec struct{}

// Run executes spec and waits for it to exit.
func (Exec) Run(ctx context.Context, spec Spec) (*Output, error) {
	return Run(ctx, spec)
}

// Run executes spec and waits for it to exit. A non-zero exit status is not
// an error here; it is reported in Output.ExitCode.
func Run(ctx context.Context, spec Spec) (*Output, error) {
	cmd := exec.CommandContext(ctx, spec.Command, spec.Args...)
	cmd.Dir = spec.Dir
	if len(spec.Env) > 0 {
		cmd.Env = append(cmd.Environ(), spec.Env...)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.Info("running %s", spec)
	start := time.Now()
	err := cmd.Run()
	out := &Output{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		Duration: time.Since(start),
	}

	if err == nil {
		log.Debug("%s exited 0 after %s", spec.Name, out.Duration)
		return out, nil
	}
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s (%s): %w", spec.Name, spec.Command, ErrToolNotInstalled)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("%s: %w", spec.Name, ctxErr)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		out.ExitCode = exitErr.ExitCode()
		log.Debug("%s exited %d after %s", spec.Name, out.ExitCode, out.Duration)
		return out, nil
	}
	return nil, &ExecutionError{Tool: spec.Name, ExitCode: -1, Stderr: stderr.String(), Err: err}
}

// Accept returns an ExecutionError unless ok approves the exit status.
func Accept(tool string, out *Output, ok func(code int) bool) error {
	if ok(out.ExitCode) {
		return nil
	}
	return &ExecutionError{Tool: tool, ExitCode: out.ExitCode, Stderr: string(out.Stderr)}
}
