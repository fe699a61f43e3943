// pylens runs pylint or mypy over a path and lets you browse the result.
//
// Usage:
//
//	pylens -p src/                      # pylint, interactive menu
//	pylens -t mypy -p src --tui         # mypy, full-screen browser
//	pylens -p src --no-interactive      # print summary and details, then exit
//	mypy --show-error-end src | pylens  # render piped tool output
//
// Exit codes:
//
//	0  no issues
//	1  issues found, or the tool could not run
//	2  usage or input error
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/dkoosis/pylens/internal/config"
	"github.com/dkoosis/pylens/internal/detect"
	"github.com/dkoosis/pylens/internal/logging"
	"github.com/dkoosis/pylens/internal/version"
	"github.com/dkoosis/pylens/pkg/browser"
	"github.com/dkoosis/pylens/pkg/diag"
	"github.com/dkoosis/pylens/pkg/mapper"
	"github.com/dkoosis/pylens/pkg/pattern"
	"github.com/dkoosis/pylens/pkg/pylint"
	"github.com/dkoosis/pylens/pkg/render"
	"github.com/dkoosis/pylens/pkg/sarif"
	"github.com/dkoosis/pylens/pkg/tool"
	"github.com/dkoosis/pylens/pkg/tui"
)

var log = logging.Log

const (
	exitClean  = 0
	exitIssues = 1
	exitUsage  = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// options holds the parsed command line.
type options struct {
	path          string
	tool          string
	configuration string
	format        string
	theme         string
	tui           bool
	noInteractive bool
	verbosity     int
	showVersion   bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	o := &options{}
	fs := pflag.NewFlagSet("pylens", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&o.path, "path", "p", "", "File or directory to analyze")
	fs.StringVarP(&o.tool, "tool", "t", "", "Tool to run: "+strings.Join(tool.Names(), ", ")+" (default pylint)")
	fs.StringVarP(&o.configuration, "configuration", "c", "", "Configuration file passed to the tool")
	fs.StringVar(&o.format, "format", "", "Output format: "+strings.Join(config.Formats, ", "))
	fs.StringVar(&o.theme, "theme", "", "Theme: "+strings.Join(render.Themes, ", "))
	fs.BoolVar(&o.tui, "tui", false, "Browse in a full-screen terminal UI")
	fs.BoolVar(&o.noInteractive, "no-interactive", false, "Print the report and exit")
	fs.CountVarP(&o.verbosity, "verbose", "v", "Log more (-v info, -vv debug)")
	fs.BoolVar(&o.showVersion, "version", false, "Print version information and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	switch {
	case fs.NArg() == 0:
	case fs.NArg() == 1 && o.path == "":
		o.path = fs.Arg(0)
	default:
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return o, nil
}

// run executes the application logic and returns the exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return exitClean
	}
	if err != nil {
		fmt.Fprintf(stderr, "pylens: %v\n", err)
		return exitUsage
	}
	if opts.showVersion {
		fmt.Fprintln(stdout, version.String())
		return exitClean
	}

	logging.Init(stderr, logging.LevelForVerbosity(opts.verbosity))

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "pylens: %v\n", err)
		return exitUsage
	}
	if cfg.Debug {
		fmt.Fprintf(stderr, "[DEBUG] tool=%s (from %s) theme=%s (from %s) format=%s interface=%s\n",
			cfg.Tool, cfg.ToolSource, cfg.Theme, cfg.ThemeSource, cfg.Format, cfg.Interface)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if opts.path == "" {
		if isTTY(stdin) {
			fmt.Fprintln(stderr, "pylens: no --path given and nothing piped on stdin")
			fmt.Fprintln(stderr, "Usage: pylens [flags] --path <file-or-dir>")
			return exitUsage
		}
		return runPiped(stdin, stdout, stderr, cfg)
	}

	t, err := tool.New(cfg.Tool, cfg.Options)
	if err != nil {
		fmt.Fprintf(stderr, "pylens: %v\n", err)
		return exitUsage
	}
	analyzer := tool.NewAnalyzer(t, opts.path)
	known := t.Classifier().Known()

	if opts.noInteractive || cfg.Format != config.DefaultFormat || (isTTY(stdin) && !isTTY(stdout)) {
		return runBatch(ctx, analyzer, known, cfg, stdout, stderr)
	}
	return runInteractive(ctx, analyzer.Analyze, known, cfg, stdin, stdout, stderr)
}

// loadConfig reads the config file (PYLENS_CONFIG, or the lookup from the
// working directory) and resolves it against flags and environment.
func loadConfig(o *options) (*config.Resolved, error) {
	var (
		file *config.File
		err  error
	)
	if path := os.Getenv("PYLENS_CONFIG"); path != "" {
		file, err = config.Load(path)
	} else {
		wd, wdErr := os.Getwd()
		if wdErr != nil {
			return nil, fmt.Errorf("getting working directory: %w", wdErr)
		}
		file, _, err = config.LoadDefault(wd)
	}
	if err != nil {
		return nil, err
	}
	if err := config.ValidateFile(file); err != nil {
		return nil, err
	}

	cfg := config.Resolve(config.Flags{
		Tool:          o.tool,
		Theme:         o.theme,
		Format:        o.format,
		Configuration: o.configuration,
		TUI:           o.tui,
	}, file, os.Getenv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runPiped renders tool output read from stdin once.
func runPiped(stdin io.Reader, stdout, stderr io.Writer, cfg *config.Resolved) int {
	input, err := io.ReadAll(stdin)
	if err != nil {
		fmt.Fprintf(stderr, "pylens: reading stdin: %v\n", err)
		return exitUsage
	}
	if len(strings.TrimSpace(string(input))) == 0 {
		fmt.Fprintln(stderr, "pylens: no input on stdin")
		return exitUsage
	}
	format := detect.Sniff(input)
	if format == detect.Unknown {
		fmt.Fprintln(stderr, "pylens: unrecognized input on stdin (expected pylint or mypy output)")
		return exitUsage
	}
	log.Debug("stdin looks like %s output", format)

	t, err := tool.New(format.Tool(), tool.Options{})
	if err != nil {
		fmt.Fprintf(stderr, "pylens: %v\n", err)
		return exitUsage
	}
	report, err := tool.ParseOutput(t, input)
	if err != nil {
		if !errors.Is(err, pylint.ErrNoScore) {
			fmt.Fprintf(stderr, "pylens: parsing stdin: %v\n", err)
			return exitUsage
		}
		fmt.Fprintf(stderr, "pylens: warning: %v\n", err)
	}
	return emit(report, t.Classifier().Known(), cfg, stdout, stderr)
}

// runBatch analyzes once and prints the summary followed by every file.
func runBatch(ctx context.Context, a *tool.Analyzer, known []diag.Category, cfg *config.Resolved, stdout, stderr io.Writer) int {
	report, err := a.Analyze(ctx)
	if err != nil {
		if !errors.Is(err, pylint.ErrNoScore) {
			fmt.Fprintf(stderr, "pylens: %v\n", err)
			return exitIssues
		}
		fmt.Fprintf(stderr, "pylens: warning: %v\n", err)
	}
	return emit(report, known, cfg, stdout, stderr)
}

func emit(report *diag.Report, known []diag.Category, cfg *config.Resolved, stdout, stderr io.Writer) int {
	if cfg.Format == config.FormatSARIF {
		if _, err := sarif.FromReport(report, "").WriteTo(stdout); err != nil {
			fmt.Fprintf(stderr, "pylens: writing sarif: %v\n", err)
			return exitIssues
		}
		return exitCode(report)
	}
	renderer, err := render.New(cfg.Format, render.ThemeByName(cfg.Theme), termWidth(stdout))
	if err != nil {
		fmt.Fprintf(stderr, "pylens: %v\n", err)
		return exitUsage
	}
	patterns := mapper.FromReport(report, known, time.Time{})
	if !report.IsClean() {
		patterns = append(patterns, detailPatterns(report)...)
	}
	fmt.Fprintln(stdout, renderer.Render(patterns))
	return exitCode(report)
}

// detailPatterns drops the detail header; the summary already names the tool.
func detailPatterns(report *diag.Report) []pattern.Pattern {
	all := mapper.AllDetail(report)
	if len(all) > 0 {
		return all[1:]
	}
	return all
}

// runInteractive browses with promptui or the TUI when both ends are a
// terminal, and with plain line prompts when stdin is scripted.
func runInteractive(ctx context.Context, analyze browser.Acquirer, known []diag.Category, cfg *config.Resolved, stdin io.Reader, stdout, stderr io.Writer) int {
	terminal := isTTY(stdin) && isTTY(stdout)
	theme := render.ThemeByName(cfg.Theme)
	last := &lastRun{analyze: analyze}

	if cfg.Interface == config.InterfaceTUI && terminal {
		session, err := tui.Run(ctx, last.acquire, known, theme)
		if err != nil {
			fmt.Fprintf(stderr, "pylens: %v\n", err)
			return exitIssues
		}
		return last.exitCode(session)
	}
	if cfg.Interface == config.InterfaceTUI {
		log.Warning("--tui needs a terminal on stdin and stdout; using line prompts")
	}

	sink := browser.NewWriterSink(stdout, render.NewTerminal(theme, termWidth(stdout)))
	session := browser.NewSession(last.acquire, known, sink)

	var prompter browser.Prompter = browser.NewLinePrompter(stdin, stdout)
	if terminal {
		prompter = browser.PromptUI{}
	}
	if err := session.Run(ctx, prompter); err != nil {
		fmt.Fprintf(stderr, "pylens: %v\n", err)
		return exitIssues
	}
	return last.exitCode(session)
}

// lastRun remembers the outcome of the most recent analysis so a session
// whose final run failed does not exit 0 on its empty report.
type lastRun struct {
	analyze browser.Acquirer
	err     error
}

func (l *lastRun) acquire(ctx context.Context) (*diag.Report, error) {
	r, err := l.analyze(ctx)
	l.err = err
	return r, err
}

func (l *lastRun) exitCode(s *browser.Session) int {
	if l.err != nil && !errors.Is(l.err, pylint.ErrNoScore) {
		return exitIssues
	}
	return exitCode(s.Report())
}

// exitCode returns 0 for a clean report and 1 when issues remain.
func exitCode(r *diag.Report) int {
	if r.IsClean() {
		return exitClean
	}
	return exitIssues
}

// isTTY reports whether f is a terminal.
func isTTY(f any) bool {
	file, ok := f.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

// termWidth returns the terminal width for w, defaulting to 80.
func termWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
			return tw
		}
	}
	return 80
}
