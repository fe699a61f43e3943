package config

import (
	"fmt"
	"slices"

	"github.com/hashicorp/go-multierror"

	"github.com/dkoosis/pylens/internal/logging"
	"github.com/dkoosis/pylens/pkg/render"
	"github.com/dkoosis/pylens/pkg/tool"
)

var log = logging.Log

// Defaults.
const (
	DefaultTool      = "pylint"
	DefaultTheme     = "default"
	DefaultFormat    = "terminal"
	DefaultInterface = InterfacePrompt
)

// Interfaces.
const (
	InterfacePrompt = "prompt"
	InterfaceTUI    = "tui"
)

var interfaces = []string{InterfacePrompt, InterfaceTUI}

// FormatSARIF writes the report as SARIF instead of rendering patterns.
const FormatSARIF = "sarif"

// Formats lists the accepted --format values.
var Formats = append(slices.Clone(render.Formats), FormatSARIF)

// Flags holds the values of command-line flags. Empty strings mean the
// flag was not given.
type Flags struct {
	Tool          string
	Theme         string
	Format        string
	Configuration string
	TUI           bool
}

// Resolved is the final configuration after applying every source.
type Resolved struct {
	Tool      string
	Options   tool.Options
	Theme     string
	Format    string
	Interface string
	Debug     bool

	// Resolution metadata (for debugging)
	ToolSource  string // "cli", "env", "file", "default"
	ThemeSource string // "cli", "env", "no-color", "file", "default"
}

// Resolve merges flags, environment and file with explicit priority:
// CLI > env > file > defaults. getenv is usually os.Getenv.
func Resolve(flags Flags, file *File, getenv func(string) string) *Resolved {
	if file == nil {
		file = &File{}
	}
	r := &Resolved{
		Tool:        DefaultTool,
		Theme:       DefaultTheme,
		Format:      DefaultFormat,
		Interface:   DefaultInterface,
		ToolSource:  "default",
		ThemeSource: "default",
		Debug:       getenv("PYLENS_DEBUG") != "",
	}

	switch {
	case flags.Tool != "":
		r.Tool, r.ToolSource = flags.Tool, "cli"
	case getenv("PYLENS_TOOL") != "":
		r.Tool, r.ToolSource = getenv("PYLENS_TOOL"), "env"
	case file.Tool != "":
		r.Tool, r.ToolSource = file.Tool, "file"
	}

	switch {
	case flags.Theme != "":
		r.Theme, r.ThemeSource = flags.Theme, "cli"
	case getenv("PYLENS_THEME") != "":
		r.Theme, r.ThemeSource = getenv("PYLENS_THEME"), "env"
	case getenv("NO_COLOR") != "":
		r.Theme, r.ThemeSource = "mono", "no-color"
	case file.Theme != "":
		r.Theme, r.ThemeSource = file.Theme, "file"
	}

	switch {
	case flags.Format != "":
		r.Format = flags.Format
	case file.Format != "":
		r.Format = file.Format
	}

	switch {
	case flags.TUI:
		r.Interface = InterfaceTUI
	case file.Interface != "":
		r.Interface = file.Interface
	}

	tc := file.Tools[r.Tool]
	r.Options = tool.Options{Binary: tc.Binary, Config: tc.Config, ExtraArgs: tc.Args}
	if flags.Configuration != "" {
		r.Options.Config = flags.Configuration
	}

	log.Debug("config: tool=%s (%s) theme=%s (%s) format=%s interface=%s",
		r.Tool, r.ToolSource, r.Theme, r.ThemeSource, r.Format, r.Interface)
	return r
}

// Validate reports every unknown setting at once.
func (r *Resolved) Validate() error {
	var result *multierror.Error
	if !slices.Contains(tool.Names(), r.Tool) {
		result = multierror.Append(result, fmt.Errorf("unknown tool %q (want one of %v)", r.Tool, tool.Names()))
	}
	if !slices.Contains(render.Themes, r.Theme) {
		result = multierror.Append(result, fmt.Errorf("unknown theme %q (want one of %v)", r.Theme, render.Themes))
	}
	if !slices.Contains(Formats, r.Format) {
		result = multierror.Append(result, fmt.Errorf("unknown format %q (want one of %v)", r.Format, Formats))
	}
	if !slices.Contains(interfaces, r.Interface) {
		result = multierror.Append(result, fmt.Errorf("unknown interface %q (want one of %v)", r.Interface, interfaces))
	}
	return result.ErrorOrNil()
}

// ValidateFile checks settings that only exist in the file.
func ValidateFile(f *File) error {
	var result *multierror.Error
	for name := range f.Tools {
		if !slices.Contains(tool.Names(), name) {
			result = multierror.Append(result, fmt.Errorf("tools.%s: unknown tool", name))
		}
	}
	return result.ErrorOrNil()
}
