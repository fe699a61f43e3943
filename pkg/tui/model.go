// Package tui is a full-screen front-end for the result browser.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dkoosis/pylens/pkg/browser"
	"github.com/dkoosis/pylens/pkg/diag"
	"github.com/dkoosis/pylens/pkg/render"
)

// Model holds the TUI state. The browsing state itself lives in the
// session; the model only tracks what is on screen.
type Model struct {
	ctx     context.Context
	acquire browser.Acquirer
	session *browser.Session
	sink    *browser.RecordingSink
	theme   render.Theme

	// UI state
	loading  bool
	entering bool // reading a file number
	status   string
	content  string
	width    int
	height   int
	ready    bool

	// Components
	viewport viewport.Model
	spinner  spinner.Model
	input    textinput.Model
}

// New creates the model. acquire runs once on start and again on every
// rerun, each time as a tea.Cmd.
func New(ctx context.Context, acquire browser.Acquirer, known []diag.Category, theme render.Theme) Model {
	sink := &browser.RecordingSink{}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Primary

	ti := textinput.New()
	ti.Placeholder = "file number"
	ti.CharLimit = 6
	ti.Width = 12

	return Model{
		ctx:      ctx,
		acquire:  acquire,
		session:  browser.NewSession(acquire, known, sink),
		sink:     sink,
		theme:    theme,
		loading:  true,
		viewport: viewport.New(0, 0),
		spinner:  sp,
		input:    ti,
	}
}

// Session exposes the underlying browser session.
func (m Model) Session() *browser.Session { return m.session }

// Init starts the first analysis run.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.runAcquire(false))
}

// Run shows the TUI until the user quits and returns the finished session.
func Run(ctx context.Context, acquire browser.Acquirer, known []diag.Category, theme render.Theme) (*browser.Session, error) {
	program := tea.NewProgram(New(ctx, acquire, known, theme), tea.WithContext(ctx), tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return nil, err
	}
	return final.(Model).session, nil
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)
