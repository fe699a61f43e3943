package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dkoosis/pylens/pkg/browser"
	"github.com/dkoosis/pylens/pkg/diag"
	"github.com/dkoosis/pylens/pkg/pattern"
	"github.com/dkoosis/pylens/pkg/render"
)

// msgReport carries the result of an acquire run.
type msgReport struct {
	report *diag.Report
	err    error
	rerun  bool
}

func (m Model) runAcquire(rerun bool) tea.Cmd {
	ctx, acquire := m.ctx, m.acquire
	return func() tea.Msg {
		r, err := acquire(ctx)
		return msgReport{report: r, err: err, rerun: rerun}
	}
}

// Update handles events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-4, 1) // title, status and footer
		m.ready = true
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case msgReport:
		m.loading = false
		m.status = ""
		if msg.rerun {
			if err := m.session.FinishRerun(msg.report, msg.err); err != nil {
				m.status = err.Error()
			}
		} else {
			m.session.Begin(msg.report, msg.err)
		}
		m.drain()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.loading {
		return m, nil
	}
	if m.entering {
		return m.handleOrdinal(msg)
	}

	m.status = ""
	switch m.session.State() {
	case browser.Summary:
		return m.handleMenu(msg)
	case browser.DetailOne, browser.DetailAll:
		switch msg.String() {
		case "enter", "esc":
			m.apply(m.session.Ack())
			return m, nil
		case "q":
			m.apply(m.session.Ack())
			m.apply(m.session.Quit())
			return m, tea.Quit
		}
	case browser.Clean, browser.Quit:
		switch msg.String() {
		case "q", "enter", "esc":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "q" {
		key = "5"
	}
	ev, err := browser.ParseChoice(key)
	if err != nil {
		// Not a menu key: scroll.
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	switch ev {
	case browser.ChooseDetailOne:
		if len(m.session.Ordinals()) == 0 {
			m.status = "invalid selection: the report has no files"
			return m, nil
		}
		m.entering = true
		m.input.SetValue("")
		return m, m.input.Focus()
	case browser.ChooseSummary:
		m.apply(m.session.ShowSummary())
	case browser.ChooseDetailAll:
		m.apply(m.session.ShowAll())
	case browser.ChooseRerun:
		if err := m.session.BeginRerun(); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.runAcquire(true))
	case browser.ChooseQuit:
		m.apply(m.session.Quit())
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleOrdinal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		err := m.session.Open(m.input.Value())
		if errors.Is(err, browser.ErrInvalidSelection) {
			m.status = err.Error()
			m.input.SetValue("")
			return m, nil
		}
		m.entering = false
		m.input.Blur()
		m.apply(err)
		return m, nil
	case tea.KeyEsc:
		m.entering = false
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// apply records an operation's error, if any, and picks up whatever the
// session showed.
func (m *Model) apply(err error) {
	if err != nil {
		m.status = err.Error()
	}
	m.drain()
}

// drain moves the session's output on screen. Notices go to the status
// line; anything else replaces the viewport content.
func (m *Model) drain() {
	var body []pattern.Pattern
	for _, p := range m.sink.Drain() {
		if n, ok := p.(*pattern.Notice); ok {
			m.status = n.Text
			continue
		}
		body = append(body, p)
	}
	if len(body) == 0 {
		return
	}
	m.content = render.NewTerminal(m.theme, m.viewport.Width).Render(body)
	m.refresh()
	m.viewport.GotoTop()
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.content)
}
