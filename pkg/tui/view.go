package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dkoosis/pylens/pkg/browser"
)

// View renders the screen: title, scrolling body, status and key help.
func (m Model) View() string {
	if !m.ready {
		return "Starting..."
	}

	title := titleStyle.Render("pylens " + m.theme.Icons.Bullet + " " + m.session.State().String())

	body := m.viewport.View()
	if m.loading {
		body = "\n  " + m.spinner.View() + " running analysis..."
	}

	var status string
	switch {
	case m.entering:
		status = "File number (1-" + strconv.Itoa(len(m.session.Ordinals())) + "): " + m.input.View()
	case m.status != "":
		status = m.theme.Warning.Render(m.status)
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, body, status, footerStyle.Render(m.help()))
}

func (m Model) help() string {
	switch m.session.State() {
	case browser.Summary:
		if m.entering {
			return "enter open • esc cancel"
		}
		keys := make([]string, len(browser.Menu))
		for i, item := range browser.Menu {
			keys[i] = item.Key + " " + strings.ToLower(item.Label)
		}
		return strings.Join(keys, " • ") + " • ↑/↓ scroll"
	case browser.DetailOne, browser.DetailAll:
		return "enter/esc back • ↑/↓ scroll • q quit"
	default:
		return "q quit"
	}
}
