package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/couchcryptid/air-alert-monitor/internal/domain"
)

// Refresher accepts requests for an out-of-schedule refresh.
type Refresher interface {
	Trigger()
}

type (
	panelMsg  struct{ panel domain.Panel }
	openedMsg struct{ err error }
)

// Model is the bubbletea model for the alert panel. It only renders what it
// is sent; fetching happens elsewhere.
type Model struct {
	panel    domain.Panel
	hasPanel bool
	status   string

	mapURL    string
	open      Opener
	refresher Refresher
}

// NewModel creates a Model that opens mapURL with open and forwards manual
// refresh requests to r.
func NewModel(mapURL string, open Opener, r Refresher) Model {
	return Model{mapURL: mapURL, open: open, refresher: r}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case panelMsg:
		m.panel = msg.panel
		m.hasPanel = true
		m.status = ""

	case openedMsg:
		if msg.err != nil {
			m.status = statusOpenFailed + msg.err.Error()
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "m", "M":
			return m, m.openMap()
		case "r":
			if m.refresher != nil {
				m.refresher.Trigger()
				m.status = statusRefreshing
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	if !m.hasPanel {
		return renderLoading()
	}
	return renderPanel(m.panel, m.status)
}

// openMap runs the opener off the update loop.
func (m Model) openMap() tea.Cmd {
	open, url := m.open, m.mapURL
	return func() tea.Msg {
		return openedMsg{err: open(url)}
	}
}

// ProgramDisplay forwards panels to a running bubbletea program.
type ProgramDisplay struct {
	Program *tea.Program
}

// Show sends the panel to the program. It does not block on rendering.
func (d ProgramDisplay) Show(panel domain.Panel) {
	d.Program.Send(panelMsg{panel: panel})
}
