// Package tui is the interactive session viewer: one session at a time with
// a chart, arrow keys to move along the log, r to refetch from the device.
package tui

import (
	"fmt"

	"co2log/core"
	"co2log/render/terminal"

	tea "github.com/charmbracelet/bubbletea"
)

// FetchFunc pulls a fresh session list from the device. Run on its own
// goroutine via a tea.Cmd; must be safe to call repeatedly but is never
// called concurrently with itself.
type FetchFunc func() ([]core.Session, error)

// Model is the root bubbletea model for the viewer.
type Model struct {
	fetch    FetchFunc
	sessions []core.Session
	current  int

	width    int
	height   int
	fetching bool
	errMsg   string
}

// New creates a Model seeded with an already-fetched session list.
func New(fetch FetchFunc, sessions []core.Session) Model {
	return Model{fetch: fetch, sessions: sessions}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// fetchCmd runs the fetch off the update loop.
func fetchCmd(fetch FetchFunc) tea.Cmd {
	return func() tea.Msg {
		sessions, err := fetch()
		if err != nil {
			return FetchErrorMsg{Err: err}
		}
		return SessionsMsg{Sessions: sessions}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case SessionsMsg:
		// Sessions are rebuilt wholesale on every fetch; stale indices
		// are clamped rather than preserved.
		m.sessions = msg.Sessions
		m.fetching = false
		m.errMsg = ""
		if m.current >= len(m.sessions) {
			m.current = len(m.sessions) - 1
		}
		if m.current < 0 {
			m.current = 0
		}
		return m, nil

	case FetchErrorMsg:
		m.fetching = false
		m.errMsg = msg.Err.Error()
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyQuit, KeyCtrlC:
		return m, tea.Quit
	case KeyPrev, KeyPrevVim:
		if m.current > 0 {
			m.current--
		}
	case KeyNext, KeyNextVim:
		if m.current < len(m.sessions)-1 {
			m.current++
		}
	case KeyFirst:
		m.current = 0
	case KeyLast:
		if len(m.sessions) > 0 {
			m.current = len(m.sessions) - 1
		}
	case KeyRefetch:
		if m.fetch != nil && !m.fetching {
			m.fetching = true
			m.errMsg = ""
			return m, fetchCmd(m.fetch)
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	width := m.width
	if width <= 0 {
		width = 80
	}

	var body string
	switch {
	case len(m.sessions) == 0:
		body = styleMeta.Render("no logging sessions recorded — press r to fetch again")
	default:
		body = m.sessionView(width)
	}

	return "\n" + body + "\n\n" + m.statusView() + "\n"
}

func (m Model) sessionView(width int) string {
	s := m.sessions[m.current]

	header := styleTitle.Render(fmt.Sprintf(" Session %d/%d", m.current+1, len(m.sessions))) +
		styleMeta.Render(fmt.Sprintf("  %d samples  %s", len(s.Samples), s.Duration()))

	stats := styleMeta.Render(fmt.Sprintf(" min %d  avg %d  max %d ppm",
		s.MinPPM(), s.AvgPPM(), s.MaxPPM()))

	chartWidth := width - 4
	if chartWidth > 72 {
		chartWidth = 72
	}
	if chartWidth < 10 {
		chartWidth = 10
	}
	chart := " " + styleSpark.Render(terminal.Sparkline(s.Samples, chartWidth))

	return header + "\n\n" + chart + "\n\n" + stats
}

func (m Model) statusView() string {
	switch {
	case m.fetching:
		return styleStatus.Render(" fetching from device...")
	case m.errMsg != "":
		return styleError.Render(" " + m.errMsg)
	default:
		return styleStatus.Render(" ←/→ session  r refetch  q quit")
	}
}

// Run starts the viewer on the alternate screen and blocks until quit.
func Run(fetch FetchFunc, sessions []core.Session) error {
	_, err := tea.NewProgram(New(fetch, sessions), tea.WithAltScreen()).Run()
	return err
}
