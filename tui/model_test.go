package tui

import (
	"errors"
	"testing"

	"co2log/core"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSessions(n int) []core.Session {
	out := make([]core.Session, n)
	for i := range out {
		out[i] = core.Session{ID: i, Samples: []core.Sample{
			{Timestamp: i * 1000, PPM: 400},
			{Timestamp: i*1000 + 60, PPM: 420},
		}}
	}
	return out
}

func key(s string) tea.KeyMsg {
	if s == "left" {
		return tea.KeyMsg{Type: tea.KeyLeft}
	}
	if s == "right" {
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func TestNavigation(t *testing.T) {
	m := New(nil, testSessions(3))

	m, _ = update(t, m, key("right"))
	assert.Equal(t, 1, m.current)
	m, _ = update(t, m, key("l"))
	assert.Equal(t, 2, m.current)

	// Clamped at the last session.
	m, _ = update(t, m, key("right"))
	assert.Equal(t, 2, m.current)

	m, _ = update(t, m, key("left"))
	assert.Equal(t, 1, m.current)
	m, _ = update(t, m, key("h"))
	assert.Equal(t, 0, m.current)

	// Clamped at the first session.
	m, _ = update(t, m, key("left"))
	assert.Equal(t, 0, m.current)
}

func TestQuit(t *testing.T) {
	m := New(nil, testSessions(1))
	_, cmd := update(t, m, key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestRefetch(t *testing.T) {
	called := 0
	fetch := func() ([]core.Session, error) {
		called++
		return testSessions(1), nil
	}
	m := New(fetch, testSessions(3))
	m.current = 2

	m, cmd := update(t, m, key("r"))
	require.NotNil(t, cmd)
	assert.True(t, m.fetching)

	// A second r while fetching is ignored.
	_, cmd2 := update(t, m, key("r"))
	assert.Nil(t, cmd2)

	msg := cmd()
	require.IsType(t, SessionsMsg{}, msg)
	assert.Equal(t, 1, called)

	// The rebuilt list clamps the stale index.
	m, _ = update(t, m, msg)
	assert.False(t, m.fetching)
	assert.Equal(t, 0, m.current)
	assert.Len(t, m.sessions, 1)
}

func TestRefetchErrorNonFatal(t *testing.T) {
	fetch := func() ([]core.Session, error) {
		return nil, errors.New("device reported: File not found")
	}
	m := New(fetch, testSessions(2))

	m, cmd := update(t, m, key("r"))
	require.NotNil(t, cmd)

	m, _ = update(t, m, cmd())
	assert.False(t, m.fetching)
	assert.Contains(t, m.errMsg, "File not found")
	// Existing data survives a failed refetch.
	assert.Len(t, m.sessions, 2)
	assert.Contains(t, m.View(), "File not found")
}

func TestViewEmpty(t *testing.T) {
	m := New(nil, nil)
	assert.Contains(t, m.View(), "no logging sessions")
}

func TestViewSession(t *testing.T) {
	m := New(nil, testSessions(2))
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	out := m.View()
	assert.Contains(t, out, "Session 1/2")
	assert.Contains(t, out, "2 samples")
	assert.Contains(t, out, "min 400")
	assert.Contains(t, out, "max 420")
}
