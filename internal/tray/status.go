package tray

import (
	"fmt"
	"image/color"

	"mouseshare/internal/session"
)

// StatusMenu is the companion's tray: a coloured status dot, the target
// address, the screen size and a Quit item.
type StatusMenu struct {
	tray     *Tray
	statusID int
	target   string
}

// NewStatusMenu builds the menu. onQuit runs when Quit is clicked.
func NewStatusMenu(target string, width, height int, onQuit func()) *StatusMenu {
	t := New("MouseShare: " + target)
	m := &StatusMenu{tray: t, target: target}

	m.statusID = t.AddInfoItem(statusLine(session.StateDisconnected))
	t.AddInfoItem("Source: " + target)
	t.AddInfoItem(fmt.Sprintf("Screen: %dx%d", width, height))
	t.AddSeparator()
	t.AddMenuItem("Quit", onQuit)
	return m
}

// Update reflects a session status change. It is safe to register with
// session.Client.OnStateChange.
func (m *StatusMenu) Update(st session.Status) {
	m.tray.SetItemTitle(m.statusID, statusLine(st.State))
	m.tray.SetIcon(StatusIcon(stateColor(st.State)), fmt.Sprintf("MouseShare: %s (%s)", st.State, m.target))
}

// Run blocks in the tray event loop.
func (m *StatusMenu) Run() { m.tray.Run() }

// Stop ends the event loop.
func (m *StatusMenu) Stop() { m.tray.Stop() }

func statusLine(s session.State) string {
	return "Status: " + s.String()
}

func stateColor(s session.State) color.RGBA {
	switch s {
	case session.StateConnected:
		return Green
	case session.StateConnecting:
		return Yellow
	default:
		return Grey
	}
}
