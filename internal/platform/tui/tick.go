// Package tui runs games in a terminal with Bubble Tea. It owns the tick
// loop, maps keys and the mouse to game input, and hosts the launcher,
// the scoreboard and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg drives one simulation step. Gen ties it to the game that asked
// for it, so a tick still in flight when a game is replaced is dropped.
type TickMsg struct {
	Time time.Time
	Gen  int
}

func tickCmd(tickRate, gen int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Gen: gen}
	})
}
