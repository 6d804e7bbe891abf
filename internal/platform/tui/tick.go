// Package tui provides the Bubble Tea front end for the runner.
// It handles the terminal loop, input mapping, scoreboard and SSH sessions.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameDelta returns the seconds elapsed between two ticks. The first tick
// (zero prev) and clock steps backwards yield 0, which the game treats as
// one nominal frame.
func frameDelta(prev, now time.Time) float32 {
	if prev.IsZero() || !now.After(prev) {
		return 0
	}
	return float32(now.Sub(prev).Seconds())
}
