// Package tui provides the Bubble Tea replay viewer.
// It steps through a solution the solver already found; the user never chooses actions.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg advances autoplay by one step.
// gen ties the tick to the autoplay run that scheduled it, so ticks from a
// run that was paused and restarted are dropped.
type TickMsg struct {
	gen int
}

// tickCmd returns a Bubble Tea command that sends a tick after delay.
func tickCmd(delay time.Duration, gen int) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return TickMsg{gen: gen}
	})
}
