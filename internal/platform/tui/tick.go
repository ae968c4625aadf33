// Package tui provides the Bubble Tea front-end for local matches.
// It handles the terminal loop, keyboard mapping for up to three players
// and the mode picker and history screens.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-jumper/internal/core"
)

// TickMsg asks the model to advance the game by one rendered frame.
type TickMsg time.Time

// frameInterval is the delay between frames. Rates below one fall back
// to the default frame rate.
func frameInterval(fps int) time.Duration {
	if fps < 1 {
		fps = core.DefaultConfig().TickRate
	}
	return time.Second / time.Duration(fps)
}

func tickCmd(fps int) tea.Cmd {
	return tea.Tick(frameInterval(fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
