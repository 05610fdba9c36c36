package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Nixie-Tech-LLC/warden/internal/schedule"
)

// LoadedMsg is sent when a load finishes.
type LoadedMsg struct {
	Err error
}

// SavedMsg is sent when a save finishes.
type SavedMsg struct {
	Slots int
	Err   error
}

func loadCmd(ctx context.Context, ctl *schedule.ScheduleController) tea.Cmd {
	return func() tea.Msg {
		return LoadedMsg{Err: ctl.Load(ctx)}
	}
}

func saveCmd(ctx context.Context, ctl *schedule.ScheduleController) tea.Cmd {
	return func() tea.Msg {
		n := len(ctl.Slots())
		return SavedMsg{Slots: n, Err: ctl.Save(ctx)}
	}
}
