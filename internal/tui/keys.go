package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Nixie-Tech-LLC/warden/internal/schedule"
)

var paintKeys = map[string]schedule.Mode{
	"1": schedule.Continuous,
	"2": schedule.Motion,
	"3": schedule.Events,
	"0": schedule.Unset,
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if mode, ok := paintKeys[key]; ok {
		m.ctl.Selection().SetPaintMode(mode)
		m.status = "paint: " + modeLabel(mode)
		return m, nil
	}

	switch key {
	case "ctrl+c", "q":
		return m.quit()
	case "esc":
		m.ctl.Selection().ClearPaintMode()
		m.status = "no paint mode"

	case "s":
		if m.ctl.Saving() || m.ctl.Loading() {
			m.status = "busy, try again"
			return m, nil
		}
		m.status = "saving…"
		return m, saveCmd(m.ctx, m.ctl)
	case "r":
		if m.ctl.Saving() || m.ctl.Loading() {
			m.status = "busy, try again"
			return m, nil
		}
		m.status = "loading…"
		return m, loadCmd(m.ctx, m.ctl)
	case "c":
		if m.ctl.Loading() {
			return m, nil
		}
		m.ctl.ClearAll()
		m.status = "cleared"

	case "left", "h":
		if m.cursorHour > 0 {
			m.cursorHour--
		}
	case "right", "l":
		if m.cursorHour < schedule.HoursPerDay-1 {
			m.cursorHour++
		}
	case "up", "k":
		if m.cursorDay > 0 {
			m.cursorDay--
		}
	case "down", "j":
		if m.cursorDay < schedule.DaysPerWeek-1 {
			m.cursorDay++
		}
	case " ", "enter":
		if m.ctl.Loading() {
			return m, nil
		}
		sel := m.ctl.Selection()
		if err := sel.Press(m.cursorDay, m.cursorHour); err == nil {
			sel.Release()
		}
	}
	return m, nil
}

func modeLabel(mode schedule.Mode) string {
	if mode == schedule.Unset {
		return "erase"
	}
	return mode.String()
}
