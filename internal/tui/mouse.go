package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Nixie-Tech-LLC/warden/internal/schedule"
)

// Grid geometry in terminal cells. The grid starts below the title and the
// hour header.
const (
	gridTop    = 2
	labelWidth = 4
	cellWidth  = 3
)

// cellAt maps a terminal position onto a grid cell.
func cellAt(x, y int) (day, hour int, ok bool) {
	day = y - gridTop
	if day < 0 || day >= schedule.DaysPerWeek || x < labelWidth {
		return 0, 0, false
	}
	hour = (x - labelWidth) / cellWidth
	if hour >= schedule.HoursPerDay {
		return 0, 0, false
	}
	return day, hour, true
}

func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	sel := m.ctl.Selection()
	day, hour, inside := cellAt(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !inside || m.ctl.Loading() {
			return m, nil
		}
		m.cursorDay, m.cursorHour = day, hour
		// a press while still painting means the terminal lost the release
		if sel.State() == schedule.Painting {
			sel.Release()
		}
		if err := sel.Press(day, hour); err != nil {
			m.err = err
		}
	case tea.MouseActionMotion:
		if !inside {
			sel.Leave()
			return m, nil
		}
		if sel.State() == schedule.Painting {
			m.cursorDay, m.cursorHour = day, hour
			if err := sel.Enter(day, hour); err != nil {
				m.err = err
			}
		}
	case tea.MouseActionRelease:
		sel.Release()
	}
	return m, nil
}
