package tui

import (
	"fmt"
	"strings"

	"github.com/Nixie-Tech-LLC/warden/internal/schedule"
)

var cellGlyph = map[schedule.Mode]string{
	schedule.Unset:      " · ",
	schedule.Continuous: " C ",
	schedule.Motion:     " M ",
	schedule.Events:     " E ",
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	cells := m.ctl.Grid().Snapshot()

	title := m.title
	if m.Dirty() {
		title += " *"
	}
	b.WriteString(m.styles.Title.Render(title))
	b.WriteByte('\n')

	b.WriteString(strings.Repeat(" ", labelWidth))
	for h := 0; h < schedule.HoursPerDay; h++ {
		b.WriteString(m.styles.Header.Render(fmt.Sprintf("%02d ", h)))
	}
	b.WriteByte('\n')

	for d := 0; d < schedule.DaysPerWeek; d++ {
		b.WriteString(m.styles.Label.Render(schedule.DayName(d)))
		for h := 0; h < schedule.HoursPerDay; h++ {
			mode := cells[d][h]
			style := m.styles.Cells[mode]
			if d == m.cursorDay && h == m.cursorHour {
				style = style.Reverse(true)
			}
			b.WriteString(style.Render(cellGlyph[mode]))
		}
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	b.WriteString(m.legend())
	b.WriteByte('\n')
	b.WriteString(m.styles.Status.Render(m.status))
	if m.err != nil {
		b.WriteString("  ")
		b.WriteString(m.styles.Error.Render(m.err.Error()))
	}
	b.WriteByte('\n')
	b.WriteString(m.styles.Help.Render("1 continuous · 2 motion · 3 events · 0 erase · drag to paint · s save · r reload · c clear · q quit"))
	return b.String()
}

func (m Model) legend() string {
	paint := "none"
	if mode, ok := m.ctl.Selection().PaintMode(); ok {
		paint = modeLabel(mode)
	}
	parts := make([]string, 0, len(schedule.Modes)+1)
	for _, mode := range schedule.Modes {
		parts = append(parts, m.styles.Cells[mode].Render(cellGlyph[mode])+" "+mode.String())
	}
	parts = append(parts, "paint: "+paint)
	return strings.Join(parts, "   ")
}
