package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Nixie-Tech-LLC/warden/internal/schedule"
)

type Styles struct {
	Title  lipgloss.Style
	Header lipgloss.Style
	Label  lipgloss.Style
	Cells  map[schedule.Mode]lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
	Help   lipgloss.Style
}

func DefaultStyles() Styles {
	cell := lipgloss.NewStyle().Width(cellWidth)
	return Styles{
		Title:  lipgloss.NewStyle().Bold(true),
		Header: lipgloss.NewStyle().Faint(true),
		Label:  lipgloss.NewStyle().Width(labelWidth).Bold(true),
		Cells: map[schedule.Mode]lipgloss.Style{
			schedule.Unset:      cell.Foreground(lipgloss.Color("240")),
			schedule.Continuous: cell.Background(lipgloss.Color("#2e7d32")).Foreground(lipgloss.Color("#ffffff")),
			schedule.Motion:     cell.Background(lipgloss.Color("#f9a825")).Foreground(lipgloss.Color("#000000")),
			schedule.Events:     cell.Background(lipgloss.Color("#c62828")).Foreground(lipgloss.Color("#ffffff")),
		},
		Status: lipgloss.NewStyle().Italic(true),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5555")),
		Help:   lipgloss.NewStyle().Faint(true),
	}
}
