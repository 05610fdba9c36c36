// Package tui is the terminal editor for one camera's weekly recording
// schedule. Mouse drags paint cells with the selected mode.
package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Nixie-Tech-LLC/warden/internal/schedule"
)

type Model struct {
	ctx    context.Context
	ctl    *schedule.ScheduleController
	title  string
	styles Styles

	cursorDay  int
	cursorHour int

	status   string
	err      error
	quitting bool
}

// New builds an editor around ctl. title is shown above the grid.
func New(ctx context.Context, ctl *schedule.ScheduleController, title string) Model {
	return Model{
		ctx:    ctx,
		ctl:    ctl,
		title:  title,
		styles: DefaultStyles(),
		status: "loading…",
	}
}

func (m Model) Init() tea.Cmd {
	return loadCmd(m.ctx, m.ctl)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.MouseMsg:
		return m.handleMouseMsg(msg)
	case LoadedMsg:
		return m.handleLoaded(msg), nil
	case SavedMsg:
		return m.handleSaved(msg), nil
	}
	return m, nil
}

func (m Model) handleLoaded(msg LoadedMsg) Model {
	switch {
	case errors.Is(msg.Err, schedule.ErrClosed):
	case msg.Err != nil:
		m.err = msg.Err
		m.status = "load failed"
	default:
		m.err = nil
		m.status = fmt.Sprintf("loaded %d slots", len(m.ctl.Slots()))
	}
	return m
}

func (m Model) handleSaved(msg SavedMsg) Model {
	switch {
	case errors.Is(msg.Err, schedule.ErrClosed):
	case msg.Err != nil:
		m.err = msg.Err
		m.status = "save failed, edits kept"
	default:
		m.err = nil
		m.status = fmt.Sprintf("saved %d slots", msg.Slots)
	}
	return m
}

// Dirty reports whether the grid has unsaved edits.
func (m Model) Dirty() bool { return m.ctl.Grid().IsDirty() }

func (m Model) Err() error { return m.err }

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.ctl.Close()
	m.quitting = true
	return m, tea.Quit
}

// Run starts the editor full screen with mouse motion reporting and
// returns once the user quits.
func Run(ctx context.Context, ctl *schedule.ScheduleController, title string) error {
	p := tea.NewProgram(New(ctx, ctl, title), tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))
	final, err := p.Run()
	ctl.Close()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.Dirty() {
		return errors.New("quit with unsaved changes")
	}
	return nil
}
