package schedule

// SelectionState is the state of a paint-by-drag interaction.
type SelectionState int

const (
	Idle SelectionState = iota
	Painting
)

func (s SelectionState) String() string {
	if s == Painting {
		return "painting"
	}
	return "idle"
}

// SelectionController turns pointer events into grid edits. Only one drag
// can be active at a time.
type SelectionController struct {
	grid *ScheduleGrid

	state    SelectionState
	dragMode Mode

	paint    Mode
	hasPaint bool
}

func NewSelectionController(grid *ScheduleGrid) *SelectionController {
	return &SelectionController{grid: grid}
}

// SetPaintMode selects the mode future presses apply. Unset erases.
// It never touches the grid, and an active drag keeps its own mode.
func (c *SelectionController) SetPaintMode(m Mode) {
	c.paint = m
	c.hasPaint = true
}

func (c *SelectionController) ClearPaintMode() {
	c.paint = Unset
	c.hasPaint = false
}

// PaintMode returns the selected mode and whether one is selected.
func (c *SelectionController) PaintMode() (Mode, bool) {
	return c.paint, c.hasPaint
}

func (c *SelectionController) State() SelectionState { return c.state }

// DragMode is the mode being painted; meaningful only while Painting.
func (c *SelectionController) DragMode() Mode { return c.dragMode }

// Press starts a drag at (day, hour) and paints that cell. Without a
// selected paint mode it does nothing.
func (c *SelectionController) Press(day, hour int) error {
	if c.state == Painting {
		return ErrDragInProgress
	}
	if !c.hasPaint {
		return nil
	}
	if err := c.paintCell(day, hour, c.paint); err != nil {
		return err
	}
	c.state = Painting
	c.dragMode = c.paint
	return nil
}

// Enter paints (day, hour) while a drag is active. Re-entering a cell
// rewrites it with the same mode.
func (c *SelectionController) Enter(day, hour int) error {
	if c.state != Painting {
		return nil
	}
	return c.paintCell(day, hour, c.dragMode)
}

// Release ends the drag.
func (c *SelectionController) Release() {
	c.state = Idle
	c.dragMode = Unset
}

// Leave ends the drag when the pointer exits the grid surface.
func (c *SelectionController) Leave() {
	c.Release()
}

func (c *SelectionController) paintCell(day, hour int, m Mode) error {
	if err := c.grid.SetCell(day, hour, m); err != nil {
		return err
	}
	c.grid.MarkDirty()
	return nil
}
