package schedule

import "sync"

// Grid is the dense weekly mapping from (day, hour) to Mode. The zero value
// has every cell Unset.
type Grid [DaysPerWeek][HoursPerDay]Mode

// Set stores mode at (day, hour). Out-of-range coordinates and modes outside
// the closed set are rejected with a ValidationError.
func (g *Grid) Set(day, hour int, mode Mode) error {
	if err := checkDay(day); err != nil {
		return err
	}
	if err := checkHour(hour); err != nil {
		return err
	}
	if mode != Unset && !mode.Valid() {
		return &ValidationError{Field: "mode", Value: uint8(mode), Reason: "not a recording mode"}
	}
	g[day][hour] = mode
	return nil
}

// apply paints every slot in order; later slots overwrite earlier ones.
// Slots must already be validated.
func (g *Grid) apply(slots []Slot) {
	for _, s := range slots {
		for h := s.StartHour; h <= s.EndHour; h++ {
			g[s.Day][h] = s.Mode
		}
	}
}

// ScheduleGrid is the mutable grid owned by one editing session, together
// with its dirty flag. Methods are safe to call from the goroutine that
// handles user input and the one completing a load.
type ScheduleGrid struct {
	mu    sync.RWMutex
	cells Grid
	dirty bool
	rev   uint64
}

func NewScheduleGrid() *ScheduleGrid {
	return &ScheduleGrid{}
}

// SetCell overwrites a single cell. It does not touch the dirty flag; the
// caller decides whether the write is a user edit.
func (g *ScheduleGrid) SetCell(day, hour int, mode Mode) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cells.Set(day, hour, mode)
}

func (g *ScheduleGrid) Cell(day, hour int) (Mode, error) {
	if err := checkDay(day); err != nil {
		return Unset, err
	}
	if err := checkHour(hour); err != nil {
		return Unset, err
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.cells[day][hour], nil
}

// Clear resets every cell to Unset.
func (g *ScheduleGrid) Clear() {
	g.mu.Lock()
	g.cells = Grid{}
	g.mu.Unlock()
}

// LoadFromSlots resets the grid and paints slots in input order. All slots
// are validated first; on error the grid keeps its previous contents.
func (g *ScheduleGrid) LoadFromSlots(slots []Slot) error {
	if err := ValidateSlots(slots); err != nil {
		return err
	}
	var next Grid
	next.apply(slots)

	g.mu.Lock()
	g.cells = next
	g.mu.Unlock()
	return nil
}

// Replace swaps in a complete grid.
func (g *ScheduleGrid) Replace(cells Grid) {
	g.mu.Lock()
	g.cells = cells
	g.mu.Unlock()
}

// SnapshotRevision returns the cells together with the edit counter at the
// time of the copy.
func (g *ScheduleGrid) SnapshotRevision() (Grid, uint64) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.cells, g.rev
}

// clearDirtyAt clears the dirty flag unless an edit landed after rev.
func (g *ScheduleGrid) clearDirtyAt(rev uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.rev != rev {
		return false
	}
	g.dirty = false
	return true
}

// Snapshot returns a copy of the current cells.
func (g *ScheduleGrid) Snapshot() Grid {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.cells
}

func (g *ScheduleGrid) IsDirty() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.dirty
}

// MarkDirty records a user edit.
func (g *ScheduleGrid) MarkDirty() {
	g.mu.Lock()
	g.dirty = true
	g.rev++
	g.mu.Unlock()
}

func (g *ScheduleGrid) ClearDirty() {
	g.mu.Lock()
	g.dirty = false
	g.mu.Unlock()
}
