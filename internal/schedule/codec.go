package schedule

// Slot is an inclusive hour range [StartHour, EndHour] within one day that
// records with a single mode.
type Slot struct {
	Day       int  `json:"day"`
	StartHour int  `json:"start_hour"`
	EndHour   int  `json:"end_hour"`
	Mode      Mode `json:"mode"`
}

func (s Slot) Validate() error {
	if err := checkDay(s.Day); err != nil {
		return err
	}
	if err := checkHour(s.StartHour); err != nil {
		return err
	}
	if err := checkHour(s.EndHour); err != nil {
		return err
	}
	if s.StartHour > s.EndHour {
		return &ValidationError{Field: "slot", Value: s, Reason: "start hour after end hour"}
	}
	if !s.Mode.Valid() {
		return &ValidationError{Field: "mode", Value: s.Mode.String(), Reason: "slot mode must be set"}
	}
	return nil
}

// ValidateSlots checks every slot and returns the first failure.
func ValidateSlots(slots []Slot) error {
	for _, s := range slots {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Encode run-length encodes the grid into slots, day by day in ascending
// order. Each day is scanned through a virtual Unset cell at hour 24 so a run
// reaching 23 is flushed; runs therefore never join across midnight.
func Encode(g Grid) []Slot {
	out := make([]Slot, 0)
	for day := 0; day < DaysPerWeek; day++ {
		runMode := g[day][0]
		runStart := 0
		for h := 1; h <= HoursPerDay; h++ {
			cur := Unset
			if h < HoursPerDay {
				cur = g[day][h]
			}
			if cur == runMode {
				continue
			}
			if runMode != Unset {
				out = append(out, Slot{Day: day, StartHour: runStart, EndHour: h - 1, Mode: runMode})
			}
			runMode, runStart = cur, h
		}
	}
	return out
}

// Decode builds a fresh grid from slots, later slots winning on overlap.
func Decode(slots []Slot) (Grid, error) {
	var g Grid
	if err := ValidateSlots(slots); err != nil {
		return g, err
	}
	g.apply(slots)
	return g, nil
}

// ModeAt returns the mode slots assign to (day, hour), using the same
// precedence as Decode. Unset means no slot covers the cell.
func ModeAt(slots []Slot, day, hour int) Mode {
	mode := Unset
	for _, s := range slots {
		if s.Day == day && s.StartHour <= hour && hour <= s.EndHour && s.Mode.Valid() {
			mode = s.Mode
		}
	}
	return mode
}
