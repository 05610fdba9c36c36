package schedule

import "strings"

// Mode is a recording mode assigned to one grid cell. The zero value is
// Unset, meaning the camera falls back to its default recording mode.
type Mode uint8

const (
	Unset Mode = iota
	Continuous
	Motion
	Events
)

const (
	DaysPerWeek = 7
	HoursPerDay = 24
)

var modeNames = [...]string{
	Unset:      "",
	Continuous: "continuous",
	Motion:     "motion",
	Events:     "events",
}

// Modes lists the assignable modes in display order.
var Modes = []Mode{Continuous, Motion, Events}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "invalid"
}

// Valid reports whether m may be carried by a slot.
func (m Mode) Valid() bool {
	return m == Continuous || m == Motion || m == Events
}

// ParseMode converts a wire name into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "continuous":
		return Continuous, nil
	case "motion":
		return Motion, nil
	case "events":
		return Events, nil
	}
	return Unset, &ValidationError{Field: "mode", Value: s, Reason: "must be continuous, motion or events"}
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*m = Unset
		return nil
	}
	parsed, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
