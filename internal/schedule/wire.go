package schedule

import (
	"fmt"
	"time"
)

// WireSlot is the transport form exchanged with the persistence gateway.
type WireSlot struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Mode      string `json:"mode"`
}

// FormatStart renders the first minute of an hour, e.g. "07:00".
func FormatStart(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// FormatEnd renders the last minute of an hour, e.g. "07:59".
func FormatEnd(hour int) string {
	return fmt.Sprintf("%02d:59", hour)
}

// ParseHour extracts the hour from an "HH:MM" string. Minutes are checked for
// shape and then dropped: "07:30" and "07:59" both mean hour 7.
func ParseHour(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' || !digits(s[0:2]) || !digits(s[3:5]) {
		return 0, &ValidationError{Field: "time", Value: s, Reason: `want "HH:MM"`}
	}
	hour := int(s[0]-'0')*10 + int(s[1]-'0')
	minute := int(s[3]-'0')*10 + int(s[4]-'0')
	if hour >= HoursPerDay || minute >= 60 {
		return 0, &ValidationError{Field: "time", Value: s, Reason: "hour or minute out of range", outOfRange: true}
	}
	return hour, nil
}

func digits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ToWire converts slots to their transport form.
func ToWire(slots []Slot) []WireSlot {
	out := make([]WireSlot, 0, len(slots))
	for _, s := range slots {
		out = append(out, WireSlot{
			DayOfWeek: s.Day,
			StartTime: FormatStart(s.StartHour),
			EndTime:   FormatEnd(s.EndHour),
			Mode:      s.Mode.String(),
		})
	}
	return out
}

// FromWire parses and validates transport slots, preserving their order.
func FromWire(in []WireSlot) ([]Slot, error) {
	out := make([]Slot, 0, len(in))
	for i, w := range in {
		start, err := ParseHour(w.StartTime)
		if err != nil {
			return nil, fmt.Errorf("slot %d start_time: %w", i, err)
		}
		end, err := ParseHour(w.EndTime)
		if err != nil {
			return nil, fmt.Errorf("slot %d end_time: %w", i, err)
		}
		mode, err := ParseMode(w.Mode)
		if err != nil {
			return nil, fmt.Errorf("slot %d: %w", i, err)
		}
		s := Slot{Day: w.DayOfWeek, StartHour: start, EndHour: end, Mode: mode}
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("slot %d: %w", i, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// WeekdayToDay maps Go's Sunday-first weekday onto the Monday=0 grid row.
func WeekdayToDay(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

var dayNames = [DaysPerWeek]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// DayName returns the short English name of a grid row.
func DayName(day int) string {
	if day < 0 || day >= DaysPerWeek {
		return "?"
	}
	return dayNames[day]
}
