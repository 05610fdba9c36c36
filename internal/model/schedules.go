package model

import "github.com/Nixie-Tech-LLC/warden/internal/schedule"

// CameraSchedule is one stored slot of a camera's weekly schedule. Position
// keeps the order the slots were submitted in, which decides overlaps.
type CameraSchedule struct {
	ID        int    `db:"id"          json:"-"`
	CameraID  int    `db:"camera_id"   json:"-"`
	Position  int    `db:"position"    json:"-"`
	DayOfWeek int    `db:"day_of_week" json:"day_of_week"`
	StartTime string `db:"start_time"  json:"start_time"`
	EndTime   string `db:"end_time"    json:"end_time"`
	Mode      string `db:"mode"        json:"mode"`
}

func (c CameraSchedule) Wire() schedule.WireSlot {
	return schedule.WireSlot{
		DayOfWeek: c.DayOfWeek,
		StartTime: c.StartTime,
		EndTime:   c.EndTime,
		Mode:      c.Mode,
	}
}

// ScheduleSlots parses stored rows into validated slots, keeping row order.
func ScheduleSlots(rows []CameraSchedule) ([]schedule.Slot, error) {
	wire := make([]schedule.WireSlot, 0, len(rows))
	for _, r := range rows {
		wire = append(wire, r.Wire())
	}
	return schedule.FromWire(wire)
}

// CameraSchedulesFromSlots renders slots into rows with canonical
// "HH:00"/"HH:59" boundaries.
func CameraSchedulesFromSlots(cameraID int, slots []schedule.Slot) []CameraSchedule {
	out := make([]CameraSchedule, 0, len(slots))
	for i, w := range schedule.ToWire(slots) {
		out = append(out, CameraSchedule{
			CameraID:  cameraID,
			Position:  i,
			DayOfWeek: w.DayOfWeek,
			StartTime: w.StartTime,
			EndTime:   w.EndTime,
			Mode:      w.Mode,
		})
	}
	return out
}
