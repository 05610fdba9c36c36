package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Nixie-Tech-LLC/warden/internal/schedule"
)

// Schedules is the persistence gateway behind a schedule.ScheduleController.
type Schedules struct {
	c *Client
}

var _ schedule.ScheduleGateway = (*Schedules)(nil)

type schedulesBody struct {
	Schedules []schedule.WireSlot `json:"schedules"`
}

func schedulesPath(cameraID int) string {
	return fmt.Sprintf("/api/cameras/%d/schedules", cameraID)
}

// GetSchedules returns the stored slots in stored order. A malformed slot
// fails the whole call.
func (s *Schedules) GetSchedules(ctx context.Context, cameraID int) ([]schedule.Slot, error) {
	var body schedulesBody
	if err := s.c.do(ctx, http.MethodGet, schedulesPath(cameraID), nil, &body); err != nil {
		return nil, err
	}
	return schedule.FromWire(body.Schedules)
}

// SetSchedules replaces the camera's full list.
func (s *Schedules) SetSchedules(ctx context.Context, cameraID int, slots []schedule.Slot) error {
	body := schedulesBody{Schedules: schedule.ToWire(slots)}
	return s.c.do(ctx, http.MethodPut, schedulesPath(cameraID), body, nil)
}

type ActiveMode struct {
	CameraID int    `json:"camera_id"`
	Mode     string `json:"mode"`
	Source   string `json:"source"`
	Day      int    `json:"day_of_week"`
	Hour     int    `json:"hour"`
}

func (s *Schedules) Active(ctx context.Context, cameraID int) (*ActiveMode, error) {
	var out ActiveMode
	if err := s.c.do(ctx, http.MethodGet, schedulesPath(cameraID)+"/active", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
