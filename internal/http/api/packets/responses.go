package packets

import "github.com/Nixie-Tech-LLC/warden/internal/schedule"

type LoginResponse struct {
	Token string `json:"token"`
}

type ProfileResponse struct {
	ID       int     `json:"id"`
	Username string  `json:"username"`
	Email    *string `json:"email"`
	Role     string  `json:"role"`
}

type CameraResponse struct {
	ID                 int     `json:"id"`
	Name               string  `json:"name"`
	MainStreamURL      string  `json:"main_stream_url"`
	SubStreamURL       *string `json:"sub_stream_url"`
	Location           *string `json:"location"`
	IsActive           bool    `json:"is_active"`
	RecordingMode      string  `json:"recording_mode"`
	ActiveMode         string  `json:"active_mode"`
	RetentionDays      int     `json:"retention_days"`
	EventRetentionDays int     `json:"event_retention_days"`
	CreatedAt          string  `json:"created_at"`
	UpdatedAt          string  `json:"updated_at"`
}

type SchedulesResponse struct {
	CameraID  int                 `json:"camera_id"`
	Schedules []schedule.WireSlot `json:"schedules"`
}

type ActiveModeResponse struct {
	CameraID int    `json:"camera_id"`
	Mode     string `json:"mode"`
	Source   string `json:"source"`
	Day      int    `json:"day_of_week"`
	Hour     int    `json:"hour"`
}

type UserCamerasResponse struct {
	UserID    int   `json:"user_id"`
	CameraIDs []int `json:"camera_ids"`
}
