package packets

import "github.com/Nixie-Tech-LLC/warden/internal/schedule"

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CreateCameraRequest struct {
	Name               string  `json:"name"            binding:"required"`
	MainStreamURL      string  `json:"main_stream_url" binding:"required"`
	SubStreamURL       *string `json:"sub_stream_url"`
	Location           *string `json:"location"`
	RecordingMode      string  `json:"recording_mode"`
	RetentionDays      int     `json:"retention_days"       binding:"gte=0"`
	EventRetentionDays int     `json:"event_retention_days" binding:"gte=0"`
}

// UpdateCameraRequest is a partial update; nil fields are left unchanged.
type UpdateCameraRequest struct {
	Name               *string `json:"name"`
	MainStreamURL      *string `json:"main_stream_url"`
	SubStreamURL       *string `json:"sub_stream_url"`
	Location           *string `json:"location"`
	IsActive           *bool   `json:"is_active"`
	RecordingMode      *string `json:"recording_mode"`
	RetentionDays      *int    `json:"retention_days"       binding:"omitempty,gte=0"`
	EventRetentionDays *int    `json:"event_retention_days" binding:"omitempty,gte=0"`
}

// SetSchedulesRequest fully replaces a camera's schedule.
type SetSchedulesRequest struct {
	Schedules []schedule.WireSlot `json:"schedules"`
}

type SetUserCamerasRequest struct {
	CameraIDs []int `json:"camera_ids"`
}
