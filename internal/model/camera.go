package model

import "time"

// Camera is an IP camera managed by the dashboard.
// RecordingMode is the default mode; ActiveMode is what the schedule
// applier last resolved for the current hour.
type Camera struct {
	ID                 int       `db:"id"                   json:"id"`
	Name               string    `db:"name"                 json:"name"`
	MainStreamURL      string    `db:"main_stream_url"      json:"main_stream_url"`
	SubStreamURL       *string   `db:"sub_stream_url"       json:"sub_stream_url"`
	Location           *string   `db:"location"             json:"location"`
	IsActive           bool      `db:"is_active"            json:"is_active"`
	RecordingMode      string    `db:"recording_mode"       json:"recording_mode"`
	ActiveMode         string    `db:"active_mode"          json:"active_mode"`
	RetentionDays      int       `db:"retention_days"       json:"retention_days"`
	EventRetentionDays int       `db:"event_retention_days" json:"event_retention_days"`
	CreatedAt          time.Time `db:"created_at"           json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"           json:"updated_at"`
}

// CameraUpdate carries the optional fields of a partial camera update.
type CameraUpdate struct {
	Name               *string
	MainStreamURL      *string
	SubStreamURL       *string
	Location           *string
	IsActive           *bool
	RecordingMode      *string
	RetentionDays      *int
	EventRetentionDays *int
}
