package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Nixie-Tech-LLC/warden/internal/model"
)

type Cameras struct {
	c *Client
}

// CameraUpdate is a partial update; nil fields are not sent.
type CameraUpdate struct {
	Name               *string `json:"name,omitempty"`
	MainStreamURL      *string `json:"main_stream_url,omitempty"`
	SubStreamURL       *string `json:"sub_stream_url,omitempty"`
	Location           *string `json:"location,omitempty"`
	IsActive           *bool   `json:"is_active,omitempty"`
	RecordingMode      *string `json:"recording_mode,omitempty"`
	RetentionDays      *int    `json:"retention_days,omitempty"`
	EventRetentionDays *int    `json:"event_retention_days,omitempty"`
}

func (g *Cameras) ListCameras(ctx context.Context) ([]model.Camera, error) {
	var out []model.Camera
	if err := g.c.do(ctx, http.MethodGet, "/api/cameras", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *Cameras) GetCamera(ctx context.Context, id int) (*model.Camera, error) {
	var out model.Camera
	if err := g.c.do(ctx, http.MethodGet, fmt.Sprintf("/api/cameras/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *Cameras) UpdateCamera(ctx context.Context, id int, u CameraUpdate) (*model.Camera, error) {
	var out model.Camera
	if err := g.c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/cameras/%d", id), u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
