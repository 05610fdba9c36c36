package gateway

import (
	"context"
	"fmt"
	"net/http"
)

type Permissions struct {
	c *Client
}

type userCameras struct {
	UserID    int   `json:"user_id,omitempty"`
	CameraIDs []int `json:"camera_ids"`
}

func userCamerasPath(userID int) string {
	return fmt.Sprintf("/api/users/%d/cameras", userID)
}

// GetUserCameras returns the ids of the cameras a user may see.
func (p *Permissions) GetUserCameras(ctx context.Context, userID int) ([]int, error) {
	var out userCameras
	if err := p.c.do(ctx, http.MethodGet, userCamerasPath(userID), nil, &out); err != nil {
		return nil, err
	}
	return out.CameraIDs, nil
}

// SetUserCameras replaces a user's grants and returns what was stored.
func (p *Permissions) SetUserCameras(ctx context.Context, userID int, cameraIDs []int) ([]int, error) {
	if cameraIDs == nil {
		cameraIDs = []int{}
	}
	var out userCameras
	if err := p.c.do(ctx, http.MethodPut, userCamerasPath(userID), userCameras{CameraIDs: cameraIDs}, &out); err != nil {
		return nil, err
	}
	return out.CameraIDs, nil
}
