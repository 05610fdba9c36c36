package endpoints

import (
	"database/sql"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/warden/internal/db"
	"github.com/Nixie-Tech-LLC/warden/internal/http/api"
	"github.com/Nixie-Tech-LLC/warden/internal/http/api/packets"
	"github.com/Nixie-Tech-LLC/warden/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/warden/internal/model"
	"github.com/Nixie-Tech-LLC/warden/internal/schedule"
)

type CameraController struct {
	store db.Store
}

func NewCameraController(store db.Store) *CameraController {
	return &CameraController{store: store}
}

func CameraModule(store db.Store) api.Module {
	ctl := NewCameraController(store)
	adminOnly := middleware.RequireRole(model.RoleAdmin)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/cameras", ctl.listCameras)
		c.GET("/cameras/:id", ctl.getCamera)
		c.POST("/cameras", ctl.createCamera, adminOnly)
		c.PATCH("/cameras/:id", ctl.updateCamera, adminOnly)
		c.DELETE("/cameras/:id", ctl.deleteCamera, adminOnly)
	})
}

func toCameraResponse(c model.Camera) packets.CameraResponse {
	return packets.CameraResponse{
		ID:                 c.ID,
		Name:               c.Name,
		MainStreamURL:      c.MainStreamURL,
		SubStreamURL:       c.SubStreamURL,
		Location:           c.Location,
		IsActive:           c.IsActive,
		RecordingMode:      c.RecordingMode,
		ActiveMode:         c.ActiveMode,
		RetentionDays:      c.RetentionDays,
		EventRetentionDays: c.EventRetentionDays,
		CreatedAt:          c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          c.UpdatedAt.Format(time.RFC3339),
	}
}

// recordingMode accepts any set mode; a camera default can't be Unset.
func recordingMode(s string) (string, *api.APIError) {
	m, err := schedule.ParseMode(s)
	if err != nil || m == schedule.Unset {
		return "", api.BadRequest("recording_mode must be one of continuous, motion, events")
	}
	return m.String(), nil
}

func (s *CameraController) listCameras(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var (
		list []model.Camera
		err  error
	)
	if user.IsAdmin() {
		list, err = s.store.ListCameras()
	} else {
		list, err = s.store.ListCamerasForUser(user.ID)
	}
	if err != nil {
		return nil, api.Internal("failed to list cameras")
	}

	response := make([]packets.CameraResponse, 0, len(list))
	for _, c := range list {
		response = append(response, toCameraResponse(c))
	}
	return response, nil
}

func (s *CameraController) getCamera(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	cam, apiErr := loadCamera(ctx, s.store, user)
	if apiErr != nil {
		return nil, apiErr
	}
	return toCameraResponse(*cam), nil
}

func (s *CameraController) createCamera(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.CreateCameraRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err.Error())
	}
	if request.RecordingMode == "" {
		request.RecordingMode = schedule.Continuous.String()
	}
	mode, apiErr := recordingMode(request.RecordingMode)
	if apiErr != nil {
		return nil, apiErr
	}

	cam, err := s.store.CreateCamera(model.Camera{
		Name:               request.Name,
		MainStreamURL:      request.MainStreamURL,
		SubStreamURL:       request.SubStreamURL,
		Location:           request.Location,
		IsActive:           true,
		RecordingMode:      mode,
		RetentionDays:      request.RetentionDays,
		EventRetentionDays: request.EventRetentionDays,
	})
	if err != nil {
		return nil, api.Internal("could not create camera")
	}
	log.Info().Int("camera_id", cam.ID).Int("user_id", user.ID).Msg("camera created")
	return api.Created{Body: toCameraResponse(cam)}, nil
}

func (s *CameraController) updateCamera(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, apiErr := idParam(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}
	var request packets.UpdateCameraRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err.Error())
	}
	if request.RecordingMode != nil {
		mode, apiErr := recordingMode(*request.RecordingMode)
		if apiErr != nil {
			return nil, apiErr
		}
		request.RecordingMode = &mode
	}

	err := s.store.UpdateCamera(id, model.CameraUpdate{
		Name:               request.Name,
		MainStreamURL:      request.MainStreamURL,
		SubStreamURL:       request.SubStreamURL,
		Location:           request.Location,
		IsActive:           request.IsActive,
		RecordingMode:      request.RecordingMode,
		RetentionDays:      request.RetentionDays,
		EventRetentionDays: request.EventRetentionDays,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, api.NotFound("camera not found")
	}
	if err != nil {
		return nil, api.Internal("could not update camera")
	}

	cam, err := s.store.GetCameraByID(id)
	if err != nil {
		return nil, api.Internal("could not load camera")
	}
	return toCameraResponse(*cam), nil
}

func (s *CameraController) deleteCamera(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, apiErr := idParam(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}
	err := s.store.DeleteCamera(id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, api.NotFound("camera not found")
	}
	if err != nil {
		return nil, api.Internal("could not delete camera")
	}
	log.Info().Int("camera_id", id).Int("user_id", user.ID).Msg("camera deleted")
	return gin.H{"message": "deleted"}, nil
}
