package endpoints

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/warden/internal/db"
	"github.com/Nixie-Tech-LLC/warden/internal/http/api"
	"github.com/Nixie-Tech-LLC/warden/internal/http/api/packets"
	"github.com/Nixie-Tech-LLC/warden/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/warden/internal/model"
)

type PermissionController struct {
	store db.Store
}

func PermissionModule(store db.Store) api.Module {
	ctl := &PermissionController{store: store}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/users/:id/cameras", ctl.getUserCameras)
		c.PUT("/users/:id/cameras", ctl.setUserCameras, middleware.RequireRole(model.RoleAdmin))
	})
}

// users may read their own grants; admins may read anyone's.
func (p *PermissionController) getUserCameras(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	userID, apiErr := idParam(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}
	if !user.IsAdmin() && user.ID != userID {
		return nil, api.Forbidden()
	}
	ids, err := p.store.GetUserCameraIDs(userID)
	if err != nil {
		return nil, api.Internal("could not load permissions")
	}
	if ids == nil {
		ids = []int{}
	}
	return packets.UserCamerasResponse{UserID: userID, CameraIDs: ids}, nil
}

func (p *PermissionController) setUserCameras(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	userID, apiErr := idParam(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}
	var request packets.SetUserCamerasRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err.Error())
	}
	if _, err := p.store.GetUserByID(userID); err != nil {
		return nil, api.NotFound("user not found")
	}

	ids := dedupe(request.CameraIDs)
	if err := p.store.SetUserCameraIDs(userID, ids); err != nil {
		if errors.Is(err, db.ErrUnknownCamera) {
			return nil, api.BadRequest(err.Error())
		}
		return nil, api.Internal("could not save permissions")
	}
	log.Info().Int("user_id", userID).Int("by", user.ID).Ints("camera_ids", ids).Msg("camera permissions replaced")
	return packets.UserCamerasResponse{UserID: userID, CameraIDs: ids}, nil
}

func dedupe(ids []int) []int {
	seen := make(map[int]bool, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if id <= 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
