package endpoints

import (
	"database/sql"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/warden/internal/db"
	"github.com/Nixie-Tech-LLC/warden/internal/http/api"
	"github.com/Nixie-Tech-LLC/warden/internal/model"
)

func idParam(ctx *gin.Context, name string) (int, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param(name))
	if err != nil || id <= 0 {
		return 0, api.BadRequest("invalid " + name)
	}
	return id, nil
}

// loadCamera resolves :id to a camera the user may see. Cameras the user has
// no permission for are reported as missing.
func loadCamera(ctx *gin.Context, store db.Store, user *model.User) (*model.Camera, *api.APIError) {
	id, apiErr := idParam(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}
	if !user.IsAdmin() {
		ok, err := store.UserCanAccessCamera(user.ID, id)
		if err != nil {
			return nil, api.Internal("could not check camera access")
		}
		if !ok {
			return nil, api.NotFound("camera not found")
		}
	}
	cam, err := store.GetCameraByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, api.NotFound("camera not found")
	}
	if err != nil {
		log.Error().Err(err).Int("camera_id", id).Msg("load camera failed")
		return nil, api.Internal("could not load camera")
	}
	return cam, nil
}
