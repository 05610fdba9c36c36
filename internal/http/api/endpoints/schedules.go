package endpoints

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/warden/internal/applier"
	"github.com/Nixie-Tech-LLC/warden/internal/db"
	"github.com/Nixie-Tech-LLC/warden/internal/http/api"
	"github.com/Nixie-Tech-LLC/warden/internal/http/api/packets"
	"github.com/Nixie-Tech-LLC/warden/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/warden/internal/model"
	"github.com/Nixie-Tech-LLC/warden/internal/notify"
	"github.com/Nixie-Tech-LLC/warden/internal/redis"
	"github.com/Nixie-Tech-LLC/warden/internal/schedule"
)

type ScheduleController struct {
	store     db.Store
	cache     *redis.ScheduleCache
	publisher notify.Publisher
	loc       *time.Location
	now       func() time.Time
}

func NewScheduleController(store db.Store, cache *redis.ScheduleCache, publisher notify.Publisher, loc *time.Location) *ScheduleController {
	if publisher == nil {
		publisher = notify.Nop{}
	}
	if loc == nil {
		loc = time.Local
	}
	return &ScheduleController{store: store, cache: cache, publisher: publisher, loc: loc, now: time.Now}
}

func ScheduleModule(ctl *ScheduleController) api.Module {
	editors := middleware.RequireRole(model.RoleAdmin, model.RoleOperator)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/cameras/:id/schedules", ctl.getSchedules)
		c.PUT("/cameras/:id/schedules", ctl.setSchedules, editors)
		c.GET("/cameras/:id/schedules/active", ctl.activeMode)
	})
}

// rows returns the stored slots, from cache when possible. The cache
// generation is read before the store so a replace that lands in between
// keeps the old rows out of the cache.
func (s *ScheduleController) rows(ctx *gin.Context, cameraID int) ([]model.CameraSchedule, error) {
	if rows, ok := s.cache.Get(ctx, cameraID); ok {
		return rows, nil
	}
	gen, cacheable := s.cache.Generation(ctx, cameraID)
	rows, err := s.store.GetCameraSchedules(cameraID)
	if err != nil {
		return nil, err
	}
	if cacheable {
		s.cache.Set(ctx, cameraID, gen, rows)
	}
	return rows, nil
}

// GET /api/cameras/:id/schedules
func (s *ScheduleController) getSchedules(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	cam, apiErr := loadCamera(ctx, s.store, user)
	if apiErr != nil {
		return nil, apiErr
	}
	rows, err := s.rows(ctx, cam.ID)
	if err != nil {
		return nil, api.Internal("could not load schedules")
	}

	response := packets.SchedulesResponse{CameraID: cam.ID, Schedules: make([]schedule.WireSlot, 0, len(rows))}
	for _, r := range rows {
		response.Schedules = append(response.Schedules, r.Wire())
	}
	return response, nil
}

// PUT /api/cameras/:id/schedules replaces the whole list. Every slot is
// validated before anything is written; start after end (an overnight range)
// is rejected.
func (s *ScheduleController) setSchedules(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	cam, apiErr := loadCamera(ctx, s.store, user)
	if apiErr != nil {
		return nil, apiErr
	}
	var request packets.SetSchedulesRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err.Error())
	}
	slots, err := schedule.FromWire(request.Schedules)
	if err != nil {
		return nil, api.BadRequest(err.Error())
	}

	rows := model.CameraSchedulesFromSlots(cam.ID, slots)
	if err := s.store.ReplaceCameraSchedules(cam.ID, rows); err != nil {
		return nil, api.Internal("could not save schedules")
	}
	s.cache.Invalidate(ctx, cam.ID)
	if err := s.publisher.ScheduleUpdated(cam.ID, len(rows)); err != nil {
		log.Warn().Err(err).Int("camera_id", cam.ID).Msg("schedule update notification failed")
	}
	log.Info().Int("camera_id", cam.ID).Int("user_id", user.ID).Int("slots", len(rows)).Msg("schedules replaced")

	response := packets.SchedulesResponse{CameraID: cam.ID, Schedules: make([]schedule.WireSlot, 0, len(rows))}
	for _, r := range rows {
		response.Schedules = append(response.Schedules, r.Wire())
	}
	return response, nil
}

// GET /api/cameras/:id/schedules/active
func (s *ScheduleController) activeMode(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	cam, apiErr := loadCamera(ctx, s.store, user)
	if apiErr != nil {
		return nil, apiErr
	}
	rows, err := s.rows(ctx, cam.ID)
	if err != nil {
		return nil, api.Internal("could not load schedules")
	}
	day, hour := applier.At(s.now(), s.loc)
	mode, source, err := applier.Resolve(*cam, rows, day, hour)
	if err != nil {
		log.Error().Err(err).Int("camera_id", cam.ID).Msg("stored schedule is invalid")
		return nil, api.Internal("stored schedule is invalid")
	}
	return packets.ActiveModeResponse{CameraID: cam.ID, Mode: mode, Source: source, Day: day, Hour: hour}, nil
}
