// Package applier keeps each camera's active recording mode in step with its
// weekly schedule.
package applier

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/Nixie-Tech-LLC/warden/internal/model"
	"github.com/Nixie-Tech-LLC/warden/internal/notify"
	"github.com/Nixie-Tech-LLC/warden/internal/schedule"
)

const (
	SourceSchedule = "schedule"
	SourceDefault  = "default"
)

// Store is the subset of db.Store the applier needs.
type Store interface {
	ListActiveCameras() ([]model.Camera, error)
	GetCameraSchedules(cameraID int) ([]model.CameraSchedule, error)
	SetCameraActiveMode(id int, mode string) error
}

// Resolve returns the mode a camera should record with at (day, hour) and
// whether it came from the schedule or the camera default.
func Resolve(cam model.Camera, rows []model.CameraSchedule, day, hour int) (string, string, error) {
	slots, err := model.ScheduleSlots(rows)
	if err != nil {
		return "", "", fmt.Errorf("camera %d schedule: %w", cam.ID, err)
	}
	if m := schedule.ModeAt(slots, day, hour); m != schedule.Unset {
		return m.String(), SourceSchedule, nil
	}
	return cam.RecordingMode, SourceDefault, nil
}

// At converts a wall-clock instant into a grid cell in loc.
func At(now time.Time, loc *time.Location) (day, hour int) {
	local := now.In(loc)
	return schedule.WeekdayToDay(local.Weekday()), local.Hour()
}

type Applier struct {
	store     Store
	publisher notify.Publisher
	loc       *time.Location
	spec      string
	cron      *cron.Cron
	logger    zerolog.Logger
	now       func() time.Time
}

func New(store Store, publisher notify.Publisher, loc *time.Location, spec string, logger zerolog.Logger) *Applier {
	if publisher == nil {
		publisher = notify.Nop{}
	}
	if loc == nil {
		loc = time.Local
	}
	return &Applier{
		store:     store,
		publisher: publisher,
		loc:       loc,
		spec:      spec,
		cron:      cron.New(cron.WithLocation(loc)),
		logger:    logger,
		now:       time.Now,
	}
}

// Start applies schedules immediately and then on every tick of spec.
func (a *Applier) Start() error {
	if _, err := a.cron.AddFunc(a.spec, func() { a.tick() }); err != nil {
		return fmt.Errorf("invalid applier schedule %q: %w", a.spec, err)
	}
	a.tick()
	a.cron.Start()
	a.logger.Info().Str("spec", a.spec).Str("tz", a.loc.String()).Msg("recording schedule applier started")
	return nil
}

// Stop waits for a running tick to finish.
func (a *Applier) Stop() {
	ctx := a.cron.Stop()
	<-ctx.Done()
	a.logger.Info().Msg("recording schedule applier stopped")
}

func (a *Applier) tick() {
	if _, err := a.RunOnce(a.now()); err != nil {
		a.logger.Error().Err(err).Msg("schedule apply failed")
	}
}

// RunOnce resolves every active camera's mode for now and persists and
// announces the ones that changed. Per-camera failures are logged and
// skipped; it returns the number of cameras updated.
func (a *Applier) RunOnce(now time.Time) (int, error) {
	cams, err := a.store.ListActiveCameras()
	if err != nil {
		return 0, fmt.Errorf("list cameras: %w", err)
	}
	day, hour := At(now, a.loc)

	updated := 0
	for _, cam := range cams {
		rows, err := a.store.GetCameraSchedules(cam.ID)
		if err != nil {
			a.logger.Error().Err(err).Int("camera_id", cam.ID).Msg("load schedule failed")
			continue
		}
		mode, source, err := Resolve(cam, rows, day, hour)
		if err != nil {
			a.logger.Error().Err(err).Int("camera_id", cam.ID).Msg("stored schedule is invalid")
			continue
		}
		if mode == cam.ActiveMode {
			continue
		}
		if err := a.store.SetCameraActiveMode(cam.ID, mode); err != nil {
			a.logger.Error().Err(err).Int("camera_id", cam.ID).Msg("persist active mode failed")
			continue
		}
		updated++
		a.logger.Info().
			Int("camera_id", cam.ID).
			Str("camera", cam.Name).
			Str("from", cam.ActiveMode).
			Str("to", mode).
			Str("source", source).
			Msg("recording mode changed")
		if err := a.publisher.ModeChanged(cam.ID, cam.ActiveMode, mode); err != nil {
			a.logger.Warn().Err(err).Int("camera_id", cam.ID).Msg("mode change notification failed")
		}
	}
	return updated, nil
}
