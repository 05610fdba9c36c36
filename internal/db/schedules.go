package db

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/warden/internal/model"
)

// GetCameraSchedules returns a camera's slots in submission order.
func (s *pgStore) GetCameraSchedules(cameraID int) ([]model.CameraSchedule, error) {
	out := []model.CameraSchedule{}
	const q = `
	SELECT id, camera_id, position, day_of_week, start_time, end_time, mode
	  FROM camera_schedules
	 WHERE camera_id = $1
	 ORDER BY position;`
	if err := s.db.Select(&out, q, cameraID); err != nil {
		log.Error().Err(err).Int("camera_id", cameraID).Msg("GetCameraSchedules failed")
		return nil, err
	}
	return out, nil
}

// ReplaceCameraSchedules swaps the camera's whole slot list in a single
// transaction; either all new slots are stored or the old list survives.
func (s *pgStore) ReplaceCameraSchedules(cameraID int, slots []model.CameraSchedule) (err error) {
	tx, err := s.db.Beginx()
	if err != nil {
		log.Error().Err(err).Int("camera_id", cameraID).Msg("ReplaceCameraSchedules begin failed")
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
			log.Error().Err(err).Int("camera_id", cameraID).Int("slots", len(slots)).Msg("ReplaceCameraSchedules failed")
		}
	}()

	if _, err = tx.Exec(`DELETE FROM camera_schedules WHERE camera_id = $1;`, cameraID); err != nil {
		return fmt.Errorf("clear schedules: %w", err)
	}

	if len(slots) > 0 {
		rows := make([]model.CameraSchedule, len(slots))
		for i, sl := range slots {
			sl.CameraID = cameraID
			sl.Position = i
			rows[i] = sl
		}
		const q = `
		INSERT INTO camera_schedules (camera_id, position, day_of_week, start_time, end_time, mode)
		VALUES (:camera_id, :position, :day_of_week, :start_time, :end_time, :mode)`
		if _, err = tx.NamedExec(q, rows); err != nil {
			return fmt.Errorf("insert schedules: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit schedules: %w", err)
	}
	return nil
}
