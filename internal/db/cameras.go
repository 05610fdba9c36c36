package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/warden/internal/model"
)

const cameraColumns = `id, name, main_stream_url, sub_stream_url, location, is_active,
	recording_mode, active_mode, retention_days, event_retention_days, created_at, updated_at`

func (s *pgStore) ListCameras() ([]model.Camera, error) {
	out := []model.Camera{}
	if err := s.db.Select(&out, `SELECT `+cameraColumns+` FROM cameras ORDER BY id;`); err != nil {
		log.Error().Err(err).Msg("ListCameras failed")
		return nil, err
	}
	return out, nil
}

// cameras a non-admin user has been granted access to
func (s *pgStore) ListCamerasForUser(userID int) ([]model.Camera, error) {
	out := []model.Camera{}
	const q = `
	SELECT c.id, c.name, c.main_stream_url, c.sub_stream_url, c.location, c.is_active,
	       c.recording_mode, c.active_mode, c.retention_days, c.event_retention_days,
	       c.created_at, c.updated_at
	  FROM cameras c
	  JOIN user_cameras uc ON uc.camera_id = c.id
	 WHERE uc.user_id = $1
	 ORDER BY c.id;`
	if err := s.db.Select(&out, q, userID); err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("ListCamerasForUser failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) ListActiveCameras() ([]model.Camera, error) {
	out := []model.Camera{}
	if err := s.db.Select(&out, `SELECT `+cameraColumns+` FROM cameras WHERE is_active = TRUE ORDER BY id;`); err != nil {
		log.Error().Err(err).Msg("ListActiveCameras failed")
		return nil, err
	}
	return out, nil
}

// returns nil, sql.ErrNoRows if the camera does not exist.
func (s *pgStore) GetCameraByID(id int) (*model.Camera, error) {
	var c model.Camera
	if err := s.db.Get(&c, `SELECT `+cameraColumns+` FROM cameras WHERE id = $1;`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Int("camera_id", id).Msg("GetCameraByID failed")
		return nil, err
	}
	return &c, nil
}

func (s *pgStore) CreateCamera(c model.Camera) (model.Camera, error) {
	var out model.Camera
	q := `
	INSERT INTO cameras
	  (name, main_stream_url, sub_stream_url, location, is_active, recording_mode, active_mode,
	   retention_days, event_retention_days, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $6, $7, $8, now(), now())
	RETURNING ` + cameraColumns + `;`
	err := s.db.Get(&out, q,
		c.Name, c.MainStreamURL, c.SubStreamURL, c.Location, c.IsActive,
		c.RecordingMode, c.RetentionDays, c.EventRetentionDays)
	if err != nil {
		log.Error().Err(err).Str("name", c.Name).Msg("CreateCamera failed")
		return model.Camera{}, err
	}
	return out, nil
}

// applies the non-nil fields of u and bumps updated_at.
// returns sql.ErrNoRows if no camera has the given id.
func (s *pgStore) UpdateCamera(id int, u model.CameraUpdate) error {
	const q = `
	UPDATE cameras
	   SET name                 = COALESCE($2, name),
	       main_stream_url      = COALESCE($3, main_stream_url),
	       sub_stream_url       = COALESCE($4, sub_stream_url),
	       location             = COALESCE($5, location),
	       is_active            = COALESCE($6, is_active),
	       recording_mode       = COALESCE($7, recording_mode),
	       retention_days       = COALESCE($8, retention_days),
	       event_retention_days = COALESCE($9, event_retention_days),
	       updated_at           = now()
	 WHERE id = $1;`
	res, err := s.db.Exec(q, id,
		u.Name, u.MainStreamURL, u.SubStreamURL, u.Location, u.IsActive,
		u.RecordingMode, u.RetentionDays, u.EventRetentionDays)
	if err != nil {
		log.Error().Err(err).Int("camera_id", id).Msg("UpdateCamera failed")
		return err
	}
	return expectRow(res)
}

func (s *pgStore) SetCameraActiveMode(id int, mode string) error {
	res, err := s.db.Exec(`UPDATE cameras SET active_mode = $2, updated_at = now() WHERE id = $1;`, id, mode)
	if err != nil {
		log.Error().Err(err).Int("camera_id", id).Str("mode", mode).Msg("SetCameraActiveMode failed")
		return err
	}
	return expectRow(res)
}

func (s *pgStore) DeleteCamera(id int) error {
	res, err := s.db.Exec(`DELETE FROM cameras WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("camera_id", id).Msg("DeleteCamera failed")
		return err
	}
	return expectRow(res)
}

func expectRow(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
