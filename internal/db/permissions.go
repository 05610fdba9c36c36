package db

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// ErrUnknownCamera is returned when a grant names a camera that does not exist.
var ErrUnknownCamera = errors.New("unknown camera")

// foreign_key_violation
const pqForeignKeyViolation = "23503"

func (s *pgStore) GetUserCameraIDs(userID int) ([]int, error) {
	ids := []int{}
	if err := s.db.Select(&ids, `SELECT camera_id FROM user_cameras WHERE user_id = $1 ORDER BY camera_id;`, userID); err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("GetUserCameraIDs failed")
		return nil, err
	}
	return ids, nil
}

// SetUserCameraIDs replaces the set of cameras a user may access.
func (s *pgStore) SetUserCameraIDs(userID int, cameraIDs []int) (err error) {
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
			log.Error().Err(err).Int("user_id", userID).Msg("SetUserCameraIDs failed")
		}
	}()

	if _, err = tx.Exec(`DELETE FROM user_cameras WHERE user_id = $1;`, userID); err != nil {
		return fmt.Errorf("clear permissions: %w", err)
	}
	for _, id := range cameraIDs {
		if _, err = tx.Exec(`
		INSERT INTO user_cameras (user_id, camera_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING;`, userID, id); err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation {
				return fmt.Errorf("grant camera %d: %w", id, ErrUnknownCamera)
			}
			return fmt.Errorf("grant camera %d: %w", id, err)
		}
	}
	return tx.Commit()
}

func (s *pgStore) UserCanAccessCamera(userID, cameraID int) (bool, error) {
	var ok bool
	err := s.db.Get(&ok, `
	SELECT EXISTS (SELECT 1 FROM user_cameras WHERE user_id = $1 AND camera_id = $2);`, userID, cameraID)
	if err != nil {
		log.Error().Err(err).Int("user_id", userID).Int("camera_id", cameraID).Msg("UserCanAccessCamera failed")
		return false, err
	}
	return ok, nil
}
