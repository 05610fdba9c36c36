package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/warden/internal/model"
)

const userColumns = `id, username, email, hashed_password, role, is_active, created_at, updated_at`

// inserts new user into table, returns new user ID.
func (s *pgStore) CreateUser(username, hashedPassword, role string, email *string) (int, error) {
	query := `
	INSERT INTO users (username, email, hashed_password, role, created_at, updated_at)
	VALUES ($1, $2, $3, $4, now(), now())
	RETURNING id;
	`
	var newID int
	if err := s.db.QueryRow(query, username, email, hashedPassword, role).Scan(&newID); err != nil {
		log.Error().Err(err).Str("username", username).Msg("failed to create user")
		return 0, err
	}
	return newID, nil
}

// fetches user by username. returns nil, sql.ErrNoRows if not found.
func (s *pgStore) GetUserByUsername(username string) (*model.User, error) {
	var u model.User
	err := s.db.Get(&u, `SELECT `+userColumns+` FROM users WHERE username = $1;`, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Msg("failed to get user by username")
		return nil, err
	}
	return &u, nil
}

// fetches a user by ID. Returns nil, sql.ErrNoRows if not found.
func (s *pgStore) GetUserByID(id int) (*model.User, error) {
	var u model.User
	err := s.db.Get(&u, `SELECT `+userColumns+` FROM users WHERE id = $1;`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Int("user_id", id).Msg("failed to get user by id")
		return nil, err
	}
	return &u, nil
}
