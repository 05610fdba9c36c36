package model

import "time"

const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
	RoleViewer   = "viewer"
)

type User struct {
	ID             int       `db:"id"`
	Username       string    `db:"username"`
	Email          *string   `db:"email"`
	HashedPassword string    `db:"hashed_password"`
	Role           string    `db:"role"`
	IsActive       bool      `db:"is_active"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// CanEditSchedules reports whether the user may change recording schedules.
func (u *User) CanEditSchedules() bool {
	return u.Role == RoleAdmin || u.Role == RoleOperator
}
