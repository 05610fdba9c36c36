// exposes a Store interface that is passed to API modules and background services
package db

import (
	"github.com/jmoiron/sqlx"

	"github.com/Nixie-Tech-LLC/warden/internal/model"
)

type Store interface {
	// user functions
	CreateUser(username, hashedPassword, role string, email *string) (int, error)
	GetUserByUsername(username string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)

	// camera functions
	ListCameras() ([]model.Camera, error)
	ListCamerasForUser(userID int) ([]model.Camera, error)
	ListActiveCameras() ([]model.Camera, error)
	GetCameraByID(id int) (*model.Camera, error)
	CreateCamera(c model.Camera) (model.Camera, error)
	UpdateCamera(id int, u model.CameraUpdate) error
	SetCameraActiveMode(id int, mode string) error
	DeleteCamera(id int) error

	// schedule functions
	GetCameraSchedules(cameraID int) ([]model.CameraSchedule, error)
	ReplaceCameraSchedules(cameraID int, slots []model.CameraSchedule) error

	// permission functions
	GetUserCameraIDs(userID int) ([]int, error)
	SetUserCameraIDs(userID int, cameraIDs []int) error
	UserCanAccessCamera(userID, cameraID int) (bool, error)
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore(conn *sqlx.DB) Store {
	return &pgStore{db: conn}
}
