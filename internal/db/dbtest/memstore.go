// Package dbtest provides db.Store doubles for handler and wiring tests.
package dbtest

import (
	"database/sql"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/Nixie-Tech-LLC/warden/internal/db"
	"github.com/Nixie-Tech-LLC/warden/internal/model"
)

// MemStore is an in-memory db.Store. Fields may be seeded directly before
// use; after that go through the methods.
type MemStore struct {
	mu sync.Mutex

	Users     map[int]*model.User
	Cameras   map[int]*model.Camera
	Schedules map[int][]model.CameraSchedule
	Grants    map[int][]int

	// Replaced counts successful ReplaceCameraSchedules calls.
	Replaced int

	nextUser   int
	nextCamera int
}

var _ db.Store = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{
		Users:      map[int]*model.User{},
		Cameras:    map[int]*model.Camera{},
		Schedules:  map[int][]model.CameraSchedule{},
		Grants:     map[int][]int{},
		nextUser:   100,
		nextCamera: 100,
	}
}

func (s *MemStore) CreateUser(username, hashedPassword, role string, email *string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextUser++
	now := time.Now()
	s.Users[s.nextUser] = &model.User{
		ID: s.nextUser, Username: username, Email: email, HashedPassword: hashedPassword,
		Role: role, IsActive: true, CreatedAt: now, UpdatedAt: now,
	}
	return s.nextUser, nil
}

func (s *MemStore) GetUserByUsername(username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.Users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *MemStore) GetUserByID(id int) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.Users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

// cameras returns copies ordered by id, optionally filtered.
func (s *MemStore) cameras(keep func(*model.Camera) bool) []model.Camera {
	out := []model.Camera{}
	for _, c := range s.Cameras {
		if keep == nil || keep(c) {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *MemStore) ListCameras() ([]model.Camera, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cameras(nil), nil
}

func (s *MemStore) ListCamerasForUser(userID int) ([]model.Camera, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	granted := s.Grants[userID]
	return s.cameras(func(c *model.Camera) bool { return slices.Contains(granted, c.ID) }), nil
}

func (s *MemStore) ListActiveCameras() ([]model.Camera, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cameras(func(c *model.Camera) bool { return c.IsActive }), nil
}

func (s *MemStore) GetCameraByID(id int) (*model.Camera, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.Cameras[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (s *MemStore) CreateCamera(c model.Camera) (model.Camera, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextCamera++
	c.ID = s.nextCamera
	c.ActiveMode = c.RecordingMode
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	s.Cameras[c.ID] = &c
	return c, nil
}

func (s *MemStore) UpdateCamera(id int, u model.CameraUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.Cameras[id]
	if !ok {
		return sql.ErrNoRows
	}
	set(&c.Name, u.Name)
	set(&c.MainStreamURL, u.MainStreamURL)
	if u.SubStreamURL != nil {
		c.SubStreamURL = u.SubStreamURL
	}
	if u.Location != nil {
		c.Location = u.Location
	}
	set(&c.IsActive, u.IsActive)
	set(&c.RecordingMode, u.RecordingMode)
	set(&c.RetentionDays, u.RetentionDays)
	set(&c.EventRetentionDays, u.EventRetentionDays)
	c.UpdatedAt = time.Now()
	return nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func (s *MemStore) SetCameraActiveMode(id int, mode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.Cameras[id]
	if !ok {
		return sql.ErrNoRows
	}
	c.ActiveMode = mode
	return nil
}

func (s *MemStore) DeleteCamera(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Cameras[id]; !ok {
		return sql.ErrNoRows
	}
	delete(s.Cameras, id)
	delete(s.Schedules, id)
	for user, ids := range s.Grants {
		s.Grants[user] = slices.DeleteFunc(slices.Clone(ids), func(v int) bool { return v == id })
	}
	return nil
}

func (s *MemStore) GetCameraSchedules(cameraID int) ([]model.CameraSchedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.Schedules[cameraID]), nil
}

func (s *MemStore) ReplaceCameraSchedules(cameraID int, rows []model.CameraSchedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.CameraSchedule, len(rows))
	for i, r := range rows {
		r.ID = i + 1
		r.CameraID = cameraID
		r.Position = i
		out[i] = r
	}
	s.Schedules[cameraID] = out
	s.Replaced++
	return nil
}

func (s *MemStore) GetUserCameraIDs(userID int) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.Grants[userID]), nil
}

func (s *MemStore) SetUserCameraIDs(userID int, cameraIDs []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range cameraIDs {
		if _, ok := s.Cameras[id]; !ok {
			return fmt.Errorf("grant camera %d: %w", id, db.ErrUnknownCamera)
		}
	}
	s.Grants[userID] = slices.Clone(cameraIDs)
	return nil
}

func (s *MemStore) UserCanAccessCamera(userID, cameraID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(s.Grants[userID], cameraID), nil
}
