package endpoints

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/warden/internal/db"
	"github.com/Nixie-Tech-LLC/warden/internal/db/dbtest"
	"github.com/Nixie-Tech-LLC/warden/internal/http/api"
	"github.com/Nixie-Tech-LLC/warden/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/warden/internal/model"
)

const testSecret = "test-secret"

func newFakeStore(t *testing.T) *dbtest.MemStore {
	hash, err := middleware.HashPassword("hunter2")
	require.NoError(t, err)
	store := dbtest.NewMemStore()
	store.Users = map[int]*model.User{
		1: {ID: 1, Username: "root", HashedPassword: hash, Role: model.RoleAdmin, IsActive: true},
		2: {ID: 2, Username: "op", HashedPassword: hash, Role: model.RoleOperator, IsActive: true},
		3: {ID: 3, Username: "guard", HashedPassword: hash, Role: model.RoleViewer, IsActive: true},
		4: {ID: 4, Username: "gone", HashedPassword: hash, Role: model.RoleAdmin, IsActive: false},
	}
	store.Cameras = map[int]*model.Camera{
		7: {ID: 7, Name: "lobby", IsActive: true, RecordingMode: "continuous", ActiveMode: "continuous"},
		8: {ID: 8, Name: "vault", IsActive: true, RecordingMode: "events", ActiveMode: "events"},
	}
	store.Grants = map[int][]int{2: {7}, 3: {7}}
	return store
}

type recordingPublisher struct {
	updates map[int]int
}

func (p *recordingPublisher) ScheduleUpdated(cameraID, slots int) error {
	if p.updates == nil {
		p.updates = map[int]int{}
	}
	p.updates[cameraID] = slots
	return nil
}

func (p *recordingPublisher) ModeChanged(int, string, string) error { return nil }

type harness struct {
	router    *gin.Engine
	store     *dbtest.MemStore
	publisher *recordingPublisher
	schedules *ScheduleController
}

func newHarness(t *testing.T) *harness {
	gin.SetMode(gin.TestMode)
	h := &harness{store: newFakeStore(t), publisher: &recordingPublisher{}}
	h.schedules = NewScheduleController(h.store, nil, h.publisher, time.UTC)
	h.router = newRouter(h.store, h.schedules)
	return h
}

func newRouter(store db.Store, schedules *ScheduleController) *gin.Engine {
	r := gin.New()
	api.MountGroup(r, api.GroupConfig{Prefix: "/api"}, AuthPublicModule(testSecret, store))
	api.MountGroup(r, api.GroupConfig{Prefix: "/api", Auth: true, SecretKey: testSecret, Store: store},
		AuthSessionModule(testSecret, store),
		CameraModule(store),
		ScheduleModule(schedules),
		PermissionModule(store),
	)
	return r
}

func (h *harness) do(t *testing.T, method, path string, userID int, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		token, err := middleware.GenerateJWT(userID, testSecret)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}
