package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/warden/internal/config"
	"github.com/Nixie-Tech-LLC/warden/internal/db/dbtest"
	"github.com/Nixie-Tech-LLC/warden/internal/gateway"
	"github.com/Nixie-Tech-LLC/warden/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/warden/internal/model"
	"github.com/Nixie-Tech-LLC/warden/internal/notify"
	"github.com/Nixie-Tech-LLC/warden/internal/redis"
	"github.com/Nixie-Tech-LLC/warden/internal/schedule"
)

func newTestServer(t *testing.T) (*httptest.Server, *dbtest.MemStore, *miniredis.Miniredis) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := dbtest.NewMemStore()
	hash, err := middleware.HashPassword("hunter2")
	require.NoError(t, err)
	_, err = store.CreateUser("op", hash, model.RoleOperator, nil)
	require.NoError(t, err)
	cam, err := store.CreateCamera(model.Camera{Name: "lobby", IsActive: true, RecordingMode: "continuous"})
	require.NoError(t, err)
	op, err := store.GetUserByUsername("op")
	require.NoError(t, err)
	require.NoError(t, store.SetUserCameraIDs(op.ID, []int{cam.ID}))

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	cache := redis.NewScheduleCache(rdb, time.Minute, zerolog.Nop())

	cfg := &config.Config{JWTSecret: "e2e-secret", Timezone: time.UTC}
	r := gin.New()
	RegisterRoutes(r, cfg, store, cache, notify.Nop{})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, store, mr
}

func TestHealthz(t *testing.T) {
	srv, _, _ := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestEditSessionEndToEnd(t *testing.T) {
	srv, store, mr := newTestServer(t)
	ctx := context.Background()

	c := gateway.New(srv.URL, "")
	_, err := c.Login(ctx, "op", "hunter2")
	require.NoError(t, err)

	cams, err := c.Cameras().ListCameras(ctx)
	require.NoError(t, err)
	require.Len(t, cams, 1)
	camID := cams[0].ID

	// first session: paint Monday 08-10 motion and Sunday 23 events, save
	ctl := schedule.NewScheduleController(c.Schedules(), camID)
	require.NoError(t, ctl.Load(ctx))
	sel := ctl.Selection()
	sel.SetPaintMode(schedule.Motion)
	require.NoError(t, sel.Press(0, 8))
	require.NoError(t, sel.Enter(0, 9))
	require.NoError(t, sel.Enter(0, 10))
	sel.Release()
	sel.SetPaintMode(schedule.Events)
	require.NoError(t, sel.Press(6, 23))
	sel.Release()
	require.True(t, ctl.Grid().IsDirty())
	require.NoError(t, ctl.Save(ctx))
	assert.False(t, ctl.Grid().IsDirty())
	ctl.Close()

	rows, err := store.GetCameraSchedules(camID)
	require.NoError(t, err)
	assert.Equal(t, []model.CameraSchedule{
		{ID: 1, CameraID: camID, Position: 0, DayOfWeek: 0, StartTime: "08:00", EndTime: "10:59", Mode: "motion"},
		{ID: 2, CameraID: camID, Position: 1, DayOfWeek: 6, StartTime: "23:00", EndTime: "23:59", Mode: "events"},
	}, rows)

	// second session sees the saved grid; the read populates the cache
	again := schedule.NewScheduleController(c.Schedules(), camID)
	defer again.Close()
	require.NoError(t, again.Load(ctx))
	assert.Equal(t, ctl.Slots(), again.Slots())
	assert.True(t, mr.Exists("warden:schedules:"+strconv.Itoa(camID)))

	// clearing and saving invalidates the cached copy
	again.ClearAll()
	require.NoError(t, again.Save(ctx))
	assert.False(t, mr.Exists("warden:schedules:"+strconv.Itoa(camID)))

	slots, err := c.Schedules().GetSchedules(ctx, camID)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestViewerCannotSave(t *testing.T) {
	srv, store, _ := newTestServer(t)
	ctx := context.Background()

	hash, err := middleware.HashPassword("pw")
	require.NoError(t, err)
	viewerID, err := store.CreateUser("guard", hash, model.RoleViewer, nil)
	require.NoError(t, err)
	require.NoError(t, store.SetUserCameraIDs(viewerID, []int{101}))

	c := gateway.New(srv.URL, "")
	_, err = c.Login(ctx, "guard", "pw")
	require.NoError(t, err)

	ctl := schedule.NewScheduleController(c.Schedules(), 101)
	defer ctl.Close()
	require.NoError(t, ctl.Load(ctx))
	ctl.ClearAll()

	err = ctl.Save(ctx)
	var netErr *schedule.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.True(t, gateway.IsStatus(err, http.StatusForbidden))
	assert.True(t, ctl.Grid().IsDirty())
}
