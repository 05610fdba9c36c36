package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/warden/internal/model"
	"github.com/Nixie-Tech-LLC/warden/internal/schedule"
)

func newServer(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", "tok")
}

func TestSchedulesRoundTrip(t *testing.T) {
	var stored json.RawMessage
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/cameras/5/schedules", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		switch r.Method {
		case http.MethodPut:
			var body map[string]json.RawMessage
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			stored = body["schedules"]
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{}`))
		case http.MethodGet:
			_, _ = w.Write([]byte(`{"camera_id":5,"schedules":` + string(stored) + `}`))
		}
	})

	slots := []schedule.Slot{
		{Day: 0, StartHour: 8, EndHour: 17, Mode: schedule.Motion},
		{Day: 6, StartHour: 23, EndHour: 23, Mode: schedule.Events},
	}
	require.NoError(t, c.Schedules().SetSchedules(context.Background(), 5, slots))
	assert.JSONEq(t, `[
		{"day_of_week":0,"start_time":"08:00","end_time":"17:59","mode":"motion"},
		{"day_of_week":6,"start_time":"23:00","end_time":"23:59","mode":"events"}
	]`, string(stored))

	got, err := c.Schedules().GetSchedules(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, slots, got)
}

func TestGetSchedulesRejectsMalformedSlot(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"schedules":[{"day_of_week":1,"start_time":"9am","end_time":"10:59","mode":"motion"}]}`))
	})
	_, err := c.Schedules().GetSchedules(context.Background(), 1)
	var verr *schedule.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestAPIErrorDecoding(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"slot 0: start hour after end hour"}`))
	})
	err := c.Schedules().SetSchedules(context.Background(), 1, nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "slot 0: start hour after end hour", apiErr.Message)
	assert.True(t, IsStatus(err, http.StatusBadRequest))

	c = newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	_, err = c.Cameras().ListCameras(context.Background())
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Bad Gateway", apiErr.Message)
}

func TestContextCancellation(t *testing.T) {
	release := make(chan struct{})
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := c.Schedules().GetSchedules(ctx, 1)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLoginStoresToken(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			var in map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			if in["password"] != "hunter2" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"invalid username or password"}`))
				return
			}
			_, _ = w.Write([]byte(`{"token":"fresh"}`))
		case "/api/auth/me":
			assert.Equal(t, "Bearer fresh", r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{"id":2,"username":"op","role":"operator"}`))
		}
	})

	_, err := c.Login(context.Background(), "op", "wrong")
	assert.True(t, IsStatus(err, http.StatusUnauthorized))

	token, err := c.Login(context.Background(), "op", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "fresh", token)

	me, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "operator", me.Role)
}

func TestCamerasAndPermissions(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "GET /api/cameras/3":
			_, _ = w.Write([]byte(`{"id":3,"name":"dock","recording_mode":"motion","created_at":"2024-01-01T00:00:00Z"}`))
		case "PATCH /api/cameras/3":
			var in map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			assert.Equal(t, map[string]any{"retention_days": float64(30)}, in)
			_, _ = w.Write([]byte(`{"id":3,"name":"dock","retention_days":30}`))
		case "GET /api/users/4/cameras":
			_, _ = w.Write([]byte(`{"user_id":4,"camera_ids":[3,5]}`))
		case "PUT /api/users/4/cameras":
			var in map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			assert.Equal(t, []any{}, in["camera_ids"])
			_, _ = w.Write([]byte(`{"user_id":4,"camera_ids":[]}`))
		default:
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
	})
	ctx := context.Background()

	cam, err := c.Cameras().GetCamera(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "motion", cam.RecordingMode)

	days := 30
	cam, err = c.Cameras().UpdateCamera(ctx, 3, CameraUpdate{RetentionDays: &days})
	require.NoError(t, err)
	assert.Equal(t, 30, cam.RetentionDays)

	ids, err := c.Permissions().GetUserCameras(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 5}, ids)

	ids, err = c.Permissions().SetUserCameras(ctx, 4, nil)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestExports(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/export/create", r.URL.Path)
		var in model.ExportRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "Loading dock theft", in.CaseName)
		_, _ = w.Write([]byte(`{"export_id":"EXP-20240101-ab12","file_count":4,"total_size_mb":12.5,"expires_at":"2024-01-02T00:00:00Z"}`))
	})
	ctx := context.Background()

	_, err := c.Exports().CreateExport(ctx, model.ExportRequest{EventIDs: []string{"e1"}, CaseName: "   "})
	assert.ErrorIs(t, err, ErrCaseNameRequired)

	desc, err := c.Exports().CreateExport(ctx, model.ExportRequest{EventIDs: []string{"e1", "e2"}, CaseName: " Loading dock theft "})
	require.NoError(t, err)
	assert.Equal(t, 4, desc.FileCount)
	assert.Equal(t, c.BaseURL+"/api/export/download/EXP-20240101-ab12", c.Exports().DownloadURL(desc.ExportID))
}
