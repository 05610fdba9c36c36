package applier

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/Nixie-Tech-LLC/warden/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeStore struct {
	cameras     []model.Camera
	schedules   map[int][]model.CameraSchedule
	scheduleErr map[int]error
	setErr      error
	set         map[int]string
}

func (f *fakeStore) ListActiveCameras() ([]model.Camera, error) { return f.cameras, nil }

func (f *fakeStore) GetCameraSchedules(id int) ([]model.CameraSchedule, error) {
	if err := f.scheduleErr[id]; err != nil {
		return nil, err
	}
	return f.schedules[id], nil
}

func (f *fakeStore) SetCameraActiveMode(id int, mode string) error {
	if f.setErr != nil {
		return f.setErr
	}
	if f.set == nil {
		f.set = map[int]string{}
	}
	f.set[id] = mode
	return nil
}

type modeEvent struct {
	id       int
	from, to string
}

type fakePublisher struct {
	modes []modeEvent
}

func (p *fakePublisher) ScheduleUpdated(int, int) error { return nil }

func (p *fakePublisher) ModeChanged(id int, from, to string) error {
	p.modes = append(p.modes, modeEvent{id, from, to})
	return nil
}

func row(day int, start, end, mode string) model.CameraSchedule {
	return model.CameraSchedule{DayOfWeek: day, StartTime: start, EndTime: end, Mode: mode}
}

// 2024-01-01 was a Monday.
var mondayTen = time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC)

func TestResolve(t *testing.T) {
	cam := model.Camera{ID: 1, RecordingMode: "continuous"}
	rows := []model.CameraSchedule{row(0, "08:00", "17:59", "motion")}

	mode, source, err := Resolve(cam, rows, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, "motion", mode)
	assert.Equal(t, SourceSchedule, source)

	mode, source, err = Resolve(cam, rows, 0, 18)
	require.NoError(t, err)
	assert.Equal(t, "continuous", mode)
	assert.Equal(t, SourceDefault, source)

	_, _, err = Resolve(cam, []model.CameraSchedule{row(9, "08:00", "09:59", "motion")}, 0, 8)
	assert.Error(t, err)
}

func TestAtUsesLocation(t *testing.T) {
	day, hour := At(mondayTen, time.UTC)
	assert.Equal(t, 0, day)
	assert.Equal(t, 10, hour)

	// UTC-14 puts Monday 10:30 UTC on Sunday 20:30.
	day, hour = At(mondayTen, time.FixedZone("far-west", -14*3600))
	assert.Equal(t, 6, day)
	assert.Equal(t, 20, hour)
}

func TestRunOnceUpdatesChangedCameras(t *testing.T) {
	store := &fakeStore{
		cameras: []model.Camera{
			{ID: 1, Name: "lobby", RecordingMode: "continuous", ActiveMode: "continuous"},
			{ID: 2, Name: "dock", RecordingMode: "events", ActiveMode: "events"},
			{ID: 3, Name: "yard", RecordingMode: "motion", ActiveMode: "continuous"},
		},
		schedules: map[int][]model.CameraSchedule{
			1: {row(0, "09:00", "11:59", "motion")},
			2: {row(0, "09:00", "11:59", "events")},
		},
	}
	pub := &fakePublisher{}
	a := New(store, pub, time.UTC, "@every 1m", zerolog.Nop())

	n, err := a.RunOnce(mondayTen)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, map[int]string{1: "motion", 3: "motion"}, store.set)
	assert.Equal(t, []modeEvent{{1, "continuous", "motion"}, {3, "continuous", "motion"}}, pub.modes)
}

func TestRunOnceSkipsBrokenCameras(t *testing.T) {
	store := &fakeStore{
		cameras: []model.Camera{
			{ID: 1, RecordingMode: "continuous", ActiveMode: "continuous"},
			{ID: 2, RecordingMode: "continuous", ActiveMode: "continuous"},
			{ID: 3, RecordingMode: "continuous", ActiveMode: "continuous"},
		},
		schedules: map[int][]model.CameraSchedule{
			2: {row(0, "10:00", "09:59", "motion")},
			3: {row(0, "00:00", "23:59", "events")},
		},
		scheduleErr: map[int]error{1: errors.New("db down")},
	}
	pub := &fakePublisher{}
	a := New(store, pub, time.UTC, "@every 1m", zerolog.Nop())

	n, err := a.RunOnce(mondayTen)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, map[int]string{3: "events"}, store.set)
}

func TestRunOnceDoesNotPublishWhenPersistFails(t *testing.T) {
	store := &fakeStore{
		cameras: []model.Camera{{ID: 1, RecordingMode: "motion", ActiveMode: "continuous"}},
		setErr:  errors.New("read only"),
	}
	pub := &fakePublisher{}
	a := New(store, pub, time.UTC, "@every 1m", zerolog.Nop())

	n, err := a.RunOnce(mondayTen)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, pub.modes)
}

func TestStartRejectsBadSpec(t *testing.T) {
	a := New(&fakeStore{}, nil, time.UTC, "every now and then", zerolog.Nop())
	assert.Error(t, a.Start())
}

func TestStartStop(t *testing.T) {
	store := &fakeStore{cameras: []model.Camera{{ID: 1, RecordingMode: "motion", ActiveMode: "continuous"}}}
	a := New(store, nil, time.UTC, "@every 1h", zerolog.Nop())
	a.now = func() time.Time { return mondayTen }

	require.NoError(t, a.Start())
	a.Stop()
	assert.Equal(t, map[int]string{1: "motion"}, store.set)
}
