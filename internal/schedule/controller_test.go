package schedule

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeGateway struct {
	mu      sync.Mutex
	stored  map[int][]Slot
	getErr  error
	setErr  error
	block   chan struct{}
	entered chan struct{}
	sets    int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{stored: map[int][]Slot{}}
}

func (f *fakeGateway) wait(ctx context.Context) error {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.block == nil {
		return nil
	}
	select {
	case <-f.block:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeGateway) GetSchedules(ctx context.Context, cameraID int) ([]Slot, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	return append([]Slot(nil), f.stored[cameraID]...), nil
}

func (f *fakeGateway) SetSchedules(ctx context.Context, cameraID int, slots []Slot) error {
	if err := f.wait(ctx); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.sets++
	f.stored[cameraID] = append([]Slot(nil), slots...)
	return nil
}

func TestLoadReplacesGridAndClearsDirty(t *testing.T) {
	gw := newFakeGateway()
	gw.stored[7] = []Slot{{Day: 1, StartHour: 22, EndHour: 23, Mode: Events}}
	c := NewScheduleController(gw, 7)
	c.ClearAll()
	require.True(t, c.Grid().IsDirty())

	require.NoError(t, c.Load(context.Background()))
	assert.False(t, c.Grid().IsDirty())
	assert.Equal(t, gw.stored[7], c.Slots())
}

func TestLoadFailureKeepsState(t *testing.T) {
	gw := newFakeGateway()
	c := NewScheduleController(gw, 1)
	require.NoError(t, c.Grid().SetCell(0, 0, Motion))
	c.Grid().MarkDirty()
	before := c.Grid().Snapshot()

	gw.getErr = errors.New("connection refused")
	err := c.Load(context.Background())

	var nerr *NetworkError
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, "load", nerr.Op)
	assert.Equal(t, before, c.Grid().Snapshot())
	assert.True(t, c.Grid().IsDirty())
}

func TestLoadRejectsInvalidStoredSchedule(t *testing.T) {
	gw := newFakeGateway()
	gw.stored[1] = []Slot{{Day: 0, StartHour: 9, EndHour: 3, Mode: Motion}}
	c := NewScheduleController(gw, 1)

	var verr *ValidationError
	assert.ErrorAs(t, c.Load(context.Background()), &verr)
	assert.Equal(t, Grid{}, c.Grid().Snapshot())
}

func TestSaveEncodesFullGrid(t *testing.T) {
	gw := newFakeGateway()
	c := NewScheduleController(gw, 3)
	sel := c.Selection()
	sel.SetPaintMode(Continuous)
	require.NoError(t, sel.Press(0, 0))
	for h := 1; h <= 6; h++ {
		require.NoError(t, sel.Enter(0, h))
	}
	sel.Release()

	require.NoError(t, c.Save(context.Background()))
	assert.False(t, c.Grid().IsDirty())
	assert.Equal(t, []Slot{{Day: 0, StartHour: 0, EndHour: 6, Mode: Continuous}}, gw.stored[3])
}

func TestSaveFailureKeepsDirty(t *testing.T) {
	gw := newFakeGateway()
	gw.setErr = errors.New("503")
	c := NewScheduleController(gw, 3)
	require.NoError(t, c.Grid().SetCell(2, 2, Events))
	c.Grid().MarkDirty()

	err := c.Save(context.Background())
	var nerr *NetworkError
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, "save", nerr.Op)
	assert.True(t, c.Grid().IsDirty())

	gw.setErr = nil
	require.NoError(t, c.Save(context.Background()))
	assert.False(t, c.Grid().IsDirty())
}

func TestClearAllMarksDirtyOnEmptyGrid(t *testing.T) {
	c := NewScheduleController(newFakeGateway(), 1)
	c.ClearAll()
	assert.True(t, c.Grid().IsDirty())
	assert.Empty(t, c.Slots())
}

func TestConcurrentRequestRejected(t *testing.T) {
	gw := newFakeGateway()
	gw.block = make(chan struct{})
	gw.entered = make(chan struct{}, 1)
	c := NewScheduleController(gw, 1)

	errc := make(chan error, 1)
	go func() { errc <- c.Save(context.Background()) }()
	<-gw.entered
	assert.True(t, c.Saving())

	assert.ErrorIs(t, c.Save(context.Background()), ErrBusy)
	assert.ErrorIs(t, c.Load(context.Background()), ErrBusy)

	close(gw.block)
	require.NoError(t, <-errc)
	assert.False(t, c.Saving())
}

func TestEditDuringSaveKeepsDirty(t *testing.T) {
	gw := newFakeGateway()
	gw.block = make(chan struct{})
	gw.entered = make(chan struct{}, 1)
	c := NewScheduleController(gw, 1)
	c.Selection().SetPaintMode(Motion)
	require.NoError(t, c.Selection().Press(0, 0))
	c.Selection().Release()

	errc := make(chan error, 1)
	go func() { errc <- c.Save(context.Background()) }()
	<-gw.entered
	require.NoError(t, c.Selection().Press(0, 1))
	c.Selection().Release()
	close(gw.block)

	require.NoError(t, <-errc)
	assert.True(t, c.Grid().IsDirty())
	assert.Equal(t, []Slot{{Day: 0, StartHour: 0, EndHour: 0, Mode: Motion}}, gw.stored[1])
}

func TestCloseDiscardsPendingLoad(t *testing.T) {
	gw := newFakeGateway()
	gw.stored[1] = []Slot{{Day: 0, StartHour: 0, EndHour: 23, Mode: Motion}}
	gw.block = make(chan struct{})
	gw.entered = make(chan struct{}, 1)
	c := NewScheduleController(gw, 1)

	errc := make(chan error, 1)
	go func() { errc <- c.Load(context.Background()) }()
	<-gw.entered
	c.Close()

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, ErrClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("load did not return after Close")
	}
	assert.Equal(t, Grid{}, c.Grid().Snapshot())
	assert.ErrorIs(t, c.Save(context.Background()), ErrClosed)
}
