package schedule

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// ScheduleGateway is the persistence side of a camera's weekly schedule.
// SetSchedules replaces the full list atomically.
type ScheduleGateway interface {
	GetSchedules(ctx context.Context, cameraID int) ([]Slot, error)
	SetSchedules(ctx context.Context, cameraID int, slots []Slot) error
}

type operation int

const (
	opNone operation = iota
	opLoad
	opSave
)

func (o operation) String() string {
	switch o {
	case opLoad:
		return "load"
	case opSave:
		return "save"
	}
	return "none"
}

// ScheduleController owns the grid of one editing session and moves it to
// and from the gateway. At most one load or save runs at a time.
type ScheduleController struct {
	gateway   ScheduleGateway
	cameraID  int
	grid      *ScheduleGrid
	selection *SelectionController
	logger    zerolog.Logger

	mu       sync.Mutex
	inflight operation
	cancel   context.CancelFunc
	closed   bool
}

type Option func(*ScheduleController)

func WithLogger(l zerolog.Logger) Option {
	return func(c *ScheduleController) { c.logger = l }
}

func NewScheduleController(gateway ScheduleGateway, cameraID int, opts ...Option) *ScheduleController {
	grid := NewScheduleGrid()
	c := &ScheduleController{
		gateway:   gateway,
		cameraID:  cameraID,
		grid:      grid,
		selection: NewSelectionController(grid),
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With().Int("camera_id", cameraID).Logger()
	return c
}

func (c *ScheduleController) CameraID() int                   { return c.cameraID }
func (c *ScheduleController) Grid() *ScheduleGrid             { return c.grid }
func (c *ScheduleController) Selection() *SelectionController { return c.selection }
func (c *ScheduleController) Slots() []Slot                   { return Encode(c.grid.Snapshot()) }
func (c *ScheduleController) Loading() bool                   { return c.running(opLoad) }
func (c *ScheduleController) Saving() bool                    { return c.running(opSave) }

func (c *ScheduleController) running(op operation) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inflight == op
}

// Load fetches the stored schedule and replaces the grid with it. On any
// failure the grid and dirty flag are left as they were.
func (c *ScheduleController) Load(ctx context.Context) error {
	ctx, done, err := c.begin(ctx, opLoad)
	if err != nil {
		return err
	}
	defer done()

	slots, err := c.gateway.GetSchedules(ctx, c.cameraID)
	if err != nil {
		if c.isClosed() {
			return ErrClosed
		}
		c.logger.Error().Err(err).Msg("load schedules failed")
		return &NetworkError{Op: "load", Err: err}
	}
	g, err := Decode(slots)
	if err != nil {
		c.logger.Error().Err(err).Int("slots", len(slots)).Msg("stored schedule rejected")
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	c.grid.Replace(g)
	c.grid.ClearDirty()
	c.logger.Debug().Int("slots", len(slots)).Msg("schedule loaded")
	return nil
}

// Save pushes the encoded grid as a full replacement. The dirty flag is
// cleared only if no edit happened while the request was in flight.
func (c *ScheduleController) Save(ctx context.Context) error {
	ctx, done, err := c.begin(ctx, opSave)
	if err != nil {
		return err
	}
	defer done()

	cells, rev := c.grid.SnapshotRevision()
	slots := Encode(cells)
	if err := c.gateway.SetSchedules(ctx, c.cameraID, slots); err != nil {
		if c.isClosed() {
			return ErrClosed
		}
		c.logger.Error().Err(err).Int("slots", len(slots)).Msg("save schedules failed")
		return &NetworkError{Op: "save", Err: err}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if !c.grid.clearDirtyAt(rev) {
		c.logger.Debug().Msg("grid edited during save, keeping dirty flag")
	}
	c.logger.Info().Int("slots", len(slots)).Msg("schedule saved")
	return nil
}

// ClearAll empties the grid and marks it dirty, even if it was already
// empty, so the user is offered a save.
func (c *ScheduleController) ClearAll() {
	c.grid.Clear()
	c.grid.MarkDirty()
}

// Close ends the editing session. A pending load or save is cancelled and
// its response, if one still arrives, is discarded.
func (c *ScheduleController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.cancel != nil {
		c.cancel()
	}
	c.selection.Release()
}

func (c *ScheduleController) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *ScheduleController) begin(ctx context.Context, op operation) (context.Context, func(), error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, nil, ErrClosed
	}
	if c.inflight != opNone {
		c.logger.Warn().Str("op", op.String()).Str("inflight", c.inflight.String()).Msg("rejected concurrent schedule request")
		return nil, nil, ErrBusy
	}
	ctx, cancel := context.WithCancel(ctx)
	c.inflight = op
	c.cancel = cancel
	return ctx, func() {
		c.mu.Lock()
		c.inflight = opNone
		c.cancel = nil
		c.mu.Unlock()
		cancel()
	}, nil
}
