package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Nixie-Tech-LLC/warden/internal/model"
)

const (
	keyPrefix = "warden:schedules:"
	genPrefix = "warden:schedules:gen:"
)

// setIfGeneration stores ARGV[2] under KEYS[2] only while the generation
// counter in KEYS[1] still equals ARGV[1]. ARGV[3] is the TTL in ms, 0 for none.
var setIfGeneration = goredis.NewScript(`
local gen = redis.call('GET', KEYS[1])
if not gen then gen = '0' end
if gen ~= ARGV[1] then return 0 end
if tonumber(ARGV[3]) > 0 then
	redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
else
	redis.call('SET', KEYS[2], ARGV[2])
end
return 1
`)

// NewClient connects to Redis and verifies the connection with a ping.
func NewClient(ctx context.Context, address, username, password string) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:         address,
		Username:     username,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	return rdb, nil
}

// ScheduleCache is a read-through cache of stored camera schedules. A nil
// *ScheduleCache is valid and caches nothing.
//
// Every camera has a generation counter that Invalidate bumps. Readers take
// the generation before reading the store and pass it to Set, so a slow read
// that overlaps a replace can never put the old list back.
type ScheduleCache struct {
	client *goredis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

func NewScheduleCache(client *goredis.Client, ttl time.Duration, logger zerolog.Logger) *ScheduleCache {
	return &ScheduleCache{client: client, ttl: ttl, logger: logger}
}

func scheduleKey(cameraID int) string {
	return fmt.Sprintf("%s%d", keyPrefix, cameraID)
}

func generationKey(cameraID int) string {
	return fmt.Sprintf("%s%d", genPrefix, cameraID)
}

// Generation returns the camera's current cache generation. ok is false when
// the cache is disabled or unreachable, in which case nothing should be cached.
func (c *ScheduleCache) Generation(ctx context.Context, cameraID int) (gen int64, ok bool) {
	if c == nil {
		return 0, false
	}
	gen, err := c.client.Get(ctx, generationKey(cameraID)).Int64()
	if errors.Is(err, goredis.Nil) {
		return 0, true
	}
	if err != nil {
		c.logger.Warn().Err(err).Int("camera_id", cameraID).Msg("schedule cache generation read failed")
		return 0, false
	}
	return gen, true
}

// Get returns the cached slots for a camera. Errors count as a miss.
func (c *ScheduleCache) Get(ctx context.Context, cameraID int) ([]model.CameraSchedule, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, scheduleKey(cameraID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false
	}
	if err != nil {
		c.logger.Warn().Err(err).Int("camera_id", cameraID).Msg("schedule cache get failed")
		return nil, false
	}
	var slots []model.CameraSchedule
	if err := json.Unmarshal(raw, &slots); err != nil {
		c.logger.Warn().Err(err).Int("camera_id", cameraID).Msg("dropping corrupt schedule cache entry")
		c.Invalidate(ctx, cameraID)
		return nil, false
	}
	return slots, true
}

// Set caches slots read at generation gen. It reports whether the entry was
// written; a newer generation means the slots are stale and are dropped.
func (c *ScheduleCache) Set(ctx context.Context, cameraID int, gen int64, slots []model.CameraSchedule) bool {
	if c == nil {
		return false
	}
	if slots == nil {
		slots = []model.CameraSchedule{}
	}
	raw, err := json.Marshal(slots)
	if err != nil {
		c.logger.Warn().Err(err).Int("camera_id", cameraID).Msg("schedule cache encode failed")
		return false
	}
	keys := []string{generationKey(cameraID), scheduleKey(cameraID)}
	stored, err := setIfGeneration.Run(ctx, c.client, keys, gen, raw, c.ttl.Milliseconds()).Int()
	if err != nil {
		c.logger.Warn().Err(err).Int("camera_id", cameraID).Msg("failed to add schedule to redis")
		return false
	}
	if stored == 0 {
		c.logger.Debug().Int("camera_id", cameraID).Int64("generation", gen).Msg("skipped stale schedule cache fill")
	}
	return stored == 1
}

// Invalidate bumps the camera's generation and drops its entry. Call it after
// the store write has committed.
func (c *ScheduleCache) Invalidate(ctx context.Context, cameraID int) {
	if c == nil {
		return
	}
	_, err := c.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Incr(ctx, generationKey(cameraID))
		pipe.Del(ctx, scheduleKey(cameraID))
		return nil
	})
	if err != nil {
		c.logger.Warn().Err(err).Int("camera_id", cameraID).Msg("schedule cache invalidate failed")
	}
}
