package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/Youseb010/mada-server/internal/model"
)

// VideoCacheTTL bounds staleness for cached single-video lookups. Every
// mutation of a video invalidates its entry, so the TTL only matters for
// entries written by a process that died before invalidating.
const VideoCacheTTL = 5 * time.Minute

// CacheService is an optional Redis cache-aside layer for single-video
// lookups. All methods are safe to call on a nil receiver or with caching
// disabled — they become no-ops.
type CacheService struct {
	// OnHit and OnMiss, when set, observe cache lookups (metrics hooks).
	OnHit  func()
	OnMiss func()

	rdb *redis.Client
}

// NewCacheService creates a CacheService. If redisURL is empty or the
// connection fails, caching is disabled rather than failing startup.
func NewCacheService(redisURL string) *CacheService {
	if redisURL == "" {
		log.Info().Msg("redis: no URL configured, caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Warn().Err(err).Str("url", redisURL).Msg("redis: invalid URL, caching disabled")
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("redis: connection failed, caching disabled")
		return &CacheService{}
	}

	log.Info().Msg("redis: connected, caching enabled")
	return &CacheService{rdb: rdb}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	if c == nil {
		return nil
	}
	return c.rdb
}

// GetVideo retrieves a cached video. Returns nil when not cached or the
// cache is disabled.
func (c *CacheService) GetVideo(ctx context.Context, videoID string) (*model.Video, error) {
	if c == nil || c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, videoKey(videoID)).Bytes()
	if err == redis.Nil {
		if c.OnMiss != nil {
			c.OnMiss()
		}
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var v model.Video
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	if c.OnHit != nil {
		c.OnHit()
	}
	return &v, nil
}

// SetVideo stores a video in cache. Errors are logged, not propagated — the
// durable store already holds the truth.
func (c *CacheService) SetVideo(ctx context.Context, videoID string, v *model.Video) {
	if c == nil || c.rdb == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		log.Warn().Err(err).Str("videoId", videoID).Msg("cache: encode failed")
		return
	}
	if err := c.rdb.Set(ctx, videoKey(videoID), b, VideoCacheTTL).Err(); err != nil {
		log.Warn().Err(err).Str("videoId", videoID).Msg("cache: set failed")
	}
}

// InvalidateVideo removes a video from cache, called after every mutation
// that touches it.
func (c *CacheService) InvalidateVideo(ctx context.Context, videoID string) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, videoKey(videoID)).Err(); err != nil {
		log.Warn().Err(err).Str("videoId", videoID).Msg("cache: invalidate failed")
	}
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func videoKey(videoID string) string {
	return fmt.Sprintf("video:%s", videoID)
}
