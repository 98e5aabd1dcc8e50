package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/prperemyshlev/contact-book/pkg/database"
	"github.com/redis/go-redis/v9"
)

// RateLimitResult describes the outcome of a rate limit check
type RateLimitResult struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// RateLimiter handles rate limiting using Redis
type RateLimiter struct {
	redis *database.Redis
	now   func() time.Time
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(redis *database.Redis) *RateLimiter {
	return &RateLimiter{redis: redis, now: time.Now}
}

// Allow records a request under key and reports whether it fits in the
// sliding window of the given size. Denied requests are not recorded.
func (r *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (*RateLimitResult, error) {
	now := r.now()
	windowStart := now.Add(-window)

	// Key format: "ratelimit:{key}", scores are unix milliseconds
	redisKey := fmt.Sprintf("ratelimit:%s", key)
	member := fmt.Sprintf("%d-%s", now.UnixNano(), uuid.NewString())

	var count *redis.IntCmd
	_, err := r.redis.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZRemRangeByScore(ctx, redisKey, "0", strconv.FormatInt(windowStart.UnixMilli(), 10))
		pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(now.UnixMilli()), Member: member})
		count = pipe.ZCard(ctx, redisKey)
		pipe.PExpire(ctx, redisKey, window)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record request: %w", err)
	}

	result := &RateLimitResult{Limit: limit}
	used := int(count.Val())

	if used <= limit {
		result.Allowed = true
		result.Remaining = limit - used
		return result, nil
	}

	if err := r.redis.Client.ZRem(ctx, redisKey, member).Err(); err != nil {
		return nil, fmt.Errorf("failed to discard denied request: %w", err)
	}

	oldest, err := r.redis.Client.ZRangeWithScores(ctx, redisKey, 0, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read oldest entry: %w", err)
	}

	result.RetryAfter = window
	if len(oldest) > 0 {
		oldestTime := time.UnixMilli(int64(oldest[0].Score))
		result.RetryAfter = oldestTime.Add(window).Sub(now)
		if result.RetryAfter < 0 {
			result.RetryAfter = 0
		}
	}

	return result, nil
}
