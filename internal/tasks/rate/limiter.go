package rate

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limit caps operations per sliding window.
type Limit struct {
	Window time.Duration
	MaxOps int
}

// Limiter throttles backend writes issued by the import worker so a large
// upload cannot saturate the remote API. State lives in Redis, shared across
// worker processes.
type Limiter struct {
	redis *redis.Client
	name  string
	limit Limit
}

func NewLimiter(redis *redis.Client, name string, limit Limit) *Limiter {
	return &Limiter{
		redis: redis,
		name:  name,
		limit: limit,
	}
}

// Allow reports whether one more operation fits in the current window for the
// given identifier.
func (l *Limiter) Allow(ctx context.Context, identifier string) (bool, error) {
	key := fmt.Sprintf("import_rate:%s:%s", l.name, identifier)

	pipe := l.redis.Pipeline()
	now := time.Now().Unix()
	windowStart := now - int64(l.limit.Window.Seconds())

	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))
	pipe.ZCard(ctx, key)
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: now})
	pipe.Expire(ctx, key, l.limit.Window*2)

	results, err := pipe.Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("redis pipeline error: %w", err)
	}

	count := results[1].(*redis.IntCmd).Val()
	return count <= int64(l.limit.MaxOps), nil
}
