package throttle

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisLimiter keeps a sliding window of request times per key in a sorted
// set, shared by every API instance. Scores are unix milliseconds.
type RedisLimiter struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

func NewRedisLimiter(client *redis.Client) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		prefix: "throttle",
		now:    time.Now,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string, r Rate) (Result, error) {
	now := l.now()
	setKey := l.prefix + ":" + key
	cutoff := strconv.FormatInt(now.Add(-r.Period).UnixMilli(), 10)
	member := strconv.FormatInt(now.UnixMilli(), 10) + "-" + uuid.NewString()

	var (
		card   *redis.IntCmd
		oldest *redis.ZSliceCmd
	)
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZRemRangeByScore(ctx, setKey, "-inf", cutoff)
		card = pipe.ZCard(ctx, setKey)
		oldest = pipe.ZRangeWithScores(ctx, setKey, 0, 0)
		pipe.ZAdd(ctx, setKey, redis.Z{Score: float64(now.UnixMilli()), Member: member})
		pipe.PExpire(ctx, setKey, r.Period)
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("throttle window %s: %w", key, err)
	}

	count := int(card.Val())
	if count < r.Requests {
		return Result{
			Allowed:   true,
			Limit:     r.Requests,
			Remaining: r.Requests - count - 1,
		}, nil
	}

	// denied requests do not occupy the window
	if err := l.client.ZRem(ctx, setKey, member).Err(); err != nil {
		return Result{}, fmt.Errorf("throttle window %s: %w", key, err)
	}

	retryAfter := r.Period
	if first := oldest.Val(); len(first) > 0 {
		since := time.UnixMilli(int64(first[0].Score))
		retryAfter = since.Add(r.Period).Sub(now)
	}
	return Result{
		Allowed:    false,
		Limit:      r.Requests,
		RetryAfter: retryAfter,
	}, nil
}
