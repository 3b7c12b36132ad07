package limiter

import (
	"context"
	"errors"

	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
)

var ErrRateLimited = errors.New("rate limited")

type Limiter struct {
	instance *redis_rate.Limiter
}

func NewLimiter(client redis.UniversalClient) (*Limiter, error) {
	return &Limiter{redis_rate.NewLimiter(client)}, nil
}

func (l *Limiter) Allow(ctx context.Context, key string, limit redis_rate.Limit) error {
	result, err := l.instance.Allow(ctx, key, limit)
	if err != nil {
		return err
	}

	if result.Allowed <= 0 {
		return ErrRateLimited
	}

	return nil
}

// NoopLimiter lets everything through, used when Redis is not configured.
type NoopLimiter struct{}

func (l *NoopLimiter) Allow(ctx context.Context, key string, limit redis_rate.Limit) error {
	return nil
}
