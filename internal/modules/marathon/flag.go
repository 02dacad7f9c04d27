package marathon

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Key holds the marathon switch; its TTL bounds the event window.
const Key = "event:marathon"

// Flag reports whether the global marathon event doubling XP is running.
type Flag interface {
	Active(ctx context.Context) (bool, error)
}

// FlagFunc adapts a plain function to Flag.
type FlagFunc func(ctx context.Context) (bool, error)

func (f FlagFunc) Active(ctx context.Context) (bool, error) {
	return f(ctx)
}

// Static is a Flag with a fixed value.
func Static(active bool) Flag {
	return FlagFunc(func(context.Context) (bool, error) { return active, nil })
}

// RedisFlag keeps the marathon switch in Redis so every instance sees the
// same window. A nil client is never active.
type RedisFlag struct {
	rdb *redis.Client
}

func NewRedisFlag(rdb *redis.Client) *RedisFlag {
	return &RedisFlag{rdb: rdb}
}

func (f *RedisFlag) Active(ctx context.Context) (bool, error) {
	if f.rdb == nil {
		return false, nil
	}
	n, err := f.rdb.Exists(ctx, Key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Start opens a marathon lasting d.
func (f *RedisFlag) Start(ctx context.Context, d time.Duration) error {
	if f.rdb == nil {
		return errors.New("marathon requires redis")
	}
	if d <= 0 {
		return errors.New("marathon duration must be positive")
	}
	return f.rdb.Set(ctx, Key, time.Now().UTC().Add(d).Format(time.RFC3339), d).Err()
}

func (f *RedisFlag) Stop(ctx context.Context) error {
	if f.rdb == nil {
		return nil
	}
	return f.rdb.Del(ctx, Key).Err()
}

// EndsAt returns the end of the running marathon, zero when inactive.
func (f *RedisFlag) EndsAt(ctx context.Context) (time.Time, error) {
	if f.rdb == nil {
		return time.Time{}, nil
	}
	v, err := f.rdb.Get(ctx, Key).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, v)
}
