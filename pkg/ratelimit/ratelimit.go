package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// Limiter allows one action per user per window. Redis backs it when
// available so limits hold across instances; otherwise an in-process token
// bucket is used.
type Limiter struct {
	rdb    *redis.Client
	window time.Duration

	mu    sync.Mutex
	local map[string]*localLimiter
}

type localLimiter struct {
	limiter *rate.Limiter
	expires time.Time
}

func New(rdb *redis.Client, window time.Duration) *Limiter {
	return &Limiter{
		rdb:    rdb,
		window: window,
		local:  make(map[string]*localLimiter),
	}
}

func key(userID uuid.UUID, action string) string {
	return fmt.Sprintf("rate_limit:user:%s:%s", userID.String(), action)
}

// Allow reports whether the user may perform action now, and consumes the slot.
func (l *Limiter) Allow(ctx context.Context, userID uuid.UUID, action string) (bool, error) {
	if l == nil || l.window <= 0 {
		return true, nil
	}
	if l.rdb != nil {
		wasSet, err := l.rdb.SetNX(ctx, key(userID, action), "locked", l.window).Result()
		if err != nil {
			return false, fmt.Errorf("failed to check rate limit in redis: %w", err)
		}
		return wasSet, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	for k, v := range l.local {
		if now.After(v.expires) {
			delete(l.local, k)
		}
	}
	k := key(userID, action)
	entry, ok := l.local[k]
	if !ok {
		entry = &localLimiter{limiter: rate.NewLimiter(rate.Every(l.window), 1)}
		l.local[k] = entry
	}
	entry.expires = now.Add(2 * l.window)
	return entry.limiter.AllowN(now, 1), nil
}

// TTL returns how long until the user may act again (Redis only).
func (l *Limiter) TTL(ctx context.Context, userID uuid.UUID, action string) (time.Duration, error) {
	if l == nil || l.rdb == nil {
		return 0, nil
	}
	return l.rdb.TTL(ctx, key(userID, action)).Result()
}

// Clear releases the slot, used when the guarded action failed.
func (l *Limiter) Clear(ctx context.Context, userID uuid.UUID, action string) error {
	if l == nil {
		return nil
	}
	if l.rdb == nil {
		l.mu.Lock()
		delete(l.local, key(userID, action))
		l.mu.Unlock()
		return nil
	}
	_, err := l.rdb.Del(ctx, key(userID, action)).Result()
	return err
}
