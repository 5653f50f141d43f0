package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxAttempts = 10
	defaultWindow      = 15 * time.Minute
)

// LoginThrottle counts login attempts per identifier in Redis.
// Key format: login_attempts:<identifier>, expiring after the window.
type LoginThrottle struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
}

// NewLoginThrottle creates a LoginThrottle wrapping the given Redis client.
// Non-positive limits fall back to the defaults.
func NewLoginThrottle(client *redis.Client, maxAttempts int, window time.Duration) *LoginThrottle {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &LoginThrottle{client: client, maxAttempts: maxAttempts, window: window}
}

// Allow records one attempt and reports whether the identifier is still
// within its window. The expiry is set when the counter is first created.
func (t *LoginThrottle) Allow(ctx context.Context, identifier string) (bool, error) {
	key := t.key(identifier)

	n, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("throttle incr: %w", err)
	}
	if n == 1 {
		if err := t.client.Expire(ctx, key, t.window).Err(); err != nil {
			return false, fmt.Errorf("throttle expire: %w", err)
		}
	}
	return n <= int64(t.maxAttempts), nil
}

// Reset clears the counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, identifier string) error {
	return t.client.Del(ctx, t.key(identifier)).Err()
}

func (t *LoginThrottle) key(identifier string) string {
	return "login_attempts:" + identifier
}
