// Package lock provides a Redis-backed mutual exclusion used to serialize
// critical sections across processes.
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNotAcquired is returned when the lock stays held by another owner until
// the caller's wait budget or context runs out.
var ErrNotAcquired = errors.New("lock: not acquired")

// Release frees a lock obtained from Acquire. Releasing a lock whose TTL
// already expired, or which another owner now holds, is a no-op.
type Release func(ctx context.Context) error

var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// NewClient creates a Redis client and verifies connectivity.
func NewClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("platform/lock: ping: %w", err)
	}

	return client, nil
}

// Locker hands out token-owned, TTL-bounded locks.
type Locker struct {
	client redis.Cmdable
	ttl    time.Duration
	wait   time.Duration
	retry  time.Duration
}

// Options tunes Locker. Zero values fall back to defaults.
type Options struct {
	TTL   time.Duration
	Wait  time.Duration
	Retry time.Duration
}

// NewLocker builds a Locker on top of client.
func NewLocker(client redis.Cmdable, opts Options) *Locker {
	if opts.TTL <= 0 {
		opts.TTL = 10 * time.Second
	}
	if opts.Wait <= 0 {
		opts.Wait = opts.TTL
	}
	if opts.Retry <= 0 {
		opts.Retry = 25 * time.Millisecond
	}
	return &Locker{client: client, ttl: opts.TTL, wait: opts.Wait, retry: opts.Retry}
}

// Acquire blocks until key is held by this caller, the wait budget elapses,
// or ctx is done.
func (l *Locker) Acquire(ctx context.Context, key string) (Release, error) {
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("platform/lock: set %s: %w", key, err)
		}
		if ok {
			return func(ctx context.Context) error {
				if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
					return fmt.Errorf("platform/lock: release %s: %w", key, err)
				}
				return nil
			}, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w: %s", ErrNotAcquired, key)
		}

		timer := time.NewTimer(l.retry)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, fmt.Errorf("%w: %s: %w", ErrNotAcquired, key, ctx.Err())
		case <-timer.C:
		}
	}
}
