// Package lock implements cross-process locks on Redis using SET NX PX with
// a random ownership token and a compare-and-delete release script. A held
// lock is renewed in the background until it is released.
package lock

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "oracle:lock:"

var releaseScript = redis.NewScript(`
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("del", KEYS[1])
	else
		return 0
	end
`)

var extendScript = redis.NewScript(`
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("pexpire", KEYS[1], ARGV[2])
	else
		return 0
	end
`)

// Locker hands out Redis-backed locks. While a lock is held its TTL is
// extended every ttl/3; if the holder crashes the lock expires after at most
// one TTL.
type Locker struct {
	client redis.UniversalClient
	ttl    time.Duration
	retry  time.Duration
	log    *slog.Logger
}

// New creates a Locker. retry is the poll interval while waiting in Lock.
func New(client redis.UniversalClient, ttl, retry time.Duration, log *slog.Logger) *Locker {
	if retry <= 0 {
		retry = 50 * time.Millisecond
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Locker{
		client: client,
		ttl:    ttl,
		retry:  retry,
		log:    log.With("component", "redis_lock"),
	}
}

// TryLock takes the lock for key without waiting. ok is false if another
// holder owns it.
func (l *Locker) TryLock(ctx context.Context, key string) (release func(), ok bool, err error) {
	token, err := newToken()
	if err != nil {
		return nil, false, err
	}

	ok, err = l.client.SetNX(ctx, keyPrefix+key, token, l.ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("acquire lock %s: %w", key, err)
	}
	if !ok {
		return nil, false, nil
	}
	return l.releaser(key, token), true, nil
}

// Lock polls until the lock for key is held or ctx is done.
func (l *Locker) Lock(ctx context.Context, key string) (func(), error) {
	ticker := time.NewTicker(l.retry)
	defer ticker.Stop()

	for {
		release, ok, err := l.TryLock(ctx, key)
		if err != nil {
			return nil, err
		}
		if ok {
			return release, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("wait for lock %s: %w", key, ctx.Err())
		case <-ticker.C:
		}
	}
}

// releaser starts renewing the lock and returns the func that stops renewal
// and deletes the key. Calling it more than once is a no-op.
func (l *Locker) releaser(key, token string) func() {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		l.renew(ctx, key, token)
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
			l.release(key, token)
		})
	}
}

func (l *Locker) renew(ctx context.Context, key, token string) {
	ticker := time.NewTicker(l.ttl / 3)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		n, err := extendScript.Run(ctx, l.client, []string{keyPrefix + key}, token, l.ttl.Milliseconds()).Int()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			// Retried on the next tick while the key may still be live.
			l.log.Warn("extend lock failed", slog.String("key", key), slog.String("error", err.Error()))
			continue
		}
		if n == 0 {
			l.log.Warn("lock lost while held", slog.String("key", key))
			return
		}
	}
}

func (l *Locker) release(key, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	n, err := releaseScript.Run(ctx, l.client, []string{keyPrefix + key}, token).Int()
	if err != nil && !errors.Is(err, redis.Nil) {
		l.log.Warn("release lock failed", slog.String("key", key), slog.String("error", err.Error()))
		return
	}
	if n == 0 {
		l.log.Warn("lock expired before release", slog.String("key", key))
	}
}

func newToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate lock token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
