package postgres

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotInTx is returned by XactLock when ctx carries no transaction.
var ErrNotInTx = errors.New("advisory xact lock requires a transaction")

// AdvisoryKey maps a string key to a PostgreSQL advisory lock id.
func AdvisoryKey(key string) int64 {
	h := fnv.New64a()
	h.Write([]byte(key))
	return int64(h.Sum64())
}

// AdvisoryLocker provides session-scoped advisory locks. Each held lock pins
// one pool connection until released, so the unlock runs on the session
// that took the lock. A dropped connection releases the lock.
type AdvisoryLocker struct {
	pool *pgxpool.Pool
}

// NewAdvisoryLocker creates an AdvisoryLocker.
func NewAdvisoryLocker(pool *pgxpool.Pool) *AdvisoryLocker {
	return &AdvisoryLocker{pool: pool}
}

// Lock blocks until the lock for key is held or ctx is done.
func (l *AdvisoryLocker) Lock(ctx context.Context, key string) (func(), error) {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	id := AdvisoryKey(key)
	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", id); err != nil {
		// The session may still be waiting on the lock; drop it rather than reuse.
		_ = conn.Conn().Close(context.Background())
		conn.Release()
		return nil, fmt.Errorf("advisory lock %s: %w", key, err)
	}

	return l.releaser(conn, id), nil
}

// TryLock takes the lock for key without waiting. ok is false if another
// session holds it.
func (l *AdvisoryLocker) TryLock(ctx context.Context, key string) (release func(), ok bool, err error) {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("acquire connection: %w", err)
	}

	id := AdvisoryKey(key)
	var acquired bool
	if err := conn.QueryRow(ctx, "SELECT pg_try_advisory_lock($1)", id).Scan(&acquired); err != nil {
		conn.Release()
		return nil, false, fmt.Errorf("advisory try lock %s: %w", key, err)
	}
	if !acquired {
		conn.Release()
		return nil, false, nil
	}

	return l.releaser(conn, id), true, nil
}

func (l *AdvisoryLocker) releaser(conn *pgxpool.Conn, id int64) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", id); err != nil {
			_ = conn.Conn().Close(ctx)
		}
		conn.Release()
	}
}

// XactLock takes a transaction-scoped advisory lock for key. It is released
// on commit or rollback. ctx must come from TxManager.RunInTx.
func XactLock(ctx context.Context, pool *pgxpool.Pool, key string) error {
	if !InTx(ctx) {
		return ErrNotInTx
	}
	q := QuerierFromCtx(ctx, pool)
	if _, err := q.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", AdvisoryKey(key)); err != nil {
		return fmt.Errorf("advisory xact lock %s: %w", key, err)
	}
	return nil
}

// XactLock takes a transaction-scoped lock through the locker's pool.
func (l *AdvisoryLocker) XactLock(ctx context.Context, key string) error {
	return XactLock(ctx, l.pool, key)
}
