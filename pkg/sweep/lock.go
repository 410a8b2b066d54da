package sweep

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"github.com/chainsafe/audit-register-recon/pkg/bizdate"
	"github.com/chainsafe/audit-register-recon/pkg/config"
)

// ErrLockNotObtained is returned when another run already holds the sweep lock
var ErrLockNotObtained = errors.New("sweep lock is held by another run")

// ErrLockUnavailable is returned when the lock backend cannot be reached
var ErrLockUnavailable = errors.New("sweep lock backend unavailable")

// ErrLockLost is returned when a held lock expired or was taken over before it was refreshed
var ErrLockLost = errors.New("sweep lock was lost")

// Lease is a held sweep lock
type Lease interface {
	// Refresh extends the lock by another TTL. It returns ErrLockLost once the lock is gone.
	Refresh(ctx context.Context) error
	Release(ctx context.Context) error
}

// Locker guards a sweep so two replicas never process the same job and date at once
type Locker interface {
	Obtain(ctx context.Context, key string) (Lease, error)
}

// RedisLocker obtains locks through redislock. Each lease lives for one TTL
// unless it is refreshed.
type RedisLocker struct {
	client *redislock.Client
	ttl    time.Duration
}

// NewRedisLocker creates a Locker backed by the given redis client
func NewRedisLocker(rdb redis.UniversalClient, ttl time.Duration) *RedisLocker {
	return &RedisLocker{
		client: redislock.New(rdb),
		ttl:    ttl,
	}
}

// NewRedisClient connects to the configured redis server and pings it
func NewRedisClient(ctx context.Context, cfg *config.LockConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis %s: %w", cfg.RedisAddr, err)
	}
	return rdb, nil
}

func (l *RedisLocker) Obtain(ctx context.Context, key string) (Lease, error) {
	lock, err := l.client.Obtain(ctx, key, l.ttl, nil)
	if err != nil {
		if errors.Is(err, redislock.ErrNotObtained) {
			return nil, ErrLockNotObtained
		}
		return nil, fmt.Errorf("%w: failed to obtain lock %s: %w", ErrLockUnavailable, key, err)
	}
	return &redisLease{lock: lock, key: key, ttl: l.ttl}, nil
}

type redisLease struct {
	lock *redislock.Lock
	key  string
	ttl  time.Duration
}

func (l *redisLease) Refresh(ctx context.Context) error {
	err := l.lock.Refresh(ctx, l.ttl, nil)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, redislock.ErrNotObtained):
		return fmt.Errorf("%w: %s", ErrLockLost, l.key)
	default:
		return fmt.Errorf("%w: failed to refresh lock %s: %w", ErrLockUnavailable, l.key, err)
	}
}

func (l *redisLease) Release(ctx context.Context) error {
	if err := l.lock.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
		return fmt.Errorf("failed to release lock %s: %w", l.key, err)
	}
	return nil
}

// NoopLocker always grants the lock. Used when locking is disabled.
type NoopLocker struct{}

func (NoopLocker) Obtain(context.Context, string) (Lease, error) {
	return noopLease{}, nil
}

type noopLease struct{}

func (noopLease) Refresh(context.Context) error { return nil }
func (noopLease) Release(context.Context) error { return nil }

// LockKey is the redis key guarding one job and settlement date
func LockKey(job string, settlementDate time.Time) string {
	return fmt.Sprintf("lock:sweep:%s:%s", job, bizdate.Format(settlementDate))
}
