package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/licensehub/licensehub/internal/shared/logger"
)

const (
	defaultLockTTL  = 10 * time.Second
	defaultLockWait = 5 * time.Second
)

var errLockHeld = errors.New("customer lock held by another owner")

// releaseScript deletes the key only if it still carries our token, so an
// expired lock re-acquired by someone else is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker is a CustomerLocker shared by every instance pointed at the
// same Redis.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
	wait   time.Duration
	logger logger.Interface
}

// NewRedisLocker builds a locker whose keys expire after ttl. wait bounds the
// acquisition when the caller's context carries no deadline.
func NewRedisLocker(client *redis.Client, ttl, wait time.Duration, log logger.Interface) *RedisLocker {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	if wait <= 0 {
		wait = defaultLockWait
	}
	return &RedisLocker{
		client: client,
		ttl:    ttl,
		wait:   wait,
		logger: log,
	}
}

func (l *RedisLocker) WithCustomerLock(ctx context.Context, customerID uint, fn func(ctx context.Context) error) error {
	key := customerKey(customerID)
	token := uuid.NewString()

	if err := l.acquire(ctx, key, token); err != nil {
		return err
	}
	defer l.release(ctx, key, token)

	return fn(ctx)
}

func (l *RedisLocker) acquire(ctx context.Context, key, token string) error {
	waitCtx := ctx
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, l.wait)
		defer cancel()
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 10 * time.Millisecond
	b.MaxInterval = 250 * time.Millisecond

	_, err := backoff.Retry(waitCtx, func() (bool, error) {
		ok, err := l.client.SetNX(waitCtx, key, token, l.ttl).Result()
		if err != nil {
			if waitCtx.Err() != nil {
				return false, backoff.Permanent(waitCtx.Err())
			}
			return false, backoff.Permanent(fmt.Errorf("failed to acquire customer lock: %w", err))
		}
		if !ok {
			return false, errLockHeld
		}
		return true, nil
	}, backoff.WithBackOff(b), backoff.WithMaxElapsedTime(0))
	if err == nil {
		return nil
	}

	if errors.Is(err, errLockHeld) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		l.logger.Warnw("customer lock wait timed out", "key", key)
		return fmt.Errorf("%w: %s", ErrLockTimeout, key)
	}
	l.logger.Errorw("failed to acquire customer lock", "key", key, "error", err)
	return err
}

func (l *RedisLocker) release(ctx context.Context, key, token string) {
	releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
	defer cancel()

	deleted, err := releaseScript.Run(releaseCtx, l.client, []string{key}, token).Int()
	if err != nil {
		l.logger.Errorw("failed to release customer lock", "key", key, "error", err)
		return
	}
	if deleted == 0 {
		l.logger.Warnw("customer lock expired before release", "key", key, "ttl", l.ttl)
	}
}
