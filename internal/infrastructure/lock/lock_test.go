package lock

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/licensehub/licensehub/internal/shared/logger"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return mr, client
}

// assertSerialized runs many goroutines against the same customer and checks
// that no two critical sections overlap.
func assertSerialized(t *testing.T, locker CustomerLocker) {
	t.Helper()
	var (
		inside  int32
		maxSeen int32
		total   int32
		wg      sync.WaitGroup
	)

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			err := locker.WithCustomerLock(ctx, 7, func(ctx context.Context) error {
				n := atomic.AddInt32(&inside, 1)
				for {
					m := atomic.LoadInt32(&maxSeen)
					if n <= m || atomic.CompareAndSwapInt32(&maxSeen, m, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&inside, -1)
				atomic.AddInt32(&total, 1)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxSeen)
	assert.Equal(t, int32(20), total)
}

func TestKeyedMutex_SerializesSameCustomer(t *testing.T) {
	km := NewKeyedMutex()
	assertSerialized(t, km)
	assert.Equal(t, 0, km.size(), "entries are dropped after use")
}

func TestKeyedMutex_DifferentCustomersRunInParallel(t *testing.T) {
	km := NewKeyedMutex()
	release := make(chan struct{})
	entered := make(chan struct{})

	go func() {
		_ = km.WithCustomerLock(context.Background(), 1, func(ctx context.Context) error {
			close(entered)
			<-release
			return nil
		})
	}()
	<-entered

	done := make(chan error, 1)
	go func() {
		done <- km.WithCustomerLock(context.Background(), 2, func(ctx context.Context) error { return nil })
	}()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("customer 2 was blocked by customer 1")
	}
	close(release)
}

func TestKeyedMutex_TimesOut(t *testing.T) {
	km := NewKeyedMutex()
	release := make(chan struct{})
	entered := make(chan struct{})

	go func() {
		_ = km.WithCustomerLock(context.Background(), 1, func(ctx context.Context) error {
			close(entered)
			<-release
			return nil
		})
	}()
	<-entered

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	called := false
	err := km.WithCustomerLock(ctx, 1, func(ctx context.Context) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, ErrLockTimeout)
	assert.False(t, called)
	close(release)
}

func TestKeyedMutex_DefaultWait(t *testing.T) {
	km := NewKeyedMutexWithWait(20 * time.Millisecond)
	release := make(chan struct{})
	entered := make(chan struct{})

	go func() {
		_ = km.WithCustomerLock(context.Background(), 1, func(ctx context.Context) error {
			close(entered)
			<-release
			return nil
		})
	}()
	<-entered

	err := km.WithCustomerLock(context.Background(), 1, func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrLockTimeout)
	close(release)

	// The wait only bounds acquisition, never the critical section.
	err = km.WithCustomerLock(context.Background(), 2, func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		assert.False(t, ok)
		return nil
	})
	assert.NoError(t, err)
}

func TestKeyedMutex_PropagatesError(t *testing.T) {
	km := NewKeyedMutex()
	boom := errors.New("boom")

	err := km.WithCustomerLock(context.Background(), 1, func(ctx context.Context) error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, km.WithCustomerLock(context.Background(), 1, func(ctx context.Context) error { return nil }))
}

func TestRedisLocker_SerializesSameCustomer(t *testing.T) {
	_, client := setupTestRedis(t)
	assertSerialized(t, NewRedisLocker(client, time.Second, time.Second, logger.NewDiscard()))
}

func TestRedisLocker_ReleasesKey(t *testing.T) {
	mr, client := setupTestRedis(t)
	locker := NewRedisLocker(client, time.Second, time.Second, logger.NewDiscard())

	err := locker.WithCustomerLock(context.Background(), 42, func(ctx context.Context) error {
		assert.True(t, mr.Exists(customerKey(42)))
		return nil
	})

	require.NoError(t, err)
	assert.False(t, mr.Exists(customerKey(42)))
}

func TestRedisLocker_TimesOutWhileHeld(t *testing.T) {
	mr, client := setupTestRedis(t)
	require.NoError(t, mr.Set(customerKey(5), "someone-else"))
	locker := NewRedisLocker(client, time.Second, 50*time.Millisecond, logger.NewDiscard())

	err := locker.WithCustomerLock(context.Background(), 5, func(ctx context.Context) error {
		t.Fatal("must not run without the lock")
		return nil
	})

	assert.ErrorIs(t, err, ErrLockTimeout)
	got, _ := mr.Get(customerKey(5))
	assert.Equal(t, "someone-else", got, "a foreign lock is never released")
}

func TestRedisLocker_DoesNotDeleteForeignToken(t *testing.T) {
	mr, client := setupTestRedis(t)
	locker := NewRedisLocker(client, time.Second, time.Second, logger.NewDiscard())

	err := locker.WithCustomerLock(context.Background(), 9, func(ctx context.Context) error {
		// Simulate expiry followed by another owner taking the key.
		return mr.Set(customerKey(9), "new-owner")
	})

	require.NoError(t, err)
	got, _ := mr.Get(customerKey(9))
	assert.Equal(t, "new-owner", got)
}

func TestRedisLocker_RedisDown(t *testing.T) {
	mr, client := setupTestRedis(t)
	mr.Close()
	locker := NewRedisLocker(client, time.Second, 100*time.Millisecond, logger.NewDiscard())

	err := locker.WithCustomerLock(context.Background(), 1, func(ctx context.Context) error { return nil })
	assert.Error(t, err)
}
