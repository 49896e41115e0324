package lock

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// KeyedMutex is an in-process CustomerLocker. Entries are reference counted
// and dropped once nobody holds or waits for them.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[uint]*refLock
	wait  time.Duration
}

type refLock struct {
	ch   chan struct{}
	refs int
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[uint]*refLock)}
}

// NewKeyedMutexWithWait bounds acquisition by wait when the caller's context
// carries no deadline.
func NewKeyedMutexWithWait(wait time.Duration) *KeyedMutex {
	k := NewKeyedMutex()
	k.wait = wait
	return k
}

func (k *KeyedMutex) WithCustomerLock(ctx context.Context, customerID uint, fn func(ctx context.Context) error) error {
	if err := k.lock(ctx, customerID); err != nil {
		return err
	}
	defer k.unlock(customerID)
	return fn(ctx)
}

func (k *KeyedMutex) lock(ctx context.Context, id uint) error {
	k.mu.Lock()
	l, ok := k.locks[id]
	if !ok {
		l = &refLock{ch: make(chan struct{}, 1)}
		k.locks[id] = l
	}
	l.refs++
	k.mu.Unlock()

	if _, ok := ctx.Deadline(); !ok && k.wait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, k.wait)
		defer cancel()
	}

	select {
	case l.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		k.release(id, l)
		return fmt.Errorf("%w: customer %d: %w", ErrLockTimeout, id, ctx.Err())
	}
}

func (k *KeyedMutex) unlock(id uint) {
	k.mu.Lock()
	l := k.locks[id]
	k.mu.Unlock()

	<-l.ch
	k.release(id, l)
}

func (k *KeyedMutex) release(id uint, l *refLock) {
	k.mu.Lock()
	defer k.mu.Unlock()
	l.refs--
	if l.refs == 0 {
		delete(k.locks, id)
	}
}

// size reports the number of tracked keys.
func (k *KeyedMutex) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
