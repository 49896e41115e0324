// Package lock serializes ledger mutations per customer.
package lock

import (
	"context"
	"errors"
	"strconv"

	"github.com/licensehub/licensehub/internal/shared/constants"
)

// ErrLockTimeout is returned when the lock could not be taken before the
// context ended.
var ErrLockTimeout = errors.New("timed out waiting for customer lock")

// CustomerLocker runs fn while holding the lock for customerID.
type CustomerLocker interface {
	WithCustomerLock(ctx context.Context, customerID uint, fn func(ctx context.Context) error) error
}

func customerKey(customerID uint) string {
	return constants.RedisKeyCustomerLock + strconv.FormatUint(uint64(customerID), 10)
}
