package usecases

import "context"

// CustomerLocker serializes ledger mutations per customer.
type CustomerLocker interface {
	WithCustomerLock(ctx context.Context, customerID uint, fn func(ctx context.Context) error) error
}

// TransactionRunner runs fn in a transaction carried by the context.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
