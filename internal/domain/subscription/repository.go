package subscription

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	vo "github.com/licensehub/licensehub/internal/domain/subscription/valueobjects"
	"github.com/licensehub/licensehub/internal/shared/query"
)

// Repository persists subscriptions. Lookups return (nil, nil) on a miss.
type Repository interface {
	Create(ctx context.Context, sub *Subscription) error
	// Update writes sub only if the stored version still matches, otherwise
	// it returns ErrConcurrentModification.
	Update(ctx context.Context, sub *Subscription) error
	GetByID(ctx context.Context, id uint) (*Subscription, error)
	GetBySID(ctx context.Context, sid string) (*Subscription, error)
	GetActiveByCustomer(ctx context.Context, customerID uint) (*Subscription, error)
	// LockOpenByCustomer row-locks and returns the customer's REQUESTED,
	// APPROVED and ACTIVE records. It must run inside a transaction.
	LockOpenByCustomer(ctx context.Context, customerID uint) ([]*Subscription, error)
	ListByCustomer(ctx context.Context, customerID uint, filter HistoryFilter) ([]*Subscription, int64, error)
	List(ctx context.Context, filter ListFilter) ([]*Subscription, int64, error)
	FindOverdue(ctx context.Context, now time.Time, limit int) ([]*Subscription, error)
	CountByStatus(ctx context.Context, status vo.SubscriptionStatus) (int64, error)
	// SumActivePrice totals the pack prices of all ACTIVE subscriptions.
	SumActivePrice(ctx context.Context) (decimal.Decimal, error)
	ListRecentlyUpdated(ctx context.Context, limit int) ([]*Subscription, error)
}

// EventRepository is the append-only transition journal.
type EventRepository interface {
	Append(ctx context.Context, events ...*Event) error
	ListBySubscription(ctx context.Context, subscriptionID uint) ([]*Event, error)
}

// HistoryFilter orders a customer's records by assigned_at, falling back to created_at.
type HistoryFilter struct {
	query.BaseFilter
}

type ListFilter struct {
	query.BaseFilter
	Status *vo.SubscriptionStatus
}
