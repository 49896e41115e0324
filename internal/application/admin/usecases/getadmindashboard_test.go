package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/licensehub/licensehub/internal/domain/customer"
	"github.com/licensehub/licensehub/internal/domain/pack"
	"github.com/licensehub/licensehub/internal/domain/subscription"
	vo "github.com/licensehub/licensehub/internal/domain/subscription/valueobjects"
	apperrors "github.com/licensehub/licensehub/internal/shared/errors"
	"github.com/licensehub/licensehub/internal/shared/logger"
)

type mockCustomerRepository struct {
	CountFunc    func(ctx context.Context) (int64, error)
	GetByIDsFunc func(ctx context.Context, ids []uint) (map[uint]*customer.Customer, error)
}

func (m *mockCustomerRepository) GetByID(ctx context.Context, id uint) (*customer.Customer, error) {
	return nil, nil
}

func (m *mockCustomerRepository) GetByUserID(ctx context.Context, userID uint) (*customer.Customer, error) {
	return nil, nil
}

func (m *mockCustomerRepository) GetByIDs(ctx context.Context, ids []uint) (map[uint]*customer.Customer, error) {
	if m.GetByIDsFunc != nil {
		return m.GetByIDsFunc(ctx, ids)
	}
	return map[uint]*customer.Customer{}, nil
}

func (m *mockCustomerRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

// mockSubscriptionRepository embeds the interface; only the dashboard
// queries are implemented.
type mockSubscriptionRepository struct {
	subscription.Repository
	CountByStatusFunc       func(ctx context.Context, status vo.SubscriptionStatus) (int64, error)
	SumActivePriceFunc      func(ctx context.Context) (decimal.Decimal, error)
	ListRecentlyUpdatedFunc func(ctx context.Context, limit int) ([]*subscription.Subscription, error)
}

func (m *mockSubscriptionRepository) CountByStatus(ctx context.Context, status vo.SubscriptionStatus) (int64, error) {
	return m.CountByStatusFunc(ctx, status)
}

func (m *mockSubscriptionRepository) SumActivePrice(ctx context.Context) (decimal.Decimal, error) {
	return m.SumActivePriceFunc(ctx)
}

func (m *mockSubscriptionRepository) ListRecentlyUpdated(ctx context.Context, limit int) ([]*subscription.Subscription, error) {
	return m.ListRecentlyUpdatedFunc(ctx, limit)
}

type mockPackRepository struct {
	pack.Repository
	GetByIDsFunc func(ctx context.Context, ids []uint) (map[uint]*pack.Pack, error)
}

func (m *mockPackRepository) GetByIDs(ctx context.Context, ids []uint) (map[uint]*pack.Pack, error) {
	return m.GetByIDsFunc(ctx, ids)
}

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func recentSub(t *testing.T, id, customerID, packID uint, status vo.SubscriptionStatus, updated time.Time) *subscription.Subscription {
	t.Helper()
	p := subscription.ReconstructParams{
		ID: id, SID: "sub_" + string(rune('a'+id)), CustomerID: customerID, PackID: packID,
		Status: status, RequestedAt: now.Add(-time.Hour), Version: 1,
		CreatedAt: now.Add(-time.Hour), UpdatedAt: updated,
	}
	if status == vo.StatusActive {
		assigned := now.Add(-time.Hour)
		expires := now.AddDate(0, 1, 0)
		p.AssignedAt = &assigned
		p.ExpiresAt = &expires
	}
	s, err := subscription.ReconstructSubscription(p)
	require.NoError(t, err)
	return s
}

func newRepos(t *testing.T) (*mockCustomerRepository, *mockSubscriptionRepository, *mockPackRepository) {
	basic, err := pack.ReconstructPack(pack.ReconstructParams{
		ID: 1, SID: "pack_basic", Name: "Basic", SKU: "basic",
		Price: decimal.RequireFromString("9.99"), ValidityMonths: 1,
		CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)

	customers := &mockCustomerRepository{
		CountFunc: func(ctx context.Context) (int64, error) { return 12, nil },
		GetByIDsFunc: func(ctx context.Context, ids []uint) (map[uint]*customer.Customer, error) {
			return map[uint]*customer.Customer{
				1: customer.ReconstructCustomer(1, 101, "Alice", "", nil),
			}, nil
		},
	}
	subs := &mockSubscriptionRepository{
		CountByStatusFunc: func(ctx context.Context, status vo.SubscriptionStatus) (int64, error) {
			switch status {
			case vo.StatusActive:
				return 4, nil
			case vo.StatusRequested:
				return 2, nil
			}
			return 0, nil
		},
		SumActivePriceFunc: func(ctx context.Context) (decimal.Decimal, error) {
			return decimal.RequireFromString("39.96"), nil
		},
		ListRecentlyUpdatedFunc: func(ctx context.Context, limit int) ([]*subscription.Subscription, error) {
			assert.Equal(t, recentActivityLimit, limit)
			return []*subscription.Subscription{
				recentSub(t, 2, 1, 1, vo.StatusActive, now),
				recentSub(t, 1, 2, 1, vo.StatusRequested, now.Add(-time.Minute)),
			}, nil
		},
	}
	packs := &mockPackRepository{
		GetByIDsFunc: func(ctx context.Context, ids []uint) (map[uint]*pack.Pack, error) {
			return map[uint]*pack.Pack{1: basic}, nil
		},
	}
	return customers, subs, packs
}

func TestGetAdminDashboardUseCase_Execute(t *testing.T) {
	customers, subs, packs := newRepos(t)
	uc := NewGetAdminDashboardUseCase(customers, subs, packs, logger.NewDiscard())

	result, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(12), result.TotalCustomers)
	assert.Equal(t, int64(4), result.ActiveSubscriptions)
	assert.Equal(t, int64(2), result.PendingRequests)
	assert.Equal(t, "39.96", result.TotalRevenue)

	require.Len(t, result.RecentActivities, 2)
	first := result.RecentActivities[0]
	assert.Equal(t, "active_subscription", first.Type)
	assert.Equal(t, "Alice", first.Customer)
	assert.Equal(t, "Basic", first.Pack)
	assert.Equal(t, now, first.Timestamp)

	second := result.RecentActivities[1]
	assert.Equal(t, "requested_subscription", second.Type)
	assert.Empty(t, second.Customer, "unknown customers are left blank")
}

func TestGetAdminDashboardUseCase_EmptyLedger(t *testing.T) {
	customers, subs, packs := newRepos(t)
	subs.ListRecentlyUpdatedFunc = func(ctx context.Context, limit int) ([]*subscription.Subscription, error) {
		return nil, nil
	}
	subs.SumActivePriceFunc = func(ctx context.Context) (decimal.Decimal, error) { return decimal.Zero, nil }
	uc := NewGetAdminDashboardUseCase(customers, subs, packs, logger.NewDiscard())

	result, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "0.00", result.TotalRevenue)
	assert.NotNil(t, result.RecentActivities)
	assert.Empty(t, result.RecentActivities)
}

func TestGetAdminDashboardUseCase_RepositoryError(t *testing.T) {
	customers, subs, packs := newRepos(t)
	customers.CountFunc = func(ctx context.Context) (int64, error) { return 0, errors.New("db down") }
	uc := NewGetAdminDashboardUseCase(customers, subs, packs, logger.NewDiscard())

	_, err := uc.Execute(context.Background())

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeInternal, apperrors.GetAppError(err).Type)
}
