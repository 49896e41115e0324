package usecases

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/licensehub/licensehub/internal/domain/customer"
	"github.com/licensehub/licensehub/internal/domain/pack"
	"github.com/licensehub/licensehub/internal/domain/subscription"
	vo "github.com/licensehub/licensehub/internal/domain/subscription/valueobjects"
	apperrors "github.com/licensehub/licensehub/internal/shared/errors"
	"github.com/licensehub/licensehub/internal/shared/query"
)

func listAll() subscription.ListFilter {
	return subscription.ListFilter{BaseFilter: query.NewBaseFilter()}
}

func TestAssignSubscriptionUseCase_CreatesActive(t *testing.T) {
	h := newHarness(t, newTestPack(t, 1, "basic", 1))

	result, err := h.assign().Execute(context.Background(), AssignSubscriptionCommand{CustomerID: 3, PackSID: "pack_basic"})

	require.NoError(t, err)
	assert.Equal(t, "active", result.Status)
	assert.Equal(t, testNow, *result.ApprovedAt)
	assert.Equal(t, testNow, *result.AssignedAt)
	// Jan 31 + 1 month clamps to the end of February.
	assert.Equal(t, time.Date(2024, 2, 29, 9, 0, 0, 0, time.UTC), *result.ExpiresAt)

	events := h.events.all()
	require.Len(t, events, 1)
	assert.Equal(t, vo.SubscriptionStatus(""), events[0].FromStatus())
	assert.Equal(t, vo.StatusActive, events[0].ToStatus())
	assert.Equal(t, subscription.ActorAdmin, events[0].Actor())
}

func TestAssignSubscriptionUseCase_SupersedesActive(t *testing.T) {
	h := newHarness(t, newTestPack(t, 1, "basic", 1), newTestPack(t, 2, "pro", 12))
	ctx := context.Background()

	r1, err := h.assign().Execute(ctx, AssignSubscriptionCommand{CustomerID: 3, PackSID: "pack_basic"})
	require.NoError(t, err)

	h.clock.Advance(24 * time.Hour)
	r2, err := h.assign().Execute(ctx, AssignSubscriptionCommand{CustomerID: 3, PackSID: "pack_pro"})
	require.NoError(t, err)

	old := h.storedBySID(t, r1.ID)
	assert.Equal(t, vo.StatusInactive, old.Status())
	require.NotNil(t, old.DeactivatedAt())
	assert.Equal(t, h.clock.Now(), *old.DeactivatedAt())

	assert.NotEqual(t, r1.ID, r2.ID)
	assert.Equal(t, "active", r2.Status)
	assert.Equal(t, "pro", r2.Pack.SKU)

	active, err := h.subs.GetActiveByCustomer(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, r2.ID, active.SID())

	events, err := h.events.ListBySubscription(ctx, old.ID())
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, vo.StatusInactive, events[1].ToStatus())
	assert.Equal(t, r2.ID, events[1].Metadata()["superseded_by"])
}

func TestAssignSubscriptionUseCase_ActivatesWaitingRequest(t *testing.T) {
	h := newHarness(t, newTestPack(t, 1, "basic", 1), newTestPack(t, 2, "pro", 12))
	ctx := context.Background()

	other, err := h.request().Execute(ctx, RequestSubscriptionCommand{CustomerID: 3, SKU: "basic"})
	require.NoError(t, err)
	waiting, err := h.request().Execute(ctx, RequestSubscriptionCommand{CustomerID: 3, SKU: "pro"})
	require.NoError(t, err)

	result, err := h.assign().Execute(ctx, AssignSubscriptionCommand{CustomerID: 3, PackSID: "pack_pro"})

	require.NoError(t, err)
	assert.Equal(t, waiting.ID, result.ID)
	assert.Equal(t, "active", result.Status)
	assert.Equal(t, vo.StatusRequested, h.storedBySID(t, other.ID).Status(), "requests for other packs stay pending")

	_, total, err := h.subs.List(ctx, listAll())
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestAssignSubscriptionUseCase_NotFound(t *testing.T) {
	h := newHarness(t, newTestPack(t, 1, "basic", 1))
	ctx := context.Background()

	_, err := h.assign().Execute(ctx, AssignSubscriptionCommand{CustomerID: 3, PackSID: "pack_unknown"})
	assert.True(t, apperrors.IsNotFoundError(err))

	h.customers.GetByIDFunc = func(ctx context.Context, id uint) (*customer.Customer, error) { return nil, nil }
	_, err = h.assign().Execute(ctx, AssignSubscriptionCommand{CustomerID: 99, PackSID: "pack_basic"})
	require.True(t, apperrors.IsNotFoundError(err))
	assert.Equal(t, "customer not found", apperrors.GetAppError(err).Message)
}

func TestAssignSubscriptionUseCase_ConcurrentAssignsKeepOneActive(t *testing.T) {
	h := newHarness(t, newTestPack(t, 1, "basic", 1), newTestPack(t, 2, "pro", 12))
	ctx := context.Background()
	uc := h.assign()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sid := "pack_basic"
			if i%2 == 0 {
				sid = "pack_pro"
			}
			_, err := uc.Execute(ctx, AssignSubscriptionCommand{CustomerID: 3, PackSID: sid})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	active := vo.StatusActive
	subs, _, err := h.subs.List(ctx, subscription.ListFilter{BaseFilter: query.NewBaseFilter(), Status: &active})
	require.NoError(t, err)
	assert.Len(t, subs, 1)
}

func TestAssignSubscriptionUseCase_UsesStoredValidity(t *testing.T) {
	h := newHarness(t, newTestPack(t, 1, "basic", 12))
	// The sid lookup serves a copy from before validity went from 1 to 12.
	h.packs.GetBySIDFunc = func(ctx context.Context, sid string) (*pack.Pack, error) {
		return newTestPack(t, 1, "basic", 1), nil
	}

	result, err := h.assign().Execute(context.Background(), AssignSubscriptionCommand{CustomerID: 3, PackSID: "pack_basic"})

	require.NoError(t, err)
	require.NotNil(t, result.ExpiresAt)
	assert.Equal(t, time.Date(2025, 1, 31, 9, 0, 0, 0, time.UTC), *result.ExpiresAt)
	require.NotNil(t, result.Pack)
	assert.Equal(t, 12, result.Pack.ValidityMonths)
}

func TestAssignSubscriptionUseCase_PackDeletedSinceLookup(t *testing.T) {
	deleted := newTestPack(t, 1, "basic", 1)
	require.NoError(t, deleted.MarkDeleted(testNow))
	h := newHarness(t, deleted)
	h.packs.GetBySIDFunc = func(ctx context.Context, sid string) (*pack.Pack, error) {
		return newTestPack(t, 1, "basic", 1), nil
	}
	ctx := context.Background()

	_, err := h.assign().Execute(ctx, AssignSubscriptionCommand{CustomerID: 3, PackSID: "pack_basic"})

	assert.True(t, apperrors.IsNotFoundError(err))
	_, total, err := h.subs.List(ctx, listAll())
	require.NoError(t, err)
	assert.Zero(t, total)
}
