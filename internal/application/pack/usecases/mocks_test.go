package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/licensehub/licensehub/internal/domain/pack"
	"github.com/licensehub/licensehub/internal/shared/biztime"
)

type mockPackRepository struct {
	CreateFunc      func(ctx context.Context, p *pack.Pack) error
	UpdateFunc      func(ctx context.Context, p *pack.Pack) error
	GetByIDFunc     func(ctx context.Context, id uint) (*pack.Pack, error)
	GetByIDsFunc    func(ctx context.Context, ids []uint) (map[uint]*pack.Pack, error)
	GetBySIDFunc    func(ctx context.Context, sid string) (*pack.Pack, error)
	GetBySKUFunc    func(ctx context.Context, sku string) (*pack.Pack, error)
	ExistsBySKUFunc func(ctx context.Context, sku string, excludeID uint) (bool, error)
	ListFunc        func(ctx context.Context, filter pack.ListFilter) ([]*pack.Pack, int64, error)
}

func (m *mockPackRepository) Create(ctx context.Context, p *pack.Pack) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	return nil
}

func (m *mockPackRepository) Update(ctx context.Context, p *pack.Pack) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, p)
	}
	return nil
}

func (m *mockPackRepository) GetByID(ctx context.Context, id uint) (*pack.Pack, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockPackRepository) GetByIDs(ctx context.Context, ids []uint) (map[uint]*pack.Pack, error) {
	if m.GetByIDsFunc != nil {
		return m.GetByIDsFunc(ctx, ids)
	}
	return map[uint]*pack.Pack{}, nil
}

func (m *mockPackRepository) GetBySID(ctx context.Context, sid string) (*pack.Pack, error) {
	if m.GetBySIDFunc != nil {
		return m.GetBySIDFunc(ctx, sid)
	}
	return nil, nil
}

func (m *mockPackRepository) GetBySKU(ctx context.Context, sku string) (*pack.Pack, error) {
	if m.GetBySKUFunc != nil {
		return m.GetBySKUFunc(ctx, sku)
	}
	return nil, nil
}

func (m *mockPackRepository) ExistsBySKU(ctx context.Context, sku string, excludeID uint) (bool, error) {
	if m.ExistsBySKUFunc != nil {
		return m.ExistsBySKUFunc(ctx, sku, excludeID)
	}
	return false, nil
}

func (m *mockPackRepository) List(ctx context.Context, filter pack.ListFilter) ([]*pack.Pack, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

var testNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func testClock() biztime.Clock {
	return biztime.NewFixedClock(testNow)
}

func existingPack(t *testing.T, id uint, sku string) *pack.Pack {
	t.Helper()
	p, err := pack.ReconstructPack(pack.ReconstructParams{
		ID:             id,
		SID:            "pack_existing" + sku,
		Name:           "Pack " + sku,
		SKU:            sku,
		Price:          decimal.RequireFromString("19.99"),
		ValidityMonths: 6,
		CreatedAt:      testNow.Add(-24 * time.Hour),
		UpdatedAt:      testNow.Add(-24 * time.Hour),
	})
	require.NoError(t, err)
	return p
}
