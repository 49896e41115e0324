package usecases

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/licensehub/licensehub/internal/domain/pack"
	apperrors "github.com/licensehub/licensehub/internal/shared/errors"
	"github.com/licensehub/licensehub/internal/shared/logger"
)

func TestUpdatePackUseCase_Execute_PartialUpdate(t *testing.T) {
	p := existingPack(t, 3, "pro")
	var saved *pack.Pack
	repo := &mockPackRepository{
		GetBySIDFunc: func(ctx context.Context, sid string) (*pack.Pack, error) { return p, nil },
		UpdateFunc: func(ctx context.Context, p *pack.Pack) error {
			saved = p
			return nil
		},
	}
	uc := NewUpdatePackUseCase(repo, testClock(), logger.NewDiscard())

	price := decimal.RequireFromString("25")
	result, err := uc.Execute(context.Background(), UpdatePackCommand{SID: p.SID(), Price: &price})

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "25.00", result.Price)
	assert.Equal(t, "Pack pro", result.Name)
	assert.Equal(t, 6, result.ValidityMonths)
	assert.Equal(t, testNow, result.UpdatedAt)
}

func TestUpdatePackUseCase_Execute_NotFound(t *testing.T) {
	uc := NewUpdatePackUseCase(&mockPackRepository{}, testClock(), logger.NewDiscard())
	name := "x"

	_, err := uc.Execute(context.Background(), UpdatePackCommand{SID: "pack_missing", Name: &name})

	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestUpdatePackUseCase_Execute_SKUConflict(t *testing.T) {
	p := existingPack(t, 3, "pro")
	var excluded uint
	repo := &mockPackRepository{
		GetBySIDFunc: func(ctx context.Context, sid string) (*pack.Pack, error) { return p, nil },
		ExistsBySKUFunc: func(ctx context.Context, sku string, excludeID uint) (bool, error) {
			excluded = excludeID
			return sku == "basic", nil
		},
		UpdateFunc: func(ctx context.Context, p *pack.Pack) error {
			t.Fatal("must not update on conflict")
			return nil
		},
	}
	uc := NewUpdatePackUseCase(repo, testClock(), logger.NewDiscard())
	sku := "basic"

	_, err := uc.Execute(context.Background(), UpdatePackCommand{SID: p.SID(), SKU: &sku})

	assert.True(t, apperrors.IsConflictError(err))
	assert.Equal(t, uint(3), excluded)
}

func TestUpdatePackUseCase_Execute_SameSKUSkipsCheck(t *testing.T) {
	p := existingPack(t, 3, "pro")
	repo := &mockPackRepository{
		GetBySIDFunc: func(ctx context.Context, sid string) (*pack.Pack, error) { return p, nil },
		ExistsBySKUFunc: func(ctx context.Context, sku string, excludeID uint) (bool, error) {
			t.Fatal("unchanged sku needs no uniqueness check")
			return false, nil
		},
	}
	uc := NewUpdatePackUseCase(repo, testClock(), logger.NewDiscard())
	sku := "PRO"

	_, err := uc.Execute(context.Background(), UpdatePackCommand{SID: p.SID(), SKU: &sku})

	require.NoError(t, err)
}

func TestUpdatePackUseCase_Execute_InvalidValidityLeavesPackUntouched(t *testing.T) {
	p := existingPack(t, 3, "pro")
	repo := &mockPackRepository{
		GetBySIDFunc: func(ctx context.Context, sid string) (*pack.Pack, error) { return p, nil },
	}
	uc := NewUpdatePackUseCase(repo, testClock(), logger.NewDiscard())
	name := "Renamed"
	months := 24

	_, err := uc.Execute(context.Background(), UpdatePackCommand{SID: p.SID(), Name: &name, ValidityMonths: &months})

	assert.True(t, apperrors.IsValidationError(err))
	assert.Equal(t, "Pack pro", p.Name())
	assert.Equal(t, 6, p.ValidityMonths())
}
