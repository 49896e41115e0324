package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/licensehub/licensehub/internal/domain/pack"
	apperrors "github.com/licensehub/licensehub/internal/shared/errors"
	"github.com/licensehub/licensehub/internal/shared/logger"
)

func TestListPacksUseCase_Execute(t *testing.T) {
	var got pack.ListFilter
	repo := &mockPackRepository{
		ListFunc: func(ctx context.Context, filter pack.ListFilter) ([]*pack.Pack, int64, error) {
			got = filter
			return []*pack.Pack{existingPack(t, 2, "pro"), existingPack(t, 1, "basic")}, 12, nil
		},
	}
	uc := NewListPacksUseCase(repo, logger.NewDiscard())

	result, err := uc.Execute(context.Background(), ListPacksQuery{Page: 2, Limit: 5})

	require.NoError(t, err)
	assert.True(t, got.ExcludeDeleted)
	assert.Equal(t, 5, got.Offset())
	assert.Equal(t, int64(12), result.Total)
	assert.Equal(t, 2, result.Page)
	assert.Equal(t, 5, result.Limit)
	require.Len(t, result.Packs, 2)
	assert.Equal(t, "pro", result.Packs[0].SKU)
}

func TestListPacksUseCase_Execute_DefaultsAndDeleted(t *testing.T) {
	var got pack.ListFilter
	repo := &mockPackRepository{
		ListFunc: func(ctx context.Context, filter pack.ListFilter) ([]*pack.Pack, int64, error) {
			got = filter
			return nil, 0, nil
		},
	}
	uc := NewListPacksUseCase(repo, logger.NewDiscard())

	result, err := uc.Execute(context.Background(), ListPacksQuery{IncludeDeleted: true})

	require.NoError(t, err)
	assert.False(t, got.ExcludeDeleted)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 20, result.Limit)
	assert.NotNil(t, result.Packs)
}

func TestGetPackUseCase_Execute(t *testing.T) {
	p := existingPack(t, 2, "pro")
	repo := &mockPackRepository{
		GetBySIDFunc: func(ctx context.Context, sid string) (*pack.Pack, error) {
			if sid == p.SID() {
				return p, nil
			}
			return nil, nil
		},
	}
	uc := NewGetPackUseCase(repo, logger.NewDiscard())

	result, err := uc.Execute(context.Background(), p.SID())
	require.NoError(t, err)
	assert.Equal(t, "19.99", result.Price)

	_, err = uc.Execute(context.Background(), "pack_nope")
	assert.True(t, apperrors.IsNotFoundError(err))
}
