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

func TestDeletePackUseCase_Execute(t *testing.T) {
	p := existingPack(t, 4, "legacy")
	var saved *pack.Pack
	repo := &mockPackRepository{
		GetBySIDFunc: func(ctx context.Context, sid string) (*pack.Pack, error) { return p, nil },
		UpdateFunc: func(ctx context.Context, p *pack.Pack) error {
			saved = p
			return nil
		},
	}
	uc := NewDeletePackUseCase(repo, testClock(), logger.NewDiscard())

	require.NoError(t, uc.Execute(context.Background(), p.SID()))
	require.NotNil(t, saved)
	assert.True(t, saved.IsDeleted())
	require.NotNil(t, saved.DeletedAt())
	assert.Equal(t, testNow, *saved.DeletedAt())
}

func TestDeletePackUseCase_Execute_NotFound(t *testing.T) {
	uc := NewDeletePackUseCase(&mockPackRepository{}, testClock(), logger.NewDiscard())

	err := uc.Execute(context.Background(), "pack_gone")

	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestDeletePackUseCase_Execute_ConcurrentDelete(t *testing.T) {
	p := existingPack(t, 4, "legacy")
	repo := &mockPackRepository{
		GetBySIDFunc: func(ctx context.Context, sid string) (*pack.Pack, error) { return p, nil },
		UpdateFunc: func(ctx context.Context, p *pack.Pack) error {
			return pack.ErrPackNotFound
		},
	}
	uc := NewDeletePackUseCase(repo, testClock(), logger.NewDiscard())

	err := uc.Execute(context.Background(), p.SID())

	assert.True(t, apperrors.IsNotFoundError(err))
}
