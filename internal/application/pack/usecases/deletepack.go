package usecases

import (
	"context"
	"fmt"

	"github.com/licensehub/licensehub/internal/domain/pack"
	"github.com/licensehub/licensehub/internal/shared/biztime"
	"github.com/licensehub/licensehub/internal/shared/logger"
)

// DeletePackUseCase soft-deletes a pack. Subscriptions keep pointing at it.
type DeletePackUseCase struct {
	packRepo pack.Repository
	clock    biztime.Clock
	logger   logger.Interface
}

func NewDeletePackUseCase(
	packRepo pack.Repository,
	clock biztime.Clock,
	logger logger.Interface,
) *DeletePackUseCase {
	return &DeletePackUseCase{
		packRepo: packRepo,
		clock:    clock,
		logger:   logger,
	}
}

func (uc *DeletePackUseCase) Execute(ctx context.Context, sid string) error {
	p, err := uc.packRepo.GetBySID(ctx, sid)
	if err != nil {
		uc.logger.Errorw("failed to get pack", "pack_sid", sid, "error", err)
		return fmt.Errorf("failed to get pack: %w", err)
	}
	if p == nil {
		return translatePackError(pack.ErrPackNotFound)
	}

	if err := p.MarkDeleted(uc.clock.Now()); err != nil {
		return translatePackError(err)
	}

	if err := uc.packRepo.Update(ctx, p); err != nil {
		uc.logger.Errorw("failed to delete pack", "pack_sid", sid, "error", err)
		return translatePackError(fmt.Errorf("failed to delete pack: %w", err))
	}

	uc.logger.Infow("pack deleted", "pack_id", p.ID(), "pack_sid", sid)
	return nil
}
