package usecases

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/licensehub/licensehub/internal/application/pack/dto"
	"github.com/licensehub/licensehub/internal/domain/pack"
	"github.com/licensehub/licensehub/internal/shared/biztime"
	"github.com/licensehub/licensehub/internal/shared/logger"
)

// UpdatePackCommand is a partial update; nil fields are left unchanged.
type UpdatePackCommand struct {
	SID            string
	Name           *string
	Description    *string
	SKU            *string
	Price          *decimal.Decimal
	ValidityMonths *int
}

type UpdatePackUseCase struct {
	packRepo pack.Repository
	clock    biztime.Clock
	logger   logger.Interface
}

func NewUpdatePackUseCase(
	packRepo pack.Repository,
	clock biztime.Clock,
	logger logger.Interface,
) *UpdatePackUseCase {
	return &UpdatePackUseCase{
		packRepo: packRepo,
		clock:    clock,
		logger:   logger,
	}
}

func (uc *UpdatePackUseCase) Execute(ctx context.Context, cmd UpdatePackCommand) (*dto.PackDTO, error) {
	p, err := uc.packRepo.GetBySID(ctx, cmd.SID)
	if err != nil {
		uc.logger.Errorw("failed to get pack", "pack_sid", cmd.SID, "error", err)
		return nil, fmt.Errorf("failed to get pack: %w", err)
	}
	if p == nil {
		return nil, translatePackError(pack.ErrPackNotFound)
	}

	patch := pack.Patch{
		Name:           cmd.Name,
		Description:    cmd.Description,
		SKU:            cmd.SKU,
		Price:          cmd.Price,
		ValidityMonths: cmd.ValidityMonths,
	}

	if p.SKUChanged(patch) {
		if err := pack.ValidateSKU(*cmd.SKU); err != nil {
			return nil, translatePackError(err)
		}
		exists, err := uc.packRepo.ExistsBySKU(ctx, *cmd.SKU, p.ID())
		if err != nil {
			uc.logger.Errorw("failed to check sku existence", "sku", *cmd.SKU, "error", err)
			return nil, fmt.Errorf("failed to check sku existence: %w", err)
		}
		if exists {
			return nil, translatePackError(fmt.Errorf("%w: %s", pack.ErrSKUExists, pack.NormalizeSKU(*cmd.SKU)))
		}
	}

	if err := p.Apply(patch, uc.clock.Now()); err != nil {
		uc.logger.Warnw("invalid pack update", "pack_sid", cmd.SID, "error", err)
		return nil, translatePackError(err)
	}

	if err := uc.packRepo.Update(ctx, p); err != nil {
		uc.logger.Errorw("failed to update pack", "pack_sid", cmd.SID, "error", err)
		return nil, translatePackError(fmt.Errorf("failed to update pack: %w", err))
	}

	uc.logger.Infow("pack updated", "pack_id", p.ID(), "pack_sid", p.SID())
	return dto.ToPackDTO(p), nil
}
