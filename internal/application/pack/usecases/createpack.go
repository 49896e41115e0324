package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/licensehub/licensehub/internal/application/pack/dto"
	"github.com/licensehub/licensehub/internal/domain/pack"
	"github.com/licensehub/licensehub/internal/shared/biztime"
	"github.com/licensehub/licensehub/internal/shared/logger"
)

type CreatePackCommand struct {
	Name           string
	Description    string
	SKU            string
	Price          decimal.Decimal
	ValidityMonths int
}

type CreatePackUseCase struct {
	packRepo pack.Repository
	clock    biztime.Clock
	logger   logger.Interface
}

func NewCreatePackUseCase(
	packRepo pack.Repository,
	clock biztime.Clock,
	logger logger.Interface,
) *CreatePackUseCase {
	return &CreatePackUseCase{
		packRepo: packRepo,
		clock:    clock,
		logger:   logger,
	}
}

func (uc *CreatePackUseCase) Execute(ctx context.Context, cmd CreatePackCommand) (*dto.PackDTO, error) {
	p, err := pack.NewPack(cmd.Name, cmd.Description, cmd.SKU, cmd.Price, cmd.ValidityMonths, uc.clock.Now())
	if err != nil {
		uc.logger.Warnw("invalid pack", "sku", cmd.SKU, "error", err)
		return nil, translatePackError(err)
	}

	exists, err := uc.packRepo.ExistsBySKU(ctx, p.SKU(), 0)
	if err != nil {
		uc.logger.Errorw("failed to check sku existence", "sku", p.SKU(), "error", err)
		return nil, fmt.Errorf("failed to check sku existence: %w", err)
	}
	if exists {
		return nil, translatePackError(fmt.Errorf("%w: %s", pack.ErrSKUExists, p.SKU()))
	}

	// The existence check above can race with another create. The live sku
	// index rejects the loser, reported like the check would have.
	if err := uc.packRepo.Create(ctx, p); err != nil {
		if errors.Is(err, pack.ErrSKUExists) {
			uc.logger.Warnw("sku taken by a concurrent create", "sku", p.SKU())
			return nil, translatePackError(err)
		}
		uc.logger.Errorw("failed to persist pack", "sku", p.SKU(), "error", err)
		return nil, fmt.Errorf("failed to persist pack: %w", err)
	}

	uc.logger.Infow("pack created", "pack_id", p.ID(), "pack_sid", p.SID(), "sku", p.SKU())
	return dto.ToPackDTO(p), nil
}
