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

type SeedPackItem struct {
	Name           string
	Description    string
	SKU            string
	Price          decimal.Decimal
	ValidityMonths int
}

// SeedPacksUseCase creates catalog entries in bulk. Skus that already exist
// among live packs are skipped, so running it twice changes nothing.
type SeedPacksUseCase struct {
	packRepo pack.Repository
	clock    biztime.Clock
	logger   logger.Interface
}

func NewSeedPacksUseCase(
	packRepo pack.Repository,
	clock biztime.Clock,
	logger logger.Interface,
) *SeedPacksUseCase {
	return &SeedPacksUseCase{
		packRepo: packRepo,
		clock:    clock,
		logger:   logger,
	}
}

func (uc *SeedPacksUseCase) Execute(ctx context.Context, items []SeedPackItem) (*dto.SeedResult, error) {
	result := &dto.SeedResult{Created: []string{}, Skipped: []string{}}
	now := uc.clock.Now()

	for i, item := range items {
		p, err := pack.NewPack(item.Name, item.Description, item.SKU, item.Price, item.ValidityMonths, now)
		if err != nil {
			return result, translatePackError(fmt.Errorf("seed entry %d (%s): %w", i+1, item.SKU, err))
		}

		exists, err := uc.packRepo.ExistsBySKU(ctx, p.SKU(), 0)
		if err != nil {
			return result, fmt.Errorf("failed to check sku existence: %w", err)
		}
		if exists {
			uc.logger.Debugw("seed pack already present", "sku", p.SKU())
			result.Skipped = append(result.Skipped, p.SKU())
			continue
		}

		if err := uc.packRepo.Create(ctx, p); err != nil {
			if errors.Is(err, pack.ErrSKUExists) {
				result.Skipped = append(result.Skipped, p.SKU())
				continue
			}
			uc.logger.Errorw("failed to seed pack", "sku", p.SKU(), "error", err)
			return result, fmt.Errorf("failed to seed pack %s: %w", p.SKU(), err)
		}
		result.Created = append(result.Created, p.SKU())
	}

	uc.logger.Infow("pack seed finished", "created", len(result.Created), "skipped", len(result.Skipped))
	return result, nil
}
