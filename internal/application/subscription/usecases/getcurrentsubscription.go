package usecases

import (
	"context"
	"fmt"

	"github.com/licensehub/licensehub/internal/application/subscription/dto"
	"github.com/licensehub/licensehub/internal/domain/pack"
	"github.com/licensehub/licensehub/internal/domain/subscription"
	"github.com/licensehub/licensehub/internal/shared/biztime"
	"github.com/licensehub/licensehub/internal/shared/logger"
)

type GetCurrentSubscriptionUseCase struct {
	subRepo  subscription.Repository
	packRepo pack.Repository
	clock    biztime.Clock
	logger   logger.Interface
}

func NewGetCurrentSubscriptionUseCase(
	subRepo subscription.Repository,
	packRepo pack.Repository,
	clock biztime.Clock,
	logger logger.Interface,
) *GetCurrentSubscriptionUseCase {
	return &GetCurrentSubscriptionUseCase{
		subRepo:  subRepo,
		packRepo: packRepo,
		clock:    clock,
		logger:   logger,
	}
}

// Execute returns the customer's ACTIVE record. is_valid is false once the
// expiry has passed even if the sweeper has not run yet.
func (uc *GetCurrentSubscriptionUseCase) Execute(ctx context.Context, customerID uint) (*dto.SubscriptionDTO, error) {
	sub, err := uc.subRepo.GetActiveByCustomer(ctx, customerID)
	if err != nil {
		uc.logger.Errorw("failed to get active subscription", "customer_id", customerID, "error", err)
		return nil, fmt.Errorf("failed to get active subscription: %w", err)
	}
	if sub == nil {
		return nil, translateLedgerError(subscription.ErrNoActiveSubscription)
	}

	p, err := uc.packRepo.GetByID(ctx, sub.PackID())
	if err != nil {
		uc.logger.Errorw("failed to get pack", "pack_id", sub.PackID(), "error", err)
		return nil, fmt.Errorf("failed to get pack: %w", err)
	}

	return dto.ToSubscriptionDTO(sub, p, uc.clock.Now()), nil
}
