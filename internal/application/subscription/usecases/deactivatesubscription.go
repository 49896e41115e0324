package usecases

import (
	"context"

	"github.com/licensehub/licensehub/internal/application/subscription/dto"
	"github.com/licensehub/licensehub/internal/domain/subscription"
	"github.com/licensehub/licensehub/internal/shared/biztime"
	"github.com/licensehub/licensehub/internal/shared/logger"
)

// DeactivateSubscriptionUseCase lets a customer end their own ACTIVE subscription.
type DeactivateSubscriptionUseCase struct {
	ledger
	clock biztime.Clock
}

func NewDeactivateSubscriptionUseCase(
	deps LedgerDeps,
	clock biztime.Clock,
	logger logger.Interface,
) *DeactivateSubscriptionUseCase {
	return &DeactivateSubscriptionUseCase{
		ledger: newLedger(deps, logger),
		clock:  clock,
	}
}

func (uc *DeactivateSubscriptionUseCase) Execute(ctx context.Context, customerID uint) (*dto.DeactivationResult, error) {
	var result *dto.DeactivationResult
	err := uc.withOpenSet(ctx, customerID, func(ctx context.Context, open []*subscription.Subscription) error {
		active, err := subscription.CurrentActive(open)
		if err != nil {
			return err
		}
		if active == nil {
			return subscription.ErrNoActiveSubscription
		}

		now := uc.clock.Now()
		if err := active.Deactivate(now); err != nil {
			return err
		}
		if err := uc.save(ctx, active, subscription.ActorCustomer, nil); err != nil {
			return err
		}
		result = &dto.DeactivationResult{SubscriptionID: active.SID(), DeactivatedAt: now}
		return nil
	})
	if err != nil {
		return nil, translateLedgerError(err)
	}

	uc.logger.Infow("subscription deactivated by customer", "subscription_sid", result.SubscriptionID, "customer_id", customerID)
	return result, nil
}
