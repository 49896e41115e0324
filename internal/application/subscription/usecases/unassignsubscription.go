package usecases

import (
	"context"
	"fmt"

	"github.com/licensehub/licensehub/internal/application/subscription/dto"
	"github.com/licensehub/licensehub/internal/domain/subscription"
	"github.com/licensehub/licensehub/internal/shared/biztime"
	"github.com/licensehub/licensehub/internal/shared/logger"
)

type UnassignSubscriptionCommand struct {
	CustomerID      uint
	SubscriptionSID string
}

// UnassignSubscriptionUseCase ends one of a customer's subscriptions on an
// admin's behalf. Records that are not ACTIVE are left as they are.
type UnassignSubscriptionUseCase struct {
	ledger
	clock biztime.Clock
}

func NewUnassignSubscriptionUseCase(
	deps LedgerDeps,
	clock biztime.Clock,
	logger logger.Interface,
) *UnassignSubscriptionUseCase {
	return &UnassignSubscriptionUseCase{
		ledger: newLedger(deps, logger),
		clock:  clock,
	}
}

func (uc *UnassignSubscriptionUseCase) Execute(ctx context.Context, cmd UnassignSubscriptionCommand) (*dto.UnassignResult, error) {
	sub, err := uc.subRepo.GetBySID(ctx, cmd.SubscriptionSID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "subscription_sid", cmd.SubscriptionSID, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil || sub.CustomerID() != cmd.CustomerID {
		return nil, translateLedgerError(subscription.ErrSubscriptionNotFound)
	}

	result := &dto.UnassignResult{SubscriptionID: sub.SID()}
	err = uc.withOpenSet(ctx, cmd.CustomerID, func(ctx context.Context, open []*subscription.Subscription) error {
		current := findByID(open, sub.ID())
		if current == nil || !current.IsActive() {
			// Already terminal or never activated. Report the stored status.
			latest, err := uc.subRepo.GetByID(ctx, sub.ID())
			if err != nil {
				return fmt.Errorf("failed to reload subscription: %w", err)
			}
			if latest != nil {
				result.Status = latest.Status().String()
			}
			return nil
		}

		if err := current.Deactivate(uc.clock.Now()); err != nil {
			return err
		}
		if err := uc.save(ctx, current, subscription.ActorAdmin, map[string]any{"reason": "unassigned"}); err != nil {
			return err
		}
		result.Status = current.Status().String()
		result.Changed = true
		return nil
	})
	if err != nil {
		uc.logger.Warnw("subscription unassign failed", "subscription_sid", cmd.SubscriptionSID, "error", err)
		return nil, translateLedgerError(err)
	}

	if result.Changed {
		uc.logger.Infow("subscription unassigned", "subscription_sid", sub.SID(), "customer_id", cmd.CustomerID)
	}
	return result, nil
}
