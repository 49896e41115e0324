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

type RequestSubscriptionCommand struct {
	CustomerID uint
	SKU        string
}

// RequestSubscriptionUseCase records a customer's request for a pack. It is
// refused while the customer holds an ACTIVE subscription.
type RequestSubscriptionUseCase struct {
	ledger
	packRepo pack.Repository
	clock    biztime.Clock
}

func NewRequestSubscriptionUseCase(
	deps LedgerDeps,
	packRepo pack.Repository,
	clock biztime.Clock,
	logger logger.Interface,
) *RequestSubscriptionUseCase {
	return &RequestSubscriptionUseCase{
		ledger:   newLedger(deps, logger),
		packRepo: packRepo,
		clock:    clock,
	}
}

func (uc *RequestSubscriptionUseCase) Execute(ctx context.Context, cmd RequestSubscriptionCommand) (*dto.SubscriptionDTO, error) {
	p, err := uc.packRepo.GetBySKU(ctx, cmd.SKU)
	if err != nil {
		uc.logger.Errorw("failed to get pack by sku", "sku", cmd.SKU, "error", err)
		return nil, fmt.Errorf("failed to get pack: %w", err)
	}
	if p == nil {
		return nil, translateLedgerError(fmt.Errorf("%w: sku %s", pack.ErrPackNotFound, cmd.SKU))
	}

	var created *subscription.Subscription
	err = uc.withOpenSet(ctx, cmd.CustomerID, func(ctx context.Context, open []*subscription.Subscription) error {
		fresh, err := reloadPack(ctx, uc.packRepo, p.ID())
		if err != nil {
			return err
		}
		if fresh.IsDeleted() {
			return fmt.Errorf("%w: sku %s", pack.ErrPackNotFound, cmd.SKU)
		}
		p = fresh

		active, err := subscription.CurrentActive(open)
		if err != nil {
			return err
		}
		if err := subscription.EnsureNoActive(active); err != nil {
			return err
		}

		sub, err := subscription.NewRequestedSubscription(cmd.CustomerID, p.ID(), uc.clock.Now())
		if err != nil {
			return err
		}
		if err := uc.save(ctx, sub, subscription.ActorCustomer, map[string]any{"pack_sku": p.SKU()}); err != nil {
			return err
		}
		created = sub
		return nil
	})
	if err != nil {
		uc.logger.Warnw("subscription request failed", "customer_id", cmd.CustomerID, "sku", cmd.SKU, "error", err)
		return nil, translateLedgerError(err)
	}

	uc.logger.Infow("subscription requested",
		"subscription_sid", created.SID(),
		"customer_id", cmd.CustomerID,
		"pack_sid", p.SID(),
	)
	return dto.ToSubscriptionDTO(created, p, uc.clock.Now()), nil
}
