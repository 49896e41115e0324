package usecases

import (
	"context"
	"fmt"

	"github.com/licensehub/licensehub/internal/application/subscription/dto"
	"github.com/licensehub/licensehub/internal/domain/customer"
	"github.com/licensehub/licensehub/internal/domain/pack"
	"github.com/licensehub/licensehub/internal/domain/subscription"
	"github.com/licensehub/licensehub/internal/shared/biztime"
	"github.com/licensehub/licensehub/internal/shared/logger"
)

type AssignSubscriptionCommand struct {
	CustomerID uint
	PackSID    string
}

// AssignSubscriptionUseCase gives a customer an ACTIVE subscription to a
// pack directly. A waiting request or approval for the same pack is
// activated in place; otherwise a new record is created.
type AssignSubscriptionUseCase struct {
	ledger
	packRepo     pack.Repository
	customerRepo customer.Repository
	clock        biztime.Clock
}

func NewAssignSubscriptionUseCase(
	deps LedgerDeps,
	packRepo pack.Repository,
	customerRepo customer.Repository,
	clock biztime.Clock,
	logger logger.Interface,
) *AssignSubscriptionUseCase {
	return &AssignSubscriptionUseCase{
		ledger:       newLedger(deps, logger),
		packRepo:     packRepo,
		customerRepo: customerRepo,
		clock:        clock,
	}
}

func (uc *AssignSubscriptionUseCase) Execute(ctx context.Context, cmd AssignSubscriptionCommand) (*dto.SubscriptionDTO, error) {
	c, err := uc.customerRepo.GetByID(ctx, cmd.CustomerID)
	if err != nil {
		uc.logger.Errorw("failed to get customer", "customer_id", cmd.CustomerID, "error", err)
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	if c == nil {
		return nil, translateLedgerError(errCustomerNotFound)
	}

	p, err := uc.packRepo.GetBySID(ctx, cmd.PackSID)
	if err != nil {
		uc.logger.Errorw("failed to get pack", "pack_sid", cmd.PackSID, "error", err)
		return nil, fmt.Errorf("failed to get pack: %w", err)
	}
	if p == nil {
		return nil, translateLedgerError(pack.ErrPackNotFound)
	}

	var assigned *subscription.Subscription
	err = uc.withOpenSet(ctx, cmd.CustomerID, func(ctx context.Context, open []*subscription.Subscription) error {
		fresh, err := reloadPack(ctx, uc.packRepo, p.ID())
		if err != nil {
			return err
		}
		if fresh.IsDeleted() {
			return pack.ErrPackNotFound
		}
		p = fresh

		now := uc.clock.Now()
		sub := subscription.WaitingFor(open, p.ID())
		if sub == nil {
			sub, err = subscription.NewAssignedSubscription(cmd.CustomerID, p, now)
			if err != nil {
				return err
			}
		}

		if err := uc.supersede(ctx, open, sub.SID(), subscription.ActorAdmin, now); err != nil {
			return err
		}
		if sub.ID() != 0 {
			if err := sub.Activate(p, now); err != nil {
				return err
			}
		}
		if err := uc.save(ctx, sub, subscription.ActorAdmin, map[string]any{"pack_sku": p.SKU()}); err != nil {
			return err
		}
		assigned = sub
		return nil
	})
	if err != nil {
		uc.logger.Warnw("subscription assignment failed", "customer_id", cmd.CustomerID, "pack_sid", cmd.PackSID, "error", err)
		return nil, translateLedgerError(err)
	}

	uc.logger.Infow("subscription assigned",
		"subscription_sid", assigned.SID(),
		"customer_id", cmd.CustomerID,
		"pack_sid", p.SID(),
		"expires_at", assigned.ExpiresAt(),
	)
	return dto.ToSubscriptionDTO(assigned, p, uc.clock.Now()), nil
}
