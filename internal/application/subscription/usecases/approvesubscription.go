package usecases

import (
	"context"
	"fmt"

	"github.com/licensehub/licensehub/internal/application/subscription/dto"
	"github.com/licensehub/licensehub/internal/domain/pack"
	"github.com/licensehub/licensehub/internal/domain/subscription"
	vo "github.com/licensehub/licensehub/internal/domain/subscription/valueobjects"
	"github.com/licensehub/licensehub/internal/shared/biztime"
	"github.com/licensehub/licensehub/internal/shared/logger"
)

// ApproveSubscriptionUseCase approves a REQUESTED record. With autoActivate
// the record goes straight to ACTIVE, superseding any current ACTIVE one;
// otherwise it stops at APPROVED and waits for an assignment.
type ApproveSubscriptionUseCase struct {
	ledger
	packRepo     pack.Repository
	clock        biztime.Clock
	autoActivate bool
}

func NewApproveSubscriptionUseCase(
	deps LedgerDeps,
	packRepo pack.Repository,
	clock biztime.Clock,
	autoActivate bool,
	logger logger.Interface,
) *ApproveSubscriptionUseCase {
	return &ApproveSubscriptionUseCase{
		ledger:       newLedger(deps, logger),
		packRepo:     packRepo,
		clock:        clock,
		autoActivate: autoActivate,
	}
}

func (uc *ApproveSubscriptionUseCase) Execute(ctx context.Context, subscriptionSID string) (*dto.SubscriptionDTO, error) {
	sub, err := uc.subRepo.GetBySID(ctx, subscriptionSID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "subscription_sid", subscriptionSID, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, translateLedgerError(subscription.ErrSubscriptionNotFound)
	}

	p, err := uc.packRepo.GetByID(ctx, sub.PackID())
	if err != nil {
		uc.logger.Errorw("failed to get pack", "pack_id", sub.PackID(), "error", err)
		return nil, fmt.Errorf("failed to get pack: %w", err)
	}
	if p == nil {
		return nil, translateLedgerError(pack.ErrPackNotFound)
	}

	var target *subscription.Subscription
	err = uc.withOpenSet(ctx, sub.CustomerID(), func(ctx context.Context, open []*subscription.Subscription) error {
		target = findByID(open, sub.ID())
		if target == nil || target.Status() != vo.StatusRequested {
			return subscription.ErrNotRequested
		}

		fresh, err := reloadPack(ctx, uc.packRepo, p.ID())
		if err != nil {
			return err
		}
		p = fresh

		now := uc.clock.Now()
		if !uc.autoActivate {
			if err := target.Approve(now); err != nil {
				return err
			}
			return uc.save(ctx, target, subscription.ActorAdmin, nil)
		}

		if p.IsDeleted() {
			return pack.ErrPackDeleted
		}
		if err := uc.supersede(ctx, open, target.SID(), subscription.ActorAdmin, now); err != nil {
			return err
		}
		if err := target.Activate(p, now); err != nil {
			return err
		}
		return uc.save(ctx, target, subscription.ActorAdmin, map[string]any{"approval": "activate"})
	})
	if err != nil {
		uc.logger.Warnw("subscription approval failed", "subscription_sid", subscriptionSID, "error", err)
		return nil, translateLedgerError(err)
	}

	uc.logger.Infow("subscription approved",
		"subscription_sid", target.SID(),
		"customer_id", target.CustomerID(),
		"status", target.Status().String(),
	)
	return dto.ToSubscriptionDTO(target, p, uc.clock.Now()), nil
}

func findByID(subs []*subscription.Subscription, id uint) *subscription.Subscription {
	for _, s := range subs {
		if s.ID() == id {
			return s
		}
	}
	return nil
}
