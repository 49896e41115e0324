package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/licensehub/licensehub/internal/domain/pack"
	"github.com/licensehub/licensehub/internal/domain/subscription"
	"github.com/licensehub/licensehub/internal/shared/logger"
)

// ledger bundles what every mutating operation needs: the per-customer lock,
// the transaction and the journal.
type ledger struct {
	subRepo   subscription.Repository
	eventRepo subscription.EventRepository
	locker    CustomerLocker
	txm       TransactionRunner
	logger    logger.Interface
}

// LedgerDeps groups the collaborators shared by the mutating use cases.
type LedgerDeps struct {
	SubscriptionRepo subscription.Repository
	EventRepo        subscription.EventRepository
	Locker           CustomerLocker
	TxManager        TransactionRunner
}

func newLedger(deps LedgerDeps, log logger.Interface) ledger {
	return ledger{
		subRepo:   deps.SubscriptionRepo,
		eventRepo: deps.EventRepo,
		locker:    deps.Locker,
		txm:       deps.TxManager,
		logger:    log,
	}
}

// withOpenSet runs fn under the customer's lock, inside one transaction, with
// the customer's open records row-locked and passed in.
func (l ledger) withOpenSet(ctx context.Context, customerID uint, fn func(ctx context.Context, open []*subscription.Subscription) error) error {
	return l.locker.WithCustomerLock(ctx, customerID, func(ctx context.Context) error {
		return l.txm.RunInTransaction(ctx, func(ctx context.Context) error {
			open, err := l.subRepo.LockOpenByCustomer(ctx, customerID)
			if err != nil {
				l.logger.Errorw("failed to lock customer subscriptions", "customer_id", customerID, "error", err)
				return fmt.Errorf("failed to lock customer subscriptions: %w", err)
			}
			return fn(ctx, open)
		})
	})
}

// save writes sub, creating it when new, and journals the transitions applied
// to it since it was loaded.
func (l ledger) save(ctx context.Context, sub *subscription.Subscription, actor subscription.Actor, metadata map[string]any) error {
	if sub.ID() == 0 {
		if err := l.subRepo.Create(ctx, sub); err != nil {
			return fmt.Errorf("failed to create subscription: %w", err)
		}
	} else if err := l.subRepo.Update(ctx, sub); err != nil {
		return fmt.Errorf("failed to update subscription %s: %w", sub.SID(), err)
	}

	events, err := subscription.NewEvents(sub, actor, metadata)
	if err != nil {
		return fmt.Errorf("failed to build journal entries: %w", err)
	}
	if len(events) == 0 {
		return nil
	}
	if err := l.eventRepo.Append(ctx, events...); err != nil {
		return fmt.Errorf("failed to append journal entries: %w", err)
	}
	return nil
}

// supersede deactivates the customer's current ACTIVE record, if any, in
// favour of the record identified by replacementSID.
func (l ledger) supersede(ctx context.Context, open []*subscription.Subscription, replacementSID string, actor subscription.Actor, now time.Time) error {
	prev, err := subscription.Supersede(open, now)
	if err != nil {
		return err
	}
	if prev == nil {
		return nil
	}
	meta := map[string]any{"reason": "superseded", "superseded_by": replacementSID}
	if err := l.save(ctx, prev, actor, meta); err != nil {
		return err
	}
	l.logger.Infow("previous subscription superseded",
		"subscription_sid", prev.SID(),
		"customer_id", prev.CustomerID(),
		"superseded_by", replacementSID,
	)
	return nil
}

// reloadPack reads the pack again inside the transaction, past the catalog
// cache, so validity and deletion are taken from storage.
func reloadPack(ctx context.Context, repo pack.Repository, id uint) (*pack.Pack, error) {
	p, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload pack: %w", err)
	}
	if p == nil {
		return nil, pack.ErrPackNotFound
	}
	return p, nil
}
