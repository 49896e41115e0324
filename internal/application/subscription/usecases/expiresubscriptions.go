package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/licensehub/licensehub/internal/domain/subscription"
	"github.com/licensehub/licensehub/internal/shared/biztime"
	"github.com/licensehub/licensehub/internal/shared/logger"
)

const defaultExpireBatchSize = 500

// ExpireSubscriptionsUseCase moves ACTIVE subscriptions past their expiry to
// EXPIRED. Each record is written with a version check, so one that changed
// since it was read (deactivated, superseded) is skipped, never downgraded.
type ExpireSubscriptionsUseCase struct {
	subRepo   subscription.Repository
	eventRepo subscription.EventRepository
	txm       TransactionRunner
	clock     biztime.Clock
	batchSize int
	logger    logger.Interface
}

func NewExpireSubscriptionsUseCase(
	subRepo subscription.Repository,
	eventRepo subscription.EventRepository,
	txm TransactionRunner,
	clock biztime.Clock,
	logger logger.Interface,
) *ExpireSubscriptionsUseCase {
	return &ExpireSubscriptionsUseCase{
		subRepo:   subRepo,
		eventRepo: eventRepo,
		txm:       txm,
		clock:     clock,
		batchSize: defaultExpireBatchSize,
		logger:    logger,
	}
}

// Execute expires every overdue subscription and returns how many it marked.
// Per-record failures are logged and skipped.
func (uc *ExpireSubscriptionsUseCase) Execute(ctx context.Context) (int, error) {
	now := uc.clock.Now()
	marked := 0

	for {
		overdue, err := uc.subRepo.FindOverdue(ctx, now, uc.batchSize)
		if err != nil {
			return marked, fmt.Errorf("failed to find expired subscriptions: %w", err)
		}
		if len(overdue) == 0 {
			break
		}

		uc.logger.Infow("found expired subscriptions to process", "count", len(overdue))

		batchMarked := 0
		for _, sub := range overdue {
			if err := ctx.Err(); err != nil {
				return marked, err
			}
			if uc.expireOne(ctx, sub, now) {
				batchMarked++
			}
		}
		marked += batchMarked

		// A short batch is the last one. A batch where nothing could be
		// marked would be returned again, so stop there too.
		if len(overdue) < uc.batchSize || batchMarked == 0 {
			break
		}
	}

	if marked > 0 {
		uc.logger.Infow("expired subscriptions marked", "count", marked)
	}
	return marked, nil
}

func (uc *ExpireSubscriptionsUseCase) expireOne(ctx context.Context, sub *subscription.Subscription, now time.Time) bool {
	expiresAt := sub.ExpiresAt()
	if err := sub.Expire(now); err != nil {
		uc.logger.Warnw("failed to mark subscription as expired",
			"subscription_id", sub.ID(),
			"subscription_sid", sub.SID(),
			"current_status", sub.Status().String(),
			"error", err,
		)
		return false
	}

	err := uc.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.subRepo.Update(ctx, sub); err != nil {
			return err
		}
		meta := map[string]any{}
		if expiresAt != nil {
			meta["expires_at"] = biztime.FormatMetadataTime(*expiresAt)
		}
		events, err := subscription.NewEvents(sub, subscription.ActorSystem, meta)
		if err != nil {
			return err
		}
		return uc.eventRepo.Append(ctx, events...)
	})
	if errors.Is(err, subscription.ErrConcurrentModification) {
		uc.logger.Infow("subscription changed concurrently, not expiring",
			"subscription_id", sub.ID(),
			"subscription_sid", sub.SID(),
		)
		return false
	}
	if err != nil {
		uc.logger.Errorw("failed to update expired subscription",
			"subscription_id", sub.ID(),
			"subscription_sid", sub.SID(),
			"error", err,
		)
		return false
	}

	uc.logger.Debugw("subscription marked as expired",
		"subscription_id", sub.ID(),
		"subscription_sid", sub.SID(),
	)
	return true
}
