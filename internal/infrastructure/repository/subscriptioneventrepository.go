package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/licensehub/licensehub/internal/domain/subscription"
	"github.com/licensehub/licensehub/internal/infrastructure/persistence/mappers"
	"github.com/licensehub/licensehub/internal/infrastructure/persistence/models"
	"github.com/licensehub/licensehub/internal/shared/db"
	"github.com/licensehub/licensehub/internal/shared/logger"
)

type SubscriptionEventRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.SubscriptionEventMapper
	logger logger.Interface
}

func NewSubscriptionEventRepository(db *gorm.DB, logger logger.Interface) subscription.EventRepository {
	return &SubscriptionEventRepositoryImpl{
		db:     db,
		mapper: mappers.NewSubscriptionEventMapper(),
		logger: logger,
	}
}

func (r *SubscriptionEventRepositoryImpl) Append(ctx context.Context, events ...*subscription.Event) error {
	if len(events) == 0 {
		return nil
	}

	ms := make([]*models.SubscriptionEventModel, 0, len(events))
	for _, e := range events {
		m, err := r.mapper.ToModel(e)
		if err != nil {
			return err
		}
		ms = append(ms, m)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(&ms).Error; err != nil {
		r.logger.Errorw("failed to append subscription events",
			"subscription_id", events[0].SubscriptionID(),
			"count", len(events),
			"error", err,
		)
		return fmt.Errorf("failed to append subscription events: %w", err)
	}

	for i, m := range ms {
		events[i].SetID(m.ID)
	}
	return nil
}

func (r *SubscriptionEventRepositoryImpl) ListBySubscription(ctx context.Context, subscriptionID uint) ([]*subscription.Event, error) {
	var ms []*models.SubscriptionEventModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("subscription_id = ?", subscriptionID).
		Order("occurred_at ASC").Order("id ASC").
		Find(&ms).Error; err != nil {
		r.logger.Errorw("failed to list subscription events", "subscription_id", subscriptionID, "error", err)
		return nil, fmt.Errorf("failed to list subscription events: %w", err)
	}

	events := make([]*subscription.Event, 0, len(ms))
	for _, m := range ms {
		e, err := r.mapper.ToEntity(m)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}
