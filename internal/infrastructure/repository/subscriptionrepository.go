package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/licensehub/licensehub/internal/domain/subscription"
	vo "github.com/licensehub/licensehub/internal/domain/subscription/valueobjects"
	"github.com/licensehub/licensehub/internal/infrastructure/persistence/mappers"
	"github.com/licensehub/licensehub/internal/infrastructure/persistence/models"
	"github.com/licensehub/licensehub/internal/shared/constants"
	"github.com/licensehub/licensehub/internal/shared/db"
	"github.com/licensehub/licensehub/internal/shared/logger"
)

type SubscriptionRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.SubscriptionMapper
	logger logger.Interface
}

func NewSubscriptionRepository(db *gorm.DB, logger logger.Interface) subscription.Repository {
	return &SubscriptionRepositoryImpl{
		db:     db,
		mapper: mappers.NewSubscriptionMapper(),
		logger: logger,
	}
}

func (r *SubscriptionRepositoryImpl) Create(ctx context.Context, sub *subscription.Subscription) error {
	model := r.mapper.ToModel(sub)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create subscription", "customer_id", sub.CustomerID(), "error", err)
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	if err := sub.SetID(model.ID); err != nil {
		return err
	}

	r.logger.Infow("subscription created",
		"subscription_id", model.ID,
		"customer_id", model.CustomerID,
		"status", model.Status,
	)
	return nil
}

// Update is an optimistic write: it only matches the row if nobody bumped
// the version since sub was loaded.
func (r *SubscriptionRepositoryImpl) Update(ctx context.Context, sub *subscription.Subscription) error {
	model := r.mapper.ToModel(sub)

	result := db.GetTxFromContext(ctx, r.db).Model(&models.SubscriptionModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version).
		Updates(map[string]any{
			"status":         model.Status,
			"approved_at":    model.ApprovedAt,
			"assigned_at":    model.AssignedAt,
			"expires_at":     model.ExpiresAt,
			"deactivated_at": model.DeactivatedAt,
			"version":        model.Version + 1,
			"updated_at":     model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update subscription", "subscription_id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update subscription: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		r.logger.Warnw("subscription version conflict",
			"subscription_id", model.ID,
			"version", model.Version,
			"status", model.Status,
		)
		return fmt.Errorf("%w: id=%d version=%d", subscription.ErrConcurrentModification, model.ID, model.Version)
	}

	sub.IncrementVersion()
	return nil
}

func (r *SubscriptionRepositoryImpl) GetByID(ctx context.Context, id uint) (*subscription.Subscription, error) {
	return r.getOne(ctx, "id = ?", id)
}

func (r *SubscriptionRepositoryImpl) GetBySID(ctx context.Context, sid string) (*subscription.Subscription, error) {
	return r.getOne(ctx, "sid = ?", sid)
}

func (r *SubscriptionRepositoryImpl) getOne(ctx context.Context, cond string, arg any) (*subscription.Subscription, error) {
	var model models.SubscriptionModel
	if err := db.GetTxFromContext(ctx, r.db).Where(cond, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription", "condition", cond, "value", arg, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

// GetActiveByCustomer fails loudly if the single-active rule was broken in storage.
func (r *SubscriptionRepositoryImpl) GetActiveByCustomer(ctx context.Context, customerID uint) (*subscription.Subscription, error) {
	var ms []*models.SubscriptionModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("customer_id = ? AND status = ?", customerID, vo.StatusActive).
		Limit(2).
		Find(&ms).Error; err != nil {
		r.logger.Errorw("failed to get active subscription", "customer_id", customerID, "error", err)
		return nil, fmt.Errorf("failed to get active subscription: %w", err)
	}

	subs, err := r.mapper.ToEntities(ms)
	if err != nil {
		return nil, err
	}
	active, err := subscription.CurrentActive(subs)
	if err != nil {
		r.logger.Errorw("customer holds more than one active subscription", "customer_id", customerID)
		return nil, err
	}
	return active, nil
}

func (r *SubscriptionRepositoryImpl) LockOpenByCustomer(ctx context.Context, customerID uint) ([]*subscription.Subscription, error) {
	if !db.InTransaction(ctx) {
		return nil, fmt.Errorf("locking subscriptions of customer %d requires a transaction", customerID)
	}

	var ms []*models.SubscriptionModel
	if err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.ForUpdate()).
		Where("customer_id = ? AND status IN ?", customerID, vo.OpenStatuses()).
		Order("id ASC").
		Find(&ms).Error; err != nil {
		r.logger.Errorw("failed to lock customer subscriptions", "customer_id", customerID, "error", err)
		return nil, fmt.Errorf("failed to lock customer subscriptions: %w", err)
	}
	return r.mapper.ToEntities(ms)
}

// ListByCustomer orders by assigned_at, falling back to created_at for
// records that were never activated.
func (r *SubscriptionRepositoryImpl) ListByCustomer(ctx context.Context, customerID uint, filter subscription.HistoryFilter) ([]*subscription.Subscription, int64, error) {
	q := db.GetTxFromContext(ctx, r.db).Model(&models.SubscriptionModel{}).Where("customer_id = ?", customerID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count customer subscriptions", "customer_id", customerID, "error", err)
		return nil, 0, fmt.Errorf("failed to count customer subscriptions: %w", err)
	}

	dir := filter.Direction()
	var ms []*models.SubscriptionModel
	if err := q.Order(fmt.Sprintf("COALESCE(assigned_at, created_at) %s", dir)).
		Order(fmt.Sprintf("id %s", dir)).
		Scopes(db.Paginate(filter.PageFilter)).
		Find(&ms).Error; err != nil {
		r.logger.Errorw("failed to list customer subscriptions", "customer_id", customerID, "error", err)
		return nil, 0, fmt.Errorf("failed to list customer subscriptions: %w", err)
	}

	subs, err := r.mapper.ToEntities(ms)
	if err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}

func (r *SubscriptionRepositoryImpl) List(ctx context.Context, filter subscription.ListFilter) ([]*subscription.Subscription, int64, error) {
	q := db.GetTxFromContext(ctx, r.db).Model(&models.SubscriptionModel{})
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count subscriptions", "error", err)
		return nil, 0, fmt.Errorf("failed to count subscriptions: %w", err)
	}

	var ms []*models.SubscriptionModel
	if err := q.Order("created_at DESC").Order("id DESC").
		Scopes(db.Paginate(filter.PageFilter)).
		Find(&ms).Error; err != nil {
		r.logger.Errorw("failed to list subscriptions", "error", err)
		return nil, 0, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	subs, err := r.mapper.ToEntities(ms)
	if err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}

func (r *SubscriptionRepositoryImpl) FindOverdue(ctx context.Context, now time.Time, limit int) ([]*subscription.Subscription, error) {
	var ms []*models.SubscriptionModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("status = ? AND expires_at < ?", vo.StatusActive, now).
		Order("expires_at ASC").
		Limit(limit).
		Find(&ms).Error; err != nil {
		r.logger.Errorw("failed to find overdue subscriptions", "error", err)
		return nil, fmt.Errorf("failed to find overdue subscriptions: %w", err)
	}

	// Map one by one so a single corrupt row does not hide the rest.
	subs := make([]*subscription.Subscription, 0, len(ms))
	for _, m := range ms {
		sub, err := r.mapper.ToEntity(m)
		if err != nil {
			r.logger.Warnw("skipping unreadable subscription", "subscription_id", m.ID, "error", err)
			continue
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

func (r *SubscriptionRepositoryImpl) CountByStatus(ctx context.Context, status vo.SubscriptionStatus) (int64, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.SubscriptionModel{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		r.logger.Errorw("failed to count subscriptions by status", "status", status, "error", err)
		return 0, fmt.Errorf("failed to count subscriptions: %w", err)
	}
	return count, nil
}

// SumActivePrice adds prices in decimal, not in SQL, so SQLite's REAL
// storage cannot introduce rounding.
func (r *SubscriptionRepositoryImpl) SumActivePrice(ctx context.Context) (decimal.Decimal, error) {
	var prices []decimal.Decimal
	if err := db.GetTxFromContext(ctx, r.db).
		Table(constants.TableSubscriptions+" s").
		Joins("JOIN "+constants.TableSubscriptionPacks+" p ON p.id = s.pack_id").
		Where("s.status = ?", vo.StatusActive).
		Pluck("p.price", &prices).Error; err != nil {
		r.logger.Errorw("failed to sum active subscription prices", "error", err)
		return decimal.Zero, fmt.Errorf("failed to sum active subscription prices: %w", err)
	}
	return decimal.Sum(decimal.Zero, prices...), nil
}

func (r *SubscriptionRepositoryImpl) ListRecentlyUpdated(ctx context.Context, limit int) ([]*subscription.Subscription, error) {
	var ms []*models.SubscriptionModel
	if err := db.GetTxFromContext(ctx, r.db).
		Order("updated_at DESC").Order("id DESC").
		Limit(limit).
		Find(&ms).Error; err != nil {
		r.logger.Errorw("failed to list recent subscriptions", "error", err)
		return nil, fmt.Errorf("failed to list recent subscriptions: %w", err)
	}
	return r.mapper.ToEntities(ms)
}
