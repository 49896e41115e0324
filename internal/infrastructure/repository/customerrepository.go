package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/licensehub/licensehub/internal/domain/customer"
	"github.com/licensehub/licensehub/internal/infrastructure/persistence/mappers"
	"github.com/licensehub/licensehub/internal/infrastructure/persistence/models"
	"github.com/licensehub/licensehub/internal/shared/db"
	"github.com/licensehub/licensehub/internal/shared/logger"
)

// CustomerRepositoryImpl reads the customers table. Soft-deleted rows are
// hidden by gorm's default scope.
type CustomerRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewCustomerRepository(db *gorm.DB, logger logger.Interface) customer.Repository {
	return &CustomerRepositoryImpl{db: db, logger: logger}
}

func (r *CustomerRepositoryImpl) GetByID(ctx context.Context, id uint) (*customer.Customer, error) {
	return r.getOne(ctx, "id = ?", id)
}

func (r *CustomerRepositoryImpl) GetByUserID(ctx context.Context, userID uint) (*customer.Customer, error) {
	return r.getOne(ctx, "user_id = ?", userID)
}

func (r *CustomerRepositoryImpl) getOne(ctx context.Context, cond string, arg any) (*customer.Customer, error) {
	var model models.CustomerModel
	if err := db.GetTxFromContext(ctx, r.db).Where(cond, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get customer", "condition", cond, "value", arg, "error", err)
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return mappers.CustomerToEntity(&model), nil
}

func (r *CustomerRepositoryImpl) GetByIDs(ctx context.Context, ids []uint) (map[uint]*customer.Customer, error) {
	result := make(map[uint]*customer.Customer, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var ms []*models.CustomerModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id IN ?", ids).Find(&ms).Error; err != nil {
		r.logger.Errorw("failed to get customers", "count", len(ids), "error", err)
		return nil, fmt.Errorf("failed to get customers: %w", err)
	}
	for _, m := range ms {
		result[m.ID] = mappers.CustomerToEntity(m)
	}
	return result, nil
}

func (r *CustomerRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.CustomerModel{}).Count(&count).Error; err != nil {
		r.logger.Errorw("failed to count customers", "error", err)
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}
	return count, nil
}
