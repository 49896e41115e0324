package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/licensehub/licensehub/internal/domain/pack"
	"github.com/licensehub/licensehub/internal/infrastructure/persistence/mappers"
	"github.com/licensehub/licensehub/internal/infrastructure/persistence/models"
	"github.com/licensehub/licensehub/internal/shared/db"
	apperrors "github.com/licensehub/licensehub/internal/shared/errors"
	"github.com/licensehub/licensehub/internal/shared/logger"
)

type PackRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.PackMapper
	logger logger.Interface
}

func NewPackRepository(db *gorm.DB, logger logger.Interface) pack.Repository {
	return &PackRepositoryImpl{
		db:     db,
		mapper: mappers.NewPackMapper(),
		logger: logger,
	}
}

func (r *PackRepositoryImpl) Create(ctx context.Context, p *pack.Pack) error {
	model := r.mapper.ToModel(p)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if isLiveSKUViolation(err) {
			return fmt.Errorf("%w: %s", pack.ErrSKUExists, p.SKU())
		}
		r.logger.Errorw("failed to create subscription pack", "sku", p.SKU(), "error", err)
		return fmt.Errorf("failed to create subscription pack: %w", err)
	}

	if err := p.SetID(model.ID); err != nil {
		return err
	}

	r.logger.Infow("subscription pack created", "pack_id", model.ID, "sku", p.SKU())
	return nil
}

// isLiveSKUViolation matches idx_pack_live_sku: SQLite names the column
// (subscription_packs.sku), MySQL the generated live_sku key.
func isLiveSKUViolation(err error) bool {
	return apperrors.IsDuplicateError(err) && strings.Contains(err.Error(), "sku")
}

// Update writes every mutable column, including deleted_at. The soft-delete
// scope makes it a no-op on a pack that was deleted in the meantime.
func (r *PackRepositoryImpl) Update(ctx context.Context, p *pack.Pack) error {
	model := r.mapper.ToModel(p)

	result := db.GetTxFromContext(ctx, r.db).Model(&models.PackModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"name":            model.Name,
			"description":     model.Description,
			"sku":             model.SKU,
			"price":           model.Price,
			"validity_months": model.ValidityMonths,
			"updated_at":      model.UpdatedAt,
			"deleted_at":      model.DeletedAt,
		})
	if result.Error != nil {
		if isLiveSKUViolation(result.Error) {
			return fmt.Errorf("%w: %s", pack.ErrSKUExists, p.SKU())
		}
		r.logger.Errorw("failed to update subscription pack", "pack_id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update subscription pack: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return pack.ErrPackNotFound
	}
	return nil
}

func (r *PackRepositoryImpl) GetByID(ctx context.Context, id uint) (*pack.Pack, error) {
	var model models.PackModel
	if err := db.GetTxFromContext(ctx, r.db).Unscoped().First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription pack", "pack_id", id, "error", err)
		return nil, fmt.Errorf("failed to get subscription pack: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *PackRepositoryImpl) GetByIDs(ctx context.Context, ids []uint) (map[uint]*pack.Pack, error) {
	result := make(map[uint]*pack.Pack, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var ms []*models.PackModel
	if err := db.GetTxFromContext(ctx, r.db).Unscoped().Where("id IN ?", ids).Find(&ms).Error; err != nil {
		r.logger.Errorw("failed to get subscription packs", "count", len(ids), "error", err)
		return nil, fmt.Errorf("failed to get subscription packs: %w", err)
	}

	packs, err := r.mapper.ToEntities(ms)
	if err != nil {
		return nil, err
	}
	for _, p := range packs {
		result[p.ID()] = p
	}
	return result, nil
}

func (r *PackRepositoryImpl) GetBySID(ctx context.Context, sid string) (*pack.Pack, error) {
	return r.getOne(ctx, "sid = ?", sid)
}

func (r *PackRepositoryImpl) GetBySKU(ctx context.Context, sku string) (*pack.Pack, error) {
	return r.getOne(ctx, "sku = ?", pack.NormalizeSKU(sku))
}

func (r *PackRepositoryImpl) getOne(ctx context.Context, cond string, arg any) (*pack.Pack, error) {
	var model models.PackModel
	if err := db.GetTxFromContext(ctx, r.db).Where(cond, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription pack", "condition", cond, "value", arg, "error", err)
		return nil, fmt.Errorf("failed to get subscription pack: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *PackRepositoryImpl) ExistsBySKU(ctx context.Context, sku string, excludeID uint) (bool, error) {
	var count int64
	q := db.GetTxFromContext(ctx, r.db).Model(&models.PackModel{}).Where("sku = ?", pack.NormalizeSKU(sku))
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		r.logger.Errorw("failed to check pack sku", "sku", sku, "error", err)
		return false, fmt.Errorf("failed to check pack sku: %w", err)
	}
	return count > 0, nil
}

// List orders newest first; ties are broken by id so pages are stable.
func (r *PackRepositoryImpl) List(ctx context.Context, filter pack.ListFilter) ([]*pack.Pack, int64, error) {
	q := db.GetTxFromContext(ctx, r.db).Model(&models.PackModel{})
	if !filter.ExcludeDeleted {
		q = q.Unscoped()
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count subscription packs", "error", err)
		return nil, 0, fmt.Errorf("failed to count subscription packs: %w", err)
	}

	var ms []*models.PackModel
	if err := q.Order("created_at DESC").Order("id DESC").
		Scopes(db.Paginate(filter.PageFilter)).
		Find(&ms).Error; err != nil {
		r.logger.Errorw("failed to list subscription packs", "error", err)
		return nil, 0, fmt.Errorf("failed to list subscription packs: %w", err)
	}

	packs, err := r.mapper.ToEntities(ms)
	if err != nil {
		return nil, 0, err
	}
	return packs, total, nil
}
