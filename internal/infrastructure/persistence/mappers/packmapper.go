package mappers

import (
	"time"

	"gorm.io/gorm"

	"github.com/licensehub/licensehub/internal/domain/pack"
	"github.com/licensehub/licensehub/internal/infrastructure/persistence/models"
)

type PackMapper interface {
	ToEntity(model *models.PackModel) (*pack.Pack, error)
	ToModel(entity *pack.Pack) *models.PackModel
	ToEntities(models []*models.PackModel) ([]*pack.Pack, error)
}

type PackMapperImpl struct{}

func NewPackMapper() PackMapper {
	return &PackMapperImpl{}
}

func (m *PackMapperImpl) ToEntity(model *models.PackModel) (*pack.Pack, error) {
	if model == nil {
		return nil, nil
	}

	var deletedAt *time.Time
	if model.DeletedAt.Valid {
		t := model.DeletedAt.Time
		deletedAt = &t
	}

	return pack.ReconstructPack(pack.ReconstructParams{
		ID:             model.ID,
		SID:            model.SID,
		Name:           model.Name,
		Description:    model.Description,
		SKU:            model.SKU,
		Price:          model.Price,
		ValidityMonths: model.ValidityMonths,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
		DeletedAt:      deletedAt,
	})
}

func (m *PackMapperImpl) ToModel(entity *pack.Pack) *models.PackModel {
	if entity == nil {
		return nil
	}

	model := &models.PackModel{
		ID:             entity.ID(),
		SID:            entity.SID(),
		Name:           entity.Name(),
		Description:    entity.Description(),
		SKU:            entity.SKU(),
		Price:          entity.Price(),
		ValidityMonths: entity.ValidityMonths(),
		CreatedAt:      entity.CreatedAt(),
		UpdatedAt:      entity.UpdatedAt(),
	}
	if entity.DeletedAt() != nil {
		model.DeletedAt = gorm.DeletedAt{Time: *entity.DeletedAt(), Valid: true}
	}
	return model
}

func (m *PackMapperImpl) ToEntities(ms []*models.PackModel) ([]*pack.Pack, error) {
	entities := make([]*pack.Pack, 0, len(ms))
	for _, model := range ms {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
