package mappers

import (
	"fmt"

	"github.com/licensehub/licensehub/internal/domain/subscription"
	vo "github.com/licensehub/licensehub/internal/domain/subscription/valueobjects"
	"github.com/licensehub/licensehub/internal/infrastructure/persistence/models"
)

type SubscriptionMapper interface {
	ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error)
	ToModel(entity *subscription.Subscription) *models.SubscriptionModel
	ToEntities(models []*models.SubscriptionModel) ([]*subscription.Subscription, error)
}

type SubscriptionMapperImpl struct{}

func NewSubscriptionMapper() SubscriptionMapper {
	return &SubscriptionMapperImpl{}
}

func (m *SubscriptionMapperImpl) ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := subscription.ReconstructSubscription(subscription.ReconstructParams{
		ID:            model.ID,
		SID:           model.SID,
		CustomerID:    model.CustomerID,
		PackID:        model.PackID,
		Status:        vo.SubscriptionStatus(model.Status),
		RequestedAt:   model.RequestedAt,
		ApprovedAt:    model.ApprovedAt,
		AssignedAt:    model.AssignedAt,
		ExpiresAt:     model.ExpiresAt,
		DeactivatedAt: model.DeactivatedAt,
		Version:       model.Version,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct subscription %d: %w", model.ID, err)
	}
	return entity, nil
}

func (m *SubscriptionMapperImpl) ToModel(entity *subscription.Subscription) *models.SubscriptionModel {
	if entity == nil {
		return nil
	}

	return &models.SubscriptionModel{
		ID:            entity.ID(),
		SID:           entity.SID(),
		CustomerID:    entity.CustomerID(),
		PackID:        entity.PackID(),
		Status:        entity.Status().String(),
		RequestedAt:   entity.RequestedAt(),
		ApprovedAt:    entity.ApprovedAt(),
		AssignedAt:    entity.AssignedAt(),
		ExpiresAt:     entity.ExpiresAt(),
		DeactivatedAt: entity.DeactivatedAt(),
		Version:       entity.Version(),
		CreatedAt:     entity.CreatedAt(),
		UpdatedAt:     entity.UpdatedAt(),
	}
}

func (m *SubscriptionMapperImpl) ToEntities(ms []*models.SubscriptionModel) ([]*subscription.Subscription, error) {
	entities := make([]*subscription.Subscription, 0, len(ms))
	for _, model := range ms {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
