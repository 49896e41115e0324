package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/licensehub/licensehub/internal/domain/subscription"
	vo "github.com/licensehub/licensehub/internal/domain/subscription/valueobjects"
	"github.com/licensehub/licensehub/internal/infrastructure/persistence/models"
)

type SubscriptionEventMapper interface {
	ToEntity(model *models.SubscriptionEventModel) (*subscription.Event, error)
	ToModel(entity *subscription.Event) (*models.SubscriptionEventModel, error)
}

type SubscriptionEventMapperImpl struct{}

func NewSubscriptionEventMapper() SubscriptionEventMapper {
	return &SubscriptionEventMapperImpl{}
}

func (m *SubscriptionEventMapperImpl) ToEntity(model *models.SubscriptionEventModel) (*subscription.Event, error) {
	var metadata map[string]any
	if len(model.Metadata) > 0 {
		if err := json.Unmarshal(model.Metadata, &metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal event metadata: %w", err)
		}
	}

	return subscription.ReconstructEvent(subscription.EventReconstructParams{
		ID:             model.ID,
		SubscriptionID: model.SubscriptionID,
		CustomerID:     model.CustomerID,
		FromStatus:     vo.SubscriptionStatus(model.FromStatus),
		ToStatus:       vo.SubscriptionStatus(model.ToStatus),
		Actor:          subscription.Actor(model.Actor),
		Metadata:       metadata,
		OccurredAt:     model.OccurredAt,
	}), nil
}

func (m *SubscriptionEventMapperImpl) ToModel(entity *subscription.Event) (*models.SubscriptionEventModel, error) {
	var metadata datatypes.JSON
	if len(entity.Metadata()) > 0 {
		raw, err := json.Marshal(entity.Metadata())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal event metadata: %w", err)
		}
		metadata = datatypes.JSON(raw)
	}

	return &models.SubscriptionEventModel{
		ID:             entity.ID(),
		SubscriptionID: entity.SubscriptionID(),
		CustomerID:     entity.CustomerID(),
		FromStatus:     entity.FromStatus().String(),
		ToStatus:       entity.ToStatus().String(),
		Actor:          string(entity.Actor()),
		Metadata:       metadata,
		OccurredAt:     entity.OccurredAt(),
	}, nil
}
