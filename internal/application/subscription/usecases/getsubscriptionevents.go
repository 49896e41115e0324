package usecases

import (
	"context"
	"fmt"

	"github.com/licensehub/licensehub/internal/application/subscription/dto"
	"github.com/licensehub/licensehub/internal/domain/subscription"
	"github.com/licensehub/licensehub/internal/shared/logger"
)

// GetSubscriptionEventsUseCase returns the transition journal of one record,
// oldest first.
type GetSubscriptionEventsUseCase struct {
	subRepo   subscription.Repository
	eventRepo subscription.EventRepository
	logger    logger.Interface
}

func NewGetSubscriptionEventsUseCase(
	subRepo subscription.Repository,
	eventRepo subscription.EventRepository,
	logger logger.Interface,
) *GetSubscriptionEventsUseCase {
	return &GetSubscriptionEventsUseCase{
		subRepo:   subRepo,
		eventRepo: eventRepo,
		logger:    logger,
	}
}

func (uc *GetSubscriptionEventsUseCase) Execute(ctx context.Context, subscriptionSID string) ([]*dto.EventDTO, error) {
	sub, err := uc.subRepo.GetBySID(ctx, subscriptionSID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "subscription_sid", subscriptionSID, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, translateLedgerError(subscription.ErrSubscriptionNotFound)
	}

	events, err := uc.eventRepo.ListBySubscription(ctx, sub.ID())
	if err != nil {
		uc.logger.Errorw("failed to list subscription events", "subscription_sid", subscriptionSID, "error", err)
		return nil, fmt.Errorf("failed to list subscription events: %w", err)
	}
	return dto.ToEventDTOs(events), nil
}
