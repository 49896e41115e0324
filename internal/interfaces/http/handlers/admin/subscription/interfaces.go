package subscription

import (
	"context"

	subdto "github.com/licensehub/licensehub/internal/application/subscription/dto"
	"github.com/licensehub/licensehub/internal/application/subscription/usecases"
)

type listSubscriptionsUseCase interface {
	Execute(ctx context.Context, query usecases.ListSubscriptionsQuery) (*subdto.ListResult, error)
}

type approveSubscriptionUseCase interface {
	Execute(ctx context.Context, subscriptionSID string) (*subdto.SubscriptionDTO, error)
}

type assignSubscriptionUseCase interface {
	Execute(ctx context.Context, cmd usecases.AssignSubscriptionCommand) (*subdto.SubscriptionDTO, error)
}

type unassignSubscriptionUseCase interface {
	Execute(ctx context.Context, cmd usecases.UnassignSubscriptionCommand) (*subdto.UnassignResult, error)
}

type getSubscriptionEventsUseCase interface {
	Execute(ctx context.Context, subscriptionSID string) ([]*subdto.EventDTO, error)
}
