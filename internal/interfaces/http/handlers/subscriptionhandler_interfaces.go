package handlers

import (
	"context"

	subdto "github.com/licensehub/licensehub/internal/application/subscription/dto"
	"github.com/licensehub/licensehub/internal/application/subscription/usecases"
)

// Use case interfaces for SubscriptionHandler

type requestSubscriptionUseCase interface {
	Execute(ctx context.Context, cmd usecases.RequestSubscriptionCommand) (*subdto.SubscriptionDTO, error)
}

type getCurrentSubscriptionUseCase interface {
	Execute(ctx context.Context, customerID uint) (*subdto.SubscriptionDTO, error)
}

type deactivateSubscriptionUseCase interface {
	Execute(ctx context.Context, customerID uint) (*subdto.DeactivationResult, error)
}

type getSubscriptionHistoryUseCase interface {
	Execute(ctx context.Context, query usecases.GetSubscriptionHistoryQuery) (*subdto.HistoryResult, error)
}
