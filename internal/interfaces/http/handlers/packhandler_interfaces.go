package handlers

import (
	"context"

	packdto "github.com/licensehub/licensehub/internal/application/pack/dto"
	"github.com/licensehub/licensehub/internal/application/pack/usecases"
)

// Use case interfaces for PackHandler

type createPackUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreatePackCommand) (*packdto.PackDTO, error)
}

type updatePackUseCase interface {
	Execute(ctx context.Context, cmd usecases.UpdatePackCommand) (*packdto.PackDTO, error)
}

type deletePackUseCase interface {
	Execute(ctx context.Context, sid string) error
}

type getPackUseCase interface {
	Execute(ctx context.Context, sid string) (*packdto.PackDTO, error)
}

type listPacksUseCase interface {
	Execute(ctx context.Context, query usecases.ListPacksQuery) (*packdto.ListPacksResponse, error)
}
