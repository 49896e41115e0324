package usecases

import (
	"context"
	"fmt"

	"github.com/licensehub/licensehub/internal/application/pack/dto"
	"github.com/licensehub/licensehub/internal/domain/pack"
	"github.com/licensehub/licensehub/internal/shared/logger"
)

type GetPackUseCase struct {
	packRepo pack.Repository
	logger   logger.Interface
}

func NewGetPackUseCase(packRepo pack.Repository, logger logger.Interface) *GetPackUseCase {
	return &GetPackUseCase{
		packRepo: packRepo,
		logger:   logger,
	}
}

func (uc *GetPackUseCase) Execute(ctx context.Context, sid string) (*dto.PackDTO, error) {
	p, err := uc.packRepo.GetBySID(ctx, sid)
	if err != nil {
		uc.logger.Errorw("failed to get pack", "pack_sid", sid, "error", err)
		return nil, fmt.Errorf("failed to get pack: %w", err)
	}
	if p == nil {
		return nil, translatePackError(pack.ErrPackNotFound)
	}
	return dto.ToPackDTO(p), nil
}
