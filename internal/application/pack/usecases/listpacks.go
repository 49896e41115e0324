package usecases

import (
	"context"
	"fmt"

	"github.com/licensehub/licensehub/internal/application/pack/dto"
	"github.com/licensehub/licensehub/internal/domain/pack"
	"github.com/licensehub/licensehub/internal/shared/logger"
	"github.com/licensehub/licensehub/internal/shared/query"
	"github.com/licensehub/licensehub/internal/shared/utils"
)

type ListPacksQuery struct {
	Page           int
	Limit          int
	IncludeDeleted bool
}

// ListPacksUseCase lists the catalog newest first. Customers only ever see
// packs that are not deleted.
type ListPacksUseCase struct {
	packRepo pack.Repository
	logger   logger.Interface
}

func NewListPacksUseCase(packRepo pack.Repository, logger logger.Interface) *ListPacksUseCase {
	return &ListPacksUseCase{
		packRepo: packRepo,
		logger:   logger,
	}
}

func (uc *ListPacksUseCase) Execute(ctx context.Context, q ListPacksQuery) (*dto.ListPacksResponse, error) {
	pg := utils.ValidatePagination(q.Page, q.Limit)

	filter := pack.ListFilter{
		BaseFilter:     query.NewBaseFilter(query.WithPage(pg.Page, pg.PageSize)),
		ExcludeDeleted: !q.IncludeDeleted,
	}

	packs, total, err := uc.packRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list packs", "error", err)
		return nil, fmt.Errorf("failed to list packs: %w", err)
	}

	return &dto.ListPacksResponse{
		Packs: dto.ToPackDTOs(packs),
		Total: total,
		Page:  pg.Page,
		Limit: pg.PageSize,
	}, nil
}
