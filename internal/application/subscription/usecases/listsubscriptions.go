package usecases

import (
	"context"
	"fmt"

	"github.com/licensehub/licensehub/internal/application/subscription/dto"
	"github.com/licensehub/licensehub/internal/domain/pack"
	"github.com/licensehub/licensehub/internal/domain/subscription"
	vo "github.com/licensehub/licensehub/internal/domain/subscription/valueobjects"
	apperrors "github.com/licensehub/licensehub/internal/shared/errors"
	"github.com/licensehub/licensehub/internal/shared/logger"
	"github.com/licensehub/licensehub/internal/shared/query"
	"github.com/licensehub/licensehub/internal/shared/utils"
)

type ListSubscriptionsQuery struct {
	Page   int
	Limit  int
	Status string
}

// ListSubscriptionsUseCase lists every record, newest first, with pack
// display fields attached.
type ListSubscriptionsUseCase struct {
	subRepo  subscription.Repository
	packRepo pack.Repository
	logger   logger.Interface
}

func NewListSubscriptionsUseCase(
	subRepo subscription.Repository,
	packRepo pack.Repository,
	logger logger.Interface,
) *ListSubscriptionsUseCase {
	return &ListSubscriptionsUseCase{
		subRepo:  subRepo,
		packRepo: packRepo,
		logger:   logger,
	}
}

func (uc *ListSubscriptionsUseCase) Execute(ctx context.Context, q ListSubscriptionsQuery) (*dto.ListResult, error) {
	pg := utils.ValidatePagination(q.Page, q.Limit)
	filter := subscription.ListFilter{
		BaseFilter: query.NewBaseFilter(query.WithPage(pg.Page, pg.PageSize)),
	}
	if q.Status != "" {
		status, err := vo.ParseStatus(q.Status)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid status filter", err.Error())
		}
		filter.Status = &status
	}

	subs, total, err := uc.subRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list subscriptions", "error", err)
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	packs, err := loadPacks(ctx, uc.packRepo, subs)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.AdminSubscriptionDTO, 0, len(subs))
	for _, s := range subs {
		items = append(items, dto.ToAdminSubscriptionDTO(s, packs[s.PackID()]))
	}

	return &dto.ListResult{
		Items: items,
		Total: total,
		Page:  pg.Page,
		Limit: pg.PageSize,
	}, nil
}
