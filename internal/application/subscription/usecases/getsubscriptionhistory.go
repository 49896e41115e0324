package usecases

import (
	"context"
	"fmt"

	"github.com/licensehub/licensehub/internal/application/subscription/dto"
	"github.com/licensehub/licensehub/internal/domain/pack"
	"github.com/licensehub/licensehub/internal/domain/subscription"
	"github.com/licensehub/licensehub/internal/shared/logger"
	"github.com/licensehub/licensehub/internal/shared/query"
	"github.com/licensehub/licensehub/internal/shared/utils"
)

type GetSubscriptionHistoryQuery struct {
	CustomerID uint
	Page       int
	Limit      int
	// Sort is "asc" or "desc"; anything else means desc.
	Sort string
}

type GetSubscriptionHistoryUseCase struct {
	subRepo  subscription.Repository
	packRepo pack.Repository
	logger   logger.Interface
}

func NewGetSubscriptionHistoryUseCase(
	subRepo subscription.Repository,
	packRepo pack.Repository,
	logger logger.Interface,
) *GetSubscriptionHistoryUseCase {
	return &GetSubscriptionHistoryUseCase{
		subRepo:  subRepo,
		packRepo: packRepo,
		logger:   logger,
	}
}

func (uc *GetSubscriptionHistoryUseCase) Execute(ctx context.Context, q GetSubscriptionHistoryQuery) (*dto.HistoryResult, error) {
	pg := utils.ValidatePagination(q.Page, q.Limit)
	filter := subscription.HistoryFilter{
		BaseFilter: query.NewBaseFilter(
			query.WithPage(pg.Page, pg.PageSize),
			query.WithSort("assigned_at", q.Sort),
		),
	}

	subs, total, err := uc.subRepo.ListByCustomer(ctx, q.CustomerID, filter)
	if err != nil {
		uc.logger.Errorw("failed to list subscription history", "customer_id", q.CustomerID, "error", err)
		return nil, fmt.Errorf("failed to list subscription history: %w", err)
	}

	packs, err := loadPacks(ctx, uc.packRepo, subs)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.HistoryItemDTO, 0, len(subs))
	for _, s := range subs {
		items = append(items, dto.ToHistoryItemDTO(s, packs[s.PackID()]))
	}

	return &dto.HistoryResult{
		Items: items,
		Total: total,
		Page:  pg.Page,
		Limit: pg.PageSize,
	}, nil
}

// loadPacks fetches the packs referenced by subs in one query, deleted ones included.
func loadPacks(ctx context.Context, repo pack.Repository, subs []*subscription.Subscription) (map[uint]*pack.Pack, error) {
	if len(subs) == 0 {
		return map[uint]*pack.Pack{}, nil
	}
	seen := make(map[uint]struct{}, len(subs))
	ids := make([]uint, 0, len(subs))
	for _, s := range subs {
		if _, ok := seen[s.PackID()]; ok {
			continue
		}
		seen[s.PackID()] = struct{}{}
		ids = append(ids, s.PackID())
	}
	packs, err := repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load packs: %w", err)
	}
	return packs, nil
}
