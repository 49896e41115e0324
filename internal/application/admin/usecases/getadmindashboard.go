package usecases

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/licensehub/licensehub/internal/application/admin/dto"
	"github.com/licensehub/licensehub/internal/domain/customer"
	"github.com/licensehub/licensehub/internal/domain/pack"
	"github.com/licensehub/licensehub/internal/domain/subscription"
	vo "github.com/licensehub/licensehub/internal/domain/subscription/valueobjects"
	"github.com/licensehub/licensehub/internal/shared/errors"
	"github.com/licensehub/licensehub/internal/shared/logger"
)

const recentActivityLimit = 10

// GetAdminDashboardUseCase handles retrieving admin dashboard snapshot.
type GetAdminDashboardUseCase struct {
	customerRepo     customer.Repository
	subscriptionRepo subscription.Repository
	packRepo         pack.Repository
	logger           logger.Interface
}

// NewGetAdminDashboardUseCase creates a new GetAdminDashboardUseCase.
func NewGetAdminDashboardUseCase(
	customerRepo customer.Repository,
	subscriptionRepo subscription.Repository,
	packRepo pack.Repository,
	log logger.Interface,
) *GetAdminDashboardUseCase {
	return &GetAdminDashboardUseCase{
		customerRepo:     customerRepo,
		subscriptionRepo: subscriptionRepo,
		packRepo:         packRepo,
		logger:           log,
	}
}

// Execute retrieves the admin dashboard snapshot.
func (uc *GetAdminDashboardUseCase) Execute(ctx context.Context) (*dto.AdminDashboardResponse, error) {
	uc.logger.Debugw("fetching admin dashboard")

	var (
		totalCustomers int64
		activeSubs     int64
		pendingSubs    int64
		revenue        decimal.Decimal
		recent         []*subscription.Subscription
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		count, err := uc.customerRepo.Count(gctx)
		if err != nil {
			uc.logger.Errorw("failed to count customers", "error", err)
			return errors.NewInternalError("failed to count customers")
		}
		totalCustomers = count
		return nil
	})

	g.Go(func() error {
		count, err := uc.subscriptionRepo.CountByStatus(gctx, vo.StatusActive)
		if err != nil {
			uc.logger.Errorw("failed to count active subscriptions", "error", err)
			return errors.NewInternalError("failed to count active subscriptions")
		}
		activeSubs = count
		return nil
	})

	g.Go(func() error {
		count, err := uc.subscriptionRepo.CountByStatus(gctx, vo.StatusRequested)
		if err != nil {
			uc.logger.Errorw("failed to count pending requests", "error", err)
			return errors.NewInternalError("failed to count pending requests")
		}
		pendingSubs = count
		return nil
	})

	g.Go(func() error {
		sum, err := uc.subscriptionRepo.SumActivePrice(gctx)
		if err != nil {
			uc.logger.Errorw("failed to sum revenue", "error", err)
			return errors.NewInternalError("failed to sum revenue")
		}
		revenue = sum
		return nil
	})

	g.Go(func() error {
		subs, err := uc.subscriptionRepo.ListRecentlyUpdated(gctx, recentActivityLimit)
		if err != nil {
			uc.logger.Errorw("failed to list recent subscriptions", "error", err)
			return errors.NewInternalError("failed to list recent activity")
		}
		recent = subs
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	activities, err := uc.describe(ctx, recent)
	if err != nil {
		return nil, err
	}

	return &dto.AdminDashboardResponse{
		TotalCustomers:      totalCustomers,
		ActiveSubscriptions: activeSubs,
		PendingRequests:     pendingSubs,
		TotalRevenue:        revenue.StringFixed(pack.PriceScale),
		RecentActivities:    activities,
	}, nil
}

// describe resolves customer and pack names for the recent records.
func (uc *GetAdminDashboardUseCase) describe(ctx context.Context, subs []*subscription.Subscription) ([]*dto.RecentActivityDTO, error) {
	activities := make([]*dto.RecentActivityDTO, 0, len(subs))
	if len(subs) == 0 {
		return activities, nil
	}

	customerIDs := make([]uint, 0, len(subs))
	packIDs := make([]uint, 0, len(subs))
	for _, s := range subs {
		customerIDs = append(customerIDs, s.CustomerID())
		packIDs = append(packIDs, s.PackID())
	}

	var (
		customers map[uint]*customer.Customer
		packs     map[uint]*pack.Pack
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		customers, err = uc.customerRepo.GetByIDs(gctx, customerIDs)
		if err != nil {
			uc.logger.Errorw("failed to load customers for dashboard", "error", err)
			return errors.NewInternalError("failed to load recent activity")
		}
		return nil
	})
	g.Go(func() error {
		var err error
		packs, err = uc.packRepo.GetByIDs(gctx, packIDs)
		if err != nil {
			uc.logger.Errorw("failed to load packs for dashboard", "error", err)
			return errors.NewInternalError("failed to load recent activity")
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, s := range subs {
		a := &dto.RecentActivityDTO{
			Type:           s.Status().String() + "_subscription",
			SubscriptionID: s.SID(),
			Timestamp:      s.UpdatedAt(),
		}
		if c := customers[s.CustomerID()]; c != nil {
			a.Customer = c.Name()
		}
		if p := packs[s.PackID()]; p != nil {
			a.Pack = p.Name()
		}
		activities = append(activities, a)
	}
	return activities, nil
}
