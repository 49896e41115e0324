package http

import (
	adminUsecases "github.com/licensehub/licensehub/internal/application/admin/usecases"
	packUsecases "github.com/licensehub/licensehub/internal/application/pack/usecases"
	subscriptionUsecases "github.com/licensehub/licensehub/internal/application/subscription/usecases"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// Pack catalog
	createPackUC *packUsecases.CreatePackUseCase
	updatePackUC *packUsecases.UpdatePackUseCase
	deletePackUC *packUsecases.DeletePackUseCase
	getPackUC    *packUsecases.GetPackUseCase
	listPacksUC  *packUsecases.ListPacksUseCase
	seedPacksUC  *packUsecases.SeedPacksUseCase

	// Subscription ledger
	requestSubscriptionUC    *subscriptionUsecases.RequestSubscriptionUseCase
	approveSubscriptionUC    *subscriptionUsecases.ApproveSubscriptionUseCase
	assignSubscriptionUC     *subscriptionUsecases.AssignSubscriptionUseCase
	unassignSubscriptionUC   *subscriptionUsecases.UnassignSubscriptionUseCase
	deactivateSubscriptionUC *subscriptionUsecases.DeactivateSubscriptionUseCase
	getCurrentSubscriptionUC *subscriptionUsecases.GetCurrentSubscriptionUseCase
	getHistoryUC             *subscriptionUsecases.GetSubscriptionHistoryUseCase
	listSubscriptionsUC      *subscriptionUsecases.ListSubscriptionsUseCase
	getEventsUC              *subscriptionUsecases.GetSubscriptionEventsUseCase
	expireSubscriptionsUC    *subscriptionUsecases.ExpireSubscriptionsUseCase

	// Admin
	getAdminDashboardUC *adminUsecases.GetAdminDashboardUseCase
}

// initUseCases builds every use case from the repositories and shared services.
func (c *Container) initUseCases() {
	repos := c.repos
	log := c.log
	clock := c.clock

	deps := subscriptionUsecases.LedgerDeps{
		SubscriptionRepo: repos.subscriptionRepo,
		EventRepo:        repos.eventRepo,
		Locker:           c.locker,
		TxManager:        c.txMgr,
	}

	c.ucs = &allUseCases{
		createPackUC: packUsecases.NewCreatePackUseCase(repos.packRepo, clock, log),
		updatePackUC: packUsecases.NewUpdatePackUseCase(repos.packRepo, clock, log),
		deletePackUC: packUsecases.NewDeletePackUseCase(repos.packRepo, clock, log),
		getPackUC:    packUsecases.NewGetPackUseCase(repos.packRepo, log),
		listPacksUC:  packUsecases.NewListPacksUseCase(repos.packRepo, log),
		seedPacksUC:  packUsecases.NewSeedPacksUseCase(repos.packRepo, clock, log),

		requestSubscriptionUC: subscriptionUsecases.NewRequestSubscriptionUseCase(deps, repos.packRepo, clock, log),
		approveSubscriptionUC: subscriptionUsecases.NewApproveSubscriptionUseCase(
			deps, repos.packRepo, clock, c.cfg.Subscription.AutoActivate(), log,
		),
		assignSubscriptionUC: subscriptionUsecases.NewAssignSubscriptionUseCase(
			deps, repos.packRepo, repos.customerRepo, clock, log,
		),
		unassignSubscriptionUC:   subscriptionUsecases.NewUnassignSubscriptionUseCase(deps, clock, log),
		deactivateSubscriptionUC: subscriptionUsecases.NewDeactivateSubscriptionUseCase(deps, clock, log),
		getCurrentSubscriptionUC: subscriptionUsecases.NewGetCurrentSubscriptionUseCase(
			repos.subscriptionRepo, repos.packRepo, clock, log,
		),
		getHistoryUC:        subscriptionUsecases.NewGetSubscriptionHistoryUseCase(repos.subscriptionRepo, repos.packRepo, log),
		listSubscriptionsUC: subscriptionUsecases.NewListSubscriptionsUseCase(repos.subscriptionRepo, repos.packRepo, log),
		getEventsUC:         subscriptionUsecases.NewGetSubscriptionEventsUseCase(repos.subscriptionRepo, repos.eventRepo, log),
		expireSubscriptionsUC: subscriptionUsecases.NewExpireSubscriptionsUseCase(
			repos.subscriptionRepo, repos.eventRepo, c.txMgr, clock, log,
		),

		getAdminDashboardUC: adminUsecases.NewGetAdminDashboardUseCase(
			repos.customerRepo, repos.subscriptionRepo, repos.packRepo, log,
		),
	}
}

// SeedPacksUseCase is exposed for the seed command.
func (c *Container) SeedPacksUseCase() *packUsecases.SeedPacksUseCase {
	return c.ucs.seedPacksUC
}
