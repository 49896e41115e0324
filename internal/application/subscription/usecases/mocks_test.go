package usecases

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/licensehub/licensehub/internal/domain/customer"
	"github.com/licensehub/licensehub/internal/domain/pack"
	"github.com/licensehub/licensehub/internal/domain/subscription"
	vo "github.com/licensehub/licensehub/internal/domain/subscription/valueobjects"
	"github.com/licensehub/licensehub/internal/shared/biztime"
	"github.com/licensehub/licensehub/internal/shared/logger"
)

type mockSubscriptionRepository struct {
	CreateFunc              func(ctx context.Context, sub *subscription.Subscription) error
	UpdateFunc              func(ctx context.Context, sub *subscription.Subscription) error
	GetByIDFunc             func(ctx context.Context, id uint) (*subscription.Subscription, error)
	GetBySIDFunc            func(ctx context.Context, sid string) (*subscription.Subscription, error)
	GetActiveByCustomerFunc func(ctx context.Context, customerID uint) (*subscription.Subscription, error)
	LockOpenByCustomerFunc  func(ctx context.Context, customerID uint) ([]*subscription.Subscription, error)
	ListByCustomerFunc      func(ctx context.Context, customerID uint, filter subscription.HistoryFilter) ([]*subscription.Subscription, int64, error)
	ListFunc                func(ctx context.Context, filter subscription.ListFilter) ([]*subscription.Subscription, int64, error)
	FindOverdueFunc         func(ctx context.Context, now time.Time, limit int) ([]*subscription.Subscription, error)
	CountByStatusFunc       func(ctx context.Context, status vo.SubscriptionStatus) (int64, error)
	SumActivePriceFunc      func(ctx context.Context) (decimal.Decimal, error)
	ListRecentlyUpdatedFunc func(ctx context.Context, limit int) ([]*subscription.Subscription, error)
}

func (m *mockSubscriptionRepository) Create(ctx context.Context, sub *subscription.Subscription) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, sub)
	}
	return nil
}

func (m *mockSubscriptionRepository) Update(ctx context.Context, sub *subscription.Subscription) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, sub)
	}
	return nil
}

func (m *mockSubscriptionRepository) GetByID(ctx context.Context, id uint) (*subscription.Subscription, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockSubscriptionRepository) GetBySID(ctx context.Context, sid string) (*subscription.Subscription, error) {
	if m.GetBySIDFunc != nil {
		return m.GetBySIDFunc(ctx, sid)
	}
	return nil, nil
}

func (m *mockSubscriptionRepository) GetActiveByCustomer(ctx context.Context, customerID uint) (*subscription.Subscription, error) {
	if m.GetActiveByCustomerFunc != nil {
		return m.GetActiveByCustomerFunc(ctx, customerID)
	}
	return nil, nil
}

func (m *mockSubscriptionRepository) LockOpenByCustomer(ctx context.Context, customerID uint) ([]*subscription.Subscription, error) {
	if m.LockOpenByCustomerFunc != nil {
		return m.LockOpenByCustomerFunc(ctx, customerID)
	}
	return nil, nil
}

func (m *mockSubscriptionRepository) ListByCustomer(ctx context.Context, customerID uint, filter subscription.HistoryFilter) ([]*subscription.Subscription, int64, error) {
	if m.ListByCustomerFunc != nil {
		return m.ListByCustomerFunc(ctx, customerID, filter)
	}
	return nil, 0, nil
}

func (m *mockSubscriptionRepository) List(ctx context.Context, filter subscription.ListFilter) ([]*subscription.Subscription, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockSubscriptionRepository) FindOverdue(ctx context.Context, now time.Time, limit int) ([]*subscription.Subscription, error) {
	if m.FindOverdueFunc != nil {
		return m.FindOverdueFunc(ctx, now, limit)
	}
	return nil, nil
}

func (m *mockSubscriptionRepository) CountByStatus(ctx context.Context, status vo.SubscriptionStatus) (int64, error) {
	if m.CountByStatusFunc != nil {
		return m.CountByStatusFunc(ctx, status)
	}
	return 0, nil
}

func (m *mockSubscriptionRepository) SumActivePrice(ctx context.Context) (decimal.Decimal, error) {
	if m.SumActivePriceFunc != nil {
		return m.SumActivePriceFunc(ctx)
	}
	return decimal.Zero, nil
}

func (m *mockSubscriptionRepository) ListRecentlyUpdated(ctx context.Context, limit int) ([]*subscription.Subscription, error) {
	if m.ListRecentlyUpdatedFunc != nil {
		return m.ListRecentlyUpdatedFunc(ctx, limit)
	}
	return nil, nil
}

type mockEventRepository struct {
	mu     sync.Mutex
	events []*subscription.Event

	AppendFunc func(ctx context.Context, events ...*subscription.Event) error
}

func (m *mockEventRepository) Append(ctx context.Context, events ...*subscription.Event) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, events...)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range events {
		e.SetID(uint(len(m.events) + 1))
		m.events = append(m.events, e)
	}
	return nil
}

func (m *mockEventRepository) ListBySubscription(ctx context.Context, subscriptionID uint) ([]*subscription.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*subscription.Event
	for _, e := range m.events {
		if e.SubscriptionID() == subscriptionID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockEventRepository) all() []*subscription.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*subscription.Event(nil), m.events...)
}

type mockPackRepository struct {
	GetByIDFunc  func(ctx context.Context, id uint) (*pack.Pack, error)
	GetBySIDFunc func(ctx context.Context, sid string) (*pack.Pack, error)
	GetBySKUFunc func(ctx context.Context, sku string) (*pack.Pack, error)
	packs        []*pack.Pack
}

func (m *mockPackRepository) Create(ctx context.Context, p *pack.Pack) error { return nil }
func (m *mockPackRepository) Update(ctx context.Context, p *pack.Pack) error { return nil }

func (m *mockPackRepository) GetByID(ctx context.Context, id uint) (*pack.Pack, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	for _, p := range m.packs {
		if p.ID() == id {
			return p, nil
		}
	}
	return nil, nil
}

func (m *mockPackRepository) GetByIDs(ctx context.Context, ids []uint) (map[uint]*pack.Pack, error) {
	out := make(map[uint]*pack.Pack)
	for _, id := range ids {
		p, _ := m.GetByID(ctx, id)
		if p != nil {
			out[id] = p
		}
	}
	return out, nil
}

func (m *mockPackRepository) GetBySID(ctx context.Context, sid string) (*pack.Pack, error) {
	if m.GetBySIDFunc != nil {
		return m.GetBySIDFunc(ctx, sid)
	}
	for _, p := range m.packs {
		if p.SID() == sid && !p.IsDeleted() {
			return p, nil
		}
	}
	return nil, nil
}

func (m *mockPackRepository) GetBySKU(ctx context.Context, sku string) (*pack.Pack, error) {
	if m.GetBySKUFunc != nil {
		return m.GetBySKUFunc(ctx, sku)
	}
	for _, p := range m.packs {
		if p.SKU() == pack.NormalizeSKU(sku) && !p.IsDeleted() {
			return p, nil
		}
	}
	return nil, nil
}

func (m *mockPackRepository) ExistsBySKU(ctx context.Context, sku string, excludeID uint) (bool, error) {
	return false, nil
}

func (m *mockPackRepository) List(ctx context.Context, filter pack.ListFilter) ([]*pack.Pack, int64, error) {
	return m.packs, int64(len(m.packs)), nil
}

type mockCustomerRepository struct {
	GetByIDFunc func(ctx context.Context, id uint) (*customer.Customer, error)
}

func (m *mockCustomerRepository) GetByID(ctx context.Context, id uint) (*customer.Customer, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return customer.ReconstructCustomer(id, id+100, "Customer", "", nil), nil
}

func (m *mockCustomerRepository) GetByUserID(ctx context.Context, userID uint) (*customer.Customer, error) {
	return nil, nil
}

func (m *mockCustomerRepository) GetByIDs(ctx context.Context, ids []uint) (map[uint]*customer.Customer, error) {
	return nil, nil
}

func (m *mockCustomerRepository) Count(ctx context.Context) (int64, error) {
	return 0, nil
}

// mockLocker serializes everything on one mutex and counts acquisitions.
type mockLocker struct {
	mu    sync.Mutex
	calls []uint
	err   error
}

func (m *mockLocker) WithCustomerLock(ctx context.Context, customerID uint, fn func(ctx context.Context) error) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, customerID)
	return fn(ctx)
}

type mockTxRunner struct {
	runs int
}

func (m *mockTxRunner) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.runs++
	return fn(ctx)
}

// memLedger backs a mockSubscriptionRepository with a map. It hands out
// copies and enforces the version check the way the gorm repository does.
type memLedger struct {
	mu     sync.Mutex
	rows   map[uint]*subscription.Subscription
	nextID uint
}

func newMemLedger() *memLedger {
	return &memLedger{rows: make(map[uint]*subscription.Subscription)}
}

func copySub(t testing.TB, s *subscription.Subscription) *subscription.Subscription {
	c, err := subscription.ReconstructSubscription(subscription.ReconstructParams{
		ID:            s.ID(),
		SID:           s.SID(),
		CustomerID:    s.CustomerID(),
		PackID:        s.PackID(),
		Status:        s.Status(),
		RequestedAt:   s.RequestedAt(),
		ApprovedAt:    s.ApprovedAt(),
		AssignedAt:    s.AssignedAt(),
		ExpiresAt:     s.ExpiresAt(),
		DeactivatedAt: s.DeactivatedAt(),
		Version:       s.Version(),
		CreatedAt:     s.CreatedAt(),
		UpdatedAt:     s.UpdatedAt(),
	})
	require.NoError(t, err)
	return c
}

func (l *memLedger) repo(t testing.TB) *mockSubscriptionRepository {
	filter := func(match func(*subscription.Subscription) bool) []*subscription.Subscription {
		l.mu.Lock()
		defer l.mu.Unlock()
		var out []*subscription.Subscription
		for _, s := range l.rows {
			if match(s) {
				out = append(out, copySub(t, s))
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
		return out
	}
	first := func(subs []*subscription.Subscription) *subscription.Subscription {
		if len(subs) == 0 {
			return nil
		}
		return subs[0]
	}

	return &mockSubscriptionRepository{
		CreateFunc: func(ctx context.Context, sub *subscription.Subscription) error {
			l.mu.Lock()
			defer l.mu.Unlock()
			l.nextID++
			if err := sub.SetID(l.nextID); err != nil {
				return err
			}
			l.rows[sub.ID()] = copySub(t, sub)
			return nil
		},
		UpdateFunc: func(ctx context.Context, sub *subscription.Subscription) error {
			l.mu.Lock()
			defer l.mu.Unlock()
			stored, ok := l.rows[sub.ID()]
			if !ok || stored.Version() != sub.Version() {
				return subscription.ErrConcurrentModification
			}
			sub.IncrementVersion()
			l.rows[sub.ID()] = copySub(t, sub)
			return nil
		},
		GetByIDFunc: func(ctx context.Context, id uint) (*subscription.Subscription, error) {
			return first(filter(func(s *subscription.Subscription) bool { return s.ID() == id })), nil
		},
		GetBySIDFunc: func(ctx context.Context, sid string) (*subscription.Subscription, error) {
			return first(filter(func(s *subscription.Subscription) bool { return s.SID() == sid })), nil
		},
		GetActiveByCustomerFunc: func(ctx context.Context, customerID uint) (*subscription.Subscription, error) {
			return subscription.CurrentActive(filter(func(s *subscription.Subscription) bool { return s.CustomerID() == customerID }))
		},
		LockOpenByCustomerFunc: func(ctx context.Context, customerID uint) ([]*subscription.Subscription, error) {
			return filter(func(s *subscription.Subscription) bool {
				return s.CustomerID() == customerID && s.Status().IsOpen()
			}), nil
		},
		ListByCustomerFunc: func(ctx context.Context, customerID uint, f subscription.HistoryFilter) ([]*subscription.Subscription, int64, error) {
			subs := filter(func(s *subscription.Subscription) bool { return s.CustomerID() == customerID })
			return subs, int64(len(subs)), nil
		},
		ListFunc: func(ctx context.Context, f subscription.ListFilter) ([]*subscription.Subscription, int64, error) {
			subs := filter(func(s *subscription.Subscription) bool { return f.Status == nil || s.Status() == *f.Status })
			return subs, int64(len(subs)), nil
		},
		FindOverdueFunc: func(ctx context.Context, now time.Time, limit int) ([]*subscription.Subscription, error) {
			subs := filter(func(s *subscription.Subscription) bool {
				return s.IsActive() && s.ExpiresAt() != nil && s.ExpiresAt().Before(now)
			})
			if len(subs) > limit {
				subs = subs[:limit]
			}
			return subs, nil
		},
	}
}

func (l *memLedger) get(t testing.TB, id uint) *subscription.Subscription {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.rows[id]
	require.True(t, ok, "subscription %d not stored", id)
	return copySub(t, s)
}

var testNow = time.Date(2024, 1, 31, 9, 0, 0, 0, time.UTC)

func newTestPack(t testing.TB, id uint, sku string, months int) *pack.Pack {
	p, err := pack.ReconstructPack(pack.ReconstructParams{
		ID:             id,
		SID:            "pack_" + sku,
		Name:           "Pack " + sku,
		SKU:            sku,
		Price:          decimal.RequireFromString("49.00"),
		ValidityMonths: months,
		CreatedAt:      testNow.AddDate(0, -1, 0),
		UpdatedAt:      testNow.AddDate(0, -1, 0),
	})
	require.NoError(t, err)
	return p
}

// harness wires every ledger use case against the in-memory ledger.
type harness struct {
	ledger    *memLedger
	subs      *mockSubscriptionRepository
	events    *mockEventRepository
	packs     *mockPackRepository
	customers *mockCustomerRepository
	locker    *mockLocker
	tx        *mockTxRunner
	clock     *biztime.FixedClock
	log       logger.Interface
}

func newHarness(t *testing.T, packs ...*pack.Pack) *harness {
	t.Helper()
	l := newMemLedger()
	return &harness{
		ledger:    l,
		subs:      l.repo(t),
		events:    &mockEventRepository{},
		packs:     &mockPackRepository{packs: packs},
		customers: &mockCustomerRepository{},
		locker:    &mockLocker{},
		tx:        &mockTxRunner{},
		clock:     biztime.NewFixedClock(testNow),
		log:       logger.NewDiscard(),
	}
}

func (h *harness) deps() LedgerDeps {
	return LedgerDeps{
		SubscriptionRepo: h.subs,
		EventRepo:        h.events,
		Locker:           h.locker,
		TxManager:        h.tx,
	}
}

func (h *harness) request() *RequestSubscriptionUseCase {
	return NewRequestSubscriptionUseCase(h.deps(), h.packs, h.clock, h.log)
}

func (h *harness) approve(autoActivate bool) *ApproveSubscriptionUseCase {
	return NewApproveSubscriptionUseCase(h.deps(), h.packs, h.clock, autoActivate, h.log)
}

func (h *harness) assign() *AssignSubscriptionUseCase {
	return NewAssignSubscriptionUseCase(h.deps(), h.packs, h.customers, h.clock, h.log)
}

func (h *harness) unassign() *UnassignSubscriptionUseCase {
	return NewUnassignSubscriptionUseCase(h.deps(), h.clock, h.log)
}

func (h *harness) deactivate() *DeactivateSubscriptionUseCase {
	return NewDeactivateSubscriptionUseCase(h.deps(), h.clock, h.log)
}

func (h *harness) current() *GetCurrentSubscriptionUseCase {
	return NewGetCurrentSubscriptionUseCase(h.subs, h.packs, h.clock, h.log)
}

func (h *harness) sweeper() *ExpireSubscriptionsUseCase {
	return NewExpireSubscriptionsUseCase(h.subs, h.events, h.tx, h.clock, h.log)
}

// storedBySID returns the persisted copy of the record with sid.
func (h *harness) storedBySID(t *testing.T, sid string) *subscription.Subscription {
	t.Helper()
	s, err := h.subs.GetBySID(context.Background(), sid)
	require.NoError(t, err)
	require.NotNil(t, s)
	return s
}
