package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/renoxbert/leadmarket/internal/entity"
	"github.com/renoxbert/leadmarket/internal/infra/integration/stripe"
	"github.com/renoxbert/leadmarket/internal/infra/queue"
)

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) ListPublished(ctx context.Context, filters entity.LeadFilters) ([]entity.Lead, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) Claim(ctx context.Context, leadID, contractorID string) (bool, error) {
	args := m.Called(ctx, leadID, contractorID)
	return args.Bool(0), args.Error(1)
}

// MockSubscriptionRepository
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) Create(ctx context.Context, sub *entity.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) FindByID(ctx context.Context, id string) (*entity.Subscription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) FindByContractor(ctx context.Context, contractorID string) ([]entity.Subscription, error) {
	args := m.Called(ctx, contractorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) FindBySession(ctx context.Context, sessionID string) ([]entity.Subscription, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) MarkCancelAtPeriodEnd(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) ExpireLapsed(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}

// MockInterestRepository
type MockInterestRepository struct {
	mock.Mock
}

func (m *MockInterestRepository) Upsert(ctx context.Context, interest *entity.Interest) error {
	args := m.Called(ctx, interest)
	return args.Error(0)
}

func (m *MockInterestRepository) ListByContractor(ctx context.Context, contractorID string) ([]entity.Interest, error) {
	args := m.Called(ctx, contractorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Interest), args.Error(1)
}

// MockPaymentGateway
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreateCheckoutSession(ctx context.Context, input stripe.CheckoutSessionInput) (*stripe.CheckoutSession, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripe.CheckoutSession), args.Error(1)
}

// stubNotifier counts publishes without testify so the fire-and-forget
// goroutines can land after a test's assertions finish.
type stubNotifier struct {
	published int32
	failWith  error
	mu        sync.Mutex
	events    []queue.NotificationEvent
}

func (s *stubNotifier) Publish(ctx context.Context, event queue.NotificationEvent) error {
	if s.failWith != nil {
		return s.failWith
	}
	atomic.AddInt32(&s.published, 1)
	s.mu.Lock()
	s.events = append(s.events, event)
	s.mu.Unlock()
	return nil
}

func (s *stubNotifier) count() int {
	return int(atomic.LoadInt32(&s.published))
}

func (s *stubNotifier) lastEvent() (queue.NotificationEvent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.events) == 0 {
		return queue.NotificationEvent{}, false
	}
	return s.events[len(s.events)-1], true
}

// eligibilityFunc adapts a closure to EligibilityChecker.
type eligibilityFunc func(ctx context.Context, contractorID, category string) (bool, error)

func (f eligibilityFunc) IsEligible(ctx context.Context, contractorID, category string) (bool, error) {
	return f(ctx, contractorID, category)
}

func alwaysEligible() eligibilityFunc {
	return func(ctx context.Context, contractorID, category string) (bool, error) {
		return true, nil
	}
}

// memLeadRepo is an in-memory LeadRepository whose Claim mirrors the SQL
// conditional update: check-and-set under one lock, exactly one winner.
type memLeadRepo struct {
	mu    sync.Mutex
	leads map[string]*entity.Lead
}

func newMemLeadRepo(leads ...*entity.Lead) *memLeadRepo {
	r := &memLeadRepo{leads: make(map[string]*entity.Lead)}
	for _, l := range leads {
		cp := *l
		r.leads[l.ID] = &cp
	}
	return r
}

func (r *memLeadRepo) Create(ctx context.Context, lead *entity.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *lead
	r.leads[lead.ID] = &cp
	return nil
}

func (r *memLeadRepo) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.leads[id]
	if !ok {
		return nil, entity.ErrLeadNotFound
	}
	cp := *l
	return &cp, nil
}

func (r *memLeadRepo) ListPublished(ctx context.Context, filters entity.LeadFilters) ([]entity.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Lead
	for _, l := range r.leads {
		if l.Published {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *memLeadRepo) Claim(ctx context.Context, leadID, contractorID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.leads[leadID]
	if !ok || !l.Claimable() {
		return false, nil
	}
	id := contractorID
	l.Status = entity.LeadStatusClaimed
	l.ClaimedByID = &id
	return true, nil
}
