package queue

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/renoxbert/leadmarket/internal/entity"
)

// MockMailSender
type MockMailSender struct {
	mock.Mock
}

func (m *MockMailSender) SendNewLeadAlert(to, name, leadTitle, category, city string) error {
	args := m.Called(to, name, leadTitle, category, city)
	return args.Error(0)
}

func (m *MockMailSender) SendClaimConfirmation(to, name, leadTitle string) error {
	args := m.Called(to, name, leadTitle)
	return args.Error(0)
}

func (m *MockMailSender) SendOwnerNotice(to, leadTitle, contractorName string) error {
	args := m.Called(to, leadTitle, contractorName)
	return args.Error(0)
}

func (m *MockMailSender) SendWelcome(to, name, tierName string) error {
	args := m.Called(to, name, tierName)
	return args.Error(0)
}

// MockContractorDirectory
type MockContractorDirectory struct {
	mock.Mock
}

func (m *MockContractorDirectory) FindByID(ctx context.Context, id string) (*entity.Contractor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Contractor), args.Error(1)
}

func (m *MockContractorDirectory) ListAll(ctx context.Context) ([]entity.Contractor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Contractor), args.Error(1)
}

func TestProcessEventLeadPublishedFansOutToAllContractors(t *testing.T) {
	ctx := context.Background()

	contractors := []entity.Contractor{
		{ID: "c1", Name: "Anna", Email: "anna@example.com"},
		{ID: "c2", Name: "Bo", Email: "bo@example.com"},
		{ID: "c3", Name: "Cam", Email: "cam@example.com"},
	}

	directory := new(MockContractorDirectory)
	directory.On("ListAll", ctx).Return(contractors, nil)

	mailer := new(MockMailSender)
	mailer.On("SendNewLeadAlert", "anna@example.com", "Anna", "Roof repair", "Roofing", "Ottawa").Return(nil)
	// One bad mailbox must not stop the rest of the fan-out.
	mailer.On("SendNewLeadAlert", "bo@example.com", "Bo", "Roof repair", "Roofing", "Ottawa").Return(errors.New("mailbox full"))
	mailer.On("SendNewLeadAlert", "cam@example.com", "Cam", "Roof repair", "Roofing", "Ottawa").Return(nil)

	w := NewWorker(nil, mailer, directory, "owner@renoxbert.ca")

	err := w.processEvent(ctx, NotificationEvent{
		Event:     EventLeadPublished,
		LeadID:    "lead-1",
		LeadTitle: "Roof repair",
		Category:  "Roofing",
		City:      "Ottawa",
	})

	require.NoError(t, err)
	mailer.AssertExpectations(t)
}

func TestProcessEventLeadClaimedSendsConfirmationAndOwnerNotice(t *testing.T) {
	ctx := context.Background()

	directory := new(MockContractorDirectory)
	directory.On("FindByID", ctx, "c1").Return(&entity.Contractor{ID: "c1", Name: "Anna", Email: "anna@example.com"}, nil)

	mailer := new(MockMailSender)
	mailer.On("SendClaimConfirmation", "anna@example.com", "Anna", "Roof repair").Return(nil)
	mailer.On("SendOwnerNotice", "owner@renoxbert.ca", "Roof repair", "Anna").Return(nil)

	w := NewWorker(nil, mailer, directory, "owner@renoxbert.ca")

	err := w.processEvent(ctx, NotificationEvent{
		Event:        EventLeadClaimed,
		LeadID:       "lead-1",
		LeadTitle:    "Roof repair",
		ContractorID: "c1",
	})

	require.NoError(t, err)
	mailer.AssertExpectations(t)
}

func TestProcessEventSubscriptionActivatedSendsWelcome(t *testing.T) {
	ctx := context.Background()

	directory := new(MockContractorDirectory)
	directory.On("FindByID", ctx, "c1").Return(&entity.Contractor{ID: "c1", Name: "Anna", Email: "anna@example.com"}, nil)

	mailer := new(MockMailSender)
	mailer.On("SendWelcome", "anna@example.com", "Anna", "Handyman").Return(nil)

	w := NewWorker(nil, mailer, directory, "owner@renoxbert.ca")

	err := w.processEvent(ctx, NotificationEvent{
		Event:        EventSubscriptionActivated,
		ContractorID: "c1",
		TierName:     "Handyman",
	})

	require.NoError(t, err)
	mailer.AssertExpectations(t)
}

func TestProcessEventUnknownEventIsAcked(t *testing.T) {
	w := NewWorker(nil, new(MockMailSender), new(MockContractorDirectory), "owner@renoxbert.ca")

	err := w.processEvent(context.Background(), NotificationEvent{Event: "lead.sharpened"})

	assert.NoError(t, err, "unknown events drain rather than clog the queue")
}
