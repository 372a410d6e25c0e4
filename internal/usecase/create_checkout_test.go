package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/renoxbert/leadmarket/internal/infra/integration/stripe"
)

func newCheckoutUC(gateway *MockPaymentGateway) *CreateCheckoutUseCase {
	return NewCreateCheckoutUseCase(gateway, "https://renoxbert.ca/success", "https://renoxbert.ca/cancel")
}

func TestCreateCheckoutSuccess(t *testing.T) {
	ctx := context.Background()

	gateway := new(MockPaymentGateway)
	gateway.On("CreateCheckoutSession", ctx, mock.MatchedBy(func(in stripe.CheckoutSessionInput) bool {
		return in.ContractorID == "con-1" &&
			in.TierID == "handyman" &&
			len(in.Categories) == 2 &&
			in.PriceCents == 4900
	})).Return(&stripe.CheckoutSession{ID: "cs_123", URL: "https://checkout.test/cs_123"}, nil)

	uc := newCheckoutUC(gateway)

	output, err := uc.Execute(ctx, CreateCheckoutInput{
		ContractorID: "con-1",
		TierID:       "handyman",
		Categories:   []string{"Roofing", "Plumbing"},
	})

	require.NoError(t, err)
	assert.Equal(t, "cs_123", output.SessionID)
	assert.Equal(t, "https://checkout.test/cs_123", output.CheckoutURL)
}

func TestCreateCheckoutUnknownTier(t *testing.T) {
	uc := newCheckoutUC(new(MockPaymentGateway))

	_, err := uc.Execute(context.Background(), CreateCheckoutInput{
		ContractorID: "con-1",
		TierID:       "platinum",
	})

	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "TIER_NOT_FOUND", domainErr.Code)
}

func TestCreateCheckoutTooManyCategories(t *testing.T) {
	uc := newCheckoutUC(new(MockPaymentGateway))

	_, err := uc.Execute(context.Background(), CreateCheckoutInput{
		ContractorID: "con-1",
		TierID:       "handyman", // allows 3
		Categories:   []string{"Roofing", "Plumbing", "Electrical", "HVAC"},
	})

	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "TOO_MANY_CATEGORIES", domainErr.Code)
}

func TestCreateCheckoutUnknownCategory(t *testing.T) {
	uc := newCheckoutUC(new(MockPaymentGateway))

	_, err := uc.Execute(context.Background(), CreateCheckoutInput{
		ContractorID: "con-1",
		TierID:       "handyman",
		Categories:   []string{"Moon Landings"},
	})

	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "UNKNOWN_CATEGORY", domainErr.Code)
}

func TestCreateCheckoutAllCategoriesTierIgnoresPick(t *testing.T) {
	ctx := context.Background()

	gateway := new(MockPaymentGateway)
	gateway.On("CreateCheckoutSession", ctx, mock.MatchedBy(func(in stripe.CheckoutSessionInput) bool {
		return in.TierID == "general_contractor" && len(in.Categories) == 0
	})).Return(&stripe.CheckoutSession{ID: "cs_gc", URL: "https://checkout.test/cs_gc"}, nil)

	uc := newCheckoutUC(gateway)

	_, err := uc.Execute(ctx, CreateCheckoutInput{
		ContractorID: "con-1",
		TierID:       "general_contractor",
		Categories:   []string{"Roofing"}, // ignored
	})

	require.NoError(t, err)
	gateway.AssertExpectations(t)
}

func TestCreateCheckoutGatewayUnreachableIsRetryable(t *testing.T) {
	ctx := context.Background()

	gateway := new(MockPaymentGateway)
	gateway.On("CreateCheckoutSession", ctx, mock.Anything).Return(nil, errors.New("dial tcp: timeout"))

	uc := newCheckoutUC(gateway)

	_, err := uc.Execute(ctx, CreateCheckoutInput{
		ContractorID: "con-1",
		TierID:       "renovation_xbert",
		Categories:   []string{"Roofing"},
	})

	var techErr *TechnicalError
	require.ErrorAs(t, err, &techErr)
	assert.Equal(t, CodePaymentUnavailable, techErr.Code)
	assert.True(t, techErr.Retryable())
	assert.NotEmpty(t, techErr.RequestID)
}
