package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/renoxbert/leadmarket/internal/entity"
	"github.com/renoxbert/leadmarket/internal/infra/integration/stripe"
)

type CreateCheckoutInput struct {
	ContractorID string   `json:"contractor_id"`
	TierID       string   `json:"tier"`
	Categories   []string `json:"categories"`
}

type CreateCheckoutOutput struct {
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
}

// CreateCheckoutUseCase validates the tier pick and hands off to the payment
// collaborator. No subscription row is written here; that happens on webhook
// confirmation, so an abandoned checkout leaves no state behind.
type CreateCheckoutUseCase struct {
	Gateway    PaymentGateway
	SuccessURL string
	CancelURL  string
}

func NewCreateCheckoutUseCase(gateway PaymentGateway, successURL, cancelURL string) *CreateCheckoutUseCase {
	return &CreateCheckoutUseCase{
		Gateway:    gateway,
		SuccessURL: successURL,
		CancelURL:  cancelURL,
	}
}

func (uc *CreateCheckoutUseCase) Execute(ctx context.Context, input CreateCheckoutInput) (*CreateCheckoutOutput, error) {
	tier, err := entity.TierByID(input.TierID)
	if err != nil {
		return nil, &DomainError{Code: "TIER_NOT_FOUND", Message: fmt.Sprintf("unknown tier %q", input.TierID)}
	}

	categories := input.Categories
	if tier.AllCategories {
		// The wildcard tier ignores any category pick.
		categories = nil
	} else {
		if len(categories) == 0 {
			return nil, &DomainError{Code: "NO_CATEGORIES", Message: "pick at least one category for this tier"}
		}
		if len(categories) > tier.CategoryAllowance {
			return nil, &DomainError{
				Code:    "TOO_MANY_CATEGORIES",
				Message: fmt.Sprintf("tier %s allows at most %d categories", tier.Name, tier.CategoryAllowance),
			}
		}
		for _, c := range categories {
			if !entity.ValidCategory(c) {
				return nil, &DomainError{Code: "UNKNOWN_CATEGORY", Message: fmt.Sprintf("unknown category %q", c)}
			}
		}
	}

	session, err := uc.Gateway.CreateCheckoutSession(ctx, stripe.CheckoutSessionInput{
		ContractorID: input.ContractorID,
		TierID:       tier.ID,
		TierName:     tier.Name,
		Categories:   categories,
		PriceCents:   tier.MonthlyPriceCents,
		SuccessURL:   uc.SuccessURL,
		CancelURL:    uc.CancelURL,
	})
	if err != nil {
		// Existing eligibility is untouched; the contractor can retry.
		techErr := NewTechnicalError(CodePaymentUnavailable, "payment provider unreachable, try again")
		log.Printf("[CHECKOUT] request=%s contractor=%s: %v", techErr.RequestID, input.ContractorID, err)
		return nil, techErr
	}

	return &CreateCheckoutOutput{
		SessionID:   session.ID,
		CheckoutURL: session.URL,
	}, nil
}
