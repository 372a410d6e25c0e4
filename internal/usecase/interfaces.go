package usecase

import (
	"context"

	"github.com/renoxbert/leadmarket/internal/infra/integration/stripe"
	"github.com/renoxbert/leadmarket/internal/infra/queue"
)

// NotificationPublisher is the one-way, fire-and-forget dispatcher boundary.
// Failures are logged by callers and never surfaced to the end user.
type NotificationPublisher interface {
	Publish(ctx context.Context, event queue.NotificationEvent) error
}

type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, input stripe.CheckoutSessionInput) (*stripe.CheckoutSession, error)
}

// EligibilityChecker answers "may this contractor act on this category".
type EligibilityChecker interface {
	IsEligible(ctx context.Context, contractorID, category string) (bool, error)
}
