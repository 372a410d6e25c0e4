package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrSubscriptionNotFound = errors.New("subscription not found")

type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionTrialing SubscriptionStatus = "trialing"
	SubscriptionCanceled SubscriptionStatus = "canceled"
	SubscriptionExpired  SubscriptionStatus = "expired"
)

// CategoryAll marks a subscription row that covers every category
// (General Contractor tier).
const CategoryAll = "*"

// Subscription grants a contractor access to one category (or all, for the
// wildcard row). A canceled row keeps granting access until current_period_end;
// eligibility always checks the clock, never the status flag alone.
type Subscription struct {
	ID                 string             `json:"id"`
	ContractorID       string             `json:"contractor_id"`
	Category           string             `json:"category"`
	Status             SubscriptionStatus `json:"status"`
	MonthlyPriceCents  int                `json:"monthly_price_cents"`
	LeadsThisMonth     int                `json:"leads_this_month"`
	MonthlyLeadLimit   int                `json:"monthly_lead_limit"` // 0 = unlimited
	CurrentPeriodStart time.Time          `json:"current_period_start"`
	CurrentPeriodEnd   time.Time          `json:"current_period_end"`
	CancelAtPeriodEnd  bool               `json:"cancel_at_period_end"`
	CheckoutSessionID  string             `json:"checkout_session_id"`
	CreatedAt          time.Time          `json:"created_at"`
}

type SubscriptionRepository interface {
	Create(ctx context.Context, sub *Subscription) error
	FindByID(ctx context.Context, id string) (*Subscription, error)
	FindByContractor(ctx context.Context, contractorID string) ([]Subscription, error)

	// FindBySession returns the rows already granted for a checkout session, so
	// a redelivered payment webhook can be recognised and skipped.
	FindBySession(ctx context.Context, sessionID string) ([]Subscription, error)

	MarkCancelAtPeriodEnd(ctx context.Context, id string) error
	ExpireLapsed(ctx context.Context, now time.Time) (int, error)
}

func NewSubscription(contractorID, category, sessionID string, priceCents, leadLimit int, periodStart time.Time) *Subscription {
	return &Subscription{
		ID:                 uuid.New().String(),
		ContractorID:       contractorID,
		Category:           category,
		Status:             SubscriptionActive,
		MonthlyPriceCents:  priceCents,
		MonthlyLeadLimit:   leadLimit,
		CurrentPeriodStart: periodStart,
		CurrentPeriodEnd:   periodStart.AddDate(0, 1, 0),
		CheckoutSessionID:  sessionID,
		CreatedAt:          periodStart,
	}
}

// Covers reports whether this row applies to the given category.
func (s *Subscription) Covers(category string) bool {
	return s.Category == CategoryAll || s.Category == category
}

// ActiveAt reports whether the row still grants access at the given instant.
// Canceled rows stay in grace until the period end passes.
func (s *Subscription) ActiveAt(now time.Time) bool {
	switch s.Status {
	case SubscriptionActive, SubscriptionTrialing, SubscriptionCanceled:
		return now.Before(s.CurrentPeriodEnd)
	default:
		return false
	}
}
