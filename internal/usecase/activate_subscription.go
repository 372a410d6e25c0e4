package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/renoxbert/leadmarket/internal/entity"
	"github.com/renoxbert/leadmarket/internal/infra/queue"
)

// ActivateSubscriptionInput is rebuilt from checkout-session metadata when the
// payment webhook confirms. SessionID keys replay detection.
type ActivateSubscriptionInput struct {
	SessionID    string
	ContractorID string
	TierID       string
	Categories   []string
}

type ActivateSubscriptionUseCase struct {
	Subs     entity.SubscriptionRepository
	Notifier NotificationPublisher
	Now      func() time.Time
}

func NewActivateSubscriptionUseCase(subs entity.SubscriptionRepository, notifier NotificationPublisher) *ActivateSubscriptionUseCase {
	return &ActivateSubscriptionUseCase{
		Subs:     subs,
		Notifier: notifier,
		Now:      time.Now,
	}
}

// Execute writes the subscription rows that make the contractor eligible:
// one row per chosen category, or a single wildcard row for all-category tiers.
// Idempotent per session: payment providers redeliver on timeouts and on the
// 500 a partial failure returns, so categories the session already granted are
// skipped and only the missing rows are filled in.
func (uc *ActivateSubscriptionUseCase) Execute(ctx context.Context, input ActivateSubscriptionInput) error {
	tier, err := entity.TierByID(input.TierID)
	if err != nil {
		return fmt.Errorf("webhook names unknown tier %q: %w", input.TierID, err)
	}

	categories := input.Categories
	if tier.AllCategories {
		categories = []string{entity.CategoryAll}
	}

	existing, err := uc.Subs.FindBySession(ctx, input.SessionID)
	if err != nil {
		return fmt.Errorf("failed to check session %q: %w", input.SessionID, err)
	}
	granted := make(map[string]bool, len(existing))
	for _, sub := range existing {
		granted[sub.Category] = true
	}

	created := 0
	periodStart := uc.Now()
	for _, category := range categories {
		if granted[category] {
			continue
		}
		sub := entity.NewSubscription(input.ContractorID, category, input.SessionID, tier.MonthlyPriceCents, tier.MonthlyLeadLimit, periodStart)
		if err := uc.Subs.Create(ctx, sub); err != nil {
			return fmt.Errorf("failed to create subscription for %q: %w", category, err)
		}
		created++
	}

	if created == 0 {
		log.Printf("[ACTIVATE] session=%s already processed, skipping", input.SessionID)
		return nil
	}

	log.Printf("[ACTIVATE] contractor=%s tier=%s categories=%d", input.ContractorID, tier.ID, created)

	event := queue.NotificationEvent{
		Event:        queue.EventSubscriptionActivated,
		ContractorID: input.ContractorID,
		TierName:     tier.Name,
	}
	if err := uc.Notifier.Publish(ctx, event); err != nil {
		// Rows are committed; the welcome email is best-effort.
		log.Printf("[ACTIVATE] activated but welcome publish failed: %v", err)
	}

	return nil
}
