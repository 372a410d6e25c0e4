package worker

import (
	"context"
	"log"
	"time"

	"github.com/renoxbert/leadmarket/internal/entity"
)

// SubscriptionExpiryWorker lapses subscriptions whose grace period has ended.
// Eligibility already checks the clock on every call, so this only keeps the
// stored status honest for dashboards and support queries.
type SubscriptionExpiryWorker struct {
	subs         entity.SubscriptionRepository
	tickInterval time.Duration
}

func NewSubscriptionExpiryWorker(subs entity.SubscriptionRepository) *SubscriptionExpiryWorker {
	return &SubscriptionExpiryWorker{
		subs:         subs,
		tickInterval: 1 * time.Hour,
	}
}

func (w *SubscriptionExpiryWorker) Start(ctx context.Context) {
	log.Println("[EXPIRY] subscription expiry worker started")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.expireLapsed(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("[EXPIRY] subscription expiry worker stopped")
			return
		case <-ticker.C:
			w.expireLapsed(ctx)
		}
	}
}

func (w *SubscriptionExpiryWorker) expireLapsed(ctx context.Context) {
	count, err := w.subs.ExpireLapsed(ctx, time.Now())
	if err != nil {
		log.Printf("[EXPIRY] failed to expire subscriptions: %v", err)
		return
	}
	if count > 0 {
		log.Printf("[EXPIRY] %d subscription(s) marked expired", count)
	}
}
