package usecase

import (
	"context"
	"errors"
	"log"

	"github.com/renoxbert/leadmarket/internal/entity"
)

type CancelSubscriptionUseCase struct {
	Subs entity.SubscriptionRepository
}

func NewCancelSubscriptionUseCase(subs entity.SubscriptionRepository) *CancelSubscriptionUseCase {
	return &CancelSubscriptionUseCase{Subs: subs}
}

// Execute flags the row for end-of-period cancellation. Access is untouched:
// eligibility keeps honouring the row until current_period_end passes.
func (uc *CancelSubscriptionUseCase) Execute(ctx context.Context, subscriptionID, contractorID string) error {
	sub, err := uc.Subs.FindByID(ctx, subscriptionID)
	if err != nil {
		if errors.Is(err, entity.ErrSubscriptionNotFound) {
			return &DomainError{Code: "SUBSCRIPTION_NOT_FOUND", Message: "subscription does not exist"}
		}
		techErr := NewTechnicalError(CodeStorageFailure, "failed to load subscription")
		log.Printf("[CANCEL] request=%s lookup failed: %v", techErr.RequestID, err)
		return techErr
	}

	if sub.ContractorID != contractorID {
		return &DomainError{Code: "NOT_OWNER", Message: "subscription belongs to another contractor"}
	}

	if err := uc.Subs.MarkCancelAtPeriodEnd(ctx, subscriptionID); err != nil {
		techErr := NewTechnicalError(CodeStorageFailure, "failed to cancel subscription")
		log.Printf("[CANCEL] request=%s update failed: %v", techErr.RequestID, err)
		return techErr
	}

	return nil
}
