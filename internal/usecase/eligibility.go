package usecase

import (
	"context"
	"time"

	"github.com/renoxbert/leadmarket/internal/entity"
)

// EligibilityService derives "contractor may act on category" from the
// subscription rows. The clock is a field so grace-period behaviour is
// testable at fixed instants.
type EligibilityService struct {
	Subs entity.SubscriptionRepository
	Now  func() time.Time
}

func NewEligibilityService(subs entity.SubscriptionRepository) *EligibilityService {
	return &EligibilityService{
		Subs: subs,
		Now:  time.Now,
	}
}

// IsEligible is true iff some subscription row covers the category and still
// grants access right now. Canceled rows count until their period end passes.
func (s *EligibilityService) IsEligible(ctx context.Context, contractorID, category string) (bool, error) {
	subs, err := s.Subs.FindByContractor(ctx, contractorID)
	if err != nil {
		return false, err
	}

	now := s.Now()
	for _, sub := range subs {
		if sub.Covers(category) && sub.ActiveAt(now) {
			return true, nil
		}
	}
	return false, nil
}
