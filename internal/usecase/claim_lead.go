package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/renoxbert/leadmarket/internal/entity"
	"github.com/renoxbert/leadmarket/internal/infra/queue"
)

const (
	ReasonLeadNotFound      = "LEAD_NOT_FOUND"
	ReasonAlreadyClaimed    = "ALREADY_CLAIMED"
	ReasonNotSubscribed     = "NOT_SUBSCRIBED"
	ReasonTransactionFailed = "TRANSACTION_FAILED"
)

type ClaimLeadInput struct {
	LeadID       string `json:"lead_id"`
	ContractorID string `json:"contractor_id"`
	Message      string `json:"message,omitempty"`
}

// ClaimLeadOutput is always returned, win or lose: losing a claim race or
// lacking a subscription is a normal outcome, not an error. Category is set on
// NOT_SUBSCRIBED so the caller can deep-link to the right tier purchase.
// RequestID is set only for TRANSACTION_FAILED.
type ClaimLeadOutput struct {
	Claimed   bool   `json:"claimed"`
	Reason    string `json:"reason,omitempty"`
	Category  string `json:"category,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type ClaimLeadUseCase struct {
	Leads       entity.LeadRepository
	Eligibility EligibilityChecker
	Notifier    NotificationPublisher
}

func NewClaimLeadUseCase(leads entity.LeadRepository, eligibility EligibilityChecker, notifier NotificationPublisher) *ClaimLeadUseCase {
	return &ClaimLeadUseCase{
		Leads:       leads,
		Eligibility: eligibility,
		Notifier:    notifier,
	}
}

// Execute runs the claim arbitration. The precondition reads are advisory:
// exclusivity rests entirely on the repository's conditional update, so two
// racing contractors both passing the checks still resolve to one winner.
func (uc *ClaimLeadUseCase) Execute(ctx context.Context, input ClaimLeadInput) (*ClaimLeadOutput, error) {
	lead, err := uc.Leads.FindByID(ctx, input.LeadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return &ClaimLeadOutput{Claimed: false, Reason: ReasonLeadNotFound}, nil
		}
		return uc.transactionFailed("lookup", input.LeadID, err), nil
	}

	if lead.ClaimedBy(input.ContractorID) {
		// Re-claim by the current holder: success no-op, safe to retry.
		return &ClaimLeadOutput{Claimed: true}, nil
	}
	if !lead.Claimable() {
		return &ClaimLeadOutput{Claimed: false, Reason: ReasonAlreadyClaimed}, nil
	}

	eligible, err := uc.Eligibility.IsEligible(ctx, input.ContractorID, lead.Category)
	if err != nil {
		return uc.transactionFailed("eligibility", input.LeadID, err), nil
	}
	if !eligible {
		return &ClaimLeadOutput{
			Claimed:  false,
			Reason:   ReasonNotSubscribed,
			Category: lead.Category,
		}, nil
	}

	won, err := uc.Leads.Claim(ctx, input.LeadID, input.ContractorID)
	if err != nil {
		return uc.transactionFailed("claim", input.LeadID, err), nil
	}
	if !won {
		// Lost the race between our read and the update. Re-read to tell
		// "someone else got it" apart from "our own earlier attempt committed".
		current, err := uc.Leads.FindByID(ctx, input.LeadID)
		if err == nil && current.ClaimedBy(input.ContractorID) {
			return &ClaimLeadOutput{Claimed: true}, nil
		}
		return &ClaimLeadOutput{Claimed: false, Reason: ReasonAlreadyClaimed}, nil
	}

	// Claim is committed; notification is best-effort from here on.
	uc.notifyClaimed(lead, input)

	return &ClaimLeadOutput{Claimed: true}, nil
}

func (uc *ClaimLeadUseCase) notifyClaimed(lead *entity.Lead, input ClaimLeadInput) {
	go func() {
		nctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		event := queue.NotificationEvent{
			Event:        queue.EventLeadClaimed,
			LeadID:       lead.ID,
			LeadTitle:    lead.Title,
			Category:     lead.Category,
			ContractorID: input.ContractorID,
			Message:      input.Message,
		}
		if err := uc.Notifier.Publish(nctx, event); err != nil {
			log.Printf("[CLAIM] notification for lead %s failed: %v", lead.ID, err)
		}
	}()
}

func (uc *ClaimLeadUseCase) transactionFailed(stage, leadID string, err error) *ClaimLeadOutput {
	techErr := NewTechnicalError(CodeStorageFailure, "claim transaction failed")
	log.Printf("[CLAIM] request=%s stage=%s lead=%s: %v", techErr.RequestID, stage, leadID, err)
	return &ClaimLeadOutput{
		Claimed:   false,
		Reason:    ReasonTransactionFailed,
		RequestID: techErr.RequestID,
	}
}
