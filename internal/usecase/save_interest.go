package usecase

import (
	"context"
	"errors"
	"log"

	"github.com/renoxbert/leadmarket/internal/entity"
)

type SaveInterestInput struct {
	ContractorID string              `json:"contractor_id"`
	LeadID       string              `json:"lead_id"`
	Type         entity.InterestType `json:"type"`
	Message      string              `json:"message,omitempty"`
}

type SaveInterestOutput struct {
	Success bool `json:"success"`
}

// SaveInterestUseCase records a non-binding save/apply signal. It never reads
// or writes lead status and has no bearing on claim arbitration.
type SaveInterestUseCase struct {
	Interests entity.InterestRepository
	Leads     entity.LeadRepository
}

func NewSaveInterestUseCase(interests entity.InterestRepository, leads entity.LeadRepository) *SaveInterestUseCase {
	return &SaveInterestUseCase{
		Interests: interests,
		Leads:     leads,
	}
}

func (uc *SaveInterestUseCase) Execute(ctx context.Context, input SaveInterestInput) (*SaveInterestOutput, error) {
	if !input.Type.Valid() {
		return nil, &DomainError{Code: "INVALID_INTEREST_TYPE", Message: "type must be SAVED or APPLIED"}
	}

	if _, err := uc.Leads.FindByID(ctx, input.LeadID); err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, &DomainError{Code: "LEAD_NOT_FOUND", Message: "lead does not exist"}
		}
		techErr := NewTechnicalError(CodeStorageFailure, "failed to load lead")
		log.Printf("[INTEREST] request=%s lead lookup failed: %v", techErr.RequestID, err)
		return nil, techErr
	}

	interest := entity.NewInterest(input.ContractorID, input.LeadID, input.Type, input.Message)
	if err := uc.Interests.Upsert(ctx, interest); err != nil {
		techErr := NewTechnicalError(CodeStorageFailure, "failed to save interest")
		log.Printf("[INTEREST] request=%s upsert failed: %v", techErr.RequestID, err)
		return nil, techErr
	}

	return &SaveInterestOutput{Success: true}, nil
}
