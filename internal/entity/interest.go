package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type InterestType string

const (
	InterestSaved   InterestType = "SAVED"
	InterestApplied InterestType = "APPLIED"
)

// Interest is a non-binding contractor signal on a lead. It never influences
// the claim outcome; upserts are keyed on (contractor_id, lead_id, type).
type Interest struct {
	ID           string       `json:"id"`
	ContractorID string       `json:"contractor_id"`
	LeadID       string       `json:"lead_id"`
	Type         InterestType `json:"type"`
	Message      string       `json:"message,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

type InterestRepository interface {
	Upsert(ctx context.Context, interest *Interest) error
	ListByContractor(ctx context.Context, contractorID string) ([]Interest, error)
}

func NewInterest(contractorID, leadID string, interestType InterestType, message string) *Interest {
	return &Interest{
		ID:           uuid.New().String(),
		ContractorID: contractorID,
		LeadID:       leadID,
		Type:         interestType,
		Message:      message,
		CreatedAt:    time.Now(),
	}
}

func (t InterestType) Valid() bool {
	return t == InterestSaved || t == InterestApplied
}
