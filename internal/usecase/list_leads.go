package usecase

import (
	"context"
	"log"
	"strings"

	"github.com/renoxbert/leadmarket/internal/entity"
)

// ListLeadsUseCase is the read-side browse surface for contractors. Pure
// query, no mutation; ordering is createdAt descending, done in SQL.
type ListLeadsUseCase struct {
	Leads entity.LeadRepository
}

func NewListLeadsUseCase(leads entity.LeadRepository) *ListLeadsUseCase {
	return &ListLeadsUseCase{Leads: leads}
}

func (uc *ListLeadsUseCase) Execute(ctx context.Context, filters entity.LeadFilters) ([]entity.Lead, error) {
	filters.Query = strings.TrimSpace(filters.Query)
	filters.Trade = strings.TrimSpace(filters.Trade)
	filters.City = strings.TrimSpace(filters.City)
	filters.Province = strings.TrimSpace(filters.Province)

	leads, err := uc.Leads.ListPublished(ctx, filters)
	if err != nil {
		techErr := NewTechnicalError(CodeStorageFailure, "failed to list leads")
		log.Printf("[LIST LEADS] request=%s query failed: %v", techErr.RequestID, err)
		return nil, techErr
	}
	return leads, nil
}
