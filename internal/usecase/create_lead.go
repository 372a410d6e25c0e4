package usecase

import (
	"context"
	"log"
	"time"

	"github.com/renoxbert/leadmarket/internal/entity"
	"github.com/renoxbert/leadmarket/internal/infra/queue"
)

type CreateLeadInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	BudgetMin   *int     `json:"budget_min"`
	BudgetMax   *int     `json:"budget_max"`
	City        string   `json:"city"`
	Province    string   `json:"province"`
	PostalCode  string   `json:"postal_code"`
	Tags        string   `json:"tags"`
	Photos      []string `json:"photos"`
}

type CreateLeadOutput struct {
	Success  bool   `json:"success"`
	LeadID   string `json:"lead_id"`
	Category string `json:"category"`
}

type CreateLeadUseCase struct {
	Leads      entity.LeadRepository
	Classifier Classifier
	Notifier   NotificationPublisher
}

func NewCreateLeadUseCase(leads entity.LeadRepository, classifier Classifier, notifier NotificationPublisher) *CreateLeadUseCase {
	return &CreateLeadUseCase{
		Leads:      leads,
		Classifier: classifier,
		Notifier:   notifier,
	}
}

func (uc *CreateLeadUseCase) Execute(ctx context.Context, input CreateLeadInput) (*CreateLeadOutput, error) {
	if errs := ValidateCreateLeadInput(input); len(errs) > 0 {
		return nil, errs
	}

	category := input.Category
	if category == "" {
		category = uc.Classifier.Classify(input.Description)
	}

	lead := entity.NewLead(
		input.Title,
		input.Description,
		category,
		input.City,
		input.Province,
		input.PostalCode,
		input.Tags,
		input.BudgetMin,
		input.BudgetMax,
		input.Photos,
	)

	if err := uc.Leads.Create(ctx, lead); err != nil {
		techErr := NewTechnicalError(CodeStorageFailure, "failed to persist lead")
		log.Printf("[CREATE LEAD] request=%s persist failed: %v", techErr.RequestID, err)
		return nil, techErr
	}

	// Broadcast is fire-and-forget: a slow or dead broker must never fail the
	// create, so it runs detached with its own deadline.
	go func() {
		bctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		event := queue.NotificationEvent{
			Event:     queue.EventLeadPublished,
			LeadID:    lead.ID,
			LeadTitle: lead.Title,
			Category:  lead.Category,
			City:      lead.City,
		}
		if err := uc.Notifier.Publish(bctx, event); err != nil {
			log.Printf("[CREATE LEAD] broadcast for lead %s failed: %v", lead.ID, err)
		}
	}()

	return &CreateLeadOutput{
		Success:  true,
		LeadID:   lead.ID,
		Category: lead.Category,
	}, nil
}
