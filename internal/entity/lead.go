package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrLeadNotFound = errors.New("lead not found")

type LeadStatus string

const (
	LeadStatusPublished LeadStatus = "PUBLISHED"
	LeadStatusClaimed   LeadStatus = "CLAIMED"
	LeadStatusExpired   LeadStatus = "EXPIRED"
	LeadStatusClosed    LeadStatus = "CLOSED"
)

// Lead is a homeowner-submitted project. After creation the only writer is the
// claim path (status + claimed_by_id); everything else is append-only side tables.
type Lead struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	BudgetMin   *int       `json:"budget_min,omitempty"`
	BudgetMax   *int       `json:"budget_max,omitempty"`
	City        string     `json:"city"`
	Province    string     `json:"province"`
	PostalCode  string     `json:"postal_code"`
	Tags        string     `json:"tags,omitempty"` // comma-joined free text
	Photos      []string   `json:"photos,omitempty"`
	Status      LeadStatus `json:"status"`
	Published   bool       `json:"published"`
	ClaimedByID *string    `json:"claimed_by_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// LeadFilters narrows ListPublished. Budget bounds only match leads that carry
// the corresponding budget field; nil-budget leads are excluded, not wildcarded in.
type LeadFilters struct {
	Query     string
	Trade     string
	City      string
	Province  string
	MinBudget *int
	MaxBudget *int
}

type LeadRepository interface {
	Create(ctx context.Context, lead *Lead) error
	FindByID(ctx context.Context, id string) (*Lead, error)
	ListPublished(ctx context.Context, filters LeadFilters) ([]Lead, error)

	// Claim is the single conditional update backing claim exclusivity:
	// it flips status and claimed_by_id only while the lead is still PUBLISHED
	// and reports whether this caller won the row.
	Claim(ctx context.Context, leadID, contractorID string) (bool, error)
}

func NewLead(title, description, category, city, province, postalCode, tags string, budgetMin, budgetMax *int, photos []string) *Lead {
	return &Lead{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		Category:    category,
		BudgetMin:   budgetMin,
		BudgetMax:   budgetMax,
		City:        city,
		Province:    province,
		PostalCode:  postalCode,
		Tags:        tags,
		Photos:      photos,
		Status:      LeadStatusPublished,
		Published:   true,
		CreatedAt:   time.Now(),
	}
}

// Claimable reports whether the lead is still open for claiming.
func (l *Lead) Claimable() bool {
	return l.Published && l.Status == LeadStatusPublished
}

// ClaimedBy reports whether the given contractor already holds this lead.
func (l *Lead) ClaimedBy(contractorID string) bool {
	return l.Status == LeadStatusClaimed && l.ClaimedByID != nil && *l.ClaimedByID == contractorID
}
