package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/renoxbert/leadmarket/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (
			id, title, description, category,
			budget_min, budget_max,
			city, province, postal_code,
			tags, photos,
			status, published, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.DB.ExecContext(ctx, query,
		lead.ID,
		lead.Title,
		lead.Description,
		lead.Category,
		lead.BudgetMin,
		lead.BudgetMax,
		lead.City,
		lead.Province,
		lead.PostalCode,
		lead.Tags,
		pq.Array(lead.Photos),
		string(lead.Status),
		lead.Published,
		lead.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert lead: %w", err)
	}

	return nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := `
		SELECT id, title, description, category,
		       budget_min, budget_max,
		       city, province, postal_code,
		       tags, photos,
		       status, published, claimed_by_id, created_at
		FROM leads
		WHERE id = $1
	`

	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrLeadNotFound
		}
		return nil, fmt.Errorf("failed to load lead: %w", err)
	}
	return lead, nil
}

// Claim is the whole arbitration in one statement: the WHERE clause only
// matches while the lead is still open, so under concurrent attempts exactly
// one UPDATE reports a row and every other caller sees zero.
func (r *LeadRepository) Claim(ctx context.Context, leadID, contractorID string) (bool, error) {
	query := `
		UPDATE leads
		SET status = $1, claimed_by_id = $2
		WHERE id = $3 AND status = $4 AND published = TRUE
	`

	res, err := r.DB.ExecContext(ctx, query,
		string(entity.LeadStatusClaimed),
		contractorID,
		leadID,
		string(entity.LeadStatusPublished),
	)
	if err != nil {
		return false, fmt.Errorf("claim update failed: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("claim update failed: %w", err)
	}
	return affected == 1, nil
}

func (r *LeadRepository) ListPublished(ctx context.Context, filters entity.LeadFilters) ([]entity.Lead, error) {
	query, args := buildListQuery(filters)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	defer rows.Close()

	var leads []entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lead: %w", err)
		}
		leads = append(leads, *lead)
	}
	return leads, rows.Err()
}

// buildListQuery assembles the filtered browse query. Budget filters compare
// against the lead's own bounds, so leads without a budget drop out of
// budget-filtered results rather than matching everything.
func buildListQuery(filters entity.LeadFilters) (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT id, title, description, category,
		       budget_min, budget_max,
		       city, province, postal_code,
		       tags, photos,
		       status, published, claimed_by_id, created_at
		FROM leads
		WHERE published = TRUE
	`)

	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filters.Query != "" {
		p := arg("%" + filters.Query + "%")
		sb.WriteString(fmt.Sprintf(
			" AND (title ILIKE %s OR description ILIKE %s OR tags ILIKE %s OR city ILIKE %s)",
			p, p, p, p,
		))
	}
	if filters.Trade != "" {
		p := arg("%" + filters.Trade + "%")
		sb.WriteString(fmt.Sprintf(" AND (category ILIKE %s OR tags ILIKE %s)", p, p))
	}
	if filters.City != "" {
		sb.WriteString(fmt.Sprintf(" AND city ILIKE %s", arg("%"+filters.City+"%")))
	}
	if filters.Province != "" {
		sb.WriteString(fmt.Sprintf(" AND province ILIKE %s", arg("%"+filters.Province+"%")))
	}
	if filters.MinBudget != nil {
		sb.WriteString(fmt.Sprintf(" AND budget_min IS NOT NULL AND budget_min >= %s", arg(*filters.MinBudget)))
	}
	if filters.MaxBudget != nil {
		sb.WriteString(fmt.Sprintf(" AND budget_max IS NOT NULL AND budget_max <= %s", arg(*filters.MaxBudget)))
	}

	sb.WriteString(" ORDER BY created_at DESC")
	return sb.String(), args
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var lead entity.Lead
	var photos pq.StringArray
	var status string

	err := row.Scan(
		&lead.ID,
		&lead.Title,
		&lead.Description,
		&lead.Category,
		&lead.BudgetMin,
		&lead.BudgetMax,
		&lead.City,
		&lead.Province,
		&lead.PostalCode,
		&lead.Tags,
		&photos,
		&status,
		&lead.Published,
		&lead.ClaimedByID,
		&lead.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	lead.Photos = photos
	lead.Status = entity.LeadStatus(status)
	return &lead, nil
}
