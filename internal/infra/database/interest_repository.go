package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/renoxbert/leadmarket/internal/entity"
)

type InterestRepository struct {
	DB *sql.DB
}

func NewInterestRepository(db *sql.DB) *InterestRepository {
	return &InterestRepository{DB: db}
}

// Upsert keys on (contractor_id, lead_id, type): saving the same lead twice
// refreshes the message instead of stacking duplicate rows.
func (r *InterestRepository) Upsert(ctx context.Context, interest *entity.Interest) error {
	query := `
		INSERT INTO interests (id, contractor_id, lead_id, type, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (contractor_id, lead_id, type)
		DO UPDATE SET message = EXCLUDED.message
	`

	_, err := r.DB.ExecContext(ctx, query,
		interest.ID,
		interest.ContractorID,
		interest.LeadID,
		string(interest.Type),
		interest.Message,
		interest.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert interest: %w", err)
	}
	return nil
}

func (r *InterestRepository) ListByContractor(ctx context.Context, contractorID string) ([]entity.Interest, error) {
	query := `
		SELECT id, contractor_id, lead_id, type, message, created_at
		FROM interests
		WHERE contractor_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query, contractorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list interests: %w", err)
	}
	defer rows.Close()

	var interests []entity.Interest
	for rows.Next() {
		var interest entity.Interest
		var interestType string
		err := rows.Scan(
			&interest.ID,
			&interest.ContractorID,
			&interest.LeadID,
			&interestType,
			&interest.Message,
			&interest.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan interest: %w", err)
		}
		interest.Type = entity.InterestType(interestType)
		interests = append(interests, interest)
	}
	return interests, rows.Err()
}
