package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/renoxbert/leadmarket/internal/entity"
)

type ContractorRepository struct {
	DB *sql.DB
}

func NewContractorRepository(db *sql.DB) *ContractorRepository {
	return &ContractorRepository{DB: db}
}

func (r *ContractorRepository) FindByID(ctx context.Context, id string) (*entity.Contractor, error) {
	query := `SELECT id, name, email, created_at FROM contractors WHERE id = $1`

	var c entity.Contractor
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Email, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrContractorNotFound
		}
		return nil, fmt.Errorf("failed to load contractor: %w", err)
	}
	return &c, nil
}

func (r *ContractorRepository) ListAll(ctx context.Context) ([]entity.Contractor, error) {
	query := `SELECT id, name, email, created_at FROM contractors ORDER BY created_at`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list contractors: %w", err)
	}
	defer rows.Close()

	var contractors []entity.Contractor
	for rows.Next() {
		var c entity.Contractor
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contractor: %w", err)
		}
		contractors = append(contractors, c)
	}
	return contractors, rows.Err()
}
