package entity

import (
	"context"
	"errors"
	"time"
)

var ErrContractorNotFound = errors.New("contractor not found")

// Contractor identity is owned elsewhere; we keep the columns the
// notification fan-out and claim confirmations need.
type Contractor struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type ContractorRepository interface {
	FindByID(ctx context.Context, id string) (*Contractor, error)
	ListAll(ctx context.Context) ([]Contractor, error)
}
