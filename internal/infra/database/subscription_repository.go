package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/renoxbert/leadmarket/internal/entity"
)

type SubscriptionRepository struct {
	DB *sql.DB
}

func NewSubscriptionRepository(db *sql.DB) *SubscriptionRepository {
	return &SubscriptionRepository{DB: db}
}

func (r *SubscriptionRepository) Create(ctx context.Context, sub *entity.Subscription) error {
	// ON CONFLICT backstops the usecase's replay check: two concurrent
	// deliveries of the same session insert the grant once.
	query := `
		INSERT INTO subscriptions (
			id, contractor_id, category, status,
			monthly_price_cents, leads_this_month, monthly_lead_limit,
			current_period_start, current_period_end,
			cancel_at_period_end, checkout_session_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (checkout_session_id, category) DO NOTHING
	`

	_, err := r.DB.ExecContext(ctx, query,
		sub.ID,
		sub.ContractorID,
		sub.Category,
		string(sub.Status),
		sub.MonthlyPriceCents,
		sub.LeadsThisMonth,
		sub.MonthlyLeadLimit,
		sub.CurrentPeriodStart,
		sub.CurrentPeriodEnd,
		sub.CancelAtPeriodEnd,
		sub.CheckoutSessionID,
		sub.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	return nil
}

func (r *SubscriptionRepository) FindByID(ctx context.Context, id string) (*entity.Subscription, error) {
	query := selectSubscription + ` WHERE id = $1`

	sub, err := scanSubscription(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("failed to load subscription: %w", err)
	}
	return sub, nil
}

func (r *SubscriptionRepository) FindByContractor(ctx context.Context, contractorID string) ([]entity.Subscription, error) {
	query := selectSubscription + ` WHERE contractor_id = $1 ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, contractorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []entity.Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		subs = append(subs, *sub)
	}
	return subs, rows.Err()
}

func (r *SubscriptionRepository) FindBySession(ctx context.Context, sessionID string) ([]entity.Subscription, error) {
	query := selectSubscription + ` WHERE checkout_session_id = $1`

	rows, err := r.DB.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions by session: %w", err)
	}
	defer rows.Close()

	var subs []entity.Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		subs = append(subs, *sub)
	}
	return subs, rows.Err()
}

func (r *SubscriptionRepository) MarkCancelAtPeriodEnd(ctx context.Context, id string) error {
	query := `
		UPDATE subscriptions
		SET cancel_at_period_end = TRUE, status = $1
		WHERE id = $2
	`
	_, err := r.DB.ExecContext(ctx, query, string(entity.SubscriptionCanceled), id)
	if err != nil {
		return fmt.Errorf("failed to cancel subscription: %w", err)
	}
	return nil
}

// ExpireLapsed flips rows whose grace period has ended. Housekeeping only:
// eligibility checks the clock itself and never trusts the status flag.
func (r *SubscriptionRepository) ExpireLapsed(ctx context.Context, now time.Time) (int, error) {
	query := `
		UPDATE subscriptions
		SET status = $1
		WHERE status IN ($2, $3, $4) AND current_period_end < $5
	`

	res, err := r.DB.ExecContext(ctx, query,
		string(entity.SubscriptionExpired),
		string(entity.SubscriptionActive),
		string(entity.SubscriptionTrialing),
		string(entity.SubscriptionCanceled),
		now,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to expire subscriptions: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}

const selectSubscription = `
	SELECT id, contractor_id, category, status,
	       monthly_price_cents, leads_this_month, monthly_lead_limit,
	       current_period_start, current_period_end,
	       cancel_at_period_end, checkout_session_id, created_at
	FROM subscriptions`

func scanSubscription(row rowScanner) (*entity.Subscription, error) {
	var sub entity.Subscription
	var status string

	err := row.Scan(
		&sub.ID,
		&sub.ContractorID,
		&sub.Category,
		&status,
		&sub.MonthlyPriceCents,
		&sub.LeadsThisMonth,
		&sub.MonthlyLeadLimit,
		&sub.CurrentPeriodStart,
		&sub.CurrentPeriodEnd,
		&sub.CancelAtPeriodEnd,
		&sub.CheckoutSessionID,
		&sub.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	sub.Status = entity.SubscriptionStatus(status)
	return &sub, nil
}
