package challenge

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound means no challenge matches the lookup.
var ErrNotFound = errors.New("challenge not found")

// Repository persists challenges.
type Repository interface {
	Create(ctx context.Context, c *Challenge) error
	ByID(ctx context.Context, id int64) (*Challenge, error)
	LatestByUser(ctx context.Context, userID int64) (*Challenge, error)
	Update(ctx context.Context, c *Challenge) error
}

// PostgresRepository stores challenges in Postgres.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed challenge repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) Create(ctx context.Context, c *Challenge) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO challenges (user_id, plan_type, start_balance, current_equity, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		c.UserID, c.PlanType, c.StartBalance, c.CurrentEquity, c.Status, c.CreatedAt,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("insert challenge: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ByID(ctx context.Context, id int64) (*Challenge, error) {
	return r.scanOne(r.pool.QueryRow(ctx, `
		SELECT id, user_id, plan_type, start_balance, current_equity, status, created_at
		FROM challenges WHERE id = $1`, id))
}

func (r *PostgresRepository) LatestByUser(ctx context.Context, userID int64) (*Challenge, error) {
	return r.scanOne(r.pool.QueryRow(ctx, `
		SELECT id, user_id, plan_type, start_balance, current_equity, status, created_at
		FROM challenges WHERE user_id = $1
		ORDER BY created_at DESC, id DESC LIMIT 1`, userID))
}

func (r *PostgresRepository) Update(ctx context.Context, c *Challenge) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE challenges SET current_equity = $1, status = $2 WHERE id = $3`,
		c.CurrentEquity, c.Status, c.ID)
	if err != nil {
		return fmt.Errorf("update challenge: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) scanOne(row pgx.Row) (*Challenge, error) {
	var c Challenge
	err := row.Scan(&c.ID, &c.UserID, &c.PlanType, &c.StartBalance, &c.CurrentEquity, &c.Status, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan challenge: %w", err)
	}
	return &c, nil
}
