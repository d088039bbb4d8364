package trading

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists trades.
type Repository interface {
	Create(ctx context.Context, t *Trade) error
	ListByChallenge(ctx context.Context, challengeID int64) ([]Trade, error)
	// PnLBefore sums the profit of all trades on a challenge recorded
	// strictly before the cutoff. It anchors the daily-loss baseline.
	PnLBefore(ctx context.Context, challengeID int64, cutoff time.Time) (float64, error)
}

// PostgresRepository stores trades in Postgres.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed trade repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) Create(ctx context.Context, t *Trade) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO trades (challenge_id, symbol, type, quantity, open_price, close_price, pnl, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		t.ChallengeID, t.Symbol, t.Type, t.Quantity, t.OpenPrice, t.ClosePrice, t.PnL, t.CreatedAt,
	).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("insert trade: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListByChallenge(ctx context.Context, challengeID int64) ([]Trade, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, challenge_id, symbol, type, quantity, open_price, close_price, pnl, created_at
		FROM trades WHERE challenge_id = $1 ORDER BY created_at DESC, id DESC`, challengeID)
	if err != nil {
		return nil, fmt.Errorf("list trades: %w", err)
	}
	defer rows.Close()

	var trades []Trade
	for rows.Next() {
		var t Trade
		if err := rows.Scan(&t.ID, &t.ChallengeID, &t.Symbol, &t.Type, &t.Quantity,
			&t.OpenPrice, &t.ClosePrice, &t.PnL, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan trade: %w", err)
		}
		trades = append(trades, t)
	}
	return trades, rows.Err()
}

func (r *PostgresRepository) PnLBefore(ctx context.Context, challengeID int64, cutoff time.Time) (float64, error) {
	var sum float64
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(pnl), 0) FROM trades
		WHERE challenge_id = $1 AND created_at < $2`, challengeID, cutoff,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum pnl: %w", err)
	}
	return sum, nil
}
