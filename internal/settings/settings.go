// Package settings holds platform-wide configuration editable at runtime,
// currently the PayPal address payouts are sent from.
package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Settings is the single platform-wide settings row.
type Settings struct {
	PaypalEmail string `json:"paypal_email"`
}

// Repository persists the settings row.
type Repository interface {
	Get(ctx context.Context) (Settings, error)
	Save(ctx context.Context, s Settings) error
}

// PostgresRepository stores settings in a single-row table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed settings repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) Get(ctx context.Context) (Settings, error) {
	var s Settings
	var email *string
	err := r.pool.QueryRow(ctx, `SELECT paypal_email FROM platform_settings WHERE id = 1`).Scan(&email)
	if errors.Is(err, pgx.ErrNoRows) {
		return Settings{}, nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}
	if email != nil {
		s.PaypalEmail = *email
	}
	return s, nil
}

func (r *PostgresRepository) Save(ctx context.Context, s Settings) error {
	var email *string
	if s.PaypalEmail != "" {
		email = &s.PaypalEmail
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO platform_settings (id, paypal_email) VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET paypal_email = EXCLUDED.paypal_email`, email)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// MemoryRepository is an in-memory settings store used in tests and when no
// database is configured.
type MemoryRepository struct {
	mu sync.RWMutex
	s  Settings
}

// NewMemoryRepository builds an empty in-memory settings store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Get(ctx context.Context) (Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.s, nil
}

func (r *MemoryRepository) Save(ctx context.Context, s Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.s = s
	return nil
}

// Service normalizes and persists the platform settings.
type Service struct {
	repo Repository
}

// NewService builds the settings service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get reads the current settings.
func (s *Service) Get(ctx context.Context) (Settings, error) {
	return s.repo.Get(ctx)
}

// Save lower-cases and trims the PayPal address before persisting. An empty
// address clears the stored value.
func (s *Service) Save(ctx context.Context, paypalEmail string) (Settings, error) {
	normalized := Settings{PaypalEmail: strings.ToLower(strings.TrimSpace(paypalEmail))}
	if err := s.repo.Save(ctx, normalized); err != nil {
		return Settings{}, err
	}
	return normalized, nil
}
