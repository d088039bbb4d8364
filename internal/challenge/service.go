package challenge

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/tradesense/tradesense/internal/notification"
)

// Service implements challenge operations.
type Service struct {
	repo     Repository
	notifier notification.Notifier
	logger   *slog.Logger
}

// NewService builds the challenge service. notifier may be nil.
func NewService(repo Repository, notifier notification.Notifier, logger *slog.Logger) *Service {
	return &Service{repo: repo, notifier: notifier, logger: logger}
}

// Buy creates an active challenge for the user at the plan's starting
// balance. Unknown plans fall back to the starter tier.
func (s *Service) Buy(ctx context.Context, userID int64, planType string) (*Challenge, error) {
	plan, balance := PlanBalance(planType)
	c := &Challenge{
		UserID:        userID,
		PlanType:      plan,
		StartBalance:  balance,
		CurrentEquity: balance,
		Status:        StatusActive,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	s.logger.Info("challenge purchased", "challenge_id", c.ID, "user_id", userID, "plan", plan)
	return c, nil
}

// ByID fetches one challenge.
func (s *Service) ByID(ctx context.Context, id int64) (*Challenge, error) {
	return s.repo.ByID(ctx, id)
}

// Latest returns the user's most recent challenge.
func (s *Service) Latest(ctx context.Context, userID int64) (*Challenge, error) {
	return s.repo.LatestByUser(ctx, userID)
}

// LatestStatus returns the status of the user's most recent challenge, or
// empty when the user has none.
func (s *Service) LatestStatus(ctx context.Context, userID int64) (string, error) {
	c, err := s.repo.LatestByUser(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return c.Status, nil
}

// ApplyEquity moves the challenge to a new equity level, re-evaluates the
// risk rules and persists the result. A status transition is published to
// the notifier.
func (s *Service) ApplyEquity(ctx context.Context, c *Challenge, equity, pnlBeforeToday float64) error {
	prev := c.Status
	c.CurrentEquity = equity
	c.Status = NextStatus(c, equity, pnlBeforeToday)

	if err := s.repo.Update(ctx, c); err != nil {
		return err
	}

	if c.Status != prev && s.notifier != nil {
		s.notifier.ChallengeStatusChanged(ctx, notification.StatusChange{
			ChallengeID: c.ID,
			UserID:      c.UserID,
			From:        prev,
			To:          c.Status,
			Equity:      equity,
		})
	}
	return nil
}
