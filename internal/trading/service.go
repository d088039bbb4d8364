package trading

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/tradesense/tradesense/internal/account"
	"github.com/tradesense/tradesense/internal/challenge"
)

var (
	// ErrInvalidSide means the trade type is neither buy nor sell.
	ErrInvalidSide = errors.New("invalid trade type")
	// ErrInvalidQuantity means the quantity is not a positive integer.
	ErrInvalidQuantity = errors.New("invalid quantity")
	// ErrInvalidPrice means a price is negative.
	ErrInvalidPrice = errors.New("invalid price")
	// ErrMissingSymbol means no symbol was provided.
	ErrMissingSymbol = errors.New("missing symbol")
	// ErrChallengeClosed means the challenge already failed or passed.
	ErrChallengeClosed = errors.New("challenge is not active")
)

// Challenges is the slice of the challenge service trading depends on.
type Challenges interface {
	ByID(ctx context.Context, id int64) (*challenge.Challenge, error)
	Latest(ctx context.Context, userID int64) (*challenge.Challenge, error)
	ApplyEquity(ctx context.Context, c *challenge.Challenge, equity, pnlBeforeToday float64) error
}

// Accounts lists platform users for the leaderboard.
type Accounts interface {
	List(ctx context.Context) ([]account.User, error)
}

// ExecuteRequest is one trade order.
type ExecuteRequest struct {
	ChallengeID int64
	Symbol      string
	Type        string
	Quantity    int
	OpenPrice   float64
	ClosePrice  float64
}

// Service implements trade execution and the leaderboard.
type Service struct {
	repo       Repository
	challenges Challenges
	accounts   Accounts
	logger     *slog.Logger
	now        func() time.Time
}

// NewService builds the trading service.
func NewService(repo Repository, challenges Challenges, accounts Accounts, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		challenges: challenges,
		accounts:   accounts,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Execute validates and records a trade, then applies its profit to the
// challenge equity and re-evaluates the challenge status.
func (s *Service) Execute(ctx context.Context, req ExecuteRequest) (*Trade, *challenge.Challenge, error) {
	side := strings.ToLower(strings.TrimSpace(req.Type))
	if side != SideBuy && side != SideSell {
		return nil, nil, ErrInvalidSide
	}
	if req.Quantity <= 0 {
		return nil, nil, ErrInvalidQuantity
	}
	if req.OpenPrice < 0 || req.ClosePrice < 0 {
		return nil, nil, ErrInvalidPrice
	}
	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	if symbol == "" {
		return nil, nil, ErrMissingSymbol
	}

	ch, err := s.challenges.ByID(ctx, req.ChallengeID)
	if err != nil {
		return nil, nil, err
	}
	if ch.Terminal() {
		return nil, nil, ErrChallengeClosed
	}

	now := s.now()
	pnlBeforeToday, err := s.repo.PnLBefore(ctx, ch.ID, startOfDay(now))
	if err != nil {
		return nil, nil, err
	}

	trade := &Trade{
		ChallengeID: ch.ID,
		Symbol:      symbol,
		Type:        side,
		Quantity:    req.Quantity,
		OpenPrice:   req.OpenPrice,
		ClosePrice:  req.ClosePrice,
		PnL:         PnL(side, req.Quantity, req.OpenPrice, req.ClosePrice),
		CreatedAt:   now,
	}
	if err := s.repo.Create(ctx, trade); err != nil {
		return nil, nil, err
	}

	if err := s.challenges.ApplyEquity(ctx, ch, ch.CurrentEquity+trade.PnL, pnlBeforeToday); err != nil {
		return nil, nil, err
	}

	s.logger.Info("trade executed",
		"challenge_id", ch.ID,
		"symbol", symbol,
		"type", side,
		"pnl", trade.PnL,
		"equity", ch.CurrentEquity,
		"status", ch.Status,
	)
	return trade, ch, nil
}

// History lists a challenge's trades, newest first.
func (s *Service) History(ctx context.Context, challengeID int64) ([]Trade, error) {
	return s.repo.ListByChallenge(ctx, challengeID)
}

// Leaderboard ranks users by profit percentage on their latest challenge.
// Users without a challenge are skipped.
func (s *Service) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	users, err := s.accounts.List(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for _, u := range users {
		ch, err := s.challenges.Latest(ctx, u.ID)
		if errors.Is(err, challenge.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if ch.StartBalance <= 0 {
			continue
		}
		pnl := ch.CurrentEquity - ch.StartBalance
		entries = append(entries, LeaderboardEntry{
			Username:  u.Username,
			ProfitPct: pnl / ch.StartBalance * 100,
			TotalPnL:  pnl,
		})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].ProfitPct > entries[j].ProfitPct })
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
