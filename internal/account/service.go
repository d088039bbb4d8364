package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials means no account matches the email/password pair.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrMissingFields means a required registration field was empty.
var ErrMissingFields = errors.New("missing required fields")

// ChallengeStatusSource reports the most recent challenge status for a
// user. Implemented by the challenge service; kept as an interface here so
// accounts do not depend on the challenge package.
type ChallengeStatusSource interface {
	LatestStatus(ctx context.Context, userID int64) (string, error)
}

// Service implements account operations.
type Service struct {
	repo     Repository
	statuses ChallengeStatusSource
	logger   *slog.Logger
}

// NewService builds the account service. statuses may be nil, in which case
// the directory reports every account as active.
func NewService(repo Repository, statuses ChallengeStatusSource, logger *slog.Logger) *Service {
	return &Service{repo: repo, statuses: statuses, logger: logger}
}

// Register creates an account with a bcrypt-hashed password. New accounts
// always start with the user role.
func (s *Service) Register(ctx context.Context, username, email, password string) (*User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         RoleUser,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("account registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Authenticate checks an email/password pair. Unknown emails and wrong
// passwords return the same error.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := s.repo.ByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// ByID fetches one account.
func (s *Service) ByID(ctx context.Context, id int64) (*User, error) {
	return s.repo.ByID(ctx, id)
}

// Directory returns every account joined with its latest challenge status.
// Accounts without a challenge, and any status lookup failure, report
// active so the directory always renders.
func (s *Service) Directory(ctx context.Context) ([]DirectoryEntry, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]DirectoryEntry, 0, len(users))
	for _, u := range users {
		status := "active"
		if s.statuses != nil {
			latest, err := s.statuses.LatestStatus(ctx, u.ID)
			if err == nil && latest != "" {
				status = latest
			} else if err != nil {
				s.logger.Warn("challenge status lookup failed", "user_id", u.ID, "error", err)
			}
		}
		entries = append(entries, DirectoryEntry{
			ID:     u.ID,
			Name:   u.Username,
			Email:  u.Email,
			Role:   u.Role,
			Status: status,
		})
	}
	return entries, nil
}
