package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"

	"github.com/tradesense/tradesense/internal/visitor"
)

// Visitor record fields owned by this package. The auth record is written
// together with the flat user_id/role mirrors so guard checks can read a
// single field.
const (
	fieldAuth      = "auth"
	fieldUserID    = "user_id"
	fieldRole      = "role"
	fieldUsername  = "username"
	fieldChallenge = "challenge_id"
)

// DefaultChallengeID is assumed until a challenge purchase succeeds.
const DefaultChallengeID = 1

// ErrEmptyUserID rejects session writes without an identity.
var ErrEmptyUserID = errors.New("session: user id must not be empty")

// Store is the single source of truth for "is a user logged in, and with
// what role". Reads never fail: absence is a valid state and backend errors
// degrade to the unauthenticated snapshot.
type Store struct {
	repo   visitor.Repository
	logger *slog.Logger
}

// NewStore builds a session store over the given visitor repository.
func NewStore(repo visitor.Repository, logger *slog.Logger) *Store {
	return &Store{repo: repo, logger: logger}
}

// Set records a login for the visitor, overwriting any prior session. The
// role is lower-cased before persisting.
func (s *Store) Set(ctx context.Context, visitorID, userID, role string) error {
	if userID == "" {
		return ErrEmptyUserID
	}
	normalized := string(NormalizeRole(role))
	raw, err := json.Marshal(record{UserID: userID, Role: normalized, LoggedIn: true})
	if err != nil {
		return err
	}
	return s.repo.Set(ctx, visitorID, map[string]string{
		fieldAuth:   string(raw),
		fieldUserID: userID,
		fieldRole:   normalized,
	})
}

// Get returns the current session snapshot. Both identifiers are empty
// strings when no session was ever set.
func (s *Store) Get(ctx context.Context, visitorID string) Session {
	userID := s.field(ctx, visitorID, fieldUserID)
	if userID == "" {
		return Session{}
	}
	return Session{
		UserID:   userID,
		Role:     NormalizeRole(s.field(ctx, visitorID, fieldRole)),
		Username: s.field(ctx, visitorID, fieldUsername),
	}
}

// Clear removes all session-related fields. Idempotent; locale and other
// visitor preferences survive a logout.
func (s *Store) Clear(ctx context.Context, visitorID string) error {
	return s.repo.Delete(ctx, visitorID, fieldAuth, fieldUserID, fieldRole, fieldUsername)
}

// IsAuthenticated reports whether the visitor has a live session.
func (s *Store) IsAuthenticated(ctx context.Context, visitorID string) bool {
	return s.Get(ctx, visitorID).Authenticated()
}

// HasRole reports whether the visitor is authenticated with one of the
// allowed roles.
func (s *Store) HasRole(ctx context.Context, visitorID string, allowed ...Role) bool {
	return s.Get(ctx, visitorID).HasRole(allowed...)
}

// SetUsername caches the lazily resolved display name.
func (s *Store) SetUsername(ctx context.Context, visitorID, username string) error {
	if username == "" {
		return nil
	}
	return s.repo.Set(ctx, visitorID, map[string]string{fieldUsername: username})
}

// ChallengeID returns the visitor's active challenge reference, defaulting
// to DefaultChallengeID when absent or malformed.
func (s *Store) ChallengeID(ctx context.Context, visitorID string) int {
	raw := s.field(ctx, visitorID, fieldChallenge)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return DefaultChallengeID
	}
	return id
}

// SetChallengeID records the challenge obtained from a successful purchase.
func (s *Store) SetChallengeID(ctx context.Context, visitorID string, id int) error {
	return s.repo.Set(ctx, visitorID, map[string]string{fieldChallenge: strconv.Itoa(id)})
}

func (s *Store) field(ctx context.Context, visitorID, field string) string {
	val, err := s.repo.Get(ctx, visitorID, field)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("session field read failed", "field", field, "error", err)
		}
		return ""
	}
	return val
}
