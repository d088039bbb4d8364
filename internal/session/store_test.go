package session

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/tradesense/tradesense/internal/logging"
	"github.com/tradesense/tradesense/internal/visitor"
)

func newTestStore() (*Store, visitor.Repository) {
	repo := visitor.NewMemoryRepository()
	return NewStore(repo, logging.Discard()), repo
}

func TestSetThenGetReturnsNormalizedSession(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	if err := store.Set(ctx, "v1", "7", "Admin"); err != nil {
		t.Fatalf("set session: %v", err)
	}

	got := store.Get(ctx, "v1")
	if got.UserID != "7" || got.Role != RoleAdmin {
		t.Fatalf("expected {7 admin}, got {%s %s}", got.UserID, got.Role)
	}
}

func TestSetRejectsEmptyUserID(t *testing.T) {
	store, _ := newTestStore()
	if err := store.Set(context.Background(), "v1", "", "admin"); err != ErrEmptyUserID {
		t.Fatalf("expected ErrEmptyUserID, got %v", err)
	}
}

func TestSetWritesAtomicRecordAndMirrors(t *testing.T) {
	store, repo := newTestStore()
	ctx := context.Background()

	if err := store.Set(ctx, "v1", "42", "SuperAdmin"); err != nil {
		t.Fatalf("set session: %v", err)
	}

	raw, _ := repo.Get(ctx, "v1", "auth")
	var rec struct {
		UserID   string `json:"user_id"`
		Role     string `json:"role"`
		LoggedIn bool   `json:"logged_in"`
	}
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatalf("decode auth record: %v", err)
	}
	if rec.UserID != "42" || rec.Role != "superadmin" || !rec.LoggedIn {
		t.Fatalf("unexpected auth record: %+v", rec)
	}

	if uid, _ := repo.Get(ctx, "v1", "user_id"); uid != "42" {
		t.Fatalf("expected mirrored user_id 42, got %q", uid)
	}
	if role, _ := repo.Get(ctx, "v1", "role"); role != "superadmin" {
		t.Fatalf("expected mirrored role superadmin, got %q", role)
	}
}

func TestGetNeverSetReturnsEmptySession(t *testing.T) {
	store, _ := newTestStore()
	got := store.Get(context.Background(), "unknown")
	if got.UserID != "" || got.Role != "" {
		t.Fatalf("expected empty session, got {%s %s}", got.UserID, got.Role)
	}
	if got.Authenticated() {
		t.Fatal("empty session must not be authenticated")
	}
}

func TestClearIsIdempotentAndKeepsOtherFields(t *testing.T) {
	store, repo := newTestStore()
	ctx := context.Background()

	_ = repo.Set(ctx, "v1", map[string]string{"lang": "ar"})
	if err := store.Set(ctx, "v1", "7", "user"); err != nil {
		t.Fatalf("set session: %v", err)
	}

	if err := store.Clear(ctx, "v1"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := store.Clear(ctx, "v1"); err != nil {
		t.Fatalf("second clear: %v", err)
	}

	got := store.Get(ctx, "v1")
	if got.UserID != "" || got.Role != "" {
		t.Fatalf("expected cleared session, got {%s %s}", got.UserID, got.Role)
	}
	if lang, _ := repo.Get(ctx, "v1", "lang"); lang != "ar" {
		t.Fatalf("expected lang to survive logout, got %q", lang)
	}
}

func TestHasRoleRequiresAuthenticationAndMembership(t *testing.T) {
	store, repo := newTestStore()
	ctx := context.Background()

	cases := []struct {
		name   string
		userID string
		role   string
		want   bool
	}{
		{"admin allowed", "1", "admin", true},
		{"superadmin allowed", "2", "SUPERADMIN", true},
		{"plain user denied", "3", "user", false},
		{"unknown role denied", "4", "manager", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := store.Set(ctx, "v1", tc.userID, tc.role); err != nil {
				t.Fatalf("set session: %v", err)
			}
			got := store.HasRole(ctx, "v1", RoleAdmin, RoleSuperAdmin)
			if got != tc.want {
				t.Fatalf("HasRole(%q) = %v, want %v", tc.role, got, tc.want)
			}
		})
	}

	// A stale role without a user id never grants access.
	_ = repo.Delete(ctx, "v1", "auth", "user_id")
	if store.HasRole(ctx, "v1", RoleAdmin, RoleSuperAdmin) {
		t.Fatal("stale role with empty user id must be unauthenticated")
	}
}

func TestChallengeIDDefaultsToOne(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	if got := store.ChallengeID(ctx, "v1"); got != DefaultChallengeID {
		t.Fatalf("expected default challenge id %d, got %d", DefaultChallengeID, got)
	}
	if err := store.SetChallengeID(ctx, "v1", 9); err != nil {
		t.Fatalf("set challenge id: %v", err)
	}
	if got := store.ChallengeID(ctx, "v1"); got != 9 {
		t.Fatalf("expected challenge id 9, got %d", got)
	}
}
