package visitor

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupRedisRepo(t *testing.T) (*RedisRepository, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	repo := NewRedisRepository(client, time.Hour)
	cleanup := func() {
		client.Close()
		mr.Close()
	}
	return repo, cleanup
}

func TestRedisRepositorySetGet(t *testing.T) {
	repo, cleanup := setupRedisRepo(t)
	defer cleanup()

	ctx := context.Background()
	if err := repo.Set(ctx, "v1", map[string]string{"user_id": "7", "role": "admin"}); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := repo.Get(ctx, "v1", "user_id")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "7" {
		t.Fatalf("expected user_id 7, got %q", got)
	}
}

func TestRedisRepositoryAbsentFieldReadsEmpty(t *testing.T) {
	repo, cleanup := setupRedisRepo(t)
	defer cleanup()

	got, err := repo.Get(context.Background(), "missing", "lang")
	if err != nil {
		t.Fatalf("get absent field: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty value, got %q", got)
	}
}

func TestRedisRepositoryDelete(t *testing.T) {
	repo, cleanup := setupRedisRepo(t)
	defer cleanup()

	ctx := context.Background()
	if err := repo.Set(ctx, "v1", map[string]string{"user_id": "7", "lang": "ar"}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := repo.Delete(ctx, "v1", "user_id"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	// Deleting again is a no-op.
	if err := repo.Delete(ctx, "v1", "user_id"); err != nil {
		t.Fatalf("second delete: %v", err)
	}

	if got, _ := repo.Get(ctx, "v1", "user_id"); got != "" {
		t.Fatalf("expected deleted field to read empty, got %q", got)
	}
	if got, _ := repo.Get(ctx, "v1", "lang"); got != "ar" {
		t.Fatalf("expected lang to survive, got %q", got)
	}
}
