package locale

import (
	"context"
	"testing"

	"github.com/tradesense/tradesense/internal/visitor"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"fr", "fr"},
		{"en", "en"},
		{"ar", "ar"},
		{"AR", "ar"},
		{"En", "en"},
		{"", "fr"},
		{"es", "fr"},
		{"french", "fr"},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDirection(t *testing.T) {
	if got := Direction(LangAR); got != "rtl" {
		t.Fatalf("Direction(ar) = %q, want rtl", got)
	}
	for _, lang := range []string{LangFR, LangEN, "unknown"} {
		if got := Direction(lang); got != "ltr" {
			t.Fatalf("Direction(%q) = %q, want ltr", lang, got)
		}
	}
}

func TestStoreDefaultsToFrench(t *testing.T) {
	store := NewStore(visitor.NewMemoryRepository())
	if got := store.Get(context.Background(), "v1"); got != DefaultLang {
		t.Fatalf("expected default %q, got %q", DefaultLang, got)
	}
}

func TestStoreSetNormalizesAndPersists(t *testing.T) {
	store := NewStore(visitor.NewMemoryRepository())
	ctx := context.Background()

	lang, dir, err := store.Set(ctx, "v1", "AR")
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if lang != "ar" || dir != "rtl" {
		t.Fatalf("expected ar/rtl, got %s/%s", lang, dir)
	}
	if got := store.Get(ctx, "v1"); got != "ar" {
		t.Fatalf("expected persisted ar, got %q", got)
	}

	lang, dir, err = store.Set(ctx, "v1", "klingon")
	if err != nil {
		t.Fatalf("set unrecognized: %v", err)
	}
	if lang != "fr" || dir != "ltr" {
		t.Fatalf("expected fallback fr/ltr, got %s/%s", lang, dir)
	}
}
