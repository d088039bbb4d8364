// Package locale holds the active display language and its derived text
// direction for each visitor.
package locale

import (
	"context"
	"strings"

	"github.com/tradesense/tradesense/internal/visitor"
)

// Supported language codes.
const (
	LangFR = "fr"
	LangEN = "en"
	LangAR = "ar"
)

// DefaultLang is used for absent or unrecognized values.
const DefaultLang = LangFR

const fieldLang = "lang"

// Normalize maps any input to a valid locale: lower-cased, falling back to
// French when unrecognized. Total, never fails.
func Normalize(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case LangEN:
		return LangEN
	case LangAR:
		return LangAR
	default:
		return DefaultLang
	}
}

// Direction derives the text direction for a language: rtl for Arabic,
// ltr otherwise.
func Direction(lang string) string {
	if lang == LangAR {
		return "rtl"
	}
	return "ltr"
}

// Store persists the per-visitor language selection.
type Store struct {
	repo visitor.Repository
}

// NewStore builds a locale store over the given visitor repository.
func NewStore(repo visitor.Repository) *Store {
	return &Store{repo: repo}
}

// Get returns the persisted language, defaulting to French.
func (s *Store) Get(ctx context.Context, visitorID string) string {
	raw, err := s.repo.Get(ctx, visitorID, fieldLang)
	if err != nil {
		return DefaultLang
	}
	return Normalize(raw)
}

// Set normalizes and persists the selected language, returning the stored
// value and its derived direction.
func (s *Store) Set(ctx context.Context, visitorID, raw string) (lang, dir string, err error) {
	lang = Normalize(raw)
	err = s.repo.Set(ctx, visitorID, map[string]string{fieldLang: lang})
	return lang, Direction(lang), err
}
