package trading

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepository is an in-memory trade store used in tests and when no
// database is configured.
type MemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	trades []Trade
}

// NewMemoryRepository builds an empty in-memory trade store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{nextID: 1}
}

func (r *MemoryRepository) Create(ctx context.Context, t *Trade) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t.ID = r.nextID
	r.nextID++
	r.trades = append(r.trades, *t)
	return nil
}

func (r *MemoryRepository) ListByChallenge(ctx context.Context, challengeID int64) ([]Trade, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Trade
	for _, t := range r.trades {
		if t.ChallengeID == challengeID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *MemoryRepository) PnLBefore(ctx context.Context, challengeID int64, cutoff time.Time) (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var sum float64
	for _, t := range r.trades {
		if t.ChallengeID == challengeID && t.CreatedAt.Before(cutoff) {
			sum += t.PnL
		}
	}
	return sum, nil
}
