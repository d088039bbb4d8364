package challenge

import (
	"context"
	"sync"
)

// MemoryRepository is an in-memory challenge store used in tests and when
// no database is configured.
type MemoryRepository struct {
	mu         sync.RWMutex
	nextID     int64
	challenges map[int64]*Challenge
}

// NewMemoryRepository builds an empty in-memory challenge store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{nextID: 1, challenges: make(map[int64]*Challenge)}
}

func (r *MemoryRepository) Create(ctx context.Context, c *Challenge) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = r.nextID
	r.nextID++
	clone := *c
	r.challenges[c.ID] = &clone
	return nil
}

func (r *MemoryRepository) ByID(ctx context.Context, id int64) (*Challenge, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.challenges[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *MemoryRepository) LatestByUser(ctx context.Context, userID int64) (*Challenge, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var latest *Challenge
	for _, c := range r.challenges {
		if c.UserID != userID {
			continue
		}
		if latest == nil || c.ID > latest.ID {
			latest = c
		}
	}
	if latest == nil {
		return nil, ErrNotFound
	}
	clone := *latest
	return &clone, nil
}

func (r *MemoryRepository) Update(ctx context.Context, c *Challenge) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.challenges[c.ID]; !ok {
		return ErrNotFound
	}
	clone := *c
	r.challenges[c.ID] = &clone
	return nil
}
