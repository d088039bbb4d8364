package visitor

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu     sync.RWMutex
	fields map[string]map[string]string
}

// NewMemoryRepository builds an in-memory visitor store for testing.
func NewMemoryRepository() Repository {
	return &memoryRepository{fields: make(map[string]map[string]string)}
}

func (r *memoryRepository) Get(_ context.Context, id, field string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.fields[id][field], nil
}

func (r *memoryRepository) Set(_ context.Context, id string, fields map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.fields[id]
	if !ok {
		rec = make(map[string]string, len(fields))
		r.fields[id] = rec
	}
	for k, v := range fields {
		rec[k] = v
	}
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id string, fields ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.fields[id]
	if !ok {
		return nil
	}
	for _, f := range fields {
		delete(rec, f)
	}
	return nil
}
