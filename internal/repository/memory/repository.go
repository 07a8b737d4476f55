package memory

import (
	"context"
	"sync"
)

type Repository struct {
	values map[string][]byte
	mu     sync.RWMutex
}

func NewRepository() *Repository {
	return &Repository{values: make(map[string][]byte)}
}

func (r *Repository) Set(_ context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = append([]byte(nil), value...)
	return nil
}

func (r *Repository) Get(_ context.Context, key string) ([]byte, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	value, ok := r.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}
