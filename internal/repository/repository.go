// Package repository defines the local key-value store the app keeps its
// registered users, favorites and preferences in.
package repository

import (
	"context"
	"encoding/json"
	"fmt"
)

type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// GetJSON decodes the value at key into v. It reports false when the key is absent.
func GetJSON(ctx context.Context, s Store, key string, v interface{}) (bool, error) {
	data, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decoding %s: %w", key, err)
	}
	return true, nil
}

func SetJSON(ctx context.Context, s Store, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return s.Set(ctx, key, data)
}
