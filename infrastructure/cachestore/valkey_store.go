package cachestore

import (
	"context"
	"fmt"

	"github.com/shiurnotes/shiurnotes/infrastructure/valkey"
)

// ValkeyStore keeps generated text under "<prefix>lecture:<cache key>".
type ValkeyStore struct {
	client *valkey.Client
}

// NewValkeyStore creates a store on an already connected client.
func NewValkeyStore(client *valkey.Client) *ValkeyStore {
	return &ValkeyStore{client: client}
}

func (s *ValkeyStore) Name() string {
	return "valkey"
}

func (s *ValkeyStore) key(k string) string {
	return s.client.Key("lecture", k)
}

// Get distinguishes a missing key (found=false) from a stored empty string.
func (s *ValkeyStore) Get(ctx context.Context, key string) (string, bool, error) {
	inner := s.client.Inner()
	value, err := inner.Do(ctx, inner.B().Get().Key(s.key(key)).Build()).ToString()
	if err != nil {
		if valkey.IsNil(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("valkey get %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores value without expiry.
func (s *ValkeyStore) Set(ctx context.Context, key string, value string) error {
	inner := s.client.Inner()
	if err := inner.Do(ctx, inner.B().Set().Key(s.key(key)).Value(value).Build()).Error(); err != nil {
		return fmt.Errorf("valkey set %s: %w", key, err)
	}
	return nil
}
