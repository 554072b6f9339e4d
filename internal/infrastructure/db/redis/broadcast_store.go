package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const broadcastKey = "broadcast:alert"

// BroadcastStore keeps the announcement as a singleton key so every API
// instance serves the same value.
type BroadcastStore struct {
	client   *redis.Client
	fallback string
}

// NewBroadcastStore returns a store that serves fallback until the first write.
func NewBroadcastStore(client *redis.Client, fallback string) *BroadcastStore {
	return &BroadcastStore{client: client, fallback: fallback}
}

func (s *BroadcastStore) Get(ctx context.Context) (string, error) {
	msg, err := s.client.Get(ctx, broadcastKey).Result()
	if errors.Is(err, redis.Nil) {
		return s.fallback, nil
	}
	if err != nil {
		return "", fmt.Errorf("read broadcast: %w", err)
	}
	return msg, nil
}

// Set overwrites the announcement. SET is atomic, so concurrent writers
// resolve to last-writer-wins.
func (s *BroadcastStore) Set(ctx context.Context, message string) error {
	if err := s.client.Set(ctx, broadcastKey, message, 0).Err(); err != nil {
		return fmt.Errorf("write broadcast: %w", err)
	}
	return nil
}
