// Package memory provides process-local implementations of core ports.
package memory

import (
	"context"
	"sync"
)

// BroadcastStore is a single-writer register for the sitewide announcement.
// Its value lives only as long as the process and is not shared between
// instances; use the Redis store when running more than one.
type BroadcastStore struct {
	mu    sync.RWMutex
	value string
}

func NewBroadcastStore(initial string) *BroadcastStore {
	return &BroadcastStore{value: initial}
}

func (s *BroadcastStore) Get(context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value, nil
}

func (s *BroadcastStore) Set(_ context.Context, message string) error {
	s.mu.Lock()
	s.value = message
	s.mu.Unlock()
	return nil
}
