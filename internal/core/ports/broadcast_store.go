package ports

import "context"

// BroadcastStore holds the single sitewide announcement.
type BroadcastStore interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, message string) error
}
