package ports

import (
	"context"
	"io"
)

// AvatarStorage stores uploaded avatar blobs and resolves them to a public
// reference (URL or absolute path) that clients can fetch.
type AvatarStorage interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (ref string, err error)
	Delete(ctx context.Context, ref string) error
	// Owns reports whether ref points into this storage.
	Owns(ref string) bool
}

// AvatarJanitor removes superseded avatar blobs in the background.
type AvatarJanitor interface {
	Enqueue(username, ref string)
}
