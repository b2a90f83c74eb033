package port

import "context"

// ThumbnailStorage fetches thumbnail derivatives from the object store.
type ThumbnailStorage interface {
	// Fetch returns the raw thumbnail bytes for the given key, or
	// domain.ErrNotFound when no derivative exists.
	Fetch(ctx context.Context, key string) ([]byte, error)
}
