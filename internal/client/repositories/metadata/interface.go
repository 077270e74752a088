// Package metadata stores small client-side key/value settings, such as the
// persisted bearer token, in the local SQLite database.
package metadata

import (
	"context"
	"time"
)

// Item is a stored value together with the time it was last written.
type Item struct {
	Key       string
	Value     []byte
	UpdatedAt time.Time
}

// Repository is the key/value store. Get returns (nil, nil) when the key is
// absent.
type Repository interface {
	Get(ctx context.Context, key string) (*Item, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
