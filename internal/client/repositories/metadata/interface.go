// Package metadata stores small client-side values (the persisted session
// among them) in the local SQLite "metadata" table.
package metadata

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has no stored value.
var ErrNotFound = errors.New("metadata key not found")

// Repository is a durable string-keyed slot store. Writes are full
// overwrites; there is no partial update.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
