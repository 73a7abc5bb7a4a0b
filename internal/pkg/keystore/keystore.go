// internal/pkg/keystore/keystore.go
package keystore

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("keystore: key not found")

// Event describes a key written or deleted outside the current process
// context, e.g. by another backend instance sharing the same store.
type Event struct {
	Key     string
	Deleted bool
}

// Store is a keyed JSON-snapshot store. Session state (cart, applied promo,
// last order, wishlist) is kept as one serialized snapshot per key; every
// mutation is a single full write so concurrent writers resolve to
// last-write-wins rather than interleaved partial state.
type Store interface {
	// Get returns the raw snapshot stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key as a single serialized write.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the given keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error

	// Watch delivers invalidation events for keys changed by other contexts.
	// The channel is closed when ctx is cancelled. Implementations without a
	// cross-context signal may return a channel that never delivers.
	Watch(ctx context.Context) (<-chan Event, error)
}
