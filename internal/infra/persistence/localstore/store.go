// Package localstore implements the storefront's local state store: a
// key-value layer holding each identity's cart, wishlist, preferences,
// addresses and orders as JSON values, with pluggable backends.
package localstore

import (
	"context"

	"maison/internal/errors"
)

// ErrKeyNotFound is returned by Get for keys that were never set or were
// deleted.
var ErrKeyNotFound = errors.New("key not found")

// Store is the raw key-value state store. Writes complete before the call
// returns so a read in the same session always observes the prior mutation.
type Store interface {
	// Get retrieves the raw value for a key, ErrKeyNotFound when absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set writes the raw value for a key, overwriting any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes a key. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error

	// Exists reports whether the key holds a value.
	Exists(ctx context.Context, key string) (bool, error)

	// Close releases backend resources.
	Close() error
}
