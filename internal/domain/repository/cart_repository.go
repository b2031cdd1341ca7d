// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"maison/internal/domain/entity"
)

// CartRepository persists cart line items per identity namespace.
// Malformed persisted state must decode to an empty cart, never an error.
type CartRepository interface {
	// Load retrieves the cart for the namespace, empty when absent.
	Load(ctx context.Context, ns entity.Namespace) (entity.CartItems, error)

	// Save persists the full item list for the namespace.
	Save(ctx context.Context, ns entity.Namespace, items entity.CartItems) error

	// Delete removes the namespace's cart entry entirely.
	Delete(ctx context.Context, ns entity.Namespace) error

	// Exists reports whether a cart entry is persisted for the namespace,
	// regardless of whether it decodes to an empty list.
	Exists(ctx context.Context, ns entity.Namespace) (bool, error)
}
