package repository

import (
	"context"

	"maison/internal/domain/entity"
)

// OrderRepository persists an authenticated user's local order records.
type OrderRepository interface {
	// Load retrieves the user's orders, most recent first, empty when absent.
	Load(ctx context.Context, ns entity.Namespace) ([]entity.Order, error)

	// Save persists the full order list for the user.
	Save(ctx context.Context, ns entity.Namespace, orders []entity.Order) error
}
