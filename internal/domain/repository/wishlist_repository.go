package repository

import (
	"context"

	"maison/internal/domain/entity"
)

// WishlistRepository persists wishlists for authenticated users only.
// Guest namespaces are never written; callers enforce that rule.
type WishlistRepository interface {
	// Load retrieves the user's wishlist, empty when absent.
	Load(ctx context.Context, ns entity.Namespace) (entity.Wishlist, error)

	// Save persists the full wishlist for the user.
	Save(ctx context.Context, ns entity.Namespace, wishlist entity.Wishlist) error
}
