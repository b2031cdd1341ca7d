package usecase

import (
	"context"

	"maison/internal/domain/entity"
)

// ToggleOutput reports the wishlist after a toggle and whether the product
// ended up saved.
type ToggleOutput struct {
	Wishlist entity.Wishlist
	Saved    bool
}

// WishlistUsecase defines the interface for wishlist operations. Every
// mutation requires an authenticated namespace; guests get a sign-in prompt.
type WishlistUsecase interface {
	// GetWishlist returns the user's saved product IDs. Guests always get
	// an empty wishlist.
	GetWishlist(ctx context.Context, ns entity.Namespace) (entity.Wishlist, error)

	// Toggle flips a product's membership in the user's wishlist.
	Toggle(ctx context.Context, ns entity.Namespace, productID string) (*ToggleOutput, error)

	// Contains reports whether the product is saved in the user's wishlist.
	Contains(ctx context.Context, ns entity.Namespace, productID string) (bool, error)
}
