package entity

import "slices"

// Wishlist is the ordered set of product IDs an authenticated user saved.
// Anonymous visitors have no wishlist; their view is always empty.
type Wishlist []string

// Contains reports whether the wishlist holds the given product ID.
func (w Wishlist) Contains(productID string) bool {
	return slices.Contains(w, productID)
}

// Toggle returns the wishlist with the product's membership flipped and
// whether the product is a member afterwards.
func (w Wishlist) Toggle(productID string) (Wishlist, bool) {
	if idx := slices.Index(w, productID); idx >= 0 {
		return slices.Delete(slices.Clone(w), idx, idx+1), false
	}

	return append(slices.Clone(w), productID), true
}
