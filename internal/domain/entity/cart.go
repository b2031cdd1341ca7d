// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"github.com/shopspring/decimal"
)

// VariantRef is the variant selection carried on a cart line, e.g. a bottle size.
type VariantRef struct {
	ID         string          `json:"id"`                   // The variant identifier used in URLs and lookups.
	PlatformID string          `json:"platform_id"`          // The commerce platform's global ID, needed for checkout lines.
	Size       string          `json:"size,omitempty"`       // The human-readable variant title, e.g. "50ml".
	Price      decimal.Decimal `json:"price"`                // The variant's unit price.
}

// CartItem is a single line in a cart. At most one line exists per product ID;
// adding the same product again merges into the existing line's quantity.
type CartItem struct {
	ID              string          `json:"id"`                         // The product identifier this line belongs to.
	Name            string          `json:"name"`                       // Product name snapshot taken at add time.
	Price           decimal.Decimal `json:"price"`                      // Unit price snapshot. A variant re-add with a different price wins (last write).
	Category        string          `json:"category,omitempty"`         // Product category snapshot.
	Image           string          `json:"image,omitempty"`            // Primary image URL snapshot.
	Quantity        int             `json:"quantity"`                   // Line quantity, always >= 1 for a stored line.
	SelectedVariant *VariantRef     `json:"selected_variant,omitempty"` // The chosen variant, when the product has variants.
}

// CartItems is the ordered list of lines in a cart.
type CartItems []CartItem

// Find returns the index of the line with the given product ID, or -1.
func (items CartItems) Find(productID string) int {
	for i := range items {
		if items[i].ID == productID {
			return i
		}
	}

	return -1
}

// ItemCount returns the total quantity across all lines.
func (items CartItems) ItemCount() int {
	count := 0
	for i := range items {
		count += items[i].Quantity
	}

	return count
}

// Subtotal returns the sum of price multiplied by quantity across all lines.
func (items CartItems) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for i := range items {
		subtotal = subtotal.Add(items[i].Price.Mul(decimal.NewFromInt(int64(items[i].Quantity))))
	}

	return subtotal
}

// Clone returns a deep copy so migrations never alias the source slice.
func (items CartItems) Clone() CartItems {
	if items == nil {
		return nil
	}

	cloned := make(CartItems, len(items))
	copy(cloned, items)
	for i := range cloned {
		if cloned[i].SelectedVariant != nil {
			variant := *cloned[i].SelectedVariant
			cloned[i].SelectedVariant = &variant
		}
	}

	return cloned
}
