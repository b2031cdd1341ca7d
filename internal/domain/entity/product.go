package entity

import "github.com/shopspring/decimal"

// ProductVariant is one purchasable variant of a product, e.g. a bottle size.
type ProductVariant struct {
	ID         string          `json:"id"`          // Numeric identifier extracted from the platform's global ID.
	PlatformID string          `json:"platform_id"` // The commerce platform's global ID, used for checkout lines.
	Size       string          `json:"size"`        // Variant title, e.g. "100ml".
	Price      decimal.Decimal `json:"price"`       // Variant unit price.
	Available  bool            `json:"available"`   // Whether the variant is currently purchasable.
}

// Product is a normalized catalog record fetched from the commerce platform.
// The storefront never owns product data; this is a read-only projection.
type Product struct {
	ID          string           `json:"id"`          // Numeric identifier extracted from the platform's global ID.
	PlatformID  string           `json:"platform_id"` // The commerce platform's global ID.
	Name        string           `json:"name"`
	Price       decimal.Decimal  `json:"price"` // Price of the first variant.
	Description string           `json:"description"`
	Category    string           `json:"category"` // Product type, defaulting to "blends" when the platform omits it.
	Gender      string           `json:"gender"`   // Vendor field repurposed by the brand, defaulting to "Unisex".
	Image       string           `json:"image"`    // Primary image URL, with a placeholder fallback.
	Images      []string         `json:"images"`
	Variants    []ProductVariant `json:"variants"`
	InStock     bool             `json:"in_stock"`
	Featured    bool             `json:"featured"` // Set when the platform tags the product "featured".
}

// Snapshot returns the cart line fields captured when this product is added,
// with the given variant selected (variant may be nil).
func (p Product) Snapshot(variant *VariantRef) CartItem {
	price := p.Price
	if variant != nil {
		price = variant.Price
	}

	return CartItem{
		ID:              p.ID,
		Name:            p.Name,
		Price:           price,
		Category:        p.Category,
		Image:           p.Image,
		SelectedVariant: variant,
	}
}
