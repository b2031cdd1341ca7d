package entity

import "github.com/shopspring/decimal"

// ShippingOption is immutable reference data describing one shipping tier.
// The configured set is loaded at startup; carts hold a selected reference.
type ShippingOption struct {
	ID            string           `json:"id"`                       // Stable identifier, e.g. "standard".
	Name          string           `json:"name"`                     // Display name, e.g. "Standard Shipping".
	Description   string           `json:"description,omitempty"`    // Delivery estimate shown to the customer.
	Price         decimal.Decimal  `json:"price"`                    // Flat price for this tier.
	FreeThreshold *decimal.Decimal `json:"free_threshold,omitempty"` // Subtotal at which this tier becomes free, when set.
	Note          string           `json:"note,omitempty"`           // Extra note, e.g. an order cutoff time.
}

// QualifiesForFree reports whether the given subtotal clears this option's
// free-shipping threshold.
func (o ShippingOption) QualifiesForFree(subtotal decimal.Decimal) bool {
	return o.FreeThreshold != nil && subtotal.GreaterThanOrEqual(*o.FreeThreshold)
}
