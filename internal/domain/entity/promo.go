package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// PromoType represents the kind of benefit a promo code grants.
type PromoType string

const (
	// PromoTypePercentage takes a percentage off the subtotal.
	PromoTypePercentage PromoType = "percentage"
	// PromoTypeFreeShipping waives the shipping cost entirely.
	PromoTypeFreeShipping PromoType = "free_shipping"
)

// String returns the string representation of the PromoType.
func (t PromoType) String() string {
	return string(t)
}

// IsValid checks if the PromoType is a valid value.
func (t PromoType) IsValid() bool {
	switch t {
	case PromoTypePercentage, PromoTypeFreeShipping:
		return true
	default:
		return false
	}
}

// PromoCode is immutable reference data describing one promotion.
// A cart holds at most one applied promo at a time; applying a new code
// replaces the previous one.
type PromoCode struct {
	Code        string           `json:"code"`                   // The code customers type in; matched case-insensitively.
	Description string           `json:"description"`            // Human-readable description, e.g. "10% off your order".
	Type        PromoType        `json:"type"`                   // Benefit kind.
	Value       decimal.Decimal  `json:"value,omitempty"`        // Percentage value for percentage promos.
	MinPurchase *decimal.Decimal `json:"min_purchase,omitempty"` // Minimum subtotal required to apply, when set.
	Active      bool             `json:"active"`                 // Inactive codes never match.
}

// Matches reports whether the given input matches this code, ignoring case.
func (p PromoCode) Matches(code string) bool {
	return strings.EqualFold(p.Code, code)
}

// MeetsMinimum reports whether the subtotal satisfies the code's minimum
// purchase requirement. Codes without a minimum always qualify.
func (p PromoCode) MeetsMinimum(subtotal decimal.Decimal) bool {
	return p.MinPurchase == nil || subtotal.GreaterThanOrEqual(*p.MinPurchase)
}
