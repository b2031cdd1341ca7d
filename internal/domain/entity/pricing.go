package entity

import "github.com/shopspring/decimal"

// PriceQuote is the derived pricing of a cart. It is computed fresh from the
// current items, shipping selection and applied promo on every read; nothing
// here is ever cached or stored.
type PriceQuote struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	Discount     decimal.Decimal `json:"discount"`
	ShippingCost decimal.Decimal `json:"shipping_cost"`
	Total        decimal.Decimal `json:"total"`
	ItemCount    int             `json:"item_count"`
}

// ComputeQuote derives the cart totals:
//
//	subtotal = sum(price * quantity)
//	discount = subtotal * value/100 for a percentage promo, otherwise 0
//	shipping = 0 when the promo grants free shipping or the subtotal clears
//	           the selected option's free threshold, otherwise the option price
//	total    = subtotal - discount + shipping
//
// promo may be nil when no code is applied.
func ComputeQuote(items CartItems, shipping ShippingOption, promo *PromoCode) PriceQuote {
	subtotal := items.Subtotal()

	discount := decimal.Zero
	if promo != nil && promo.Type == PromoTypePercentage {
		discount = subtotal.Mul(promo.Value).Div(decimal.NewFromInt(100))
	}

	shippingCost := shipping.Price
	if promo != nil && promo.Type == PromoTypeFreeShipping {
		shippingCost = decimal.Zero
	} else if shipping.QualifiesForFree(subtotal) {
		shippingCost = decimal.Zero
	}

	return PriceQuote{
		Subtotal:     subtotal,
		Discount:     discount,
		ShippingCost: shippingCost,
		Total:        subtotal.Sub(discount).Add(shippingCost),
		ItemCount:    items.ItemCount(),
	}
}
