package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents where an order sits in its lifecycle. The storefront
// only ever records pending orders; fulfillment happens on the platform side.
type OrderStatus string

const (
	// OrderStatusPending indicates a checkout session was created but not
	// yet completed on the commerce platform.
	OrderStatusPending OrderStatus = "pending"
)

// OrderItem is a snapshot of one cart line at checkout time.
type OrderItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	VariantID string          `json:"variant_id,omitempty"`
}

// Order is the local record of a checkout session handed off to the commerce
// platform, kept so the account page can list recent orders.
type Order struct {
	ID               uuid.UUID       `json:"id"`                 // The Global Unique Identifier (GUID) for the order record.
	Items            []OrderItem     `json:"items"`              // Cart lines at checkout time.
	Subtotal         decimal.Decimal `json:"subtotal"`           // Quote subtotal at checkout time.
	Discount         decimal.Decimal `json:"discount"`           // Quote discount at checkout time.
	ShippingCost     decimal.Decimal `json:"shipping_cost"`      // Quote shipping cost at checkout time.
	Total            decimal.Decimal `json:"total"`              // Quote total at checkout time.
	PromoCode        string          `json:"promo_code,omitempty"` // Applied promo code, when any.
	ShippingOptionID string          `json:"shipping_option_id"` // Selected shipping tier.
	CheckoutURL      string          `json:"checkout_url"`       // The platform checkout URL the customer was sent to.
	Status           OrderStatus     `json:"status"`
	CreatedAt        time.Time       `json:"created_at"` // Timestamp of when the checkout session was created.
}
