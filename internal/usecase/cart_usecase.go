// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"maison/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// --- Input DTOs ---

// AddItemInput carries the product snapshot captured when a line is added.
// Quantity defaults to 1 when zero or negative.
type AddItemInput struct {
	ProductID string
	Name      string
	Price     decimal.Decimal
	Category  string
	Image     string
	Quantity  int
	Variant   *entity.VariantRef
}

// --- Output DTOs ---

// CartView is the full cart state handed to the delivery layer: the stored
// items and selections plus the totals derived from them.
type CartView struct {
	Items    entity.CartItems
	Shipping entity.ShippingOption
	Promo    *entity.PromoCode
	Quote    entity.PriceQuote
}

// PromoResult is the outcome of a promo application attempt. Ineligible
// codes are a result, not an error; Message carries the customer-facing text
// either way.
type PromoResult struct {
	Applied bool
	Message string
	Promo   *entity.PromoCode
}

// CartUsecase defines the interface for cart and pricing operations.
// Every operation is keyed by the caller's identity namespace.
type CartUsecase interface {
	// GetCart returns the namespace's cart with freshly computed totals.
	GetCart(ctx context.Context, ns entity.Namespace) (*CartView, error)

	// AddItem adds a product to the cart, merging quantity into an
	// existing line for the same product.
	AddItem(ctx context.Context, ns entity.Namespace, input *AddItemInput) (*CartView, error)

	// UpdateQuantity sets a line's quantity; zero or less removes it.
	UpdateQuantity(ctx context.Context, ns entity.Namespace, productID string, quantity int) (*CartView, error)

	// RemoveItem removes a line by product ID.
	RemoveItem(ctx context.Context, ns entity.Namespace, productID string) (*CartView, error)

	// Clear empties the cart, keeping shipping and promo selections.
	Clear(ctx context.Context, ns entity.Namespace) (*CartView, error)

	// ShippingOptions lists the configured shipping tiers.
	ShippingOptions(ctx context.Context) []entity.ShippingOption

	// SelectShipping selects one of the configured shipping tiers.
	SelectShipping(ctx context.Context, ns entity.Namespace, optionID string) (*CartView, error)

	// ApplyPromoCode validates and applies a promo code against the
	// current subtotal.
	ApplyPromoCode(ctx context.Context, ns entity.Namespace, code string) (*PromoResult, error)

	// RemovePromoCode clears the applied promo.
	RemovePromoCode(ctx context.Context, ns entity.Namespace) (*CartView, error)

	// ActivateIdentity migrates guest state into the user's namespace the
	// first time that namespace is seen, then clears the guest entries.
	// Safe to call on every sign-in.
	ActivateIdentity(ctx context.Context, userID string) error
}
