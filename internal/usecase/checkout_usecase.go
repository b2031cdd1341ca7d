package usecase

import (
	"context"

	"maison/internal/domain/entity"
)

// CheckoutOutput returns the created checkout session and the local order
// record written for the account page.
type CheckoutOutput struct {
	CheckoutURL string
	Order       *entity.Order
}

// CheckoutUsecase defines the interface for handing a cart off to the
// commerce platform. Checkout requires an authenticated namespace and is
// never retried automatically; the customer re-initiates after a failure.
type CheckoutUsecase interface {
	// BeginCheckout creates a platform checkout session from the current
	// cart. At most one checkout may be in flight per namespace.
	BeginCheckout(ctx context.Context, ns entity.Namespace) (*CheckoutOutput, error)

	// SessionQR renders the most recent checkout session's URL as a PNG
	// QR code for cross-device payment pickup.
	SessionQR(ctx context.Context, ns entity.Namespace) ([]byte, error)
}
