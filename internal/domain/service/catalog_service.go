// Package service defines interfaces for domain services backed by external
// collaborators (commerce platform, identity provider, event transport).
package service

import (
	"context"

	"maison/internal/domain/entity"
)

// CheckoutLineItem is one line handed to the commerce platform at checkout.
type CheckoutLineItem struct {
	VariantID string `json:"variant_id"` // The platform's variant global ID.
	Quantity  int    `json:"quantity"`
}

// CatalogService is the boundary to the external commerce platform. Product
// data is never owned locally; checkout session creation is the only
// operation whose failure must reach the customer as an actionable error.
type CatalogService interface {
	// FetchAllProducts retrieves the full normalized catalog.
	FetchAllProducts(ctx context.Context) ([]entity.Product, error)

	// FetchProduct retrieves one product by its numeric ID, nil when absent.
	FetchProduct(ctx context.Context, id string) (*entity.Product, error)

	// CreateCheckoutSession creates a platform checkout from the given
	// lines and returns the URL the customer completes payment at.
	CreateCheckoutSession(ctx context.Context, lines []CheckoutLineItem) (string, error)
}
