package usecase

import (
	"context"

	"maison/internal/domain/entity"
)

// CatalogUsecase defines the interface for reading the product catalog.
// Fetch failures degrade to an empty result so the storefront renders an
// empty shelf instead of an error page.
type CatalogUsecase interface {
	// ListProducts returns the full catalog, empty when the platform is
	// unreachable.
	ListProducts(ctx context.Context) []entity.Product

	// GetProduct returns one product by ID.
	GetProduct(ctx context.Context, id string) (*entity.Product, error)

	// FeaturedProducts returns the products the platform tags as featured.
	FeaturedProducts(ctx context.Context) []entity.Product
}
