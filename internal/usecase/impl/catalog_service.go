package impl

import (
	"context"
	"log/slog"

	deliverycontext "maison/internal/delivery/context"
	"maison/internal/domain/entity"
	domainerrors "maison/internal/domain/errors"
	"maison/internal/domain/service"
	"maison/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	catalog service.CatalogService
	logger  *slog.Logger
}

// CatalogServiceParams holds dependencies for CatalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	Catalog service.CatalogService
	Logger  *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		catalog: params.Catalog,
		logger:  params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListProducts returns the full catalog. A platform failure is logged and
// degrades to an empty shelf; the storefront stays up.
func (srv *catalogService) ListProducts(ctx context.Context) []entity.Product {
	products, err := srv.catalog.FetchAllProducts(ctx)
	if err != nil {
		srv.log(ctx).Error("Failed to fetch catalog", slog.Any("error", err))

		return []entity.Product{}
	}

	return products
}

// GetProduct returns one product by ID.
func (srv *catalogService) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	product, err := srv.catalog.FetchProduct(ctx, id)
	if err != nil {
		srv.log(ctx).Error("Failed to fetch product", slog.String("productID", id), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrCatalogUnavailable, "failed to fetch product")
	}
	if product == nil {
		return nil, errors.Wrap(domainerrors.ErrProductNotFound, "product not found")
	}

	return product, nil
}

// FeaturedProducts returns the products the platform tags as featured.
func (srv *catalogService) FeaturedProducts(ctx context.Context) []entity.Product {
	featured := make([]entity.Product, 0)
	for _, product := range srv.ListProducts(ctx) {
		if product.Featured {
			featured = append(featured, product)
		}
	}

	return featured
}
