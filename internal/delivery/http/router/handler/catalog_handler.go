package handler

import (
	"log/slog"
	"net/http"

	"maison/internal/delivery/http/response"
	"maison/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CatalogHandler holds dependencies for product catalog handlers.
type CatalogHandler struct {
	uc     usecase.CatalogUsecase
	logger *slog.Logger
}

// NewCatalogHandler is the constructor for CatalogHandler, injected by Fx.
func NewCatalogHandler(uc usecase.CatalogUsecase, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		uc:     uc,
		logger: logger,
	}
}

// ListProducts returns the full catalog. An unreachable platform yields an
// empty list so the storefront still renders.
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	products := h.uc.ListProducts(c.Request().Context())

	return response.Success(c, http.StatusOK, products, "Products retrieved successfully")
}

// FeaturedProducts returns the products tagged as featured.
func (h *CatalogHandler) FeaturedProducts(c echo.Context) error {
	products := h.uc.FeaturedProducts(c.Request().Context())

	return response.Success(c, http.StatusOK, products, "Featured products retrieved successfully")
}

// GetProduct returns one product by ID.
func (h *CatalogHandler) GetProduct(c echo.Context) error {
	product, err := h.uc.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "Product retrieved successfully")
}
