package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "maison/internal/delivery/context"
	"maison/internal/delivery/http/response"
	"maison/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// WishlistHandler holds dependencies for wishlist handlers.
type WishlistHandler struct {
	uc     usecase.WishlistUsecase
	logger *slog.Logger
}

// NewWishlistHandler is the constructor for WishlistHandler, injected by Fx.
func NewWishlistHandler(uc usecase.WishlistUsecase, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{
		uc:     uc,
		logger: logger,
	}
}

type toggleWishlistRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// GetWishlist returns the caller's saved product IDs.
func (h *WishlistHandler) GetWishlist(c echo.Context) error {
	wishlist, err := h.uc.GetWishlist(c.Request().Context(), deliverycontext.GetNamespace(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, wishlist, "Wishlist retrieved successfully")
}

// Toggle flips a product's membership in the caller's wishlist.
func (h *WishlistHandler) Toggle(c echo.Context) error {
	var req toggleWishlistRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid wishlist input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Toggle(c.Request().Context(), deliverycontext.GetNamespace(c), req.ProductID)
	if err != nil {
		return errors.WithStack(err)
	}

	message := "Removed from wishlist"
	if output.Saved {
		message = "Added to wishlist"
	}

	return response.Success(c, http.StatusOK, output, message)
}

// Contains reports whether a product is saved in the caller's wishlist.
func (h *WishlistHandler) Contains(c echo.Context) error {
	saved, err := h.uc.Contains(c.Request().Context(), deliverycontext.GetNamespace(c), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]bool{"saved": saved}, "Wishlist membership retrieved successfully")
}
