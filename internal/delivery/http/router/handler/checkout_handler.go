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

// CheckoutHandler holds dependencies for checkout handlers.
type CheckoutHandler struct {
	uc     usecase.CheckoutUsecase
	logger *slog.Logger
}

// NewCheckoutHandler is the constructor for CheckoutHandler, injected by Fx.
func NewCheckoutHandler(uc usecase.CheckoutUsecase, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		uc:     uc,
		logger: logger,
	}
}

// BeginCheckout creates a platform checkout session from the current cart.
func (h *CheckoutHandler) BeginCheckout(c echo.Context) error {
	output, err := h.uc.BeginCheckout(c.Request().Context(), deliverycontext.GetNamespace(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Checkout session created")
}

// SessionQR renders the most recent checkout session's URL as a PNG QR code.
func (h *CheckoutHandler) SessionQR(c echo.Context) error {
	png, err := h.uc.SessionQR(c.Request().Context(), deliverycontext.GetNamespace(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
