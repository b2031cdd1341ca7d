package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "maison/internal/delivery/context"
	"maison/internal/delivery/http/response"
	"maison/internal/domain/entity"
	"maison/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// CartHandler holds dependencies for cart and pricing handlers.
type CartHandler struct {
	uc      usecase.CartUsecase
	catalog usecase.CatalogUsecase
	logger  *slog.Logger
}

// NewCartHandler is the constructor for CartHandler, injected by Fx.
func NewCartHandler(uc usecase.CartUsecase, catalog usecase.CatalogUsecase, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		uc:      uc,
		catalog: catalog,
		logger:  logger,
	}
}

// addItemRequest accepts either a full product snapshot or just the IDs;
// when the snapshot fields are absent the product is resolved from the
// catalog instead of trusting the client.
type addItemRequest struct {
	ProductID string             `json:"product_id" validate:"required"`
	Name      string             `json:"name"`
	Price     decimal.Decimal    `json:"price"`
	Category  string             `json:"category"`
	Image     string             `json:"image"`
	Quantity  int                `json:"quantity"`
	VariantID string             `json:"variant_id"`
	Variant   *entity.VariantRef `json:"variant"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type selectShippingRequest struct {
	OptionID string `json:"option_id" validate:"required"`
}

type applyPromoRequest struct {
	Code string `json:"code" validate:"required"`
}

// GetCart returns the caller's cart with freshly computed totals.
func (h *CartHandler) GetCart(c echo.Context) error {
	view, err := h.uc.GetCart(c.Request().Context(), deliverycontext.GetNamespace(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "Cart retrieved successfully")
}

// AddItem adds a product line to the cart.
func (h *CartHandler) AddItem(c echo.Context) error {
	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart item input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	input, err := h.addItemInput(c, &req)
	if err != nil {
		return errors.WithStack(err)
	}

	view, err := h.uc.AddItem(c.Request().Context(), deliverycontext.GetNamespace(c), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "Item added to cart")
}

// addItemInput builds the usecase input, resolving the product through the
// catalog when the request carries no snapshot fields.
func (h *CartHandler) addItemInput(c echo.Context, req *addItemRequest) (*usecase.AddItemInput, error) {
	if req.Name != "" {
		return &usecase.AddItemInput{
			ProductID: req.ProductID,
			Name:      req.Name,
			Price:     req.Price,
			Category:  req.Category,
			Image:     req.Image,
			Quantity:  req.Quantity,
			Variant:   req.Variant,
		}, nil
	}

	product, err := h.catalog.GetProduct(c.Request().Context(), req.ProductID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve product for cart add")
	}

	line := product.Snapshot(variantRef(product, req.VariantID))

	return &usecase.AddItemInput{
		ProductID: line.ID,
		Name:      line.Name,
		Price:     line.Price,
		Category:  line.Category,
		Image:     line.Image,
		Quantity:  req.Quantity,
		Variant:   line.SelectedVariant,
	}, nil
}

// variantRef finds the requested variant on the product, nil when the
// request named none or an unknown one.
func variantRef(product *entity.Product, variantID string) *entity.VariantRef {
	if variantID == "" {
		return nil
	}

	for _, variant := range product.Variants {
		if variant.ID == variantID {
			return &entity.VariantRef{
				ID:         variant.ID,
				PlatformID: variant.PlatformID,
				Size:       variant.Size,
				Price:      variant.Price,
			}
		}
	}

	return nil
}

// UpdateQuantity sets a cart line's quantity. Zero or less removes the line.
func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	var req updateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid quantity input")
	}

	view, err := h.uc.UpdateQuantity(c.Request().Context(), deliverycontext.GetNamespace(c), c.Param("id"), req.Quantity)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "Cart updated successfully")
}

// RemoveItem removes a cart line by product ID.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	view, err := h.uc.RemoveItem(c.Request().Context(), deliverycontext.GetNamespace(c), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "Item removed from cart")
}

// Clear empties the cart while keeping shipping and promo selections.
func (h *CartHandler) Clear(c echo.Context) error {
	view, err := h.uc.Clear(c.Request().Context(), deliverycontext.GetNamespace(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "Cart cleared")
}

// ShippingOptions lists the configured shipping tiers.
func (h *CartHandler) ShippingOptions(c echo.Context) error {
	options := h.uc.ShippingOptions(c.Request().Context())

	return response.Success(c, http.StatusOK, options, "Shipping options retrieved successfully")
}

// SelectShipping selects one of the configured shipping tiers.
func (h *CartHandler) SelectShipping(c echo.Context) error {
	var req selectShippingRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid shipping selection input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	view, err := h.uc.SelectShipping(c.Request().Context(), deliverycontext.GetNamespace(c), req.OptionID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "Shipping option selected")
}

// ApplyPromoCode applies a promo code against the current subtotal. An
// ineligible code is a successful response carrying the rejection message.
func (h *CartHandler) ApplyPromoCode(c echo.Context) error {
	var req applyPromoRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid promo code input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	result, err := h.uc.ApplyPromoCode(c.Request().Context(), deliverycontext.GetNamespace(c), req.Code)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, result, result.Message)
}

// RemovePromoCode clears the applied promo code.
func (h *CartHandler) RemovePromoCode(c echo.Context) error {
	view, err := h.uc.RemovePromoCode(c.Request().Context(), deliverycontext.GetNamespace(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "Promo code removed")
}
