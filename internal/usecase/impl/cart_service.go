// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"fmt"
	"log/slog"

	"maison/config"
	deliverycontext "maison/internal/delivery/context"
	"maison/internal/domain/entity"
	domainerrors "maison/internal/domain/errors"
	"maison/internal/domain/repository"
	"maison/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// cartService implements the CartUsecase interface.
type cartService struct {
	cartRepo        repository.CartRepository
	preferenceRepo  repository.PreferenceRepository
	shippingOptions []entity.ShippingOption
	promoCodes      []entity.PromoCode
	logger          *slog.Logger
}

// CartServiceParams holds dependencies for CartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	CartRepo       repository.CartRepository
	PreferenceRepo repository.PreferenceRepository
	Config         *config.Config
	Logger         *slog.Logger
}

// NewCartService is the constructor for cartService. The configured shipping
// tiers and promo table are snapshotted at construction; the first shipping
// tier is the default selection.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		cartRepo:        params.CartRepo,
		preferenceRepo:  params.PreferenceRepo,
		shippingOptions: params.Config.ShippingOptions(),
		promoCodes:      params.Config.PromoCodes(),
		logger:          params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// defaultShipping returns the default shipping tier.
func (srv *cartService) defaultShipping() entity.ShippingOption {
	return srv.shippingOptions[0]
}

// findShipping returns the configured tier with the given ID, or nil.
func (srv *cartService) findShipping(optionID string) *entity.ShippingOption {
	for i := range srv.shippingOptions {
		if srv.shippingOptions[i].ID == optionID {
			return &srv.shippingOptions[i]
		}
	}

	return nil
}

// view assembles the full cart view for a namespace, recomputing totals from
// the current items, shipping selection and applied promo.
func (srv *cartService) view(ctx context.Context, ns entity.Namespace) (*usecase.CartView, error) {
	items, err := srv.cartRepo.Load(ctx, ns)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load cart")
	}

	shipping, err := srv.preferenceRepo.LoadShipping(ctx, ns)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load shipping selection")
	}
	if shipping == nil {
		selected := srv.defaultShipping()
		shipping = &selected
	}

	promo, err := srv.preferenceRepo.LoadPromo(ctx, ns)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load applied promo")
	}

	return &usecase.CartView{
		Items:    items,
		Shipping: *shipping,
		Promo:    promo,
		Quote:    entity.ComputeQuote(items, *shipping, promo),
	}, nil
}

// GetCart returns the namespace's cart with freshly computed totals.
func (srv *cartService) GetCart(ctx context.Context, ns entity.Namespace) (*usecase.CartView, error) {
	return srv.view(ctx, ns)
}

// AddItem adds a product to the cart. A line already holding the same
// product ID absorbs the quantity; the incoming snapshot's price and variant
// win over the stored ones.
func (srv *cartService) AddItem(ctx context.Context, ns entity.Namespace, input *usecase.AddItemInput) (*usecase.CartView, error) {
	quantity := input.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	items, err := srv.cartRepo.Load(ctx, ns)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load cart")
	}

	if idx := items.Find(input.ProductID); idx >= 0 {
		items[idx].Quantity += quantity
		items[idx].Price = input.Price
		items[idx].SelectedVariant = input.Variant
	} else {
		items = append(items, entity.CartItem{
			ID:              input.ProductID,
			Name:            input.Name,
			Price:           input.Price,
			Category:        input.Category,
			Image:           input.Image,
			Quantity:        quantity,
			SelectedVariant: input.Variant,
		})
	}

	if err := srv.cartRepo.Save(ctx, ns, items); err != nil {
		return nil, errors.Wrap(err, "failed to save cart")
	}

	srv.log(ctx).Debug("Added item to cart",
		slog.String("namespace", ns.String()),
		slog.String("productID", input.ProductID),
		slog.Int("quantity", quantity))

	return srv.view(ctx, ns)
}

// UpdateQuantity sets a line's quantity. A quantity of zero or less removes
// the line; an unknown product ID is a no-op.
func (srv *cartService) UpdateQuantity(ctx context.Context, ns entity.Namespace, productID string, quantity int) (*usecase.CartView, error) {
	if quantity <= 0 {
		return srv.RemoveItem(ctx, ns, productID)
	}

	items, err := srv.cartRepo.Load(ctx, ns)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load cart")
	}

	idx := items.Find(productID)
	if idx < 0 {
		return srv.view(ctx, ns)
	}

	items[idx].Quantity = quantity

	if err := srv.cartRepo.Save(ctx, ns, items); err != nil {
		return nil, errors.Wrap(err, "failed to save cart")
	}

	return srv.view(ctx, ns)
}

// RemoveItem removes a line by product ID. An unknown ID is a no-op.
func (srv *cartService) RemoveItem(ctx context.Context, ns entity.Namespace, productID string) (*usecase.CartView, error) {
	items, err := srv.cartRepo.Load(ctx, ns)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load cart")
	}

	idx := items.Find(productID)
	if idx < 0 {
		return srv.view(ctx, ns)
	}

	items = append(items[:idx], items[idx+1:]...)

	if err := srv.cartRepo.Save(ctx, ns, items); err != nil {
		return nil, errors.Wrap(err, "failed to save cart")
	}

	srv.log(ctx).Debug("Removed item from cart",
		slog.String("namespace", ns.String()),
		slog.String("productID", productID))

	return srv.view(ctx, ns)
}

// Clear empties the cart. Shipping and promo selections survive; an empty
// cart can still carry a pending promo for the next add.
func (srv *cartService) Clear(ctx context.Context, ns entity.Namespace) (*usecase.CartView, error) {
	if err := srv.cartRepo.Save(ctx, ns, entity.CartItems{}); err != nil {
		return nil, errors.Wrap(err, "failed to clear cart")
	}

	return srv.view(ctx, ns)
}

// ShippingOptions lists the configured shipping tiers.
func (srv *cartService) ShippingOptions(_ context.Context) []entity.ShippingOption {
	options := make([]entity.ShippingOption, len(srv.shippingOptions))
	copy(options, srv.shippingOptions)

	return options
}

// SelectShipping selects one of the configured shipping tiers.
func (srv *cartService) SelectShipping(ctx context.Context, ns entity.Namespace, optionID string) (*usecase.CartView, error) {
	option := srv.findShipping(optionID)
	if option == nil {
		srv.log(ctx).Warn("Rejected unknown shipping option",
			slog.String("namespace", ns.String()),
			slog.String("optionID", optionID))

		return nil, errors.Wrap(domainerrors.ErrUnknownShippingOption, "failed to select shipping option")
	}

	if err := srv.preferenceRepo.SaveShipping(ctx, ns, *option); err != nil {
		return nil, errors.Wrap(err, "failed to save shipping selection")
	}

	return srv.view(ctx, ns)
}

// ApplyPromoCode validates the code against the configured promo table and
// the current subtotal. An ineligible code yields a failed PromoResult with
// the customer-facing message, never an error; errors mean storage failed.
func (srv *cartService) ApplyPromoCode(ctx context.Context, ns entity.Namespace, code string) (*usecase.PromoResult, error) {
	items, err := srv.cartRepo.Load(ctx, ns)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load cart")
	}
	subtotal := items.Subtotal()

	var matched *entity.PromoCode
	for i := range srv.promoCodes {
		if srv.promoCodes[i].Active && srv.promoCodes[i].Matches(code) {
			matched = &srv.promoCodes[i]

			break
		}
	}

	if matched == nil {
		srv.log(ctx).Debug("Rejected promo code",
			slog.String("namespace", ns.String()),
			slog.String("code", code))

		return &usecase.PromoResult{Message: "Invalid promo code"}, nil
	}

	if !matched.MeetsMinimum(subtotal) {
		return &usecase.PromoResult{
			Message: fmt.Sprintf("Minimum purchase of $%s required", matched.MinPurchase.String()),
		}, nil
	}

	if err := srv.preferenceRepo.SavePromo(ctx, ns, *matched); err != nil {
		return nil, errors.Wrap(err, "failed to save applied promo")
	}

	srv.log(ctx).Info("Applied promo code",
		slog.String("namespace", ns.String()),
		slog.String("code", matched.Code))

	return &usecase.PromoResult{
		Applied: true,
		Message: matched.Description,
		Promo:   matched,
	}, nil
}

// RemovePromoCode clears the applied promo by deleting its storage key.
func (srv *cartService) RemovePromoCode(ctx context.Context, ns entity.Namespace) (*usecase.CartView, error) {
	if err := srv.preferenceRepo.DeletePromo(ctx, ns); err != nil {
		return nil, errors.Wrap(err, "failed to remove applied promo")
	}

	return srv.view(ctx, ns)
}

// ActivateIdentity runs the guest-to-user migration for a fresh sign-in. A
// user namespace that already holds a cart is left untouched, which makes
// repeated activation after the first migration a no-op. The guest entries
// are cleared once copied; migration is one-way.
func (srv *cartService) ActivateIdentity(ctx context.Context, userID string) error {
	if userID == "" {
		return nil
	}
	ns := entity.NamespaceForUser(userID)

	hasOwnCart, err := srv.cartRepo.Exists(ctx, ns)
	if err != nil {
		return errors.Wrap(err, "failed to check user cart")
	}
	if hasOwnCart {
		return nil
	}

	hasGuestCart, err := srv.cartRepo.Exists(ctx, entity.NamespaceGuest)
	if err != nil {
		return errors.Wrap(err, "failed to check guest cart")
	}
	if !hasGuestCart {
		return nil
	}

	guestItems, err := srv.cartRepo.Load(ctx, entity.NamespaceGuest)
	if err != nil {
		return errors.Wrap(err, "failed to load guest cart")
	}

	if err := srv.cartRepo.Save(ctx, ns, guestItems.Clone()); err != nil {
		return errors.Wrap(err, "failed to migrate guest cart")
	}

	if err := srv.migratePreferences(ctx, ns); err != nil {
		return err
	}

	if err := srv.cartRepo.Delete(ctx, entity.NamespaceGuest); err != nil {
		return errors.Wrap(err, "failed to clear guest cart")
	}

	srv.log(ctx).Info("Migrated guest cart",
		slog.String("userID", userID),
		slog.Int("itemCount", guestItems.ItemCount()))

	return nil
}

// migratePreferences copies the guest shipping and promo selections into the
// user's namespace and clears the guest entries.
func (srv *cartService) migratePreferences(ctx context.Context, ns entity.Namespace) error {
	shipping, err := srv.preferenceRepo.LoadShipping(ctx, entity.NamespaceGuest)
	if err != nil {
		return errors.Wrap(err, "failed to load guest shipping selection")
	}
	if shipping != nil {
		if err := srv.preferenceRepo.SaveShipping(ctx, ns, *shipping); err != nil {
			return errors.Wrap(err, "failed to migrate shipping selection")
		}
		if err := srv.preferenceRepo.DeleteShipping(ctx, entity.NamespaceGuest); err != nil {
			return errors.Wrap(err, "failed to clear guest shipping selection")
		}
	}

	promo, err := srv.preferenceRepo.LoadPromo(ctx, entity.NamespaceGuest)
	if err != nil {
		return errors.Wrap(err, "failed to load guest promo")
	}
	if promo != nil {
		if err := srv.preferenceRepo.SavePromo(ctx, ns, *promo); err != nil {
			return errors.Wrap(err, "failed to migrate applied promo")
		}
		if err := srv.preferenceRepo.DeletePromo(ctx, entity.NamespaceGuest); err != nil {
			return errors.Wrap(err, "failed to clear guest promo")
		}
	}

	return nil
}
