package impl

import (
	"context"
	"log/slog"

	deliverycontext "maison/internal/delivery/context"
	"maison/internal/domain/entity"
	domainerrors "maison/internal/domain/errors"
	"maison/internal/domain/repository"
	"maison/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// wishlistService implements the WishlistUsecase interface.
type wishlistService struct {
	wishlistRepo repository.WishlistRepository
	logger       *slog.Logger
}

// WishlistServiceParams holds dependencies for WishlistService, injected by Fx.
type WishlistServiceParams struct {
	fx.In

	WishlistRepo repository.WishlistRepository
	Logger       *slog.Logger
}

// NewWishlistService is the constructor for wishlistService.
func NewWishlistService(params WishlistServiceParams) usecase.WishlistUsecase {
	return &wishlistService{
		wishlistRepo: params.WishlistRepo,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *wishlistService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetWishlist returns the user's saved product IDs. Guests always see an
// empty wishlist; nothing is ever stored under the guest namespace.
func (srv *wishlistService) GetWishlist(ctx context.Context, ns entity.Namespace) (entity.Wishlist, error) {
	if ns.IsGuest() {
		return entity.Wishlist{}, nil
	}

	wishlist, err := srv.wishlistRepo.Load(ctx, ns)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load wishlist")
	}

	return wishlist, nil
}

// Toggle flips a product's membership. A guest toggle is refused with a
// sign-in prompt and changes nothing.
func (srv *wishlistService) Toggle(ctx context.Context, ns entity.Namespace, productID string) (*usecase.ToggleOutput, error) {
	if ns.IsGuest() {
		srv.log(ctx).Debug("Refused guest wishlist toggle", slog.String("productID", productID))

		return nil, errors.Wrap(domainerrors.ErrWishlistSignInRequired, "wishlist requires authentication")
	}

	wishlist, err := srv.wishlistRepo.Load(ctx, ns)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load wishlist")
	}

	toggled, saved := wishlist.Toggle(productID)

	if err := srv.wishlistRepo.Save(ctx, ns, toggled); err != nil {
		return nil, errors.Wrap(err, "failed to save wishlist")
	}

	srv.log(ctx).Debug("Toggled wishlist item",
		slog.String("namespace", ns.String()),
		slog.String("productID", productID),
		slog.Bool("saved", saved))

	return &usecase.ToggleOutput{Wishlist: toggled, Saved: saved}, nil
}

// Contains reports whether the product is saved in the user's wishlist.
func (srv *wishlistService) Contains(ctx context.Context, ns entity.Namespace, productID string) (bool, error) {
	wishlist, err := srv.GetWishlist(ctx, ns)
	if err != nil {
		return false, err
	}

	return wishlist.Contains(productID), nil
}
