package localstore

import (
	"context"
	"log/slog"

	"maison/internal/domain/entity"
	domainerrors "maison/internal/domain/errors"
	"maison/internal/domain/repository"
	"maison/internal/errors"
)

// wishlistRepository implements repository.WishlistRepository on the state store.
type wishlistRepository struct {
	store  Store
	logger *slog.Logger
}

// NewWishlistRepository is the constructor for wishlistRepository.
func NewWishlistRepository(store Store, logger *slog.Logger) repository.WishlistRepository {
	return &wishlistRepository{store: store, logger: logger}
}

// Load retrieves the user's wishlist, empty when absent or undecodable.
func (repo *wishlistRepository) Load(ctx context.Context, ns entity.Namespace) (entity.Wishlist, error) {
	raw, err := repo.store.Get(ctx, WishlistKey(ns))
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return entity.Wishlist{}, nil
		}

		return nil, domainerrors.NewStorageError(err, "failed to load wishlist")
	}

	var wishlist entity.Wishlist
	if !decode(raw, &wishlist) {
		repo.logger.Warn("Discarding undecodable wishlist state",
			slog.String("key", WishlistKey(ns)),
		)

		return entity.Wishlist{}, nil
	}

	return wishlist, nil
}

// Save persists the full wishlist for the user.
func (repo *wishlistRepository) Save(ctx context.Context, ns entity.Namespace, wishlist entity.Wishlist) error {
	raw, err := encode(wishlist)
	if err != nil {
		return errors.Wrap(err, "failed to encode wishlist")
	}

	if err := repo.store.Set(ctx, WishlistKey(ns), raw); err != nil {
		return domainerrors.NewStorageError(err, "failed to save wishlist")
	}

	return nil
}
