package localstore

import (
	"context"
	"log/slog"

	"maison/internal/domain/entity"
	domainerrors "maison/internal/domain/errors"
	"maison/internal/domain/repository"
	"maison/internal/errors"
)

// cartRepository implements repository.CartRepository on the state store.
type cartRepository struct {
	store  Store
	logger *slog.Logger
}

// NewCartRepository is the constructor for cartRepository.
func NewCartRepository(store Store, logger *slog.Logger) repository.CartRepository {
	return &cartRepository{store: store, logger: logger}
}

// Load retrieves the namespace's cart. An absent key or a value that no
// longer decodes yields the empty cart; persisted garbage never surfaces.
func (repo *cartRepository) Load(ctx context.Context, ns entity.Namespace) (entity.CartItems, error) {
	raw, err := repo.store.Get(ctx, CartKey(ns))
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return entity.CartItems{}, nil
		}

		return nil, domainerrors.NewStorageError(err, "failed to load cart")
	}

	var items entity.CartItems
	if !decode(raw, &items) {
		repo.logger.Warn("Discarding undecodable cart state",
			slog.String("key", CartKey(ns)),
		)

		return entity.CartItems{}, nil
	}

	return items, nil
}

// Save persists the full item list for the namespace.
func (repo *cartRepository) Save(ctx context.Context, ns entity.Namespace, items entity.CartItems) error {
	raw, err := encode(items)
	if err != nil {
		return errors.Wrap(err, "failed to encode cart")
	}

	if err := repo.store.Set(ctx, CartKey(ns), raw); err != nil {
		return domainerrors.NewStorageError(err, "failed to save cart")
	}

	return nil
}

// Delete removes the namespace's cart entry.
func (repo *cartRepository) Delete(ctx context.Context, ns entity.Namespace) error {
	if err := repo.store.Delete(ctx, CartKey(ns)); err != nil {
		return domainerrors.NewStorageError(err, "failed to delete cart")
	}

	return nil
}

// Exists reports whether a cart entry is persisted for the namespace.
func (repo *cartRepository) Exists(ctx context.Context, ns entity.Namespace) (bool, error) {
	exists, err := repo.store.Exists(ctx, CartKey(ns))
	if err != nil {
		return false, domainerrors.NewStorageError(err, "failed to check cart")
	}

	return exists, nil
}
