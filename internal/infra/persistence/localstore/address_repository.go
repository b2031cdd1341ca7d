package localstore

import (
	"context"
	"log/slog"

	"maison/internal/domain/entity"
	domainerrors "maison/internal/domain/errors"
	"maison/internal/domain/repository"
	"maison/internal/errors"
)

// addressRepository implements repository.AddressRepository on the state store.
type addressRepository struct {
	store  Store
	logger *slog.Logger
}

// NewAddressRepository is the constructor for addressRepository.
func NewAddressRepository(store Store, logger *slog.Logger) repository.AddressRepository {
	return &addressRepository{store: store, logger: logger}
}

// Load retrieves the user's addresses, empty when absent or undecodable.
func (repo *addressRepository) Load(ctx context.Context, ns entity.Namespace) ([]entity.Address, error) {
	raw, err := repo.store.Get(ctx, AddressesKey(ns))
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return []entity.Address{}, nil
		}

		return nil, domainerrors.NewStorageError(err, "failed to load addresses")
	}

	var addresses []entity.Address
	if !decode(raw, &addresses) {
		repo.logger.Warn("Discarding undecodable address state",
			slog.String("key", AddressesKey(ns)),
		)

		return []entity.Address{}, nil
	}

	return addresses, nil
}

// Save persists the full address list for the user.
func (repo *addressRepository) Save(ctx context.Context, ns entity.Namespace, addresses []entity.Address) error {
	raw, err := encode(addresses)
	if err != nil {
		return errors.Wrap(err, "failed to encode addresses")
	}

	if err := repo.store.Set(ctx, AddressesKey(ns), raw); err != nil {
		return domainerrors.NewStorageError(err, "failed to save addresses")
	}

	return nil
}
