package localstore

import (
	"context"
	"log/slog"

	"maison/internal/domain/entity"
	domainerrors "maison/internal/domain/errors"
	"maison/internal/domain/repository"
	"maison/internal/errors"
)

// orderRepository implements repository.OrderRepository on the state store.
type orderRepository struct {
	store  Store
	logger *slog.Logger
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(store Store, logger *slog.Logger) repository.OrderRepository {
	return &orderRepository{store: store, logger: logger}
}

// Load retrieves the user's orders, empty when absent or undecodable.
func (repo *orderRepository) Load(ctx context.Context, ns entity.Namespace) ([]entity.Order, error) {
	raw, err := repo.store.Get(ctx, OrdersKey(ns))
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return []entity.Order{}, nil
		}

		return nil, domainerrors.NewStorageError(err, "failed to load orders")
	}

	var orders []entity.Order
	if !decode(raw, &orders) {
		repo.logger.Warn("Discarding undecodable order state",
			slog.String("key", OrdersKey(ns)),
		)

		return []entity.Order{}, nil
	}

	return orders, nil
}

// Save persists the full order list for the user.
func (repo *orderRepository) Save(ctx context.Context, ns entity.Namespace, orders []entity.Order) error {
	raw, err := encode(orders)
	if err != nil {
		return errors.Wrap(err, "failed to encode orders")
	}

	if err := repo.store.Set(ctx, OrdersKey(ns), raw); err != nil {
		return domainerrors.NewStorageError(err, "failed to save orders")
	}

	return nil
}
