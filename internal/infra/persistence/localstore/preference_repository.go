package localstore

import (
	"context"
	"log/slog"

	"maison/internal/domain/entity"
	domainerrors "maison/internal/domain/errors"
	"maison/internal/domain/repository"
	"maison/internal/errors"
)

// preferenceRepository implements repository.PreferenceRepository on the
// state store: one key per namespace for the shipping selection, one for the
// applied promo.
type preferenceRepository struct {
	store  Store
	logger *slog.Logger
}

// NewPreferenceRepository is the constructor for preferenceRepository.
func NewPreferenceRepository(store Store, logger *slog.Logger) repository.PreferenceRepository {
	return &preferenceRepository{store: store, logger: logger}
}

// LoadShipping returns the persisted shipping selection, nil when none.
func (repo *preferenceRepository) LoadShipping(ctx context.Context, ns entity.Namespace) (*entity.ShippingOption, error) {
	var option entity.ShippingOption
	ok, err := repo.load(ctx, ShippingKey(ns), &option)
	if err != nil || !ok {
		return nil, err
	}

	return &option, nil
}

// SaveShipping persists the shipping selection.
func (repo *preferenceRepository) SaveShipping(ctx context.Context, ns entity.Namespace, option entity.ShippingOption) error {
	return repo.save(ctx, ShippingKey(ns), option, "failed to save shipping selection")
}

// DeleteShipping removes the namespace's shipping selection.
func (repo *preferenceRepository) DeleteShipping(ctx context.Context, ns entity.Namespace) error {
	if err := repo.store.Delete(ctx, ShippingKey(ns)); err != nil {
		return domainerrors.NewStorageError(err, "failed to delete shipping selection")
	}

	return nil
}

// LoadPromo returns the applied promo, nil when none is applied.
func (repo *preferenceRepository) LoadPromo(ctx context.Context, ns entity.Namespace) (*entity.PromoCode, error) {
	var promo entity.PromoCode
	ok, err := repo.load(ctx, PromoKey(ns), &promo)
	if err != nil || !ok {
		return nil, err
	}

	// A persisted null and key absence are treated identically.
	if promo.Code == "" {
		return nil, nil
	}

	return &promo, nil
}

// SavePromo persists the applied promo.
func (repo *preferenceRepository) SavePromo(ctx context.Context, ns entity.Namespace, promo entity.PromoCode) error {
	return repo.save(ctx, PromoKey(ns), promo, "failed to save applied promo")
}

// DeletePromo removes the applied promo key.
func (repo *preferenceRepository) DeletePromo(ctx context.Context, ns entity.Namespace) error {
	if err := repo.store.Delete(ctx, PromoKey(ns)); err != nil {
		return domainerrors.NewStorageError(err, "failed to delete applied promo")
	}

	return nil
}

func (repo *preferenceRepository) load(ctx context.Context, key string, out any) (bool, error) {
	raw, err := repo.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return false, nil
		}

		return false, domainerrors.NewStorageError(err, "failed to load "+key)
	}

	if !decode(raw, out) {
		repo.logger.Warn("Discarding undecodable preference state",
			slog.String("key", key),
		)

		return false, nil
	}

	return true, nil
}

func (repo *preferenceRepository) save(ctx context.Context, key string, v any, msg string) error {
	raw, err := encode(v)
	if err != nil {
		return errors.Wrap(err, msg)
	}

	if err := repo.store.Set(ctx, key, raw); err != nil {
		return domainerrors.NewStorageError(err, msg)
	}

	return nil
}
