package repository

import (
	"context"

	"maison/internal/domain/entity"
)

// PreferenceRepository persists the shipping selection and applied promo per
// identity namespace. Both are namespaced alongside the cart so one device
// never leaks a promo or shipping choice across accounts.
type PreferenceRepository interface {
	// LoadShipping returns the persisted shipping selection, or nil when
	// none was saved yet.
	LoadShipping(ctx context.Context, ns entity.Namespace) (*entity.ShippingOption, error)

	// SaveShipping persists the shipping selection.
	SaveShipping(ctx context.Context, ns entity.Namespace, option entity.ShippingOption) error

	// DeleteShipping removes the namespace's shipping selection.
	DeleteShipping(ctx context.Context, ns entity.Namespace) error

	// LoadPromo returns the applied promo, or nil when none is applied.
	// Key absence and a persisted null are treated identically.
	LoadPromo(ctx context.Context, ns entity.Namespace) (*entity.PromoCode, error)

	// SavePromo persists the applied promo.
	SavePromo(ctx context.Context, ns entity.Namespace, promo entity.PromoCode) error

	// DeletePromo removes the applied promo key, keeping storage clean
	// rather than writing a null.
	DeletePromo(ctx context.Context, ns entity.Namespace) error
}
