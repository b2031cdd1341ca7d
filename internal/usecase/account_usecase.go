package usecase

import (
	"context"

	"maison/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// SaveAddressInput carries the fields for creating or updating an address.
type SaveAddressInput struct {
	Name      string
	Street    string
	City      string
	State     string
	ZipCode   string
	Country   string
	IsDefault bool
}

// UpdateProfileInput carries the mutable profile fields. Nil fields are
// left unchanged.
type UpdateProfileInput struct {
	DisplayName *string
	PhotoURL    *string
}

// AccountUsecase defines the interface for the authenticated account pages:
// the address book, order history and profile.
type AccountUsecase interface {
	// ListAddresses returns the user's address book, default first.
	ListAddresses(ctx context.Context, ns entity.Namespace) ([]entity.Address, error)

	// AddAddress appends a new address. The first address saved becomes
	// the default; marking a later one default clears the previous flag.
	AddAddress(ctx context.Context, ns entity.Namespace, input *SaveAddressInput) (*entity.Address, error)

	// UpdateAddress replaces an existing address's fields.
	UpdateAddress(ctx context.Context, ns entity.Namespace, id uuid.UUID, input *SaveAddressInput) (*entity.Address, error)

	// DeleteAddress removes an address. Deleting the default promotes the
	// first remaining address, when any.
	DeleteAddress(ctx context.Context, ns entity.Namespace, id uuid.UUID) error

	// ListOrders returns the user's local order records, most recent first.
	ListOrders(ctx context.Context, ns entity.Namespace) ([]entity.Order, error)

	// UpdateProfile applies profile changes through the identity provider.
	UpdateProfile(ctx context.Context, ns entity.Namespace, input *UpdateProfileInput) (*entity.User, error)
}
