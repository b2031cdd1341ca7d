package repository

import (
	"context"

	"maison/internal/domain/entity"
)

// AddressRepository persists an authenticated user's address book.
// The whole book is serialized as one value, mirroring the cart layout.
type AddressRepository interface {
	// Load retrieves the user's addresses, empty when absent.
	Load(ctx context.Context, ns entity.Namespace) ([]entity.Address, error)

	// Save persists the full address list for the user.
	Save(ctx context.Context, ns entity.Namespace, addresses []entity.Address) error
}
