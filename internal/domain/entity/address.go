package entity

import (
	"time"

	"github.com/google/uuid"
)

// Address is a saved shipping address in an authenticated user's address book.
type Address struct {
	ID        uuid.UUID `json:"id"`         // The Global Unique Identifier (GUID) for the address.
	Name      string    `json:"name"`       // Recipient or label, e.g. "Home".
	Street    string    `json:"street"`     // Street line.
	City      string    `json:"city"`       // City.
	State     string    `json:"state"`      // State or province.
	ZipCode   string    `json:"zip_code"`   // Postal code.
	Country   string    `json:"country"`    // Country.
	IsDefault bool      `json:"is_default"` // At most one address per user carries this flag.
	CreatedAt time.Time `json:"created_at"` // Timestamp of when this address was created.
	UpdatedAt time.Time `json:"updated_at"` // Timestamp of the last modification.
}
