package entity

// ProviderType represents the authentication provider a user signed in with.
type ProviderType string

const (
	// ProviderTypePassword indicates email/password authentication.
	ProviderTypePassword ProviderType = "password"
	// ProviderTypeGoogle indicates Google federated sign-in.
	ProviderTypeGoogle ProviderType = "google"
)

// String returns the string representation of the ProviderType.
func (p ProviderType) String() string {
	return string(p)
}

// User is the authenticated identity reported by the identity provider.
// The storefront stores no credentials; it only keys state by UID.
type User struct {
	UID           string       `json:"uid"`            // The identity provider's unique user ID.
	Email         string       `json:"email"`          // The user's email address.
	DisplayName   string       `json:"display_name"`   // Optional display name.
	PhotoURL      string       `json:"photo_url"`      // Optional avatar URL.
	EmailVerified bool         `json:"email_verified"` // Whether the provider verified the email.
	Provider      ProviderType `json:"provider"`       // How the user authenticated.
}

// Namespace returns the storage namespace for this user's storefront state.
func (u *User) Namespace() Namespace {
	if u == nil || u.UID == "" {
		return NamespaceGuest
	}

	return NamespaceForUser(u.UID)
}
