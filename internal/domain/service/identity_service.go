package service

import (
	"context"

	"maison/internal/domain/entity"
)

// ProfileUpdate carries the mutable profile fields. Nil fields are left
// untouched by the provider.
type ProfileUpdate struct {
	DisplayName *string
	PhotoURL    *string
}

// IdentityService is the boundary to the external identity provider. The
// storefront never stores credentials; every operation delegates.
type IdentityService interface {
	// VerifyIDToken validates a bearer ID token and returns the identity
	// it asserts.
	VerifyIDToken(ctx context.Context, idToken string) (*entity.User, error)

	// SignUp creates a new email/password account.
	SignUp(ctx context.Context, email, password string) (*entity.User, error)

	// SignInWithPassword exchanges email/password credentials for the
	// user's identity and a fresh ID token.
	SignInWithPassword(ctx context.Context, email, password string) (*entity.User, string, error)

	// UpdateProfile applies profile changes for the given user.
	UpdateProfile(ctx context.Context, uid string, update ProfileUpdate) (*entity.User, error)

	// GetUser fetches the current provider record for the given user.
	GetUser(ctx context.Context, uid string) (*entity.User, error)
}

// ProviderTokenVerifier verifies a federated provider's ID token (e.g. a
// Google sign-in token) and returns the asserted identity.
type ProviderTokenVerifier interface {
	VerifyProviderToken(ctx context.Context, idToken string) (*entity.User, error)
}
