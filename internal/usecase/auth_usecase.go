package usecase

import (
	"context"

	"maison/internal/domain/entity"
)

// --- Input DTOs ---

// SignUpInput defines the data required to create an account.
type SignUpInput struct {
	Email    string
	Password string
}

// SignInInput defines the data required for an email/password sign-in.
type SignInInput struct {
	Email    string
	Password string
}

// ProviderSignInInput defines the data for a federated provider sign-in.
type ProviderSignInInput struct {
	IDToken string
}

// --- Output DTOs ---

// SessionOutput returns the signed-in identity. IDToken is set when the
// provider issued a fresh token as part of the operation.
type SessionOutput struct {
	User    *entity.User
	IDToken string
}

// AuthUsecase defines the interface for authentication operations. Each
// successful sign-in or sign-up activates the user's storefront namespace,
// migrating any guest state into it.
type AuthUsecase interface {
	// SignUp creates an email/password account and activates it.
	SignUp(ctx context.Context, input *SignUpInput) (*SessionOutput, error)

	// SignIn exchanges email/password credentials for a session.
	SignIn(ctx context.Context, input *SignInInput) (*SessionOutput, error)

	// SignInWithProvider verifies a federated provider token and signs
	// the asserted identity in.
	SignInWithProvider(ctx context.Context, input *ProviderSignInInput) (*SessionOutput, error)

	// CurrentUser resolves a bearer ID token to its identity.
	CurrentUser(ctx context.Context, idToken string) (*entity.User, error)
}
