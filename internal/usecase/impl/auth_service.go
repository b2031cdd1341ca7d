package impl

import (
	"context"
	"log/slog"

	deliverycontext "maison/internal/delivery/context"
	"maison/internal/domain/entity"
	"maison/internal/domain/service"
	"maison/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	identity         service.IdentityService
	providerVerifier service.ProviderTokenVerifier
	carts            usecase.CartUsecase
	logger           *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	Identity         service.IdentityService
	ProviderVerifier service.ProviderTokenVerifier
	Carts            usecase.CartUsecase
	Logger           *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		identity:         params.Identity,
		providerVerifier: params.ProviderVerifier,
		carts:            params.Carts,
		logger:           params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SignUp creates an email/password account and activates its storefront
// namespace, migrating any guest state into it.
func (srv *authService) SignUp(ctx context.Context, input *usecase.SignUpInput) (*usecase.SessionOutput, error) {
	user, err := srv.identity.SignUp(ctx, input.Email, input.Password)
	if err != nil {
		srv.log(ctx).Warn("Sign-up failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "sign-up failed")
	}

	srv.activate(ctx, user)

	srv.log(ctx).Info("Signed up", slog.String("uid", user.UID))

	return &usecase.SessionOutput{User: user}, nil
}

// SignIn exchanges email/password credentials for a session.
func (srv *authService) SignIn(ctx context.Context, input *usecase.SignInInput) (*usecase.SessionOutput, error) {
	user, idToken, err := srv.identity.SignInWithPassword(ctx, input.Email, input.Password)
	if err != nil {
		srv.log(ctx).Warn("Sign-in failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "sign-in failed")
	}

	srv.activate(ctx, user)

	srv.log(ctx).Info("Signed in", slog.String("uid", user.UID))

	return &usecase.SessionOutput{User: user, IDToken: idToken}, nil
}

// SignInWithProvider verifies a federated provider token and signs the
// asserted identity in.
func (srv *authService) SignInWithProvider(ctx context.Context, input *usecase.ProviderSignInInput) (*usecase.SessionOutput, error) {
	user, err := srv.providerVerifier.VerifyProviderToken(ctx, input.IDToken)
	if err != nil {
		srv.log(ctx).Warn("Provider sign-in failed", slog.Any("error", err))

		return nil, errors.Wrap(err, "provider sign-in failed")
	}

	srv.activate(ctx, user)

	srv.log(ctx).Info("Signed in with provider",
		slog.String("uid", user.UID),
		slog.String("provider", user.Provider.String()))

	return &usecase.SessionOutput{User: user, IDToken: input.IDToken}, nil
}

// CurrentUser resolves a bearer ID token to its identity.
func (srv *authService) CurrentUser(ctx context.Context, idToken string) (*entity.User, error) {
	user, err := srv.identity.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, errors.Wrap(err, "failed to verify session token")
	}

	return user, nil
}

// activate migrates guest state into the user's namespace. An activation
// failure never blocks the sign-in; the guest cart just stays put.
func (srv *authService) activate(ctx context.Context, user *entity.User) {
	if err := srv.carts.ActivateIdentity(ctx, user.UID); err != nil {
		srv.log(ctx).Error("Failed to activate identity namespace",
			slog.String("uid", user.UID),
			slog.Any("error", err))
	}
}
