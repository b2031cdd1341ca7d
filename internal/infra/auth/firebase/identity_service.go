// Package firebase implements the identity boundary against Firebase
// Authentication. Verification and account management go through the Admin
// SDK; password sign-in uses the Identity Toolkit REST endpoint because the
// Admin SDK has no password grant.
package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"maison/config"
	"maison/internal/domain/entity"
	domainerrors "maison/internal/domain/errors"
	"maison/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/option"
)

const defaultSignInEndpoint = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword"

// identityService implements the IdentityService interface.
type identityService struct {
	authClient     *auth.Client
	apiKey         string
	signInEndpoint string
	httpClient     *http.Client
	logger         *slog.Logger
}

// IdentityServiceParams holds dependencies for the identity service, injected by Fx.
type IdentityServiceParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewIdentityService is the constructor for the Firebase-backed identity
// service.
func NewIdentityService(params IdentityServiceParams) (service.IdentityService, error) {
	cfg := params.Config.Firebase
	if cfg == nil || cfg.ProjectID == "" {
		return nil, errors.New("firebase project ID is required")
	}

	var opts []option.ClientOption
	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	}

	app, err := firebase.NewApp(params.Ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	authClient, err := app.Auth(params.Ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get auth client")
	}

	return &identityService{
		authClient:     authClient,
		apiKey:         cfg.WebAPIKey,
		signInEndpoint: defaultSignInEndpoint,
		httpClient:     &http.Client{Timeout: 10 * time.Second},
		logger:         params.Logger,
	}, nil
}

// VerifyIDToken validates a bearer ID token and returns the identity it
// asserts.
func (s *identityService) VerifyIDToken(ctx context.Context, idToken string) (*entity.User, error) {
	token, err := s.authClient.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrInvalidIDToken, err.Error())
	}

	return s.GetUser(ctx, token.UID)
}

// SignUp creates a new email/password account.
func (s *identityService) SignUp(ctx context.Context, email, password string) (*entity.User, error) {
	record, err := s.authClient.CreateUser(ctx, (&auth.UserToCreate{}).
		Email(email).
		Password(password))
	if err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return nil, errors.Wrap(domainerrors.ErrEmailAlreadyInUse, "sign-up rejected")
		}

		return nil, errors.Wrap(err, "failed to create user")
	}

	s.logger.Info("Created identity provider account", slog.String("uid", record.UID))

	return userFromRecord(record), nil
}

// signInResponse is the Identity Toolkit success payload.
type signInResponse struct {
	LocalID string `json:"localId"`
	IDToken string `json:"idToken"`
}

// signInError is the Identity Toolkit failure payload.
type signInError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// SignInWithPassword exchanges email/password credentials for the user's
// identity and a fresh ID token.
func (s *identityService) SignInWithPassword(ctx context.Context, email, password string) (*entity.User, string, error) {
	body, err := json.Marshal(map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
	if err != nil {
		return nil, "", errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.signInEndpoint+"?key="+s.apiKey, bytes.NewReader(body))
	if err != nil {
		return nil, "", errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, "", errors.Wrap(err, "identity toolkit request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var payload signInError
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, "", errors.Errorf("identity toolkit returned status %d", resp.StatusCode)
		}

		return nil, "", mapSignInError(payload.Error.Message)
	}

	var payload signInResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, "", errors.Wrap(err, "failed to decode sign-in response")
	}

	user, err := s.GetUser(ctx, payload.LocalID)
	if err != nil {
		return nil, "", err
	}

	return user, payload.IDToken, nil
}

// UpdateProfile applies profile changes for the given user.
func (s *identityService) UpdateProfile(ctx context.Context, uid string, update service.ProfileUpdate) (*entity.User, error) {
	params := &auth.UserToUpdate{}
	if update.DisplayName != nil {
		params = params.DisplayName(*update.DisplayName)
	}
	if update.PhotoURL != nil {
		params = params.PhotoURL(*update.PhotoURL)
	}

	record, err := s.authClient.UpdateUser(ctx, uid, params)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "failed to update profile")
		}

		return nil, errors.Wrap(err, "failed to update user")
	}

	return userFromRecord(record), nil
}

// GetUser fetches the current provider record for the given user.
func (s *identityService) GetUser(ctx context.Context, uid string) (*entity.User, error) {
	record, err := s.authClient.GetUser(ctx, uid)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "failed to get user")
		}

		return nil, errors.Wrap(err, "failed to get user")
	}

	return userFromRecord(record), nil
}

// mapSignInError translates Identity Toolkit error codes into domain errors.
// Bad credentials stay indistinguishable from unknown accounts on purpose.
func mapSignInError(code string) error {
	switch code {
	case "EMAIL_NOT_FOUND", "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS", "USER_DISABLED":
		return errors.Wrap(domainerrors.ErrInvalidCredentials, "sign-in rejected")
	default:
		return errors.Errorf("identity toolkit error: %s", code)
	}
}

func userFromRecord(record *auth.UserRecord) *entity.User {
	provider := entity.ProviderTypePassword
	for _, info := range record.ProviderUserInfo {
		if info.ProviderID == "google.com" {
			provider = entity.ProviderTypeGoogle

			break
		}
	}

	return &entity.User{
		UID:           record.UID,
		Email:         record.Email,
		DisplayName:   record.DisplayName,
		PhotoURL:      record.PhotoURL,
		EmailVerified: record.EmailVerified,
		Provider:      provider,
	}
}
