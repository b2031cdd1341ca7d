package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "maison/internal/delivery/context"
	"maison/internal/delivery/http/response"
	"maison/internal/domain/entity"
	"maison/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware resolves the caller's identity from a bearer ID token.
type AuthMiddleware struct {
	auth   usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(auth usecase.AuthUsecase, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{auth: auth, logger: logger}
}

// Identify resolves the bearer token when one is present and stores the
// identity on the context. Requests without a valid token proceed as guests,
// so cart and catalog routes stay usable before sign-in.
func (m *AuthMiddleware) Identify(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := bearerToken(c)
		if token == "" {
			deliverycontext.SetIdentity(c, entity.NamespaceGuest, nil)

			return next(c)
		}

		user, err := m.auth.CurrentUser(c.Request().Context(), token)
		if err != nil {
			m.logger.Warn("bearer token rejected",
				slog.String("request_id", deliverycontext.GetRequestID(c)),
				slog.Any("error", err),
			)
			deliverycontext.SetIdentity(c, entity.NamespaceGuest, nil)

			return next(c)
		}

		deliverycontext.SetIdentity(c, user.Namespace(), user)

		return next(c)
	}
}

// RequireUser rejects requests that did not resolve to an authenticated user.
// It must be used AFTER the Identify middleware.
func (m *AuthMiddleware) RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if deliverycontext.GetUser(c) == nil {
			return response.Unauthorized(c, "AUTHENTICATION_REQUIRED", "Please sign in to continue")
		}

		return next(c)
	}
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return ""
	}

	token := strings.TrimPrefix(header, "Bearer ")
	if token == header {
		return ""
	}

	return token
}
