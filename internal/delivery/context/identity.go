package context

import (
	"maison/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

const (
	// KeyNamespace is the key for the caller's identity namespace.
	KeyNamespace ContextKey = "namespace"

	// KeyUser is the key for the authenticated user, when any.
	KeyUser ContextKey = "user"
)

// SetIdentity stores the resolved identity on the echo context. user is nil
// for anonymous callers.
func SetIdentity(c echo.Context, ns entity.Namespace, user *entity.User) {
	c.Set(string(KeyNamespace), ns)
	if user != nil {
		c.Set(string(KeyUser), user)
	}
}

// GetNamespace extracts the caller's namespace from echo.Context, falling
// back to the guest namespace.
func GetNamespace(c echo.Context) entity.Namespace {
	if ns, ok := c.Get(string(KeyNamespace)).(entity.Namespace); ok && ns != "" {
		return ns
	}

	return entity.NamespaceGuest
}

// GetUser extracts the authenticated user from echo.Context, nil for guests.
func GetUser(c echo.Context) *entity.User {
	if user, ok := c.Get(string(KeyUser)).(*entity.User); ok {
		return user
	}

	return nil
}
