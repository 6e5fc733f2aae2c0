package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/offerhub/offers-api/internal/core/domain"
	"github.com/offerhub/offers-api/internal/core/ports"
)

// IdentityKey is the echo.Context key holding the authenticated *domain.Identity.
const IdentityKey = "identity"

// Authenticate validates the bearer token and stores the caller's identity
// in the context. Failures are returned as errors and rendered by the
// central error handler:
//   - no Authorization header or no token part: domain.ErrNoToken (403)
//   - token fails verification: domain.ErrInvalidToken (401)
//   - token refers to a user that no longer exists: 401
func Authenticate(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if token == "" {
				return domain.ErrNoToken
			}

			id, err := verifier.Verify(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
				}
				return err
			}

			c.Set(IdentityKey, id)
			return next(c)
		}
	}
}

// IdentityFrom returns the identity stored by Authenticate.
func IdentityFrom(c echo.Context) (*domain.Identity, bool) {
	id, ok := c.Get(IdentityKey).(*domain.Identity)
	return id, ok && id != nil
}

// bearerToken extracts the second whitespace-separated part of the header.
// The scheme word itself is not checked.
func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}
