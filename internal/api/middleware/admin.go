package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/offerhub/offers-api/internal/core/domain"
)

// RequireAdmin rejects callers whose identity lacks the admin flag. Must be
// chained after Authenticate.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok || !id.IsAdmin {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
