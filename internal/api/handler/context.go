package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/offerhub/offers-api/internal/api/middleware"
)

// callerID returns the authenticated user's id, or "" on public routes.
func callerID(c echo.Context) string {
	if id, ok := middleware.IdentityFrom(c); ok {
		return id.ID
	}
	return ""
}
