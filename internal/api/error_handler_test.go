package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offerhub/offers-api/internal/api/handler"
	"github.com/offerhub/offers-api/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, handler.Envelope) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var env handler.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec.Code, env
}

func TestHTTPErrorHandler_Sentinels(t *testing.T) {
	cases := []struct {
		err  error
		code int
		msg  string
	}{
		{domain.ErrUserExists, http.StatusConflict, "User already exists"},
		{domain.ErrUserNotFound, http.StatusNotFound, "User does not exist"},
		{domain.ErrInvalidCredentials, http.StatusBadRequest, "Password is incorrect"},
		{domain.ErrNotAdmin, http.StatusForbidden, "User does not have admin access"},
		{domain.ErrNoToken, http.StatusForbidden, "No token provided"},
		{domain.ErrInvalidToken, http.StatusUnauthorized, "Invalid token"},
		{domain.ErrForbidden, http.StatusForbidden, "Access denied"},
		{domain.ErrOfferNotFound, http.StatusNotFound, "Offer not found"},
		{fmt.Errorf("find offer: %w", domain.ErrOfferNotFound), http.StatusNotFound, "Offer not found"},
	}

	for _, tc := range cases {
		t.Run(tc.msg, func(t *testing.T) {
			code, env := renderError(t, tc.err)
			assert.Equal(t, tc.code, code)
			assert.Equal(t, handler.StatusFail, env.Status)
			assert.Equal(t, tc.msg, env.Msg)
		})
	}
}

func TestHTTPErrorHandler_Validation(t *testing.T) {
	code, env := renderError(t, fmt.Errorf("%w: passwords do not match", domain.ErrValidation))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Passwords do not match", env.Msg)

	code, env = renderError(t, domain.ErrValidation)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid input", env.Msg)

	code, env = renderError(t, fmt.Errorf("%w: password must be at most 72 bytes", domain.ErrValidation))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Password must be at most 72 bytes", env.Msg)
}

func TestHTTPErrorHandler_EchoError(t *testing.T) {
	code, env := renderError(t, echo.NewHTTPError(http.StatusUnauthorized, "User not found"))
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "User not found", env.Msg)
}

func TestHTTPErrorHandler_UnknownErrorIsHidden(t *testing.T) {
	code, env := renderError(t, errors.New("mongo: connection reset by peer"))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Server error", env.Msg)
}
