package ports

import (
	"context"

	"github.com/offerhub/offers-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, email, password, confirmPassword string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	LoginAsAdmin(ctx context.Context, email, password string) (string, error)
}

// TokenVerifier resolves a bearer token to the identity behind it.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*domain.Identity, error)
}
