package ports

import (
	"context"

	"github.com/offerhub/offers-api/internal/core/domain"
)

// UserRepository is the credential store.
type UserRepository interface {
	// Create stores a new user and returns it with its ID set.
	// Returns domain.ErrUserExists when the email is already taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
