package ports

import (
	"context"

	"github.com/offerhub/offers-api/internal/core/domain"
)

// OfferRepository defines persistence operations for offers.
// Lookups by an ID that does not resolve return domain.ErrOfferNotFound.
type OfferRepository interface {
	Create(ctx context.Context, offer *domain.Offer) (*domain.Offer, error)
	FindByID(ctx context.Context, id string) (*domain.Offer, error)
	// List returns every offer in creation order.
	List(ctx context.Context) ([]*domain.Offer, error)
	// Replace overwrites the mutable fields of an existing offer.
	Replace(ctx context.Context, offer *domain.Offer) (*domain.Offer, error)
	Delete(ctx context.Context, id string) error
}

// OfferCache holds the full offer list between writes. Entries are keyed by a
// generation that Invalidate advances, so a list read from the store before a
// write is filed under a generation no later lookup asks for.
type OfferCache interface {
	// GetList reports the current generation and, on a hit, the cached list.
	GetList(ctx context.Context) (offers []*domain.Offer, gen int64, ok bool, err error)
	// SetList stores offers under gen, the generation GetList reported before
	// the list was read from the store.
	SetList(ctx context.Context, gen int64, offers []*domain.Offer) error
	Invalidate(ctx context.Context) error
}
