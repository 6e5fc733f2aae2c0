package ports

import (
	"context"

	"github.com/offerhub/offers-api/internal/core/domain"
)

// CreateOfferInput carries the client-supplied fields of a new offer.
type CreateOfferInput struct {
	Title         string
	Description   string
	OriginalPrice float64
	Discount      float64
}

// UpdateOfferInput is a partial update; nil fields keep their stored value.
type UpdateOfferInput struct {
	Title         *string
	Description   *string
	OriginalPrice *float64
	Discount      *float64
}

// Empty reports whether the update carries no fields at all.
func (in UpdateOfferInput) Empty() bool {
	return in.Title == nil && in.Description == nil && in.OriginalPrice == nil && in.Discount == nil
}

// OfferService defines use-case operations for offers.
type OfferService interface {
	List(ctx context.Context) ([]*domain.Offer, error)
	Get(ctx context.Context, id string) (*domain.Offer, error)
	Create(ctx context.Context, input CreateOfferInput) (*domain.Offer, error)
	Update(ctx context.Context, id string, input UpdateOfferInput) (*domain.Offer, error)
	Delete(ctx context.Context, id string) error
}
