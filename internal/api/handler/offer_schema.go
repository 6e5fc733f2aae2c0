package handler

import "github.com/offerhub/offers-api/internal/core/ports"

// discountedPrice is deliberately absent from the request types: it is always
// derived server-side.

type createOfferRequest struct {
	Title         string   `json:"title"         validate:"required"`
	Description   string   `json:"description"   validate:"required"`
	OriginalPrice *float64 `json:"originalPrice" validate:"required,gte=0"`
	Discount      *float64 `json:"discount"      validate:"omitempty,gte=0,lte=100"`
}

func (r createOfferRequest) toInput() ports.CreateOfferInput {
	in := ports.CreateOfferInput{
		Title:         r.Title,
		Description:   r.Description,
		OriginalPrice: *r.OriginalPrice,
	}
	if r.Discount != nil {
		in.Discount = *r.Discount
	}
	return in
}

type updateOfferRequest struct {
	Title         *string  `json:"title"         validate:"omitempty,min=1"`
	Description   *string  `json:"description"   validate:"omitempty,min=1"`
	OriginalPrice *float64 `json:"originalPrice" validate:"omitempty,gte=0"`
	Discount      *float64 `json:"discount"      validate:"omitempty,gte=0,lte=100"`
}

func (r updateOfferRequest) toInput() ports.UpdateOfferInput {
	return ports.UpdateOfferInput{
		Title:         r.Title,
		Description:   r.Description,
		OriginalPrice: r.OriginalPrice,
		Discount:      r.Discount,
	}
}

type buyOfferRequest struct {
	OfferID string `json:"offerId" validate:"required"`
}
