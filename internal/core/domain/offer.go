package domain

import (
	"fmt"
	"math"
	"time"
)

// Offer is a purchasable discount record. DiscountedPrice is derived from
// OriginalPrice and Discount and is never taken from client input.
type Offer struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	OriginalPrice   float64   `json:"originalPrice"`
	Discount        float64   `json:"discount"`
	DiscountedPrice float64   `json:"discountedPrice"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Reprice recomputes DiscountedPrice from the current price and discount.
func (o *Offer) Reprice() error {
	if err := ValidatePricing(o.OriginalPrice, o.Discount); err != nil {
		return err
	}
	price := ComputeDiscountedPrice(o.OriginalPrice, o.Discount)
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return fmt.Errorf("%w: discounted price is out of range", ErrValidation)
	}
	o.DiscountedPrice = price
	return nil
}
