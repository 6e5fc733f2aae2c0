package domain

import (
	"fmt"
	"math"
)

const (
	MinDiscount = 0
	MaxDiscount = 100
)

// ComputeDiscountedPrice applies a percentage discount to a price. No rounding
// is applied beyond float64 precision.
func ComputeDiscountedPrice(originalPrice, discountPercent float64) float64 {
	price := originalPrice - originalPrice*discountPercent/100
	if math.IsInf(price, 0) && !math.IsInf(originalPrice, 0) {
		// originalPrice*discountPercent overflowed; the scaled factor is at most 1.
		return originalPrice * (1 - discountPercent/100)
	}
	return price
}

// ValidatePricing reports whether a price/discount pair may be stored.
func ValidatePricing(originalPrice, discountPercent float64) error {
	if math.IsNaN(originalPrice) || math.IsInf(originalPrice, 0) || originalPrice < 0 {
		return fmt.Errorf("%w: originalPrice must be a non-negative number", ErrValidation)
	}
	if math.IsNaN(discountPercent) || discountPercent < MinDiscount || discountPercent > MaxDiscount {
		return fmt.Errorf("%w: discount must be between %d and %d", ErrValidation, MinDiscount, MaxDiscount)
	}
	return nil
}
