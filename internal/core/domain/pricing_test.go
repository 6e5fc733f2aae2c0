package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDiscountedPrice(t *testing.T) {
	cases := []struct {
		name     string
		price    float64
		discount float64
		want     float64
	}{
		{"no discount", 100, 0, 100},
		{"ten percent", 100, 10, 90},
		{"half", 100, 50, 50},
		{"full", 80, 100, 0},
		{"fractional", 19.99, 15, 19.99 - 19.99*15/100},
		{"free item", 0, 30, 0},
		{"huge price", 1e307, 50, 5e306},
		{"max float", math.MaxFloat64, 100, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ComputeDiscountedPrice(tc.price, tc.discount))
		})
	}
}

func TestComputeDiscountedPrice_NonIncreasingInDiscount(t *testing.T) {
	for _, price := range []float64{0, 1, 9.95, 100, 12345.67} {
		prev := math.Inf(1)
		for d := 0.0; d <= 100; d += 0.5 {
			got := ComputeDiscountedPrice(price, d)
			assert.Equal(t, price-price*d/100, got)
			assert.LessOrEqual(t, got, prev, "price=%v discount=%v", price, d)
			prev = got
		}
	}
}

func TestValidatePricing(t *testing.T) {
	require.NoError(t, ValidatePricing(0, 0))
	require.NoError(t, ValidatePricing(10, 100))

	for _, tc := range []struct {
		price, discount float64
	}{
		{-1, 10},
		{10, -0.1},
		{10, 100.5},
		{math.NaN(), 10},
		{10, math.NaN()},
		{math.Inf(1), 10},
	} {
		err := ValidatePricing(tc.price, tc.discount)
		assert.True(t, errors.Is(err, ErrValidation), "price=%v discount=%v err=%v", tc.price, tc.discount, err)
	}
}

func TestOffer_Reprice(t *testing.T) {
	o := &Offer{OriginalPrice: 100, Discount: 10, DiscountedPrice: 1}
	require.NoError(t, o.Reprice())
	assert.Equal(t, 90.0, o.DiscountedPrice)

	o.Discount = 120
	assert.ErrorIs(t, o.Reprice(), ErrValidation)
	assert.Equal(t, 90.0, o.DiscountedPrice)
}

func TestOffer_Reprice_LargePriceStaysFinite(t *testing.T) {
	o := &Offer{OriginalPrice: 1e307, Discount: 50}
	require.NoError(t, o.Reprice())
	assert.Equal(t, 5e306, o.DiscountedPrice)

	o.OriginalPrice, o.Discount = math.MaxFloat64, 0.5
	require.NoError(t, o.Reprice())
	assert.False(t, math.IsInf(o.DiscountedPrice, 0))
	assert.InEpsilon(t, math.MaxFloat64*0.995, o.DiscountedPrice, 1e-12)
}
