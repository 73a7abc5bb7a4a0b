// internal/domain/pricing/calculator_test.go
package pricing

import (
	"testing"

	"github.com/ro7arthub/storefront-backend/internal/config"
	"github.com/ro7arthub/storefront-backend/internal/domain/cart"
	"github.com/ro7arthub/storefront-backend/internal/domain/promo"
	"github.com/ro7arthub/storefront-backend/internal/domain/shipping"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func newTestCalculator(clamp bool) *Calculator {
	shippingCalc := shipping.NewCalculator(config.ShippingConfig{
		NorthernFee: 60,
		SouthernFee: 90,
		DefaultFee:  30,
	})
	return NewCalculator(shippingCalc, config.PricingConfig{ClampTotal: clamp})
}

func TestSubtotal(t *testing.T) {
	items := []cart.LineItem{
		{ID: "1", Name: "Brush Set", UnitPrice: 150, Quantity: 2},
		{ID: "2", Name: "Canvas Roll", UnitPrice: 200, Quantity: 1},
	}

	assert.Equal(t, int64(500), Subtotal(items))
	assert.Equal(t, int64(0), Subtotal(nil))
}

func TestSubtotalIsOrderIndependent(t *testing.T) {
	items := []cart.LineItem{
		{ID: "1", UnitPrice: 150, Quantity: 2},
		{ID: "2", UnitPrice: 200, Quantity: 1},
		{ID: "3", UnitPrice: 90, Quantity: 3},
	}
	reversed := []cart.LineItem{items[2], items[1], items[0]}

	assert.Equal(t, Subtotal(items), Subtotal(reversed))
}

func TestComputeTotalsWithoutPromo(t *testing.T) {
	calc := newTestCalculator(true)
	items := []cart.LineItem{
		{ID: "1", UnitPrice: 200, Quantity: 1},
	}

	totals := calc.ComputeTotals(items, "Aswan", nil)

	assert.Equal(t, int64(200), totals.Subtotal)
	assert.Equal(t, int64(90), totals.Shipping)
	assert.True(t, totals.Discount.IsZero())
	assert.True(t, totals.Total.Equal(decimal.NewFromInt(290)), "got %s", totals.Total)
}

func TestComputeTotalsWithPromo(t *testing.T) {
	calc := newTestCalculator(true)
	items := []cart.LineItem{
		{ID: "1", UnitPrice: 150, Quantity: 2},
	}
	applied := &promo.Applied{
		Code:     "WELCOME10",
		Discount: decimal.NewFromInt(30),
	}

	totals := calc.ComputeTotals(items, "Cairo", applied)

	assert.Equal(t, int64(300), totals.Subtotal)
	assert.Equal(t, int64(60), totals.Shipping)
	assert.True(t, totals.Discount.Equal(decimal.NewFromInt(30)))
	assert.True(t, totals.Total.Equal(decimal.NewFromInt(330)), "got %s", totals.Total)
}

func TestComputeTotalsCappedPromoSouthernShipping(t *testing.T) {
	calc := newTestCalculator(true)
	items := []cart.LineItem{
		{ID: "A", UnitPrice: 100, Quantity: 2},
	}

	// 20% of 200 is 40, capped at 30
	applied := &promo.Applied{
		Code:     "SAVE20",
		Discount: decimal.NewFromInt(30),
	}

	totals := calc.ComputeTotals(items, "Aswan", applied)

	assert.Equal(t, int64(200), totals.Subtotal)
	assert.Equal(t, int64(90), totals.Shipping)
	assert.True(t, totals.Total.Equal(decimal.NewFromInt(260)), "got %s", totals.Total)
}

func TestComputeTotalsClampsNegativeTotal(t *testing.T) {
	items := []cart.LineItem{
		{ID: "1", UnitPrice: 10, Quantity: 1},
	}
	applied := &promo.Applied{Discount: decimal.NewFromInt(100)}

	clamped := newTestCalculator(true).ComputeTotals(items, "", applied)
	assert.True(t, clamped.Total.IsZero(), "got %s", clamped.Total)

	unclamped := newTestCalculator(false).ComputeTotals(items, "", applied)
	assert.True(t, unclamped.Total.Equal(decimal.NewFromInt(-60)), "got %s", unclamped.Total)
}

func TestComputeTotalsIsPure(t *testing.T) {
	calc := newTestCalculator(true)
	items := []cart.LineItem{
		{ID: "1", UnitPrice: 150, Quantity: 1},
	}

	first := calc.ComputeTotals(items, "Cairo", nil)
	second := calc.ComputeTotals(items, "Cairo", nil)

	assert.Equal(t, first.Subtotal, second.Subtotal)
	assert.Equal(t, first.Shipping, second.Shipping)
	assert.True(t, first.Total.Equal(second.Total))
}
