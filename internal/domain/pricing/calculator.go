// internal/domain/pricing/calculator.go
package pricing

import (
	"github.com/ro7arthub/storefront-backend/internal/config"
	"github.com/ro7arthub/storefront-backend/internal/domain/cart"
	"github.com/ro7arthub/storefront-backend/internal/domain/promo"
	"github.com/ro7arthub/storefront-backend/internal/domain/shipping"
	"github.com/shopspring/decimal"
)

// Totals is the full pricing breakdown for a cart. Subtotal and shipping are
// whole EGP; discount and total ride fixed-point decimals so fractional
// percentage discounts never accumulate float error. Rounding to whole units
// is the display layer's job.
type Totals struct {
	Subtotal int64           `json:"subtotal"`
	Shipping int64           `json:"shipping"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}

// Calculator composes subtotal, shipping and discount into order totals
type Calculator struct {
	shipping   *shipping.Calculator
	clampTotal bool
}

// NewCalculator creates a pricing calculator
func NewCalculator(shippingCalc *shipping.Calculator, cfg config.PricingConfig) *Calculator {
	return &Calculator{
		shipping:   shippingCalc,
		clampTotal: cfg.ClampTotal,
	}
}

// Subtotal returns the sum of line totals in whole EGP. Order-independent:
// permuting the cart does not change the result.
func Subtotal(items []cart.LineItem) int64 {
	var subtotal int64
	for _, item := range items {
		subtotal += item.Total()
	}
	return subtotal
}

// ComputeTotals computes the pricing breakdown for the given cart state.
// Pure: it never caches and must be called fresh on every display refresh.
// applied may be nil when no promo is in effect.
func (c *Calculator) ComputeTotals(items []cart.LineItem, governorate string, applied *promo.Applied) Totals {
	subtotal := Subtotal(items)
	shippingFee := c.shipping.Compute(governorate)

	discount := decimal.Zero
	if applied != nil {
		discount = applied.Discount
	}

	total := decimal.NewFromInt(subtotal + shippingFee).Sub(discount)
	if c.clampTotal && total.IsNegative() {
		total = decimal.Zero
	}

	return Totals{
		Subtotal: subtotal,
		Shipping: shippingFee,
		Discount: discount,
		Total:    total,
	}
}
