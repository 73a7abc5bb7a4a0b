// internal/domain/checkout/service_test.go
package checkout

import (
	"context"
	"testing"

	"github.com/ro7arthub/storefront-backend/internal/config"
	"github.com/ro7arthub/storefront-backend/internal/domain/cart"
	"github.com/ro7arthub/storefront-backend/internal/domain/catalog"
	"github.com/ro7arthub/storefront-backend/internal/domain/pricing"
	"github.com/ro7arthub/storefront-backend/internal/domain/promo"
	"github.com/ro7arthub/storefront-backend/internal/domain/shipping"
	"github.com/ro7arthub/storefront-backend/internal/pkg/keystore"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, policy config.PromoRevalidation) (*Service, *cart.Store) {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	cfg := &config.Config{
		Catalog: config.CatalogConfig{
			ProductsPath:   "testdata/products.json",
			PromoCodesPath: "testdata/promo-codes.json",
		},
		Shipping: config.ShippingConfig{NorthernFee: 60, SouthernFee: 90, DefaultFee: 30},
		Pricing:  config.PricingConfig{ClampTotal: true},
	}

	catalogSvc, err := catalog.NewService(cfg, logger)
	require.NoError(t, err)

	store := keystore.NewMemoryStore()
	carts := cart.NewStore(store, logger)
	promos := promo.NewEngine(store, policy, logger)
	shippingCalc := shipping.NewCalculator(cfg.Shipping)
	pricingCalc := pricing.NewCalculator(shippingCalc, cfg.Pricing)

	return NewService(carts, promos, catalogSvc, pricingCalc, shippingCalc), carts
}

func TestGetSummaryEmptyCart(t *testing.T) {
	svc, _ := newTestService(t, config.PromoRevalidationRecompute)

	summary, err := svc.GetSummary(context.Background(), "s1", "Cairo")
	require.NoError(t, err)

	assert.Empty(t, summary.Items)
	assert.Equal(t, shipping.TierNorthern, summary.ShippingTier)
	assert.Nil(t, summary.AppliedPromo)
	assert.Equal(t, int64(0), summary.Totals.Subtotal)
	assert.Equal(t, int64(60), summary.Totals.Shipping)
}

func TestGetSummaryComputesTotals(t *testing.T) {
	svc, carts := newTestService(t, config.PromoRevalidationRecompute)
	ctx := context.Background()

	_, err := carts.AddItem(ctx, "s1", cart.AddItemRequest{
		ID: "1", Name: "Brush Set", UnitPrice: 150, Quantity: 2,
	})
	require.NoError(t, err)

	summary, err := svc.GetSummary(ctx, "s1", "Aswan")
	require.NoError(t, err)

	require.Len(t, summary.Items, 1)
	assert.Equal(t, shipping.TierSouthern, summary.ShippingTier)
	assert.Equal(t, int64(300), summary.Totals.Subtotal)
	assert.Equal(t, int64(90), summary.Totals.Shipping)
	assert.True(t, summary.Totals.Total.Equal(decimal.NewFromInt(390)), "got %s", summary.Totals.Total)
}

func TestApplyPromoAffectsSummary(t *testing.T) {
	svc, carts := newTestService(t, config.PromoRevalidationRecompute)
	ctx := context.Background()

	_, err := carts.AddItem(ctx, "s1", cart.AddItemRequest{
		ID: "1", Name: "Brush Set", UnitPrice: 150, Quantity: 2,
	})
	require.NoError(t, err)

	applied, err := svc.ApplyPromo(ctx, "s1", "welcome10")
	require.NoError(t, err)
	assert.Equal(t, "WELCOME10", applied.Code)
	assert.True(t, applied.Discount.Equal(decimal.NewFromInt(30)), "got %s", applied.Discount)

	summary, err := svc.GetSummary(ctx, "s1", "Cairo")
	require.NoError(t, err)
	require.NotNil(t, summary.AppliedPromo)
	assert.True(t, summary.Totals.Total.Equal(decimal.NewFromInt(330)), "got %s", summary.Totals.Total)
}

func TestApplyPromoRejection(t *testing.T) {
	svc, _ := newTestService(t, config.PromoRevalidationRecompute)

	_, err := svc.ApplyPromo(context.Background(), "s1", "NOPE")
	rejection, ok := promo.AsError(err)
	require.True(t, ok)
	assert.Equal(t, promo.ReasonInvalidCode, rejection.Reason)
}

func TestSummaryRepricesPromoAfterCartChange(t *testing.T) {
	svc, carts := newTestService(t, config.PromoRevalidationRecompute)
	ctx := context.Background()

	_, err := carts.AddItem(ctx, "s1", cart.AddItemRequest{
		ID: "1", Name: "Brush Set", UnitPrice: 150, Quantity: 2,
	})
	require.NoError(t, err)

	_, err = svc.ApplyPromo(ctx, "s1", "WELCOME10")
	require.NoError(t, err)

	// Shrinking the cart lowers the subtotal to 150, so the 10% discount drops
	// below its cap
	require.NoError(t, carts.ChangeQuantity(ctx, "s1", "1", -1))

	summary, err := svc.GetSummary(ctx, "s1", "Cairo")
	require.NoError(t, err)
	require.NotNil(t, summary.AppliedPromo)
	assert.True(t, summary.AppliedPromo.Discount.Equal(decimal.NewFromInt(15)),
		"got %s", summary.AppliedPromo.Discount)
}

func TestSummaryAutoClearsPromoBelowMinimum(t *testing.T) {
	svc, carts := newTestService(t, config.PromoRevalidationAutoClear)
	ctx := context.Background()

	_, err := carts.AddItem(ctx, "s1", cart.AddItemRequest{
		ID: "1", Name: "Brush Set", UnitPrice: 150, Quantity: 1,
	})
	require.NoError(t, err)

	_, err = svc.ApplyPromo(ctx, "s1", "WELCOME10")
	require.NoError(t, err)

	// Dropping below the 100 EGP minimum clears the promo under autoclear
	require.NoError(t, carts.RemoveItem(ctx, "s1", "1"))
	_, err = carts.AddItem(ctx, "s1", cart.AddItemRequest{
		ID: "2", Name: "Postcard", UnitPrice: 40, Quantity: 1,
	})
	require.NoError(t, err)

	summary, err := svc.GetSummary(ctx, "s1", "Cairo")
	require.NoError(t, err)
	assert.Nil(t, summary.AppliedPromo)
	assert.True(t, summary.Totals.Discount.IsZero())
}

func TestRemovePromo(t *testing.T) {
	svc, carts := newTestService(t, config.PromoRevalidationRecompute)
	ctx := context.Background()

	_, err := carts.AddItem(ctx, "s1", cart.AddItemRequest{
		ID: "1", Name: "Brush Set", UnitPrice: 150, Quantity: 1,
	})
	require.NoError(t, err)

	_, err = svc.ApplyPromo(ctx, "s1", "WELCOME10")
	require.NoError(t, err)

	require.NoError(t, svc.RemovePromo(ctx, "s1"))

	summary, err := svc.GetSummary(ctx, "s1", "Cairo")
	require.NoError(t, err)
	assert.Nil(t, summary.AppliedPromo)
}
