// internal/domain/catalog/service_test.go
package catalog

import (
	"testing"
	"time"

	"github.com/ro7arthub/storefront-backend/internal/config"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	svc, err := NewService(&config.Config{
		Catalog: config.CatalogConfig{
			ProductsPath:   "testdata/products.json",
			PromoCodesPath: "testdata/promo-codes.json",
		},
	}, logger)
	require.NoError(t, err)
	return svc
}

func TestLoadProducts(t *testing.T) {
	svc := newTestService(t)

	products := svc.Products()
	require.Len(t, products, 3)
	assert.Equal(t, "Professional Brush Set", products[0].Name)
	assert.Equal(t, int64(150), products[0].CurrentPrice)
	assert.Equal(t, int64(180), products[0].OriginalPrice)
	assert.Equal(t, 17, products[0].Discount)
}

func TestProductByID(t *testing.T) {
	svc := newTestService(t)

	product, ok := svc.ProductByID("2")
	require.True(t, ok)
	assert.Equal(t, "Premium Canvas Roll", product.Name)

	_, ok = svc.ProductByID("missing")
	assert.False(t, ok)
}

func TestProductsByCategory(t *testing.T) {
	svc := newTestService(t)

	brushes := svc.ProductsByCategory("brushes")
	require.Len(t, brushes, 1)
	assert.Equal(t, "1", brushes[0].ID)

	assert.Empty(t, svc.ProductsByCategory("sculpture"))
}

func TestLoadPromoCodes(t *testing.T) {
	svc := newTestService(t)

	codes := svc.PromoCodes()
	require.Len(t, codes, 2)
	assert.Equal(t, "WELCOME10", codes[0].Code)
	assert.True(t, codes[0].DiscountPercentage.Equal(decimal.NewFromInt(10)))
	assert.True(t, codes[0].MaxDiscount.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, int64(100), codes[0].MinOrder)
	assert.Equal(t, 1000, codes[0].UsageLimit)
}

func TestLoadMissingFile(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	_, err := NewService(&config.Config{
		Catalog: config.CatalogConfig{
			ProductsPath:   "testdata/does-not-exist.json",
			PromoCodesPath: "testdata/promo-codes.json",
		},
	}, logger)
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "WELCOME10", Normalize("  welcome10 "))
	assert.Equal(t, "", Normalize("   "))
}

func TestExpiredAndExhausted(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	code := PromoCode{ValidUntil: now.Add(time.Hour), UsageLimit: 2, UsedCount: 1}
	assert.False(t, code.Expired(now))
	assert.False(t, code.Exhausted())

	code.ValidUntil = now.Add(-time.Hour)
	code.UsedCount = 2
	assert.True(t, code.Expired(now))
	assert.True(t, code.Exhausted())
}
