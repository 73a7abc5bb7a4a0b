// internal/domain/catalog/entity.go
package catalog

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a storefront product loaded from the product catalog
// file. JSON field names mirror the catalog file verbatim.
type Product struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	CurrentPrice     int64             `json:"currentPrice"` // Whole EGP
	OriginalPrice    int64             `json:"originalPrice"`
	Discount         int               `json:"discount"` // Percent off the original price
	Category         string            `json:"category"`
	SKU              string            `json:"sku,omitempty"`
	Availability     int               `json:"availability,omitempty"`
	MainImage        string            `json:"mainImage,omitempty"`
	Gallery          []string          `json:"gallery,omitempty"`
	ShortDescription string            `json:"shortDescription,omitempty"`
	LongDescription  string            `json:"longDescription,omitempty"`
	Specifications   map[string]string `json:"specifications,omitempty"`
	Rating           float64           `json:"rating,omitempty"`
	ReviewsCount     int               `json:"reviewsCount,omitempty"`
}

// PromoCode represents one voucher record from the promo catalog file.
// Read-only reference data; usage counters are part of the file itself.
type PromoCode struct {
	Code               string          `json:"code"`
	Description        string          `json:"description,omitempty"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"` // In [0,100]
	MaxDiscount        decimal.Decimal `json:"max_discount"`        // Whole EGP cap
	MinOrder           int64           `json:"min_order"`           // Whole EGP
	ValidUntil         time.Time       `json:"valid_until"`
	UsageLimit         int             `json:"usage_limit"`
	UsedCount          int             `json:"used_count"`
}

// Normalize returns the canonical form of a promo code for lookup
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Expired reports whether the code is past its validity window at now
func (p PromoCode) Expired(now time.Time) bool {
	return now.After(p.ValidUntil)
}

// Exhausted reports whether the code has reached its usage limit
func (p PromoCode) Exhausted() bool {
	return p.UsedCount >= p.UsageLimit
}
