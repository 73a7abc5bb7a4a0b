// internal/domain/shipping/calculator.go
package shipping

import (
	"github.com/ro7arthub/storefront-backend/internal/config"
)

// Tier identifies a static group of governorates sharing one shipping fee
type Tier string

const (
	TierNorthern Tier = "northern"
	TierSouthern Tier = "southern"
	TierDefault  Tier = "default"
)

// Calculator maps a governorate to its flat shipping fee. A pure static
// lookup: unknown or empty governorates fall back to the default fee.
type Calculator struct {
	fees  map[Tier]int64
	tiers map[string]Tier
}

// NewCalculator creates a shipping calculator with the configured tier fees
func NewCalculator(cfg config.ShippingConfig) *Calculator {
	tiers := make(map[string]Tier, len(northernGovernorates)+len(southernGovernorates))
	for _, g := range northernGovernorates {
		tiers[g] = TierNorthern
	}
	for _, g := range southernGovernorates {
		tiers[g] = TierSouthern
	}

	return &Calculator{
		fees: map[Tier]int64{
			TierNorthern: cfg.NorthernFee,
			TierSouthern: cfg.SouthernFee,
			TierDefault:  cfg.DefaultFee,
		},
		tiers: tiers,
	}
}

// TierFor returns the tier the governorate belongs to
func (c *Calculator) TierFor(governorate string) Tier {
	if tier, ok := c.tiers[governorate]; ok {
		return tier
	}
	return TierDefault
}

// Compute returns the shipping fee in whole EGP for the governorate
func (c *Calculator) Compute(governorate string) int64 {
	return c.fees[c.TierFor(governorate)]
}
