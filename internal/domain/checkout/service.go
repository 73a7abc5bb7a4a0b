// internal/domain/checkout/service.go
package checkout

import (
	"context"

	"github.com/ro7arthub/storefront-backend/internal/domain/cart"
	"github.com/ro7arthub/storefront-backend/internal/domain/catalog"
	"github.com/ro7arthub/storefront-backend/internal/domain/pricing"
	"github.com/ro7arthub/storefront-backend/internal/domain/promo"
	"github.com/ro7arthub/storefront-backend/internal/domain/shipping"
)

// Summary is the complete checkout view for a session: the cart lines, the
// shipping tier in effect and the freshly computed pricing breakdown. It is
// recomputed from live state on every read; nothing here is cached.
type Summary struct {
	Items        []cart.LineItem `json:"items"`
	Governorate  string          `json:"governorate,omitempty"`
	ShippingTier shipping.Tier   `json:"shippingTier"`
	AppliedPromo *promo.Applied  `json:"appliedPromo,omitempty"`
	Totals       pricing.Totals  `json:"totals"`
}

// Service composes the cart store, promo engine and pricing calculator into
// the checkout flow.
type Service struct {
	carts    *cart.Store
	promos   *promo.Engine
	catalog  *catalog.Service
	pricing  *pricing.Calculator
	shipping *shipping.Calculator
}

// NewService creates a new checkout service
func NewService(
	carts *cart.Store,
	promos *promo.Engine,
	catalogSvc *catalog.Service,
	pricingCalc *pricing.Calculator,
	shippingCalc *shipping.Calculator,
) *Service {
	return &Service{
		carts:    carts,
		promos:   promos,
		catalog:  catalogSvc,
		pricing:  pricingCalc,
		shipping: shippingCalc,
	}
}

// GetSummary recomputes the checkout summary for the session. The applied
// promo is repriced against the current subtotal first, so a cart edit since
// the promo was applied is reflected (or, under the autoclear policy, drops
// the promo).
func (s *Service) GetSummary(ctx context.Context, sessionID, governorate string) (*Summary, error) {
	items, err := s.carts.Items(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	applied, err := s.promos.Reprice(ctx, sessionID, pricing.Subtotal(items))
	if err != nil {
		return nil, err
	}

	return &Summary{
		Items:        items,
		Governorate:  governorate,
		ShippingTier: s.shipping.TierFor(governorate),
		AppliedPromo: applied,
		Totals:       s.pricing.ComputeTotals(items, governorate, applied),
	}, nil
}

// ApplyPromo validates the code against the promo catalog for the session's
// current subtotal and applies it. The returned error carries the typed
// rejection reason when validation fails.
func (s *Service) ApplyPromo(ctx context.Context, sessionID, code string) (*promo.Applied, error) {
	items, err := s.carts.Items(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return s.promos.Apply(ctx, sessionID, code, pricing.Subtotal(items), s.catalog.PromoCodes())
}

// RemovePromo clears any applied promo for the session
func (s *Service) RemovePromo(ctx context.Context, sessionID string) error {
	return s.promos.Clear(ctx, sessionID)
}
