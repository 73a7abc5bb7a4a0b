// internal/domain/promo/engine.go
package promo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ro7arthub/storefront-backend/internal/config"
	"github.com/ro7arthub/storefront-backend/internal/domain/catalog"
	"github.com/ro7arthub/storefront-backend/internal/pkg/keystore"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const keyPrefix = "promo:session:"

var oneHundred = decimal.NewFromInt(100)

// Applied is the session's applied promo, at most one at a time. It is
// persisted as a single consolidated record together with the catalog data it
// was validated against, so the discount can be recomputed when the subtotal
// changes without re-reading the catalog.
type Applied struct {
	Code      string            `json:"code"`
	Discount  decimal.Decimal   `json:"discount"` // Whole EGP, may be fractional before display rounding
	Promo     catalog.PromoCode `json:"promo"`
	AppliedAt time.Time         `json:"applied_at"`
}

// Engine validates promo codes against the catalog and owns the applied-promo
// state for every session.
type Engine struct {
	store  keystore.Store
	policy config.PromoRevalidation
	logger *logrus.Logger
	now    func() time.Time
}

// NewEngine creates a promo engine with the configured revalidation policy
func NewEngine(store keystore.Store, policy config.PromoRevalidation, logger *logrus.Logger) *Engine {
	return &Engine{
		store:  store,
		policy: policy,
		logger: logger,
		now:    time.Now,
	}
}

// Apply validates code against the catalog for the given subtotal and, on
// success, stores it as the session's applied promo. Checks run in a fixed
// order and short-circuit on the first failure; every failure explicitly
// clears any previously applied promo so no stale discount survives a
// rejected re-apply.
func (e *Engine) Apply(ctx context.Context, sessionID, code string, subtotal int64, codes []catalog.PromoCode) (*Applied, error) {
	normalized := catalog.Normalize(code)
	if normalized == "" {
		return nil, e.reject(ctx, sessionID, &Error{Reason: ReasonEmptyCode})
	}

	var found *catalog.PromoCode
	for i := range codes {
		if catalog.Normalize(codes[i].Code) == normalized {
			found = &codes[i]
			break
		}
	}
	if found == nil {
		return nil, e.reject(ctx, sessionID, &Error{Reason: ReasonInvalidCode, Code: normalized})
	}

	if found.Expired(e.now()) {
		return nil, e.reject(ctx, sessionID, &Error{Reason: ReasonExpired, Code: normalized})
	}

	if found.Exhausted() {
		return nil, e.reject(ctx, sessionID, &Error{Reason: ReasonUsageLimitReached, Code: normalized})
	}

	if subtotal < found.MinOrder {
		return nil, e.reject(ctx, sessionID, &Error{
			Reason:   ReasonBelowMinimumOrder,
			Code:     normalized,
			MinOrder: found.MinOrder,
		})
	}

	applied := &Applied{
		Code:      normalized,
		Discount:  computeDiscount(subtotal, *found),
		Promo:     *found,
		AppliedAt: e.now().UTC(),
	}

	if err := e.save(ctx, sessionID, applied); err != nil {
		return nil, err
	}

	e.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"code":       applied.Code,
		"discount":   applied.Discount.String(),
	}).Info("Promo code applied")

	return applied, nil
}

// Applied returns the session's applied promo, or nil when none is applied
func (e *Engine) Applied(ctx context.Context, sessionID string) (*Applied, error) {
	data, err := e.store.Get(ctx, key(sessionID))
	if err == keystore.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load applied promo: %w", err)
	}

	var applied Applied
	if err := json.Unmarshal(data, &applied); err != nil {
		return nil, fmt.Errorf("failed to decode applied promo: %w", err)
	}
	return &applied, nil
}

// Reprice recomputes the applied promo's bounded discount for the current
// subtotal and persists the updated record. Under the autoclear policy the
// promo is removed instead once the subtotal no longer satisfies its minimum
// order amount; under recompute it stays applied and only the discount moves.
func (e *Engine) Reprice(ctx context.Context, sessionID string, subtotal int64) (*Applied, error) {
	applied, err := e.Applied(ctx, sessionID)
	if err != nil || applied == nil {
		return nil, err
	}

	if e.policy == config.PromoRevalidationAutoClear && subtotal < applied.Promo.MinOrder {
		if err := e.Clear(ctx, sessionID); err != nil {
			return nil, err
		}
		e.logger.WithFields(logrus.Fields{
			"session_id": sessionID,
			"code":       applied.Code,
			"subtotal":   subtotal,
			"min_order":  applied.Promo.MinOrder,
		}).Info("Promo auto-cleared below minimum order")
		return nil, nil
	}

	discount := computeDiscount(subtotal, applied.Promo)
	if !discount.Equal(applied.Discount) {
		applied.Discount = discount
		if err := e.save(ctx, sessionID, applied); err != nil {
			return nil, err
		}
	}

	return applied, nil
}

// Clear unconditionally removes the session's applied promo state
func (e *Engine) Clear(ctx context.Context, sessionID string) error {
	if err := e.store.Delete(ctx, key(sessionID)); err != nil {
		return fmt.Errorf("failed to clear applied promo: %w", err)
	}
	return nil
}

// computeDiscount returns min(subtotal * pct / 100, maxDiscount) in
// fixed-point arithmetic; rounding happens at display time only.
func computeDiscount(subtotal int64, p catalog.PromoCode) decimal.Decimal {
	discount := decimal.NewFromInt(subtotal).Mul(p.DiscountPercentage).Div(oneHundred)
	if discount.GreaterThan(p.MaxDiscount) {
		return p.MaxDiscount
	}
	return discount
}

// reject clears any previously applied promo and returns the rejection. The
// clear is an explicit action: a failed apply must never leave the previous
// promo silently in place.
func (e *Engine) reject(ctx context.Context, sessionID string, rejection *Error) error {
	if err := e.Clear(ctx, sessionID); err != nil {
		e.logger.WithError(err).WithField("session_id", sessionID).
			Warn("Failed to clear promo state after rejection")
	}
	return rejection
}

func key(sessionID string) string {
	return keyPrefix + sessionID
}

func (e *Engine) save(ctx context.Context, sessionID string, applied *Applied) error {
	data, err := json.Marshal(applied)
	if err != nil {
		return fmt.Errorf("failed to encode applied promo: %w", err)
	}
	if err := e.store.Set(ctx, key(sessionID), data); err != nil {
		return fmt.Errorf("failed to save applied promo: %w", err)
	}
	return nil
}
