// internal/domain/order/service.go
package order

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ro7arthub/storefront-backend/internal/config"
	"github.com/ro7arthub/storefront-backend/internal/domain/cart"
	"github.com/ro7arthub/storefront-backend/internal/domain/pricing"
	"github.com/ro7arthub/storefront-backend/internal/domain/promo"
	"github.com/ro7arthub/storefront-backend/internal/pkg/keystore"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const keyPrefix = "order:last:"

// Egyptian mobile numbers: 01 followed by nine digits
var phonePattern = regexp.MustCompile(`^01[0-9]{9}$`)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Service handles order submission. Submission is synchronous and local:
// it snapshots the cart into an immutable Order, archives it, and resets the
// session's cart and promo state. There is no retry or queueing.
type Service struct {
	db      *gorm.DB // nil disables the archive
	store   keystore.Store
	carts   *cart.Store
	promos  *promo.Engine
	pricing *pricing.Calculator
	ids     *IDGenerator

	requiredFields []string
	logger         *logrus.Logger
}

// NewService creates a new order service
func NewService(
	db *gorm.DB,
	store keystore.Store,
	carts *cart.Store,
	promos *promo.Engine,
	pricingCalc *pricing.Calculator,
	cfg *config.Config,
	logger *logrus.Logger,
) *Service {
	return &Service{
		db:             db,
		store:          store,
		carts:          carts,
		promos:         promos,
		pricing:        pricingCalc,
		ids:            NewIDGenerator(cfg.Order.IDPrefix),
		requiredFields: cfg.Order.RequiredFields,
		logger:         logger,
	}
}

// Submit builds the immutable order snapshot for the session's cart,
// persists it as the session's last order, archives it, and clears the cart
// and any applied promo. Nothing is mutated when validation fails.
func (s *Service) Submit(ctx context.Context, sessionID string, customer CustomerInfo) (*Order, error) {
	items, err := s.carts.Items(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	if err := s.validateCustomer(customer); err != nil {
		return nil, err
	}

	// Reprice the promo against the final subtotal before freezing it
	subtotal := pricing.Subtotal(items)
	applied, err := s.promos.Reprice(ctx, sessionID, subtotal)
	if err != nil {
		return nil, err
	}

	totals := s.pricing.ComputeTotals(items, customer.Governorate, applied)

	ord := &Order{
		ID:          s.ids.Generate(),
		Customer:    customer,
		Items:       make([]OrderItem, len(items)),
		Subtotal:    totals.Subtotal,
		Shipping:    totals.Shipping,
		Discount:    totals.Discount,
		Total:       totals.Total,
		Status:      StatusPending,
		SubmittedAt: time.Now().UTC(),
	}
	if applied != nil {
		ord.PromoCode = applied.Code
	}
	for i, item := range items {
		ord.Items[i] = OrderItem{
			OrderID:   ord.ID,
			ProductID: item.ID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			Total:     item.Total(),
		}
	}

	if err := s.saveLastOrder(ctx, sessionID, ord); err != nil {
		return nil, err
	}

	// The archive is supplementary; the session's snapshot is authoritative
	if s.db != nil {
		if err := s.db.WithContext(ctx).Create(ord).Error; err != nil {
			s.logger.WithError(err).WithField("order_id", ord.ID).
				Warn("Failed to archive order")
		}
	}

	// The order exists once the snapshot is persisted; the session reset is
	// best effort from here on
	if err := s.carts.Clear(ctx, sessionID); err != nil {
		s.logger.WithError(err).WithField("order_id", ord.ID).
			Warn("Failed to clear cart after submission")
	}
	if err := s.promos.Clear(ctx, sessionID); err != nil {
		s.logger.WithError(err).WithField("order_id", ord.ID).
			Warn("Failed to clear promo after submission")
	}

	s.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"order_id":   ord.ID,
		"total":      ord.Total.String(),
	}).Info("Order submitted")

	return ord, nil
}

// LastOrder returns the session's last submitted order, or nil when the
// session has not submitted one.
func (s *Service) LastOrder(ctx context.Context, sessionID string) (*Order, error) {
	data, err := s.store.Get(ctx, keyPrefix+sessionID)
	if err == keystore.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load last order: %w", err)
	}

	var ord Order
	if err := json.Unmarshal(data, &ord); err != nil {
		return nil, fmt.Errorf("failed to decode last order: %w", err)
	}
	return &ord, nil
}

func (s *Service) saveLastOrder(ctx context.Context, sessionID string, ord *Order) error {
	data, err := json.Marshal(ord)
	if err != nil {
		return fmt.Errorf("failed to encode order: %w", err)
	}
	if err := s.store.Set(ctx, keyPrefix+sessionID, data); err != nil {
		return fmt.Errorf("failed to save last order: %w", err)
	}
	return nil
}

// validateCustomer enforces the configured required-field set, then the
// fixed field formats for whatever was provided.
func (s *Service) validateCustomer(customer CustomerInfo) error {
	values := map[string]string{
		"name":        customer.Name,
		"phone":       customer.Phone,
		"email":       customer.Email,
		"governorate": customer.Governorate,
		"address":     customer.Address,
		"notes":       customer.Notes,
	}

	for _, field := range s.requiredFields {
		if strings.TrimSpace(values[field]) == "" {
			return &FieldError{Field: field, Reason: "missing"}
		}
	}

	if customer.Phone != "" && !phonePattern.MatchString(strings.ReplaceAll(customer.Phone, " ", "")) {
		return &FieldError{Field: "phone", Reason: "invalid"}
	}
	if customer.Email != "" && !emailPattern.MatchString(customer.Email) {
		return &FieldError{Field: "email", Reason: "invalid"}
	}

	return nil
}
