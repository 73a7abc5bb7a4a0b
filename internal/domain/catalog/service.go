// internal/domain/catalog/service.go
package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ro7arthub/storefront-backend/internal/config"
	"github.com/sirupsen/logrus"
)

// Service serves the product and promo-code reference data. Both files are
// loaded once and cached in memory for the process lifetime; the files are
// external read-only inputs and are never written back.
type Service struct {
	products   []Product
	productIDs map[string]int // id -> index into products
	promoCodes []PromoCode
}

type productsFile struct {
	Products []Product `json:"products"`
}

type promoCodesFile struct {
	PromoCodes []PromoCode `json:"promo_codes"`
}

// NewService loads the catalog files referenced by the configuration
func NewService(cfg *config.Config, logger *logrus.Logger) (*Service, error) {
	s := &Service{
		productIDs: make(map[string]int),
	}

	if err := s.loadProducts(cfg.Catalog.ProductsPath); err != nil {
		return nil, err
	}
	if err := s.loadPromoCodes(cfg.Catalog.PromoCodesPath); err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"products":    len(s.products),
		"promo_codes": len(s.promoCodes),
	}).Info("Catalog reference data loaded")

	return s, nil
}

func (s *Service) loadProducts(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read product catalog: %w", err)
	}

	var file productsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse product catalog: %w", err)
	}

	for i, p := range file.Products {
		if p.ID == "" {
			return fmt.Errorf("product at position %d has no id", i)
		}
		if _, dup := s.productIDs[p.ID]; dup {
			return fmt.Errorf("duplicate product id %q in catalog", p.ID)
		}
		s.productIDs[p.ID] = i
	}

	s.products = file.Products
	return nil
}

func (s *Service) loadPromoCodes(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read promo code catalog: %w", err)
	}

	var file promoCodesFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse promo code catalog: %w", err)
	}

	s.promoCodes = file.PromoCodes
	return nil
}

// Products returns all catalog products
func (s *Service) Products() []Product {
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

// ProductByID returns the product with the given id
func (s *Service) ProductByID(id string) (Product, bool) {
	i, ok := s.productIDs[id]
	if !ok {
		return Product{}, false
	}
	return s.products[i], true
}

// ProductsByCategory returns all products in the given category
func (s *Service) ProductsByCategory(category string) []Product {
	var out []Product
	for _, p := range s.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// PromoCodes returns the promo code catalog
func (s *Service) PromoCodes() []PromoCode {
	out := make([]PromoCode, len(s.promoCodes))
	copy(out, s.promoCodes)
	return out
}
