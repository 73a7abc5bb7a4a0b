// internal/domain/wishlist/service.go
package wishlist

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ro7arthub/storefront-backend/internal/domain/cart"
	"github.com/ro7arthub/storefront-backend/internal/pkg/keystore"
)

const keyPrefix = "wishlist:session:"

// Service handles session wishlists
type Service struct {
	store keystore.Store
	carts *cart.Store
}

// NewService creates a new wishlist service
func NewService(store keystore.Store, carts *cart.Store) *Service {
	return &Service{
		store: store,
		carts: carts,
	}
}

// Items returns the session's wishlist
func (s *Service) Items(ctx context.Context, sessionID string) ([]Item, error) {
	return s.load(ctx, sessionID)
}

// Add appends the product to the wishlist; already-saved ids are a no-op
func (s *Service) Add(ctx context.Context, sessionID string, item Item) error {
	if item.ID == "" || item.Name == "" {
		return fmt.Errorf("%w: id and name are required", cart.ErrInvalidInput)
	}

	items, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}

	for _, existing := range items {
		if existing.ID == item.ID {
			return nil
		}
	}

	return s.save(ctx, sessionID, append(items, item))
}

// Remove deletes the product from the wishlist; a missing id is a no-op
func (s *Service) Remove(ctx context.Context, sessionID, id string) error {
	items, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}

	kept := items[:0]
	for _, item := range items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return nil
	}

	return s.save(ctx, sessionID, kept)
}

// MoveToCart adds the wishlist item to the cart with quantity 1 and removes
// it from the wishlist.
func (s *Service) MoveToCart(ctx context.Context, sessionID, id string) error {
	items, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}

	for _, item := range items {
		if item.ID != id {
			continue
		}

		_, err := s.carts.AddItem(ctx, sessionID, cart.AddItemRequest{
			ID:        item.ID,
			Name:      item.Name,
			UnitPrice: item.Price,
			Quantity:  1,
			Image:     item.Image,
		})
		if err != nil {
			return err
		}
		return s.Remove(ctx, sessionID, id)
	}

	return fmt.Errorf("%w: %s", cart.ErrNotFound, id)
}

func (s *Service) load(ctx context.Context, sessionID string) ([]Item, error) {
	data, err := s.store.Get(ctx, keyPrefix+sessionID)
	if err == keystore.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load wishlist: %w", err)
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode wishlist: %w", err)
	}
	return items, nil
}

func (s *Service) save(ctx context.Context, sessionID string, items []Item) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode wishlist: %w", err)
	}
	if err := s.store.Set(ctx, keyPrefix+sessionID, data); err != nil {
		return fmt.Errorf("failed to save wishlist: %w", err)
	}
	return nil
}
