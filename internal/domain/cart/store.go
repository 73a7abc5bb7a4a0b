// internal/domain/cart/store.go
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ro7arthub/storefront-backend/internal/pkg/keystore"
	"github.com/sirupsen/logrus"
)

const keyPrefix = "cart:session:"

// Store owns the cart state for every session. All mutations go through its
// API: each one reads the persisted snapshot, applies the change and writes
// the full snapshot back as one serialized write, under a store-wide mutex so
// two mutations in the same process cannot interleave and lose updates.
// Concurrent writers in other processes resolve to last write wins.
type Store struct {
	store  keystore.Store
	logger *logrus.Logger

	mu sync.Mutex // serializes read-modify-write cycles

	subMu       sync.RWMutex
	subscribers []func(Event)
}

// NewStore creates a cart store on top of the given keyed snapshot store
func NewStore(store keystore.Store, logger *logrus.Logger) *Store {
	return &Store{
		store:  store,
		logger: logger,
	}
}

// Subscribe registers a listener invoked after every cart change. This is the
// single notification channel for UI concerns such as count badges.
// Callbacks run outside the store's internal lock, so a subscriber may call
// back into the Store.
func (s *Store) Subscribe(fn func(Event)) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// AddItem adds a product to the session's cart. If the product id is already
// present its quantity is incremented; otherwise the item is appended,
// preserving insertion order.
func (s *Store) AddItem(ctx context.Context, sessionID string, req AddItemRequest) ([]LineItem, error) {
	if strings.TrimSpace(req.ID) == "" || strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: id and name are required", ErrInvalidInput)
	}
	if req.UnitPrice <= 0 {
		return nil, fmt.Errorf("%w: unit price must be positive", ErrInvalidInput)
	}
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}

	s.mu.Lock()

	snap, err := s.load(ctx, sessionID)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	merged := false
	for i := range snap.Items {
		if snap.Items[i].ID == req.ID {
			snap.Items[i].Quantity += req.Quantity
			merged = true
			break
		}
	}
	if !merged {
		snap.Items = append(snap.Items, LineItem{
			ID:        req.ID,
			Name:      req.Name,
			UnitPrice: req.UnitPrice,
			Quantity:  req.Quantity,
			Image:     req.Image,
		})
	}

	if err := s.save(ctx, snap); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	items := copyItems(snap.Items)
	s.mu.Unlock()

	s.notify(snap)
	return items, nil
}

// RemoveItem removes the line item with the given product id. A missing id is
// a no-op, not an error: the item is already gone.
func (s *Store) RemoveItem(ctx context.Context, sessionID, id string) error {
	s.mu.Lock()

	snap, err := s.load(ctx, sessionID)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	for i := range snap.Items {
		if snap.Items[i].ID == id {
			snap.Items = append(snap.Items[:i], snap.Items[i+1:]...)

			if err := s.save(ctx, snap); err != nil {
				s.mu.Unlock()
				return err
			}
			s.mu.Unlock()

			s.notify(snap)
			return nil
		}
	}

	s.mu.Unlock()
	return nil
}

// ChangeQuantity adds delta (signed) to the item's quantity. A resulting
// quantity of zero or less removes the item entirely.
func (s *Store) ChangeQuantity(ctx context.Context, sessionID, id string, delta int) error {
	s.mu.Lock()

	snap, err := s.load(ctx, sessionID)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	for i := range snap.Items {
		if snap.Items[i].ID != id {
			continue
		}

		newQuantity := snap.Items[i].Quantity + delta
		if newQuantity <= 0 {
			snap.Items = append(snap.Items[:i], snap.Items[i+1:]...)
		} else {
			snap.Items[i].Quantity = newQuantity
		}

		if err := s.save(ctx, snap); err != nil {
			s.mu.Unlock()
			return err
		}
		s.mu.Unlock()

		s.notify(snap)
		return nil
	}

	s.mu.Unlock()
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Clear empties the session's cart unconditionally
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()

	if err := s.store.Delete(ctx, key(sessionID)); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	s.mu.Unlock()

	s.notify(&snapshot{SessionID: sessionID})
	return nil
}

// Items returns the session's line items in insertion order
func (s *Store) Items(ctx context.Context, sessionID string) ([]LineItem, error) {
	snap, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return copyItems(snap.Items), nil
}

// ItemCount returns the sum of quantities across all items, 0 for an empty
// cart. This is the number shown on cart count badges.
func (s *Store) ItemCount(ctx context.Context, sessionID string) (int, error) {
	snap, err := s.load(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return countItems(snap.Items), nil
}

// WatchInvalidations forwards cart changes made by other contexts to this
// store's subscribers, so in-memory views reload before their next read.
// It blocks until ctx is cancelled.
func (s *Store) WatchInvalidations(ctx context.Context) error {
	events, err := s.store.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to watch cart invalidations: %w", err)
	}

	for ev := range events {
		sessionID, ok := strings.CutPrefix(ev.Key, keyPrefix)
		if !ok {
			continue
		}

		snap, err := s.load(ctx, sessionID)
		if err != nil {
			s.logger.WithError(err).WithField("session_id", sessionID).
				Warn("Failed to reload cart after remote change")
			continue
		}
		s.notify(snap)
	}

	return nil
}

// Private helper methods

func key(sessionID string) string {
	return keyPrefix + sessionID
}

func (s *Store) load(ctx context.Context, sessionID string) (*snapshot, error) {
	data, err := s.store.Get(ctx, key(sessionID))
	if err == keystore.ErrNotFound {
		return &snapshot{SessionID: sessionID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode cart snapshot: %w", err)
	}
	snap.SessionID = sessionID
	return &snap, nil
}

func (s *Store) save(ctx context.Context, snap *snapshot) error {
	snap.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode cart snapshot: %w", err)
	}
	if err := s.store.Set(ctx, key(snap.SessionID), data); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

func (s *Store) notify(snap *snapshot) {
	s.subMu.RLock()
	subscribers := make([]func(Event), len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.subMu.RUnlock()

	if len(subscribers) == 0 {
		return
	}

	event := Event{
		SessionID: snap.SessionID,
		Items:     copyItems(snap.Items),
		ItemCount: countItems(snap.Items),
	}
	for _, fn := range subscribers {
		fn(event)
	}
}

func copyItems(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	copy(out, items)
	return out
}

func countItems(items []LineItem) int {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count
}
