// internal/domain/cart/entity.go
package cart

import (
	"errors"
	"time"
)

// ErrInvalidInput is returned when an add-to-cart request is malformed:
// empty id or name, or a non-positive unit price or quantity.
var ErrInvalidInput = errors.New("cart: invalid input")

// ErrNotFound is returned when an operation addresses a line item id that is
// not in the cart.
var ErrNotFound = errors.New("cart: item not found")

// LineItem is one product entry in the cart with an aggregated quantity.
// Items are addressed by product id, never by position; insertion order is
// preserved for display.
type LineItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"price"` // Whole EGP per unit
	Quantity  int    `json:"quantity"`
	Image     string `json:"image,omitempty"`
}

// Total returns the line total in whole EGP
func (li LineItem) Total() int64 {
	return li.UnitPrice * int64(li.Quantity)
}

// snapshot is the persisted cart state for one session
type snapshot struct {
	SessionID string     `json:"session_id"`
	Items     []LineItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Event is delivered to subscribers after every cart change, including
// changes made by other contexts sharing the same store.
type Event struct {
	SessionID string
	Items     []LineItem
	ItemCount int
}

// AddItemRequest represents an add-to-cart request
type AddItemRequest struct {
	ID        string `json:"id" binding:"required"`
	Name      string `json:"name" binding:"required"`
	UnitPrice int64  `json:"price" binding:"required,gt=0"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
	Image     string `json:"image"`
}
