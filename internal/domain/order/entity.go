// internal/domain/order/entity.go
package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrEmptyCart is returned when submission is attempted with no line items
var ErrEmptyCart = errors.New("order: cart is empty")

// FieldError reports a customer info field that failed validation
type FieldError struct {
	Field  string
	Reason string // "missing" or "invalid"
}

// Error implements the error interface
func (e *FieldError) Error() string {
	return fmt.Sprintf("order: customer field %q is %s", e.Field, e.Reason)
}

// Status represents the order status
type Status string

const (
	StatusPending Status = "pending"
)

// CustomerInfo is the checkout form data captured on the order snapshot.
// Which fields are required is configurable; formats are fixed (Egyptian
// mobile numbers, plain email addresses).
type CustomerInfo struct {
	Name        string `gorm:"size:255" json:"name"`
	Phone       string `gorm:"size:20;index" json:"phone" binding:"omitempty,egyptphone"`
	Email       string `gorm:"size:255" json:"email" binding:"omitempty,email"`
	Governorate string `gorm:"size:100" json:"governorate"`
	Address     string `gorm:"type:text" json:"address"`
	Notes       string `gorm:"type:text" json:"notes,omitempty"`
}

// Order is the immutable snapshot taken at checkout time. Created once at
// submission, never mutated afterward; the confirmation view reads it as-is.
type Order struct {
	ID          string          `gorm:"primaryKey;size:50" json:"id"`
	Customer    CustomerInfo    `gorm:"embedded;embeddedPrefix:customer_" json:"customer"`
	Items       []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
	Subtotal    int64           `gorm:"not null" json:"subtotal"`
	Shipping    int64           `gorm:"not null" json:"shipping"`
	PromoCode   string          `gorm:"size:50" json:"promoCode,omitempty"`
	Discount    decimal.Decimal `gorm:"type:numeric(12,4)" json:"promoDiscount"`
	Total       decimal.Decimal `gorm:"type:numeric(12,4)" json:"total"`
	Status      Status          `gorm:"not null;default:'pending';size:20" json:"status"`
	SubmittedAt time.Time       `json:"timestamp"`
}

// TableName overrides the table name
func (Order) TableName() string {
	return "orders"
}

// OrderItem is one cart line frozen onto the order snapshot
type OrderItem struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	OrderID   string `gorm:"not null;index;size:50" json:"-"`
	ProductID string `gorm:"not null;size:64" json:"id"`
	Name      string `gorm:"not null;size:255" json:"name"`
	UnitPrice int64  `gorm:"not null" json:"price"`
	Quantity  int    `gorm:"not null" json:"quantity"`
	Total     int64  `gorm:"not null" json:"total"`
}

// TableName overrides the table name
func (OrderItem) TableName() string {
	return "order_items"
}
