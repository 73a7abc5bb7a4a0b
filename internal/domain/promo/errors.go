// internal/domain/promo/errors.go
package promo

import (
	"errors"
	"fmt"
)

// Reason identifies why a promo code was rejected. Reasons are mutually
// exclusive and reported first-match-wins in validation order. The UI layer
// owns the user-facing wording; this package only ships the identifier plus
// the data needed to render it.
type Reason string

const (
	ReasonEmptyCode         Reason = "empty_code"
	ReasonInvalidCode       Reason = "invalid_code"
	ReasonExpired           Reason = "expired"
	ReasonUsageLimitReached Reason = "usage_limit_reached"
	ReasonBelowMinimumOrder Reason = "below_minimum_order"
)

// Error is a typed promo rejection
type Error struct {
	Reason Reason
	Code   string // Normalized code, empty for ReasonEmptyCode
	// MinOrder carries the code's minimum order amount in whole EGP;
	// set only for ReasonBelowMinimumOrder.
	MinOrder int64
}

// Error implements the error interface
func (e *Error) Error() string {
	switch e.Reason {
	case ReasonBelowMinimumOrder:
		return fmt.Sprintf("promo: code %q rejected (%s, min_order=%d)", e.Code, e.Reason, e.MinOrder)
	case ReasonEmptyCode:
		return fmt.Sprintf("promo: rejected (%s)", e.Reason)
	default:
		return fmt.Sprintf("promo: code %q rejected (%s)", e.Code, e.Reason)
	}
}

// AsError unwraps err into a promo *Error if it is one
func AsError(err error) (*Error, bool) {
	var perr *Error
	if errors.As(err, &perr) {
		return perr, true
	}
	return nil, false
}
