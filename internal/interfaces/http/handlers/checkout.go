// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ro7arthub/storefront-backend/internal/domain/checkout"
	"github.com/ro7arthub/storefront-backend/internal/domain/promo"
	"github.com/ro7arthub/storefront-backend/internal/interfaces/http/middleware"
)

// CheckoutHandler handles checkout summary and promo code endpoints
type CheckoutHandler struct {
	checkoutService *checkout.Service
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

// GetSummary handles GET /checkout/summary
func (h *CheckoutHandler) GetSummary(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	governorate := c.Query("governorate")

	summary, err := h.checkoutService.GetSummary(c.Request.Context(), sessionID, governorate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to compute checkout summary",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout summary computed successfully",
		"data":    summary,
	})
}

// applyPromoRequest is the body for promo code application
type applyPromoRequest struct {
	Code string `json:"code"`
}

// ApplyPromo handles POST /checkout/promo
func (h *CheckoutHandler) ApplyPromo(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	var req applyPromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	applied, err := h.checkoutService.ApplyPromo(c.Request.Context(), sessionID, req.Code)
	if err != nil {
		if rejection, ok := promo.AsError(err); ok {
			h.rejectPromo(c, rejection)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to apply promo code",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Promo code applied successfully",
		"data":    applied,
	})
}

// RemovePromo handles DELETE /checkout/promo
func (h *CheckoutHandler) RemovePromo(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	if err := h.checkoutService.RemovePromo(c.Request.Context(), sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to remove promo code",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Promo code removed successfully",
	})
}

// rejectPromo maps a typed promo rejection to a structured response. The
// reason code is machine-readable so the storefront can show a specific
// message; below_minimum_order additionally carries the threshold.
func (h *CheckoutHandler) rejectPromo(c *gin.Context, rejection *promo.Error) {
	status := http.StatusBadRequest
	if rejection.Reason == promo.ReasonUsageLimitReached {
		status = http.StatusConflict
	}

	body := gin.H{
		"error":  "Promo code rejected",
		"reason": rejection.Reason,
	}
	if rejection.Reason == promo.ReasonBelowMinimumOrder {
		body["min_order"] = rejection.MinOrder
	}

	c.JSON(status, body)
}
