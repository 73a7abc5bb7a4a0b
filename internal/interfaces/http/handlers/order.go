// internal/interfaces/http/handlers/order.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ro7arthub/storefront-backend/internal/domain/order"
	"github.com/ro7arthub/storefront-backend/internal/interfaces/http/middleware"
	"github.com/ro7arthub/storefront-backend/internal/pkg/receipt"
)

// OrderHandler handles order submission and confirmation endpoints
type OrderHandler struct {
	orderService   *order.Service
	receiptService *receipt.Service
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *order.Service, receiptService *receipt.Service) *OrderHandler {
	return &OrderHandler{
		orderService:   orderService,
		receiptService: receiptService,
	}
}

// SubmitOrder handles POST /orders
func (h *OrderHandler) SubmitOrder(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	var customer order.CustomerInfo
	if err := c.ShouldBindJSON(&customer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	ord, err := h.orderService.Submit(c.Request.Context(), sessionID, customer)
	if err != nil {
		if errors.Is(err, order.ErrEmptyCart) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":  "Cart is empty",
				"reason": "empty_cart",
			})
			return
		}

		var fieldErr *order.FieldError
		if errors.As(err, &fieldErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":  "Customer information is invalid",
				"reason": fmt.Sprintf("%s_%s", fieldErr.Field, fieldErr.Reason),
				"field":  fieldErr.Field,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to submit order",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order submitted successfully",
		"data":    ord,
	})
}

// GetLastOrder handles GET /orders/last
func (h *OrderHandler) GetLastOrder(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	ord, err := h.orderService.LastOrder(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve order",
		})
		return
	}
	if ord == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "No order has been submitted in this session",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order retrieved successfully",
		"data":    ord,
	})
}

// GetLastOrderReceipt handles GET /orders/last/receipt
func (h *OrderHandler) GetLastOrderReceipt(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	ord, err := h.orderService.LastOrder(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve order",
		})
		return
	}
	if ord == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "No order has been submitted in this session",
		})
		return
	}

	pdf, err := h.receiptService.Generate(ord)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate receipt",
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%s.pdf", ord.ID))
	c.Data(http.StatusOK, "application/pdf", pdf.Bytes())
}
