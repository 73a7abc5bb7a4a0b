// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/ro7arthub/storefront-backend/internal/domain/cart"
	"github.com/ro7arthub/storefront-backend/internal/domain/catalog"
	"github.com/ro7arthub/storefront-backend/internal/domain/checkout"
	"github.com/ro7arthub/storefront-backend/internal/domain/order"
	"github.com/ro7arthub/storefront-backend/internal/domain/wishlist"
	"github.com/ro7arthub/storefront-backend/internal/interfaces/http/handlers"
	"github.com/ro7arthub/storefront-backend/internal/pkg/receipt"
)

// Dependencies holds the wired services the route handlers work against
type Dependencies struct {
	Carts    *cart.Store
	Catalog  *catalog.Service
	Checkout *checkout.Service
	Orders   *order.Service
	Receipts *receipt.Service
	Wishlist *wishlist.Service
}

// SetupRoutes sets up all API routes
func SetupRoutes(rg *gin.RouterGroup, deps *Dependencies) {
	setupProductRoutes(rg, deps)
	setupCartRoutes(rg, deps)
	setupCheckoutRoutes(rg, deps)
	setupOrderRoutes(rg, deps)
	setupWishlistRoutes(rg, deps)
}

// setupProductRoutes sets up product catalog routes
func setupProductRoutes(rg *gin.RouterGroup, deps *Dependencies) {
	productHandler := handlers.NewProductHandler(deps.Catalog)

	products := rg.Group("/products")
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/:id", productHandler.GetProduct)
	}
}

// setupCartRoutes sets up cart routes
func setupCartRoutes(rg *gin.RouterGroup, deps *Dependencies) {
	cartHandler := handlers.NewCartHandler(deps.Carts)

	cartGroup := rg.Group("/cart")
	{
		cartGroup.GET("", cartHandler.GetCart)
		cartGroup.DELETE("", cartHandler.ClearCart)
		cartGroup.GET("/count", cartHandler.GetCartCount)
		cartGroup.POST("/items", cartHandler.AddToCart)
		cartGroup.PATCH("/items/:id", cartHandler.UpdateCartItem)
		cartGroup.DELETE("/items/:id", cartHandler.RemoveCartItem)
	}
}

// setupCheckoutRoutes sets up checkout summary and promo code routes
func setupCheckoutRoutes(rg *gin.RouterGroup, deps *Dependencies) {
	checkoutHandler := handlers.NewCheckoutHandler(deps.Checkout)

	checkoutGroup := rg.Group("/checkout")
	{
		checkoutGroup.GET("/summary", checkoutHandler.GetSummary)
		checkoutGroup.POST("/promo", checkoutHandler.ApplyPromo)
		checkoutGroup.DELETE("/promo", checkoutHandler.RemovePromo)
	}
}

// setupOrderRoutes sets up order submission and confirmation routes
func setupOrderRoutes(rg *gin.RouterGroup, deps *Dependencies) {
	orderHandler := handlers.NewOrderHandler(deps.Orders, deps.Receipts)

	orders := rg.Group("/orders")
	{
		orders.POST("", orderHandler.SubmitOrder)
		orders.GET("/last", orderHandler.GetLastOrder)
		orders.GET("/last/receipt", orderHandler.GetLastOrderReceipt)
	}
}

// setupWishlistRoutes sets up wishlist routes
func setupWishlistRoutes(rg *gin.RouterGroup, deps *Dependencies) {
	wishlistHandler := handlers.NewWishlistHandler(deps.Wishlist)

	wishlistGroup := rg.Group("/wishlist")
	{
		wishlistGroup.GET("", wishlistHandler.GetWishlist)
		wishlistGroup.POST("/items", wishlistHandler.AddToWishlist)
		wishlistGroup.DELETE("/items/:id", wishlistHandler.RemoveFromWishlist)
		wishlistGroup.POST("/items/:id/move-to-cart", wishlistHandler.MoveToCart)
	}
}
