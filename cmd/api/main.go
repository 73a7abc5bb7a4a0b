// cmd/api/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ro7arthub/storefront-backend/internal/config"
	"github.com/ro7arthub/storefront-backend/internal/domain/cart"
	"github.com/ro7arthub/storefront-backend/internal/domain/catalog"
	"github.com/ro7arthub/storefront-backend/internal/domain/checkout"
	"github.com/ro7arthub/storefront-backend/internal/domain/order"
	"github.com/ro7arthub/storefront-backend/internal/domain/pricing"
	"github.com/ro7arthub/storefront-backend/internal/domain/promo"
	"github.com/ro7arthub/storefront-backend/internal/domain/shipping"
	"github.com/ro7arthub/storefront-backend/internal/domain/wishlist"
	"github.com/ro7arthub/storefront-backend/internal/infrastructure/database/postgres"
	redisdb "github.com/ro7arthub/storefront-backend/internal/infrastructure/database/redis"
	"github.com/ro7arthub/storefront-backend/internal/interfaces/http"
	"github.com/ro7arthub/storefront-backend/internal/interfaces/http/routes"
	"github.com/ro7arthub/storefront-backend/internal/pkg/receipt"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func main() {
	// Monetary amounts serialize as JSON numbers, matching the rest of the API
	decimal.MarshalJSONWithoutQuotes = true

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := newLogger(cfg)

	log.Printf("🚀 Starting %s v%s in %s mode", cfg.App.Name, cfg.App.Version, cfg.App.Environment)

	// Connect to the order archive database. The archive is optional: when the
	// database is unreachable the store still runs, orders just are not
	// archived.
	var archiveDB *gorm.DB
	db, err := postgres.NewConnection(cfg)
	if err != nil {
		logger.WithError(err).Warn("Order archive database unavailable, continuing without archive")
	} else {
		defer db.Close()
		archiveDB = db.GetDB()

		migration := postgres.NewMigration(archiveDB)
		if err := migration.RunAutoMigrations(); err != nil {
			log.Fatalf("Database migration failed: %v", err)
		}
		if err := migration.CreateIndexes(); err != nil {
			log.Printf("Warning: Index creation failed: %v", err)
		}
	}

	// Connect to Redis
	redisClient, err := redisdb.NewConnection(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	if err := redisClient.Health(); err != nil {
		log.Fatalf("Redis health check failed: %v", err)
	}

	// Load the product and promo code catalogs
	catalogSvc, err := catalog.NewService(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	// Wire domain services on top of the session state store
	sessionStore := redisdb.NewKeyStore(redisClient.GetClient(), cfg.Session.TTL, logger)

	carts := cart.NewStore(sessionStore, logger)
	promos := promo.NewEngine(sessionStore, cfg.Promo.Revalidation, logger)
	shippingCalc := shipping.NewCalculator(cfg.Shipping)
	pricingCalc := pricing.NewCalculator(shippingCalc, cfg.Pricing)
	checkoutSvc := checkout.NewService(carts, promos, catalogSvc, pricingCalc, shippingCalc)
	orderSvc := order.NewService(archiveDB, sessionStore, carts, promos, pricingCalc, cfg, logger)
	receiptSvc := receipt.NewService(cfg)
	wishlistSvc := wishlist.NewService(sessionStore, carts)

	carts.Subscribe(func(ev cart.Event) {
		logger.WithFields(logrus.Fields{
			"session_id": ev.SessionID,
			"item_count": ev.ItemCount,
		}).Debug("Cart changed")
	})

	// Forward cart changes made by other instances to local subscribers
	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	go func() {
		if err := carts.WatchInvalidations(watchCtx); err != nil && watchCtx.Err() == nil {
			logger.WithError(err).Error("Cart invalidation watcher stopped")
		}
	}()

	log.Println("✅ All systems operational!")

	// Create and start HTTP server
	server := http.NewServer(cfg, archiveDB, redisClient.GetClient(), &routes.Dependencies{
		Carts:    carts,
		Catalog:  catalogSvc,
		Checkout: checkoutSvc,
		Orders:   orderSvc,
		Receipts: receiptSvc,
		Wishlist: wishlistSvc,
	})

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("👋 Shutting down gracefully...")

	// Give server 30 seconds to shutdown gracefully
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		log.Printf("Failed to shutdown HTTP server gracefully: %v", err)
	}

	log.Println("✅ Server shutdown completed")
}

// newLogger builds the shared application logger from config
func newLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()

	if cfg.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	}

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}
