// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// PromoRevalidation controls what the promo engine does when the cart
// subtotal changes after a promo has been applied.
type PromoRevalidation string

const (
	// PromoRevalidationRecompute keeps the promo applied and only recomputes
	// the bounded discount from the current subtotal.
	PromoRevalidationRecompute PromoRevalidation = "recompute"
	// PromoRevalidationAutoClear removes the promo once the subtotal no
	// longer satisfies its minimum order amount.
	PromoRevalidationAutoClear PromoRevalidation = "autoclear"
)

// Config holds all configuration for our application
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	Catalog  CatalogConfig
	Shipping ShippingConfig
	Promo    PromoConfig
	Pricing  PricingConfig
	Order    OrderConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string
	Version     string
	Environment string
	Debug       bool
	StoreName   string
	StorePhone  string
	StoreEmail  string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DatabaseConfig contains the order archive database configuration
type DatabaseConfig struct {
	Host         string
	Port         string
	Name         string
	User         string
	Password     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// RedisConfig contains Redis configuration for session state storage
type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
}

// SessionConfig contains guest session cookie configuration
type SessionConfig struct {
	Secret     string
	CookieName string
	TTL        time.Duration
}

// CatalogConfig contains reference data file locations
type CatalogConfig struct {
	ProductsPath   string
	PromoCodesPath string
}

// ShippingConfig contains the per-tier shipping fees in whole EGP
type ShippingConfig struct {
	NorthernFee int64
	SouthernFee int64
	DefaultFee  int64
}

// PromoConfig contains promo engine configuration
type PromoConfig struct {
	Revalidation PromoRevalidation
}

// PricingConfig contains order total calculation configuration
type PricingConfig struct {
	ClampTotal bool
}

// OrderConfig contains order submission configuration
type OrderConfig struct {
	IDPrefix       string
	RequiredFields []string
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	RateLimitPerMinute int
	CORSAllowedOrigins []string
	CORSAllowedMethods []string
	CORSAllowedHeaders []string
	TrustedProxies     []string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	config := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Storefront Backend"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
			Debug:       getEnvAsBool("APP_DEBUG", true),
			StoreName:   getEnv("STORE_NAME", "Ro7 Art Hub"),
			StorePhone:  getEnv("STORE_PHONE", ""),
			StoreEmail:  getEnv("STORE_EMAIL", "hello@ro7arthub.com"),
		},
		Server: ServerConfig{
			Port:         getEnv("APP_PORT", "8080"),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			Name:         getEnv("DB_NAME", "storefront_db"),
			User:         getEnv("DB_USER", "storefront_user"),
			Password:     getEnv("DB_PASSWORD", "storefront_password"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getEnvAsDuration("DB_MAX_LIFETIME", 300*time.Second),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvAsInt("REDIS_DB", 0),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 5),
		},
		Session: SessionConfig{
			Secret:     getEnv("SESSION_SECRET", "your-super-secret-session-key-change-in-production"),
			CookieName: getEnv("SESSION_COOKIE_NAME", "storefront_session"),
			TTL:        getEnvAsDuration("SESSION_TTL", 7*24*time.Hour),
		},
		Catalog: CatalogConfig{
			ProductsPath:   getEnv("CATALOG_PRODUCTS_PATH", "data/products.json"),
			PromoCodesPath: getEnv("CATALOG_PROMO_CODES_PATH", "data/promo-codes.json"),
		},
		Shipping: ShippingConfig{
			NorthernFee: getEnvAsInt64("SHIPPING_NORTHERN_FEE", 60),
			SouthernFee: getEnvAsInt64("SHIPPING_SOUTHERN_FEE", 90),
			DefaultFee:  getEnvAsInt64("SHIPPING_DEFAULT_FEE", 30),
		},
		Promo: PromoConfig{
			Revalidation: PromoRevalidation(getEnv("PROMO_REVALIDATION", string(PromoRevalidationRecompute))),
		},
		Pricing: PricingConfig{
			ClampTotal: getEnvAsBool("PRICING_CLAMP_TOTAL", true),
		},
		Order: OrderConfig{
			IDPrefix:       getEnv("ORDER_ID_PREFIX", "RO7"),
			RequiredFields: getEnvAsSlice("ORDER_REQUIRED_FIELDS", []string{"name", "phone", "email", "governorate", "address"}),
		},
		Security: SecurityConfig{
			RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 100),
			CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
			CORSAllowedMethods: getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
			CORSAllowedHeaders: getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Accept"}),
			TrustedProxies:     getEnvAsSlice("TRUSTED_PROXIES", []string{}),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "debug"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	// Validate session secret
	if len(c.Session.Secret) < 32 {
		return fmt.Errorf("SESSION_SECRET must be at least 32 characters long")
	}

	// Validate database configuration
	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("DB_USER is required")
	}

	// Validate Redis configuration
	if c.Redis.Host == "" {
		return fmt.Errorf("REDIS_HOST is required")
	}

	// Validate server port
	if c.Server.Port == "" {
		return fmt.Errorf("APP_PORT is required")
	}

	// Validate reference data locations
	if c.Catalog.ProductsPath == "" {
		return fmt.Errorf("CATALOG_PRODUCTS_PATH is required")
	}
	if c.Catalog.PromoCodesPath == "" {
		return fmt.Errorf("CATALOG_PROMO_CODES_PATH is required")
	}

	// Validate promo revalidation policy
	switch c.Promo.Revalidation {
	case PromoRevalidationRecompute, PromoRevalidationAutoClear:
	default:
		return fmt.Errorf("PROMO_REVALIDATION must be %q or %q", PromoRevalidationRecompute, PromoRevalidationAutoClear)
	}

	// Validate shipping fees
	if c.Shipping.NorthernFee < 0 || c.Shipping.SouthernFee < 0 || c.Shipping.DefaultFee < 0 {
		return fmt.Errorf("shipping fees must not be negative")
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
