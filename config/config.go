package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/yeremiapane/koko-king/database"
	"github.com/yeremiapane/koko-king/utils"
)

// Credential is one configured staff login.
type Credential struct {
	Identifier string
	Password   string
}

type Config struct {
	Port    string
	GinMode string

	StoreDriver string
	DBDSN       string
	BoltPath    string

	JWTSecret     string
	Kitchen       Credential
	Manager       Credential
	Admin         Credential
	DriverPasskey string

	DeliveryFee  decimal.Decimal
	PollInterval time.Duration
	RateLimitRPS float64
	CORSOrigin   string
	TLS          bool
}

// Load reads .env when present, then the environment, falling back to
// development defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Info("No .env file found, using environment")
	}

	fee, err := decimal.NewFromString(getEnv("DELIVERY_FEE", "5.00"))
	if err != nil || fee.IsNegative() {
		return nil, fmt.Errorf("DELIVERY_FEE must be a non-negative amount")
	}
	poll, err := time.ParseDuration(getEnv("POLL_INTERVAL", "3s"))
	if err != nil || poll <= 0 {
		return nil, fmt.Errorf("POLL_INTERVAL must be a positive duration")
	}
	rps, err := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "20"), 64)
	if err != nil || rps <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_RPS must be a positive number")
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		GinMode:     getEnv("GIN_MODE", "debug"),
		StoreDriver: strings.ToLower(getEnv("STORE_DRIVER", "sqlite")),
		DBDSN:       os.Getenv("DB_DSN"),
		BoltPath:    getEnv("BOLT_PATH", "koko-king.bolt"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		Kitchen: Credential{
			Identifier: getEnv("KITCHEN_EMAIL", "kitchen@kokoking.com"),
			Password:   getEnv("KITCHEN_PASSWORD", "demo123"),
		},
		Manager: Credential{
			Identifier: getEnv("MANAGER_EMAIL", "manager@kokoking.com"),
			Password:   getEnv("MANAGER_PASSWORD", "admin123"),
		},
		Admin: Credential{
			Identifier: getEnv("ADMIN_USERNAME", "admin"),
			Password:   getEnv("ADMIN_PASSWORD", "admin123"),
		},
		DriverPasskey: getEnv("DRIVER_PASSKEY", "driver2025"),
		DeliveryFee:   fee,
		PollInterval:  poll,
		RateLimitRPS:  rps,
		CORSOrigin:    getEnv("CORS_ORIGIN", "*"),
		TLS:           getEnv("TLS", "false") == "true",
	}

	if cfg.JWTSecret == "" {
		utils.ErrorLogger.Warn("JWT_SECRET not set, using development secret")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

// OpenStore selects the blob store backend named by STORE_DRIVER.
func OpenStore(ctx context.Context, cfg *Config) (database.BlobStore, error) {
	switch cfg.StoreDriver {
	case "memory":
		return database.NewMemoryStore(), nil
	case "sqlite", "mysql":
		return database.OpenGormStore(cfg.StoreDriver, cfg.DBDSN)
	case "postgres":
		if cfg.DBDSN == "" {
			return nil, fmt.Errorf("DB_DSN is required for the postgres store")
		}
		return database.OpenPgStore(ctx, cfg.DBDSN)
	case "bolt":
		return database.OpenBoltStore(cfg.BoltPath)
	}
	return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
}
