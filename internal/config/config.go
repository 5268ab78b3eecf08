package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Хранилища инвентаря.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendNATS     = "nats"
)

type Config struct {
	DBDSN        string
	ServerPort   string
	StoreBackend string

	NATSURL         string
	InventoryBucket string
	NotifySubject   string

	KitCatalogFile string

	LogLevel  string
	LogFormat string

	AllocationTimeout time.Duration
	MaxCASRetries     int
	MetricsEnabled    bool
}

// Load reads .env (if present) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads the environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		DBDSN:           os.Getenv("DB_DSN"),
		ServerPort:      envOr("SERVER_PORT", "8080"),
		StoreBackend:    strings.ToLower(os.Getenv("STORE_BACKEND")),
		NATSURL:         os.Getenv("NATS_URL"),
		InventoryBucket: envOr("NATS_INVENTORY_BUCKET", "inventory"),
		NotifySubject:   envOr("NOTIFY_SUBJECT", "onboarding.assets.assigned"),
		KitCatalogFile:  os.Getenv("KIT_CATALOG_FILE"),
		LogLevel:        envOr("LOG_LEVEL", "info"),
		LogFormat:       envOr("LOG_FORMAT", "text"),
	}

	var err error
	if cfg.AllocationTimeout, err = durationEnv("ALLOCATION_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.MaxCASRetries, err = intEnv("MAX_CAS_RETRIES", 3); err != nil {
		return nil, err
	}
	if cfg.MetricsEnabled, err = boolEnv("METRICS_ENABLED", true); err != nil {
		return nil, err
	}

	// без явного выбора: postgres, если задан DSN
	if cfg.StoreBackend == "" {
		cfg.StoreBackend = BackendMemory
		if cfg.DBDSN != "" {
			cfg.StoreBackend = BackendPostgres
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendMemory:
	case BackendPostgres:
		if c.DBDSN == "" {
			return fmt.Errorf("%w: DB_DSN is not set", ErrInvalidConfig)
		}
	case BackendNATS:
		if c.NATSURL == "" {
			return fmt.Errorf("%w: NATS_URL is not set", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown STORE_BACKEND %q", ErrInvalidConfig, c.StoreBackend)
	}

	if _, err := strconv.Atoi(c.ServerPort); err != nil {
		return fmt.Errorf("%w: SERVER_PORT %q is not a number", ErrInvalidConfig, c.ServerPort)
	}
	if c.AllocationTimeout < 0 {
		return fmt.Errorf("%w: ALLOCATION_TIMEOUT must not be negative", ErrInvalidConfig)
	}
	if c.MaxCASRetries < 1 {
		return fmt.Errorf("%w: MAX_CAS_RETRIES must be at least 1", ErrInvalidConfig)
	}
	return nil
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, key, err)
	}
	return d, nil
}

func intEnv(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, key, err)
	}
	return n, nil
}

func boolEnv(key string, def bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, key, err)
	}
	return b, nil
}
