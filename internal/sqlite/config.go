// File path: internal/sqlite/config.go
package sqlite

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config tunes the SQLite connection pool. Values load from the environment
// with sensible defaults for a single-process server.
type Config struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	BusyTimeout     time.Duration
}

// DefaultConfig returns the standard pool settings.
func DefaultConfig() Config {
	return Config{
		Path:            "data/catalog.db",
		MaxOpenConns:    4,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Hour,
		BusyTimeout:     5 * time.Second,
	}
}

// LoadConfig reads overrides from CATALOG_DB_* environment variables on top
// of the defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	if path := strings.TrimSpace(os.Getenv("CATALOG_DB_PATH")); path != "" {
		cfg.Path = path
	}
	if raw := strings.TrimSpace(os.Getenv("CATALOG_DB_MAX_OPEN_CONNS")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse CATALOG_DB_MAX_OPEN_CONNS: %w", err)
		}
		cfg.MaxOpenConns = parsed
	}
	if raw := strings.TrimSpace(os.Getenv("CATALOG_DB_MAX_IDLE_CONNS")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse CATALOG_DB_MAX_IDLE_CONNS: %w", err)
		}
		cfg.MaxIdleConns = parsed
	}
	if raw := strings.TrimSpace(os.Getenv("CATALOG_DB_BUSY_TIMEOUT")); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse CATALOG_DB_BUSY_TIMEOUT: %w", err)
		}
		cfg.BusyTimeout = parsed
	}
	return cfg, nil
}
