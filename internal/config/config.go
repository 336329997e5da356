// Package config loads harness configuration from the environment, with
// optional .env support for local runs.
package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/roach88/shelfcheck/internal/ui"
)

// Actor credentials for the two fixed roles. The roles differ only in the
// display name observed through the UI; all business behavior is
// role-independent.
type Config struct {
	// SnapshotDB is the SQLite storage snapshot path.
	SnapshotDB string

	// StoreKey is the storage key the application keeps its collection
	// under.
	StoreKey string

	// Elevated and Standard are the two fixed actor credentials.
	Elevated ui.Credentials
	Standard ui.Credentials
}

// Load reads configuration from the environment. A .env file in the
// working directory is merged in when present; real environment variables
// win over .env entries.
func Load(logger *slog.Logger) Config {
	// godotenv does not overwrite variables that are already set.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("could not read .env file", "error", err)
	}

	cfg := Config{
		SnapshotDB: envOr("SHELFCHECK_DB", "shelfcheck.db"),
		StoreKey:   envOr("SHELFCHECK_STORE_KEY", "inventory_products"),
		Elevated: ui.Credentials{
			Username:    envOr("SHELFCHECK_ELEVATED_USER", "admin"),
			Password:    envOr("SHELFCHECK_ELEVATED_PASS", "admin123"),
			DisplayName: envOr("SHELFCHECK_ELEVATED_NAME", "Administrator"),
		},
		Standard: ui.Credentials{
			Username:    envOr("SHELFCHECK_STANDARD_USER", "clerk"),
			Password:    envOr("SHELFCHECK_STANDARD_PASS", "clerk123"),
			DisplayName: envOr("SHELFCHECK_STANDARD_NAME", "Stock Clerk"),
		},
	}

	logger.Debug("config loaded", "db", cfg.SnapshotDB, "store_key", cfg.StoreKey)
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
