package config

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoad_Defaults(t *testing.T) {
	cfg := Load(discardLogger())

	assert.Equal(t, "shelfcheck.db", cfg.SnapshotDB)
	assert.Equal(t, "inventory_products", cfg.StoreKey)
	assert.Equal(t, "admin", cfg.Elevated.Username)
	assert.Equal(t, "Administrator", cfg.Elevated.DisplayName)
	assert.Equal(t, "clerk", cfg.Standard.Username)
	assert.Equal(t, "Stock Clerk", cfg.Standard.DisplayName)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SHELFCHECK_DB", "/tmp/other.db")
	t.Setenv("SHELFCHECK_STORE_KEY", "alt_products")
	t.Setenv("SHELFCHECK_ELEVATED_NAME", "Root")

	cfg := Load(discardLogger())
	assert.Equal(t, "/tmp/other.db", cfg.SnapshotDB)
	assert.Equal(t, "alt_products", cfg.StoreKey)
	assert.Equal(t, "Root", cfg.Elevated.DisplayName)
	assert.Equal(t, "Stock Clerk", cfg.Standard.DisplayName, "untouched keys keep defaults")
}

func TestLoad_EmptyValueFallsBack(t *testing.T) {
	t.Setenv("SHELFCHECK_STANDARD_USER", "")
	cfg := Load(discardLogger())
	assert.Equal(t, "clerk", cfg.Standard.Username)
}
