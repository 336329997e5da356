package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baselineCatalog = `name: baseline
description: cli integration fixture
products:
  - sku: CLI-001
    name: Boundary Probe Monitor
    category: Electronics
    price: 2.00
    stock: 10
    lowStockThreshold: 5
  - sku: CLI-002
    name: Boundary Probe Cable
    category: Accessories
    price: 12.25
    stock: 3
    lowStockThreshold: 5
`

// execute runs the CLI the way main does, capturing stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func writeCatalog(t *testing.T) (catalogPath, dbPath string) {
	t.Helper()
	dir := t.TempDir()
	catalogPath = filepath.Join(dir, "baseline.yaml")
	require.NoError(t, os.WriteFile(catalogPath, []byte(baselineCatalog), 0o644))
	return catalogPath, filepath.Join(dir, "snapshot.db")
}

func TestSeedThenStats(t *testing.T) {
	catalog, db := writeCatalog(t)

	out, err := execute(t, "seed", "--db", db, "--init", catalog)
	require.NoError(t, err)
	assert.Contains(t, out, `seeded catalog "baseline": 2 inserted, 0 skipped`)

	out, err = execute(t, "stats", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "products=2 lowStock=1 totalValue=$56.75")
}

func TestSeed_Idempotent(t *testing.T) {
	catalog, db := writeCatalog(t)

	_, err := execute(t, "seed", "--db", db, "--init", catalog)
	require.NoError(t, err)

	out, err := execute(t, "seed", "--db", db, catalog)
	require.NoError(t, err)
	assert.Contains(t, out, "0 inserted, 2 skipped")
}

func TestSeed_BadCatalogIsCommandError(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("name: x\ndescription: ''\nproducts:\n  - sku: ''\n"), 0o644))

	_, err := execute(t, "seed", "--db", filepath.Join(dir, "snapshot.db"), bad)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestStats_UninitializedStore(t *testing.T) {
	_, db := writeCatalog(t)

	_, err := execute(t, "stats", "--db", db)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "never initialized")
}

func TestStats_JSONFormat(t *testing.T) {
	catalog, db := writeCatalog(t)
	_, err := execute(t, "seed", "--db", db, "--init", catalog)
	require.NoError(t, err)

	out, err := execute(t, "--format", "json", "stats", "--db", db)
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(2), data["total_products"])
	assert.Equal(t, "$56.75", data["total_value"])
}

func TestClear(t *testing.T) {
	catalog, db := writeCatalog(t)
	_, err := execute(t, "seed", "--db", db, "--init", catalog)
	require.NoError(t, err)

	out, err := execute(t, "clear", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "collection cleared")

	out, err = execute(t, "stats", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "products=0 lowStock=0 totalValue=$0.00")
}

func TestJourney_List(t *testing.T) {
	out, err := execute(t, "journey", "--list")
	require.NoError(t, err)
	assert.Contains(t, out, "product_lifecycle")
	assert.Contains(t, out, "low_stock_boundary")
	assert.Contains(t, out, "multi_actor_handoff")
}

func TestJourney_RunAll(t *testing.T) {
	out, err := execute(t, "journey")
	require.NoError(t, err)
	assert.Contains(t, out, "journey product_lifecycle passed")
	assert.Contains(t, out, "journey low_stock_boundary passed")
	assert.Contains(t, out, "journey multi_actor_handoff passed")
}

func TestJourney_UnknownName(t *testing.T) {
	_, err := execute(t, "journey", "nope")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestInvalidFormat(t *testing.T) {
	_, err := execute(t, "--format", "yaml", "journey", "--list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid format "yaml"`)
}
