package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// kvBackends runs the same contract tests over every KV implementation.
func kvBackends(t *testing.T) map[string]KV {
	t.Helper()

	sqlite, err := OpenSQLite(filepath.Join(t.TempDir(), "snapshot.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close() })

	return map[string]KV{
		"memory": NewMemory(),
		"sqlite": sqlite,
	}
}

func TestKV_MissingKeyIsNotOK(t *testing.T) {
	ctx := context.Background()
	for name, kv := range kvBackends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := kv.Get(ctx, "never-set")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestKV_SetGet(t *testing.T) {
	ctx := context.Background()
	for name, kv := range kvBackends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, kv.Set(ctx, "k", "[]"))

			value, ok, err := kv.Get(ctx, "k")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "[]", value)
		})
	}
}

func TestKV_EmptyValueDistinctFromMissing(t *testing.T) {
	// "Initialized but empty" and "never initialized" must stay
	// distinguishable; MissingStoreError depends on it.
	ctx := context.Background()
	for name, kv := range kvBackends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, kv.Set(ctx, "k", ""))

			value, ok, err := kv.Get(ctx, "k")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Empty(t, value)
		})
	}
}

func TestKV_Overwrite(t *testing.T) {
	ctx := context.Background()
	for name, kv := range kvBackends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, kv.Set(ctx, "k", "first"))
			require.NoError(t, kv.Set(ctx, "k", "second"))

			value, _, err := kv.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, "second", value)
		})
	}
}

func TestKV_Delete(t *testing.T) {
	ctx := context.Background()
	for name, kv := range kvBackends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, kv.Set(ctx, "k", "v"))
			require.NoError(t, kv.Delete(ctx, "k"))

			_, ok, err := kv.Get(ctx, "k")
			require.NoError(t, err)
			assert.False(t, ok, "deleted key returns to never-set state")

			// Deleting a missing key is a no-op, not an error.
			require.NoError(t, kv.Delete(ctx, "k"))
		})
	}
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "snapshot.db")

	first, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "k", "durable"))
	require.NoError(t, first.Close())

	second, err := OpenSQLite(path)
	require.NoError(t, err)
	defer second.Close()

	value, ok, err := second.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "durable", value)
}

func TestOpenSQLite_Pragmas(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "snapshot.db"))
	require.NoError(t, err)
	defer s.Close()

	var mode string
	require.NoError(t, s.db.QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)

	var fk int
	require.NoError(t, s.db.QueryRow("PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestOpenSQLite_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.db")

	first, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := OpenSQLite(path)
	require.NoError(t, err)
	assert.NoError(t, second.Close())
}
