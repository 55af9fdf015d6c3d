package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "data", "life-os.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestDatabase_GetMissing(t *testing.T) {
	db := newTestDatabase(t)

	value, ok, err := db.Get(context.Background(), "lifeos:pillars:2026-01-01")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestDatabase_SetOverwrites(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)

	require.NoError(t, db.Set(ctx, "k", "first"))
	require.NoError(t, db.Set(ctx, "k", "second"))

	value, ok, err := db.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "second", value)
}

func TestDatabase_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "life-os.db")

	db, err := New(path, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, db.Set(ctx, KeyExportFolderPath, "/exports"))
	require.NoError(t, db.Close())

	db, err = New(path, zap.NewNop())
	require.NoError(t, err)
	defer db.Close()

	value, ok, err := db.Get(ctx, KeyExportFolderPath)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/exports", value)
}

func TestDatabase_ClosedReturnsError(t *testing.T) {
	db, err := New(filepath.Join(t.TempDir(), "closed.db"), zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, _, err = db.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.Error(t, db.Set(context.Background(), "k", "v"))
}
