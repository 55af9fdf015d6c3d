package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"life-os/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Database.Path = filepath.Join(dir, "life-os.db")
	cfg.Export.Dir = filepath.Join(dir, "exports")
	cfg.Server.Port = ""
	return cfg
}

func TestNew_WithoutBot(t *testing.T) {
	cfg := testConfig(t)

	app, err := New(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { app.db.Close() })

	assert.Nil(t, app.bot)
	assert.NotNil(t, app.services.Notification)
	assert.Len(t, app.cron.Entries(), 4)

	folder, err := app.services.Export.Folder(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cfg.Export.Dir, folder)
}

func TestOpen_KeepsChosenFolder(t *testing.T) {
	cfg := testConfig(t)

	db, sm, err := Open(cfg, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, sm.Export.SetFolder(context.Background(), "/chosen"))
	require.NoError(t, db.Close())

	db, sm, err = Open(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	folder, err := sm.Export.Folder(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/chosen", folder)
}

func TestOpen_BadTimezone(t *testing.T) {
	cfg := testConfig(t)
	cfg.Timezone = "Mars/Olympus"

	_, _, err := Open(cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestRun_ExportsOnStartupAndStops(t *testing.T) {
	cfg := testConfig(t)
	cfg.Schedule.Reminder = ""

	app, err := New(cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Len(t, app.cron.Entries(), 3)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	require.Eventually(t, func() bool {
		entries, _ := os.ReadDir(cfg.Export.Dir)
		return len(entries) == 1
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
