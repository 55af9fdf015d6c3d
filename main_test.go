package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"life-os/internal/services"
)

// run executes the root command with fresh flag values and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	configPath, dbPath, debug = "", "", false
	calendarDate, weekDate, pillarDate, logDate, exportDate, exportFolder = "", "", "", "", "", ""
	exportPreview, exportForce = false, false
	logEntry = services.LogEntry{}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func setupEnv(t *testing.T) string {
	t.Helper()
	for _, k := range []string{"CONFIG_PATH", "TG_TOKEN", "TG_CHAT_ID", "PORT", "EXPORT_DIR", "TIMEZONE", "LOG_DEBUG"} {
		t.Setenv(k, "")
	}
	dir := t.TempDir()
	t.Setenv("DB_PATH", filepath.Join(dir, "life-os.db"))
	return dir
}

func TestCalendarCommand(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "calendar", "--date", "2026-06-01")
	require.NoError(t, err)
	assert.Contains(t, out, "Week 22 · REST")
	assert.Contains(t, out, "MATADOR: DEFICIT")
	assert.Contains(t, out, "2026-06-01")

	_, err = run(t, "calendar", "--date", "June 1st")
	assert.Error(t, err)
}

func TestPillarCommands(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "pillar", "set", "mind", "true", "--date", "2026-10-19")
	require.NoError(t, err)
	assert.Contains(t, out, "1/6")

	out, err = run(t, "pillar", "get", "--date", "2026-10-19")
	require.NoError(t, err)
	assert.Contains(t, out, "✅ 🧠 Mind")
	assert.Contains(t, out, "⬜ 🏃 Health")

	_, err = run(t, "pillar", "set", "Sports", "true")
	assert.Error(t, err)
	_, err = run(t, "pillar", "set", "Mind", "maybe")
	assert.Error(t, err)
}

func TestLogAndWeekCommands(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "log", "--sleep", "5", "--date", "2026-10-15")
	require.NoError(t, err)
	out, err := run(t, "log", "--sleep", "5", "--soreness", "--date", "2026-10-16")
	require.NoError(t, err)
	assert.Contains(t, out, "2026-10-16 (week 14)")

	out, err = run(t, "week", "--date", "2026-10-16")
	require.NoError(t, err)
	assert.Contains(t, out, "Week 14 · OPTIMIZE")
	assert.Contains(t, out, "RED")
	assert.Contains(t, out, "2 log(s) this week")

	_, err = run(t, "log", "--sleep", "30")
	assert.Error(t, err)
	_, err = run(t, "log", "--sleep", "NaN")
	assert.Error(t, err)
}

func TestExportCommand(t *testing.T) {
	dir := setupEnv(t)
	folder := filepath.Join(dir, "exports")

	out, err := run(t, "export")
	require.NoError(t, err)
	assert.Contains(t, out, "Export folder not configured")

	out, err = run(t, "export", "--folder", folder)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported ")

	out, err = run(t, "export")
	require.NoError(t, err)
	assert.Contains(t, out, "Already exported today")
	assert.Contains(t, out, "Last export: "+folder)

	_, err = run(t, "export", "--force", "--date", "2026-10-19")
	require.NoError(t, err)

	entries, err := os.ReadDir(folder)
	require.NoError(t, err)
	assert.NotEmpty(t, entries)

	_, err = run(t, "export", "--date", "2026-10-19")
	assert.Error(t, err)
}
