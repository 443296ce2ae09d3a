package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigWritesDefaults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "flowterm")
	cfg, err := loadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
	assert.FileExists(t, filepath.Join(dir, "config.yaml"))
}

func TestLoadConfigReadsFile(t *testing.T) {
	dir := t.TempDir()
	yaml := "save_directory: charts\nconfirmations: false\ngrid_size: 8\nshow_grid: true\nsnap_to_grid: false\nzoom: 2\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := loadConfig(dir)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(cfg.SaveDirectory))
	assert.Equal(t, "charts", filepath.Base(cfg.SaveDirectory))
	assert.True(t, cfg.StartMenu)
	assert.False(t, cfg.Confirmations)
	assert.Equal(t, 8.0, cfg.GridSize)
	assert.True(t, cfg.ShowGrid)
	assert.False(t, cfg.SnapToGrid)
	assert.Equal(t, 2.0, cfg.Zoom)

	doc := cfg.newDocument()
	assert.Equal(t, 8.0, doc.GridSize)
	assert.True(t, doc.ShowGrid)
	assert.False(t, doc.Snap)
	assert.Equal(t, 2.0, doc.Zoom)
}

func TestLoadConfigClampsBadValues(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("grid_size: -4\nzoom: 9\n"), 0o644))

	cfg, err := loadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, 16.0, cfg.GridSize)
	assert.Equal(t, 1.0, cfg.Zoom)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("FLOWTERM_START_MENU", "false")
	cfg, err := loadConfig(t.TempDir())
	require.NoError(t, err)
	assert.False(t, cfg.StartMenu)
}

func TestLoadConfigRejectsBrokenYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("zoom: [\n"), 0o644))
	_, err := loadConfig(dir)
	assert.Error(t, err)
}

func TestGetSavePath(t *testing.T) {
	cfg := defaultConfig()
	assert.Equal(t, "a.flow", cfg.GetSavePath("a.flow"))

	cfg.SaveDirectory = t.TempDir()
	assert.Equal(t, filepath.Join(cfg.SaveDirectory, "a.flow"), cfg.GetSavePath("a.flow"))
	assert.Equal(t, "/abs/a.flow", cfg.GetSavePath("/abs/a.flow"))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "charts"), expandPath("~/charts"))
	assert.Equal(t, "", expandPath(""))
}
