package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"flowterm/flowchart"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	cfgKeySaveDirectory = "save_directory"
	cfgKeyStartMenu     = "start_menu"
	cfgKeyConfirmations = "confirmations"
	cfgKeyGridSize      = "grid_size"
	cfgKeyShowGrid      = "show_grid"
	cfgKeySnapToGrid    = "snap_to_grid"
	cfgKeyZoom          = "zoom"
)

const defaultConfigYAML = `# flowterm configuration

# Directory charts are saved to; empty means the working directory.
save_directory: ""

# Show the start menu when launched without a file.
start_menu: true

# Ask before deleting, quitting and discarding changes.
confirmations: true

# Grid spacing in document units, and whether it is shown and snapped to.
grid_size: 16
show_grid: false
snap_to_grid: true

zoom: 1
`

type Config struct {
	SaveDirectory string
	StartMenu     bool
	Confirmations bool
	GridSize      float64
	ShowGrid      bool
	SnapToGrid    bool
	Zoom          float64
}

func defaultConfig() *Config {
	return &Config{
		StartMenu:     true,
		Confirmations: true,
		GridSize:      flowchart.DefaultGridSize,
		SnapToGrid:    true,
		Zoom:          1,
	}
}

// defaultConfigDir is ~/.config/flowterm, or the working directory when the
// home directory is unknown.
func defaultConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "flowterm")
	}
	return ".flowterm"
}

// loadConfig reads config.yaml from configDir, writing a default one on first
// run. FLOWTERM_* environment variables override the file.
func loadConfig(configDir string) (*Config, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	path := filepath.Join(configDir, configFileName+"."+configFileType)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(path, []byte(defaultConfigYAML), 0o644); err != nil {
			return nil, fmt.Errorf("write default config: %w", err)
		}
	}

	def := defaultConfig()
	v := viper.New()
	v.SetDefault(cfgKeySaveDirectory, def.SaveDirectory)
	v.SetDefault(cfgKeyStartMenu, def.StartMenu)
	v.SetDefault(cfgKeyConfirmations, def.Confirmations)
	v.SetDefault(cfgKeyGridSize, def.GridSize)
	v.SetDefault(cfgKeyShowGrid, def.ShowGrid)
	v.SetDefault(cfgKeySnapToGrid, def.SnapToGrid)
	v.SetDefault(cfgKeyZoom, def.Zoom)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix("flowterm")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	config := &Config{
		SaveDirectory: expandPath(v.GetString(cfgKeySaveDirectory)),
		StartMenu:     v.GetBool(cfgKeyStartMenu),
		Confirmations: v.GetBool(cfgKeyConfirmations),
		GridSize:      v.GetFloat64(cfgKeyGridSize),
		ShowGrid:      v.GetBool(cfgKeyShowGrid),
		SnapToGrid:    v.GetBool(cfgKeySnapToGrid),
		Zoom:          v.GetFloat64(cfgKeyZoom),
	}
	if config.GridSize <= 0 {
		config.GridSize = flowchart.DefaultGridSize
	}
	if config.Zoom < flowchart.MinZoom || config.Zoom > flowchart.MaxZoom {
		config.Zoom = 1
	}
	return config, nil
}

func expandPath(value string) string {
	if value == "" {
		return ""
	}
	if strings.HasPrefix(value, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			value = filepath.Join(home, strings.TrimPrefix(value, "~"))
		}
	}
	if !filepath.IsAbs(value) {
		if abs, err := filepath.Abs(value); err == nil {
			value = abs
		}
	}
	return value
}

func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" || filepath.IsAbs(filename) {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0o755)
	return filepath.Join(c.SaveDirectory, filename)
}

// newDocument returns an empty document using the configured grid and zoom.
func (c *Config) newDocument(opts ...flowchart.Option) *flowchart.Document {
	opts = append([]flowchart.Option{flowchart.WithGrid(c.GridSize, c.ShowGrid, c.SnapToGrid)}, opts...)
	d := flowchart.NewDocument(opts...)
	d.Zoom = c.Zoom
	return d
}
