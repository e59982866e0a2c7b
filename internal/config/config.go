// Package config loads and saves the YAML configuration file. The first
// run writes a default file so users have something to edit.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type StorageConfig struct {
	// Backend selects the durable mirror: "file" or "sqlite".
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

type ViewConfig struct {
	Kind            string `yaml:"kind"`
	CustomDays      int    `yaml:"custom_days"`
	ShowWeekends    bool   `yaml:"show_weekends"`
	ShowWeekNumbers bool   `yaml:"show_week_numbers"`
	AutoScrollToNow bool   `yaml:"auto_scroll_to_now"`
	CustomHourStart int    `yaml:"custom_hour_start"`
	CustomHourEnd   int    `yaml:"custom_hour_end"`
}

type GestureConfig struct {
	MinDurationMinutes int `yaml:"min_duration_minutes"`
	DragThresholdPx    int `yaml:"drag_threshold_px"`
	CreateSnapMinutes  int `yaml:"create_snap_minutes"`
	MoveSnapMinutes    int `yaml:"move_snap_minutes"`
}

type LogConfig struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

type Config struct {
	Storage StorageConfig `yaml:"storage"`
	View    ViewConfig    `yaml:"view"`
	Gesture GestureConfig `yaml:"gesture"`
	Log     LogConfig     `yaml:"log"`
}

func Default() Config {
	state := stateDir()
	return Config{
		Storage: StorageConfig{
			Backend: "file",
			Path:    filepath.Join(state, "events.json"),
		},
		View: ViewConfig{
			Kind:            "month",
			CustomDays:      3,
			ShowWeekends:    true,
			ShowWeekNumbers: false,
			AutoScrollToNow: true,
			CustomHourStart: 16,
			CustomHourEnd:   23,
		},
		Gesture: GestureConfig{
			MinDurationMinutes: 30,
			DragThresholdPx:    10,
			CreateSnapMinutes:  15,
			MoveSnapMinutes:    5,
		},
		Log: LogConfig{
			Path:  filepath.Join(state, "gridcal.log"),
			Level: "info",
		},
	}
}

func stateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "gridcal")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "state", "gridcal")
}

// DefaultPath is where Load looks when no -config flag is given.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "gridcal", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".config", "gridcal", "config.yaml")
}

// Load reads the config at path, creating it with defaults on first run.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg := Default()
		if err := Save(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.Normalize()
	return cfg, nil
}

// Save writes the config atomically via a temp file and rename.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("config: mkdir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".config-*.yaml")
	if err != nil {
		return fmt.Errorf("config: temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("config: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("config: close: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("config: chmod: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("config: rename: %w", err)
	}
	return nil
}

// Normalize fills in anything missing or out of range.
func (c *Config) Normalize() {
	def := Default()

	if c.Storage.Backend != "file" && c.Storage.Backend != "sqlite" {
		c.Storage.Backend = def.Storage.Backend
	}
	if c.Storage.Path == "" {
		c.Storage.Path = def.Storage.Path
	}
	if c.View.Kind == "" {
		c.View.Kind = def.View.Kind
	}
	if c.View.CustomDays < 1 {
		c.View.CustomDays = def.View.CustomDays
	}
	if c.View.CustomHourStart < 0 || c.View.CustomHourStart > 23 {
		c.View.CustomHourStart = def.View.CustomHourStart
	}
	if c.View.CustomHourEnd < c.View.CustomHourStart || c.View.CustomHourEnd > 23 {
		c.View.CustomHourEnd = def.View.CustomHourEnd
	}
	if c.Gesture.MinDurationMinutes <= 0 {
		c.Gesture.MinDurationMinutes = def.Gesture.MinDurationMinutes
	}
	if c.Gesture.DragThresholdPx <= 0 {
		c.Gesture.DragThresholdPx = def.Gesture.DragThresholdPx
	}
	if c.Gesture.CreateSnapMinutes <= 0 {
		c.Gesture.CreateSnapMinutes = def.Gesture.CreateSnapMinutes
	}
	if c.Gesture.MoveSnapMinutes <= 0 {
		c.Gesture.MoveSnapMinutes = def.Gesture.MoveSnapMinutes
	}
	if c.Log.Path == "" {
		c.Log.Path = def.Log.Path
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}
