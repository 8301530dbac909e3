package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config is the host-side configuration of the watchface.
type Config struct {
	Width  int
	Height int
	Scale  int

	BatterySource string
	SimInterval   time.Duration

	Ordinals string
}

const (
	defaultConfigPath = "~/.config/watchface/config.toml"

	defaultWidth         = 144
	defaultHeight        = 168
	defaultScale         = 2
	defaultBatterySource = "upower"
	defaultSimInterval   = time.Minute
	defaultOrdinals      = "last-digit"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Width:         defaultWidth,
		Height:        defaultHeight,
		Scale:         defaultScale,
		BatterySource: defaultBatterySource,
		SimInterval:   defaultSimInterval,
		Ordinals:      defaultOrdinals,
	}
}

type rawConfig struct {
	Display struct {
		Width  int `toml:"width"`
		Height int `toml:"height"`
	} `toml:"display"`
	Window struct {
		Scale int `toml:"scale"`
	} `toml:"window"`
	Battery struct {
		Source      string `toml:"source"`
		SimInterval string `toml:"sim_interval"`
	} `toml:"battery"`
	Date struct {
		Ordinals string `toml:"ordinals"`
	} `toml:"date"`
}

// Load reads the TOML config at path (the default path when empty). A missing
// file is not an error; defaults are returned instead.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if raw.Display.Width > 0 {
		cfg.Width = raw.Display.Width
	}
	if raw.Display.Height > 0 {
		cfg.Height = raw.Display.Height
	}
	if raw.Window.Scale > 0 {
		cfg.Scale = raw.Window.Scale
	}

	if src := strings.ToLower(strings.TrimSpace(raw.Battery.Source)); src != "" {
		if src != "upower" && src != "sim" {
			return Config{}, fmt.Errorf("parse config: battery.source %q: want \"upower\" or \"sim\"", src)
		}
		cfg.BatterySource = src
	}
	if iv := strings.TrimSpace(raw.Battery.SimInterval); iv != "" {
		d, err := time.ParseDuration(iv)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: battery.sim_interval: %w", err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("parse config: battery.sim_interval must be positive, got %s", d)
		}
		cfg.SimInterval = d
	}

	if o := strings.ToLower(strings.TrimSpace(raw.Date.Ordinals)); o != "" {
		cfg.Ordinals = o
	}

	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
