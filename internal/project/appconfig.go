package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/piwi3910/isoforge/internal/model"
)

// DefaultConfigDir returns the default directory for application data.
// On all platforms this is ~/.isoforge/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".isoforge")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// DefaultPalettePath returns the default path for the color palette file.
func DefaultPalettePath() string {
	return filepath.Join(DefaultConfigDir(), "palette.yaml")
}

// SaveAppConfig persists an AppConfig to the given path as JSON.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config model.AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadAppConfig reads an AppConfig from the given path. Fields missing
// from the file keep their defaults and out-of-range values are repaired.
// If the file does not exist, it returns DefaultAppConfig with no error.
func LoadAppConfig(path string) (model.AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.DefaultAppConfig(), nil
		}
		return model.AppConfig{}, fmt.Errorf("failed to read config: %w", err)
	}
	config := model.DefaultAppConfig()
	if err := json.Unmarshal(data, &config); err != nil {
		return model.AppConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return config.Normalize(), nil
}

// SavePalette writes p to path as YAML.
func SavePalette(path string, p model.Palette) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create palette directory: %w", err)
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal palette: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadPalette reads a YAML palette. A missing file, or one without any
// usable swatch, yields the built-in palette.
func LoadPalette(path string) (model.Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.DefaultPalette(), nil
		}
		return model.Palette{}, fmt.Errorf("failed to read palette: %w", err)
	}
	var p model.Palette
	if err := yaml.Unmarshal(data, &p); err != nil {
		return model.Palette{}, fmt.Errorf("failed to parse palette: %w", err)
	}
	p = p.Valid()
	if len(p.Swatches) == 0 {
		return model.DefaultPalette(), nil
	}
	return p, nil
}
