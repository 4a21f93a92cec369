// Copyright File Chooser Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Import modes
const (
	ImportModeMove = "move" // copy into owned storage, then discard the original
	ImportModeCopy = "copy" // leave the original in place
)

// Import failure policies
const (
	OnFailureExclude = "exclude"
	OnFailureInclude = "include"
)

// Config represents the main configuration
type Config struct {
	Logging LoggingConfig     `yaml:"logging"`
	Storage StorageConfig     `yaml:"storage"`
	Import  ImportConfig      `yaml:"import"`
	Picker  PickerConfig      `yaml:"picker"`
	Types   []TypeDeclaration `yaml:"types"`
}

// LoggingConfig controls the process logger
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "json" or "text"
}

// StorageConfig selects the owned storage backend
type StorageConfig struct {
	Type    string        `yaml:"type"`     // "filesystem" (default)
	BaseDir string        `yaml:"base_dir"` // defaults to <tmp>/filechooser
	MaxAge  time.Duration `yaml:"max_age"`  // purge horizon for -purge
}

// ImportConfig controls the import pipeline
type ImportConfig struct {
	Mode        string        `yaml:"mode"`       // "move" or "copy"
	OnFailure   string        `yaml:"on_failure"` // "exclude" or "include"
	LockTimeout time.Duration `yaml:"lock_timeout"`
}

// PickerConfig selects and tunes the picker surface
type PickerConfig struct {
	Type       string `yaml:"type"` // "terminal" or "static"
	StartDir   string `yaml:"start_dir"`
	ShowHidden bool   `yaml:"show_hidden"`
	Height     int    `yaml:"height"`
}

// TypeDeclaration adds a file type to the type registry.
type TypeDeclaration struct {
	Identifier string   `yaml:"identifier"`
	MIMETypes  []string `yaml:"mime_types"`
	Extensions []string `yaml:"extensions"`
	ConformsTo []string `yaml:"conforms_to"`
}

// Load loads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns default configuration
func Default() *Config {
	cfg := &Config{}
	applyEnv(cfg)
	applyDefaults(cfg)
	return cfg
}

// LoadOrDefault loads path, or the environment-adjusted defaults when path
// is empty. Both are validated.
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the pipeline cannot act on.
func (c *Config) Validate() error {
	switch c.Import.Mode {
	case ImportModeMove, ImportModeCopy:
	default:
		return fmt.Errorf("invalid import.mode %q (want %q or %q)", c.Import.Mode, ImportModeMove, ImportModeCopy)
	}
	switch c.Import.OnFailure {
	case OnFailureExclude, OnFailureInclude:
	default:
		return fmt.Errorf("invalid import.on_failure %q (want %q or %q)", c.Import.OnFailure, OnFailureExclude, OnFailureInclude)
	}
	for i, td := range c.Types {
		if td.Identifier == "" {
			return fmt.Errorf("types[%d]: identifier is required", i)
		}
	}
	return nil
}

// StorageParams flattens the storage section for the backend registry.
func (c *Config) StorageParams() map[string]string {
	return map[string]string{
		"base_dir": c.Storage.BaseDir,
	}
}

// PickerParams flattens the picker section for the backend registry.
func (c *Config) PickerParams() map[string]string {
	return map[string]string{
		"start_dir":   c.Picker.StartDir,
		"show_hidden": fmt.Sprint(c.Picker.ShowHidden),
		"height":      fmt.Sprint(c.Picker.Height),
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("CHOOSER_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("CHOOSER_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("CHOOSER_STORAGE_DIR"); v != "" {
		cfg.Storage.BaseDir = v
	}
	if v := os.Getenv("CHOOSER_PICKER"); v != "" {
		cfg.Picker.Type = v
	}
	if v := os.Getenv("CHOOSER_IMPORT_MODE"); v != "" {
		cfg.Import.Mode = v
	}
	if v := os.Getenv("CHOOSER_ON_FAILURE"); v != "" {
		cfg.Import.OnFailure = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Storage.Type == "" {
		cfg.Storage.Type = "filesystem"
	}
	if cfg.Storage.BaseDir == "" {
		cfg.Storage.BaseDir = filepath.Join(os.TempDir(), "filechooser")
	}
	if cfg.Storage.MaxAge == 0 {
		cfg.Storage.MaxAge = 24 * time.Hour
	}
	if cfg.Import.Mode == "" {
		cfg.Import.Mode = ImportModeMove
	}
	if cfg.Import.OnFailure == "" {
		cfg.Import.OnFailure = OnFailureExclude
	}
	if cfg.Import.LockTimeout == 0 {
		cfg.Import.LockTimeout = 5 * time.Second
	}
	if cfg.Picker.Type == "" {
		cfg.Picker.Type = "terminal"
	}
	if cfg.Picker.Height == 0 {
		cfg.Picker.Height = 20
	}
}
