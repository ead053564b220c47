// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// legacyConfigPath is the path to the configuration file used in previous versions.
	legacyConfigPath = "config.json"
	// DefaultEnvDir is the runtime directory the launcher manages when the
	// config omits one.
	DefaultEnvDir = "tux_ai_venv"
	// defaultDataDir holds models, uploads, and other application data.
	defaultDataDir = "data"
	// defaultRequirementsFile is the dependency manifest the installer and
	// doctor consume.
	defaultRequirementsFile = "requirements.txt"
	// defaultModelMode selects which simulated model variant loads first.
	defaultModelMode = "full"
	// defaultReplyDelay paces the simulated streaming of canned replies.
	defaultReplyDelay = 40 * time.Millisecond
)

// Config represents the top-level application configuration.
type Config struct {
	EnvDir           string `json:"envDir,omitempty"`
	DataDir          string `json:"dataDir,omitempty"`
	RequirementsFile string `json:"requirementsFile,omitempty"`
	ModelMode        string `json:"modelMode,omitempty"`
	ReplyDelayMS     int    `json:"replyDelayMs,omitempty"`
	Debug            bool   `json:"debug"`
	LogFile          string `json:"logFile,omitempty"`
	ConfigPath       string `json:"-"`
}

// EnvRoot returns the absolute path of the isolated runtime directory,
// applying the default when the config omits one.
func (c Config) EnvRoot() (string, error) {
	dir := strings.TrimSpace(c.EnvDir)
	if dir == "" {
		dir = DefaultEnvDir
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve env dir %q: %w", dir, err)
	}
	return abs, nil
}

// DataDirPath returns the application data directory, applying a default if not set.
func (c Config) DataDirPath() string {
	if d := strings.TrimSpace(c.DataDir); d != "" {
		return d
	}
	return defaultDataDir
}

// ModelsDir returns the directory holding the simulated model variants.
func (c Config) ModelsDir() string {
	return filepath.Join(c.DataDirPath(), "models")
}

// UploadsDir returns the directory for user-uploaded files.
func (c Config) UploadsDir() string {
	return filepath.Join(c.DataDirPath(), "uploads")
}

// RequirementsPath returns the dependency manifest path, applying a default if not set.
func (c Config) RequirementsPath() string {
	if p := strings.TrimSpace(c.RequirementsFile); p != "" {
		return p
	}
	return defaultRequirementsFile
}

// DefaultModelMode returns the model mode loaded at startup.
func (c Config) DefaultModelMode() string {
	if m := strings.TrimSpace(c.ModelMode); m != "" {
		return m
	}
	return defaultModelMode
}

// ReplyDelay returns the pacing between simulated reply chunks.
func (c Config) ReplyDelay() time.Duration {
	if c.ReplyDelayMS <= 0 {
		return defaultReplyDelay
	}
	return time.Duration(c.ReplyDelayMS) * time.Millisecond
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return filepath.Join("logs", "tuxlaunch.log")
}

// Load reads the application configuration from the specified path, with
// fallback to a legacy path. The raw document is schema-validated before it
// is decoded so a malformed config fails with a field-level diagnostic
// instead of a half-populated struct.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err == nil {
		config.ConfigPath = path
		return config, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		if path == DefaultConfigPath {
			config, legacyErr := loadFromPath(legacyConfigPath)
			if legacyErr == nil {
				config.ConfigPath = legacyConfigPath
				return config, nil
			}
			if errors.Is(legacyErr, os.ErrNotExist) {
				return Config{}, fmt.Errorf("no configuration file found (searched %q and %q): %w", DefaultConfigPath, legacyConfigPath, os.ErrNotExist)
			}
			return Config{}, fmt.Errorf("could not read config file %q: %w", legacyConfigPath, legacyErr)
		}
		return Config{}, fmt.Errorf("no configuration file found at %q: %w", path, os.ErrNotExist)
	}

	return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
}

// loadFromPath is a helper function that loads the configuration from a specific file path.
func loadFromPath(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	if err := ValidateDocument(data); err != nil {
		return Config{}, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return Config{}, err
	}
	return config, nil
}
