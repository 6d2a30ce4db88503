package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/pdfdesk/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvPdfdeskEnv             = "PDFDESK_ENV"
	EnvPdfdeskConfigDir       = "PDFDESK_CONFIG_DIR"
	EnvPdfdeskShutdownTimeout = "PDFDESK_SHUTDOWN_TIMEOUT"
	EnvPdfdeskVersion         = "PDFDESK_VERSION"
)

var storageEnv = &storage.Env{
	Provider:         "PDFDESK_STORAGE_PROVIDER",
	Root:             "PDFDESK_STORAGE_ROOT",
	ContainerName:    "PDFDESK_STORAGE_CONTAINER_NAME",
	ConnectionString: "PDFDESK_STORAGE_CONNECTION_STRING",
	AccountURL:       "PDFDESK_STORAGE_ACCOUNT_URL",
}

// Config is the root configuration shared by the pdfdesk client and the
// processing server. Each binary reads the sections it needs.
type Config struct {
	Server          ServerConfig   `toml:"server"`
	API             APIConfig      `toml:"api"`
	Client          ClientConfig   `toml:"client"`
	Storage         storage.Config `toml:"storage"`
	ShutdownTimeout string         `toml:"shutdown_timeout"`
	Version         string         `toml:"version"`
}

// Env returns the PDFDESK_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvPdfdeskEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads configuration from PDFDESK_CONFIG_DIR, or the working directory
// when unset.
func Load() (*Config, error) {
	return LoadDir(configDir())
}

// LoadDir reads the base config in dir (if present), applies any environment
// overlay, and finalizes all values. If no config.toml exists, defaults and
// environment variables provide all configuration.
func LoadDir(dir string) (*Config, error) {
	cfg := &Config{}
	base := filepath.Join(dir, BaseConfigFile)

	if _, err := os.Stat(base); err == nil {
		loaded, err := load(base)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(dir); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.API.Merge(&overlay.API)
	c.Client.Merge(&overlay.Client)
	c.Storage.Merge(&overlay.Storage)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Client.Finalize(); err != nil {
		return fmt.Errorf("client: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	return nil
}
func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvPdfdeskShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvPdfdeskVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath(dir string) string {
	if env := os.Getenv(EnvPdfdeskEnv); env != "" {
		path := filepath.Join(dir, fmt.Sprintf(OverlayConfigPattern, env))
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func configDir() string {
	if dir := os.Getenv(EnvPdfdeskConfigDir); dir != "" {
		return dir
	}
	return "."
}
