package config

import (
	"fmt"
	"net/url"
	"os"
	"time"
)

const (
	EnvClientBaseURL     = "PDFDESK_CLIENT_BASE_URL"
	EnvClientTimeout     = "PDFDESK_CLIENT_TIMEOUT"
	EnvClientPreviewAddr = "PDFDESK_CLIENT_PREVIEW_ADDR"
)

// ClientConfig holds the settings used by the pdfdesk client to reach the
// processing endpoint and serve result previews.
type ClientConfig struct {
	BaseURL     string `toml:"base_url"`
	Timeout     string `toml:"timeout"`
	PreviewAddr string `toml:"preview_addr"`
}

// TimeoutDuration returns Timeout as a time.Duration. Zero means no timeout.
func (c *ClientConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ClientConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ClientConfig) Merge(overlay *ClientConfig) {
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.PreviewAddr != "" {
		c.PreviewAddr = overlay.PreviewAddr
	}
}

func (c *ClientConfig) loadDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "http://localhost:8080"
	}
	if c.Timeout == "" {
		c.Timeout = "0s"
	}
	if c.PreviewAddr == "" {
		c.PreviewAddr = "127.0.0.1:8081"
	}
}

func (c *ClientConfig) loadEnv() {
	if v := os.Getenv(EnvClientBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvClientTimeout); v != "" {
		c.Timeout = v
	}
	if v := os.Getenv(EnvClientPreviewAddr); v != "" {
		c.PreviewAddr = v
	}
}

func (c *ClientConfig) validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid base_url: %q", c.BaseURL)
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if d < 0 {
		return fmt.Errorf("invalid timeout: %s is negative", c.Timeout)
	}
	return nil
}
