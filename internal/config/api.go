package config

import (
	"fmt"
	"os"

	"github.com/JaimeStill/pdfdesk/pkg/formatting"
	"github.com/JaimeStill/pdfdesk/pkg/middleware"
	"github.com/JaimeStill/pdfdesk/pkg/openapi"
)

const (
	EnvAPIBasePath      = "PDFDESK_API_BASE_PATH"
	EnvAPIMaxUploadSize = "PDFDESK_API_MAX_UPLOAD_SIZE"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "PDFDESK_CORS_ENABLED",
	Origins:          "PDFDESK_CORS_ORIGINS",
	AllowedMethods:   "PDFDESK_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "PDFDESK_CORS_ALLOWED_HEADERS",
	AllowCredentials: "PDFDESK_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "PDFDESK_CORS_MAX_AGE",
}

var openapiEnv = &openapi.ConfigEnv{
	Title:       "PDFDESK_OPENAPI_TITLE",
	Description: "PDFDESK_OPENAPI_DESCRIPTION",
}

// APIConfig holds processing API routing, upload limit, and CORS settings.
type APIConfig struct {
	BasePath      string                `toml:"base_path"`
	MaxUploadSize string                `toml:"max_upload_size"`
	CORS          middleware.CORSConfig `toml:"cors"`
	OpenAPI       openapi.Config        `toml:"openapi"`
}

// MaxUploadSizeBytes returns MaxUploadSize as a byte count.
func (c *APIConfig) MaxUploadSizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxUploadSize)
	if err != nil {
		return 50 * 1024 * 1024 // 50MB fallback
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS and OpenAPI configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if _, err := formatting.ParseBytes(c.MaxUploadSize); err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.OpenAPI.Finalize(openapiEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}

	c.CORS.Merge(&overlay.CORS)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "50MB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv(EnvAPIBasePath); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(EnvAPIMaxUploadSize); v != "" {
		c.MaxUploadSize = v
	}
}
