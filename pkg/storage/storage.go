// Package storage provides the object store that holds submission results.
// A local filesystem provider serves single-machine sessions; an Azure Blob
// Storage provider serves deployments where results live off-host.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/JaimeStill/pdfdesk/pkg/lifecycle"
)

// Object is a readable stored object. The caller must close Body.
type Object struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
}

// System stores, streams, and deletes objects by key.
type System interface {
	// Start registers startup and shutdown hooks for the backing store.
	Start(lc *lifecycle.Coordinator) error
	// Upload streams data to key with the specified content type.
	Upload(ctx context.Context, key string, reader io.Reader, contentType string) error
	// Download opens the object at key. Returns ErrNotFound if it does not exist.
	Download(ctx context.Context, key string) (*Object, error)
	// Delete removes the object at key. Returns ErrNotFound if it does not exist.
	Delete(ctx context.Context, key string) error
}

// New creates the storage system selected by cfg.Provider.
// Backends are configured but not contacted until Start.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	logger = logger.With("system", "storage", "provider", cfg.Provider)

	switch cfg.Provider {
	case ProviderLocal:
		return newLocal(cfg.Root, logger), nil
	case ProviderAzure:
		return newAzure(cfg, logger)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
}

func validateKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if strings.Contains(key, "..") {
		return ErrInvalidKey
	}
	return nil
}
