package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/JaimeStill/pdfdesk/pkg/lifecycle"
)

// local keeps objects as files under root. Content types are held in memory:
// objects only live as long as the process that wrote them.
type local struct {
	root   string
	logger *slog.Logger

	mu    sync.RWMutex
	types map[string]string
}

func newLocal(root string, logger *slog.Logger) *local {
	return &local{
		root:   root,
		logger: logger,
		types:  make(map[string]string),
	}
}

func (l *local) Start(lc *lifecycle.Coordinator) error {
	if err := os.MkdirAll(l.root, 0o700); err != nil {
		return fmt.Errorf("create storage root: %w", err)
	}
	l.logger.Info("storage root ready", "root", l.root)

	lc.OnShutdown(func() error {
		l.mu.Lock()
		defer l.mu.Unlock()

		var errs []error
		for key := range l.types {
			p := l.path(key)
			if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
				errs = append(errs, err)
				continue
			}
			l.prune(filepath.Dir(p))
		}
		clear(l.types)
		l.logger.Info("storage objects released")
		return errors.Join(errs...)
	})

	return nil
}

func (l *local) Upload(ctx context.Context, key string, reader io.Reader, contentType string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	path := l.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("upload object %s: %w", key, err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("upload object %s: %w", key, err)
	}

	if _, err := io.Copy(f, reader); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("upload object %s: %w", key, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("upload object %s: %w", key, err)
	}

	l.mu.Lock()
	l.types[key] = contentType
	l.mu.Unlock()
	return nil
}

func (l *local) Download(ctx context.Context, key string) (*Object, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	f, err := os.Open(l.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("download object %s: %w", key, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("download object %s: %w", key, err)
	}

	l.mu.RLock()
	contentType := l.types[key]
	l.mu.RUnlock()
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &Object{
		Body:          f,
		ContentType:   contentType,
		ContentLength: info.Size(),
	}, nil
}

func (l *local) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	p := l.path(key)
	if err := os.Remove(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	l.prune(filepath.Dir(p))

	l.mu.Lock()
	delete(l.types, key)
	l.mu.Unlock()
	return nil
}

// prune removes directories emptied by a delete, stopping at the root.
func (l *local) prune(dir string) {
	root := filepath.Clean(l.root)
	for dir != root && strings.HasPrefix(dir, root+string(filepath.Separator)) {
		if err := os.Remove(dir); err != nil {
			return
		}
		dir = filepath.Dir(dir)
	}
}

func (l *local) path(key string) string {
	return filepath.Join(l.root, filepath.FromSlash(key))
}
