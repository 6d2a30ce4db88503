package results

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/pdfdesk/pkg/storage"
)

// Viewer holds at most one live Handle per workflow instance. Publishing a
// new result revokes the previous one; Release and Close revoke the current
// one. A handle is detached under the lock before its content is deleted, so
// each handle is revoked exactly once.
type Viewer struct {
	store    storage.System
	filename string
	logger   *slog.Logger

	mu      sync.Mutex
	current *Handle
	closed  bool
}

// NewViewer creates a Viewer that suggests filename for downloads.
func NewViewer(store storage.System, filename string, logger *slog.Logger) *Viewer {
	return &Viewer{
		store:    store,
		filename: filename,
		logger:   logger.With("system", "results", "filename", filename),
	}
}

// Filename returns the suggested download filename.
func (v *Viewer) Filename() string {
	return v.filename
}

// Publish stores body as the new live result and revokes any previous one.
func (v *Viewer) Publish(ctx context.Context, body io.Reader) (Handle, error) {
	id := uuid.New()
	key := storageKey(id, v.filename)

	counter := &countingReader{r: body}
	if err := v.store.Upload(ctx, key, counter, ContentType); err != nil {
		return Handle{}, fmt.Errorf("publish result: %w", err)
	}

	h := Handle{
		ID:          id,
		Key:         key,
		Filename:    v.filename,
		ContentType: ContentType,
		Size:        counter.n,
		CreatedAt:   time.Now().UTC(),
	}

	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		v.revoke(ctx, &h)
		return Handle{}, ErrClosed
	}
	previous := v.current
	v.current = &h
	v.mu.Unlock()

	if previous != nil {
		v.revoke(ctx, previous)
	}

	v.logger.Info("result published", "id", h.ID, "size", h.Size)
	return h, nil
}

// Current returns the live handle, if any.
func (v *Viewer) Current() (Handle, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.current == nil {
		return Handle{}, false
	}
	return *v.current, true
}

// Release revokes the live handle. Releasing an empty viewer is a no-op.
func (v *Viewer) Release(ctx context.Context) error {
	v.mu.Lock()
	h := v.current
	v.current = nil
	v.mu.Unlock()

	if h == nil {
		return nil
	}
	return v.revoke(ctx, h)
}

// Close releases the live handle and refuses later publishes. Safe to call
// more than once.
func (v *Viewer) Close(ctx context.Context) error {
	v.mu.Lock()
	v.closed = true
	v.mu.Unlock()
	return v.Release(ctx)
}

// Open streams the live result for preview. The caller closes the body.
func (v *Viewer) Open(ctx context.Context) (*storage.Object, Handle, error) {
	h, ok := v.Current()
	if !ok {
		return nil, Handle{}, ErrNoResult
	}
	return v.open(ctx, h)
}

// OpenID streams the result only while id is the live handle.
func (v *Viewer) OpenID(ctx context.Context, id uuid.UUID) (*storage.Object, Handle, error) {
	h, ok := v.Current()
	if !ok || h.ID != id {
		return nil, Handle{}, ErrNotFound
	}
	return v.open(ctx, h)
}

// SaveTo writes the live result into dir under the suggested filename and
// returns the written path.
func (v *Viewer) SaveTo(ctx context.Context, dir string) (string, error) {
	obj, h, err := v.Open(ctx)
	if err != nil {
		return "", err
	}
	defer obj.Body.Close()

	path := filepath.Join(dir, h.Filename)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("save result: %w", err)
	}

	if _, err := io.Copy(f, obj.Body); err != nil {
		f.Close()
		return "", fmt.Errorf("save result: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("save result: %w", err)
	}

	v.logger.Info("result saved", "id", h.ID, "path", path)
	return path, nil
}

func (v *Viewer) open(ctx context.Context, h Handle) (*storage.Object, Handle, error) {
	obj, err := v.store.Download(ctx, h.Key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, Handle{}, ErrNotFound
		}
		return nil, Handle{}, fmt.Errorf("open result: %w", err)
	}
	return obj, h, nil
}

func (v *Viewer) revoke(ctx context.Context, h *Handle) error {
	// revocation must complete even when the caller's context is done
	ctx = context.WithoutCancel(ctx)

	if err := v.store.Delete(ctx, h.Key); err != nil && !errors.Is(err, storage.ErrNotFound) {
		v.logger.Warn("result revoke failed", "id", h.ID, "error", err)
		return fmt.Errorf("revoke result %s: %w", h.ID, err)
	}
	v.logger.Info("result revoked", "id", h.ID)
	return nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
