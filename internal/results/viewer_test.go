package results_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/JaimeStill/pdfdesk/internal/results"
	"github.com/JaimeStill/pdfdesk/pkg/lifecycle"
	"github.com/JaimeStill/pdfdesk/pkg/storage"
)

// recordingStore wraps a real store and counts deletes per key.
type recordingStore struct {
	storage.System
	mu      sync.Mutex
	deletes map[string]int
}

func (r *recordingStore) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	r.deletes[key]++
	r.mu.Unlock()
	return r.System.Delete(ctx, key)
}

func (r *recordingStore) count(key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.deletes[key]
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newStore(t *testing.T) *recordingStore {
	t.Helper()
	sys, err := storage.New(&storage.Config{Provider: storage.ProviderLocal, Root: t.TempDir()}, discard())
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	if err := sys.Start(lifecycle.New()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	return &recordingStore{System: sys, deletes: make(map[string]int)}
}

func TestPublishRevokesPreviousExactlyOnce(t *testing.T) {
	store := newStore(t)
	v := results.NewViewer(store, "merged.pdf", discard())
	ctx := context.Background()

	first, err := v.Publish(ctx, strings.NewReader("first"))
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	second, err := v.Publish(ctx, strings.NewReader("second"))
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	if n := store.count(first.Key); n != 1 {
		t.Errorf("first handle revocations: got %d, want 1", n)
	}
	if n := store.count(second.Key); n != 0 {
		t.Errorf("live handle revocations: got %d, want 0", n)
	}

	cur, ok := v.Current()
	if !ok || cur.ID != second.ID {
		t.Fatalf("Current() = %v, %v; want second handle", cur.ID, ok)
	}
	if cur.Size != int64(len("second")) {
		t.Errorf("size: got %d, want %d", cur.Size, len("second"))
	}

	if err := v.Close(ctx); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := v.Close(ctx); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
	if n := store.count(second.Key); n != 1 {
		t.Errorf("teardown revocations: got %d, want 1", n)
	}
	if n := store.count(first.Key); n != 1 {
		t.Errorf("superseded handle revoked again on teardown: got %d", n)
	}
}

func TestReleaseEmptyViewer(t *testing.T) {
	v := results.NewViewer(newStore(t), "merged.pdf", discard())
	if err := v.Release(context.Background()); err != nil {
		t.Errorf("Release() error = %v", err)
	}
	if _, _, err := v.Open(context.Background()); !errors.Is(err, results.ErrNoResult) {
		t.Errorf("Open() error = %v, want ErrNoResult", err)
	}
}

func TestPublishAfterCloseIsRevoked(t *testing.T) {
	store := newStore(t)
	v := results.NewViewer(store, "unlocked.pdf", discard())
	ctx := context.Background()

	v.Close(ctx)

	if _, err := v.Publish(ctx, strings.NewReader("late")); !errors.Is(err, results.ErrClosed) {
		t.Fatalf("Publish() error = %v, want ErrClosed", err)
	}
	if _, ok := v.Current(); ok {
		t.Error("closed viewer holds a live handle")
	}
}

func TestSaveToUsesSuggestedFilename(t *testing.T) {
	v := results.NewViewer(newStore(t), "unlocked.pdf", discard())
	ctx := context.Background()

	if _, err := v.Publish(ctx, strings.NewReader("%PDF-1.4 unlocked")); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	dir := t.TempDir()
	path, err := v.SaveTo(ctx, dir)
	if err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}
	if path != filepath.Join(dir, "unlocked.pdf") {
		t.Errorf("path: got %s", path)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "%PDF-1.4 unlocked" {
		t.Errorf("content: got %q", data)
	}
}

func TestHandlerServesLiveHandleOnly(t *testing.T) {
	merge := results.NewViewer(newStore(t), "merged.pdf", discard())
	unlock := results.NewViewer(newStore(t), "unlocked.pdf", discard())
	ctx := context.Background()

	old, _ := merge.Publish(ctx, strings.NewReader("old"))
	live, _ := merge.Publish(ctx, strings.NewReader("live"))

	h := results.NewHandler(discard(), merge, unlock)
	mux := http.NewServeMux()
	for _, route := range h.Routes().Routes {
		mux.HandleFunc(route.Method+" "+route.Pattern, route.Handler)
	}

	tests := []struct {
		name        string
		path        string
		wantStatus  int
		wantBody    string
		wantDispose string
	}{
		{"preview live", "/" + live.ID.String(), http.StatusOK, "live", `inline; filename="merged.pdf"`},
		{"download live", "/" + live.ID.String() + "/download", http.StatusOK, "live", `attachment; filename="merged.pdf"`},
		{"revoked handle", "/" + old.ID.String(), http.StatusNotFound, "", ""},
		{"unknown handle", "/" + uuid.NewString(), http.StatusNotFound, "", ""},
		{"malformed id", "/not-a-uuid", http.StatusNotFound, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status: got %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantBody != "" && rec.Body.String() != tt.wantBody {
				t.Errorf("body: got %q, want %q", rec.Body.String(), tt.wantBody)
			}
			if got := rec.Header().Get("Content-Disposition"); tt.wantDispose != "" && got != tt.wantDispose {
				t.Errorf("disposition: got %s, want %s", got, tt.wantDispose)
			}
		})
	}
}
