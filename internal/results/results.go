// Package results owns the live result of a workflow: a revocable handle to
// content returned by the processing endpoint, exposed for preview and download.
package results

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ContentType is the implied type of every published result.
const ContentType = "application/pdf"

var (
	// ErrNoResult indicates the viewer holds no live handle.
	ErrNoResult = errors.New("no result available")
	// ErrNotFound indicates a handle that was revoked or never existed.
	ErrNotFound = errors.New("result not found")
	// ErrClosed indicates the viewer has been torn down.
	ErrClosed = errors.New("result viewer closed")
)

// Handle is a revocable reference to stored result content.
type Handle struct {
	ID          uuid.UUID `json:"id"`
	Key         string    `json:"key"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}

// Ref returns the local reference path of the handle, relative to a preview server.
func (h Handle) Ref() string {
	return "/results/" + h.ID.String()
}

func storageKey(id uuid.UUID, filename string) string {
	return fmt.Sprintf("results/%s/%s", id, filename)
}
