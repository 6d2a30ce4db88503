// Package pdfops implements the processing endpoints: merging PDFs and images
// into one document and removing password protection from a PDF.
package pdfops

import (
	"context"
	"io"
	"log/slog"
)

// Part is one uploaded file.
type Part struct {
	Filename    string
	ContentType string
	Data        []byte
}

// System defines the public contract for PDF processing.
type System interface {
	Handler(maxUploadSize int64) *Handler

	// Merge writes parts, in order, as a single PDF to w. Image parts are
	// placed on their own A4 page.
	Merge(ctx context.Context, parts []Part, w io.Writer) error

	// Unlock writes part with its encryption removed to w. An unencrypted
	// PDF is written back unchanged.
	Unlock(ctx context.Context, part Part, password string, w io.Writer) error
}

type system struct {
	logger *slog.Logger
}

// New creates the PDF processing system.
func New(logger *slog.Logger) System {
	return &system{
		logger: logger.With("system", "pdfops"),
	}
}

func (s *system) Handler(maxUploadSize int64) *Handler {
	return NewHandler(s, s.logger, maxUploadSize)
}
