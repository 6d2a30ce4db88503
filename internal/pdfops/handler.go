package pdfops

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/JaimeStill/pdfdesk/pkg/handlers"
	"github.com/JaimeStill/pdfdesk/pkg/routes"
)

// ContentType of every successful response.
const ContentType = "application/pdf"

// Handler provides the HTTP endpoints for PDF processing.
type Handler struct {
	sys           System
	logger        *slog.Logger
	maxUploadSize int64
}

// NewHandler creates a Handler with the given system, logger, and upload size limit.
func NewHandler(sys System, logger *slog.Logger, maxUploadSize int64) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "pdfops"),
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the route group definition for processing endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/merge", Handler: h.Merge},
			{Method: "POST", Pattern: "/unlock", Handler: h.Unlock},
		},
	}
}

// Merge combines the uploaded "files" parts, in order, into one PDF.
func (h *Handler) Merge(w http.ResponseWriter, r *http.Request) {
	if !h.parse(w, r) {
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNoFiles)
		return
	}

	parts := make([]Part, 0, len(headers))
	for _, fh := range headers {
		p, err := readPart(fh)
		if err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
			return
		}
		parts = append(parts, p)
	}

	h.respond(w, r, "merged", func(out io.Writer) error {
		return h.sys.Merge(r.Context(), parts, out)
	})
}

// Unlock removes password protection from the uploaded "file" part.
func (h *Handler) Unlock(w http.ResponseWriter, r *http.Request) {
	if !h.parse(w, r) {
		return
	}

	headers := r.MultipartForm.File["file"]
	if len(headers) == 0 {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNoFile)
		return
	}

	password := r.FormValue("password")
	if password == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNoPassword)
		return
	}

	part, err := readPart(headers[0])
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	h.respond(w, r, "unlocked", func(out io.Writer) error {
		return h.sys.Unlock(r.Context(), part, password, out)
	})
}

func (h *Handler) parse(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrTooLarge)
			return false
		}
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("invalid multipart form: %w", err))
		return false
	}
	return true
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, stem string, run func(io.Writer) error) {
	var out bytes.Buffer
	if err := run(&out); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	filename := fmt.Sprintf("%s_%s.pdf", stem, time.Now().Format(time.DateOnly))
	if err := handlers.RespondFile(w, &out, ContentType, filename, int64(out.Len()), handlers.Attachment); err != nil {
		h.logger.Warn("response write failed", "uri", r.URL.RequestURI(), "error", err)
	}
}

func readPart(fh *multipart.FileHeader) (Part, error) {
	f, err := fh.Open()
	if err != nil {
		return Part{}, fmt.Errorf("%w: %s", ErrUnreadable, fh.Filename)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return Part{}, fmt.Errorf("%w: %s", ErrUnreadable, fh.Filename)
	}

	return Part{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
