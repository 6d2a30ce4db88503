package results

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/pdfdesk/pkg/handlers"
	"github.com/JaimeStill/pdfdesk/pkg/routes"
)

// Handler serves live results from a set of viewers for inline preview and
// download. Revoked handles resolve to 404.
type Handler struct {
	viewers []*Viewer
	logger  *slog.Logger
}

// NewHandler creates a Handler over the given viewers.
func NewHandler(logger *slog.Logger, viewers ...*Viewer) *Handler {
	return &Handler{
		viewers: viewers,
		logger:  logger.With("handler", "results"),
	}
}

// Routes returns the route group for result endpoints. Patterns are relative
// to the module prefix.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{id}", Handler: h.Preview},
			{Method: "GET", Pattern: "/{id}/download", Handler: h.Download},
		},
	}
}

// Preview serves the result inline.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, handlers.Inline)
}

// Download serves the result as an attachment named after the workflow.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, handlers.Attachment)
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request, disp handlers.Disposition) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusNotFound, ErrNotFound)
		return
	}

	for _, v := range h.viewers {
		obj, handle, err := v.OpenID(r.Context(), id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
			return
		}
		defer obj.Body.Close()

		if err := handlers.RespondFile(w, obj.Body, handle.ContentType, handle.Filename, obj.ContentLength, disp); err != nil {
			h.logger.Warn("result stream interrupted", "id", id, "error", err)
		}
		return
	}

	handlers.RespondError(w, h.logger, http.StatusNotFound, ErrNotFound)
}
