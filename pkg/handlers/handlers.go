// Package handlers provides response helpers shared by HTTP handlers.
package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
)

// ErrorResponse is the JSON body written for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RespondJSON writes data as JSON with the given status code.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondError logs err and writes it as {"error": "..."} with the given status.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	logger.Error("handler error", "error", err, "status", status)
	RespondJSON(w, status, ErrorResponse{Error: err.Error()})
}

// Disposition selects how a client should present a served file.
type Disposition string

// Dispositions recognized by RespondFile.
const (
	Inline     Disposition = "inline"
	Attachment Disposition = "attachment"
)

// RespondFile streams body as contentType with a Content-Disposition naming filename.
// A non-positive size omits Content-Length.
func RespondFile(w http.ResponseWriter, body io.Reader, contentType, filename string, size int64, disp Disposition) error {
	h := w.Header()
	h.Set("Content-Type", contentType)
	h.Set("Content-Disposition", fmt.Sprintf("%s; filename=%q", disp, filename))
	if size > 0 {
		h.Set("Content-Length", strconv.FormatInt(size, 10))
	}
	w.WriteHeader(http.StatusOK)
	_, err := io.Copy(w, body)
	return err
}
