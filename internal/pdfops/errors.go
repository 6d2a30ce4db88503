package pdfops

import (
	"errors"
	"net/http"
)

// Domain errors for PDF operations. Messages are returned to clients verbatim.
var (
	ErrNoFiles       = errors.New("No files provided")
	ErrTooFew        = errors.New("At least two files are required to merge")
	ErrLocked        = errors.New("One of the files is password-protected")
	ErrNoFile        = errors.New("No file provided")
	ErrNoPassword    = errors.New("No password provided")
	ErrWrongPassword = errors.New("Incorrect password")
	ErrTooLarge      = errors.New("Upload exceeds maximum size")
	ErrUnreadable    = errors.New("Unsupported or unreadable file")
)

// MapHTTPStatus maps PDF domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrWrongPassword):
		return http.StatusUnauthorized
	case errors.Is(err, ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrNoFiles),
		errors.Is(err, ErrTooFew),
		errors.Is(err, ErrLocked),
		errors.Is(err, ErrNoFile),
		errors.Is(err, ErrNoPassword),
		errors.Is(err, ErrUnreadable):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
