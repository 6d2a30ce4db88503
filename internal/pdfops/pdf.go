package pdfops

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

func (s *system) Merge(ctx context.Context, parts []Part, w io.Writer) error {
	if len(parts) == 0 {
		return ErrNoFiles
	}
	if len(parts) < 2 {
		return ErrTooFew
	}

	docs := make([]io.ReadSeeker, 0, len(parts))
	for _, p := range parts {
		if err := ctx.Err(); err != nil {
			return err
		}

		data, err := s.asPDF(p)
		if err != nil {
			return err
		}
		docs = append(docs, bytes.NewReader(data))
	}

	// inputs that need an open password fail to read with ErrWrongPassword
	if err := api.MergeRaw(docs, w, false, model.NewDefaultConfiguration()); err != nil {
		if errors.Is(err, pdfcpu.ErrWrongPassword) {
			return ErrLocked
		}
		return fmt.Errorf("merge: %w", err)
	}

	s.logger.Info("merge complete", "parts", len(parts))
	return nil
}

func (s *system) Unlock(ctx context.Context, part Part, password string, w io.Writer) error {
	if len(part.Data) == 0 {
		return ErrNoFile
	}
	if password == "" {
		return ErrNoPassword
	}

	var out bytes.Buffer
	err := decrypt(part.Data, password, &out)
	if errors.Is(err, pdfcpu.ErrWrongPassword) {
		// owner-only protection opens without a user password
		out.Reset()
		err = decrypt(part.Data, "", &out)
		if err == nil {
			s.logger.Info("unlock without open password", "filename", part.Filename)
		}
	}

	switch {
	case err == nil:
	case isNotEncrypted(err):
		s.logger.Info("unlock passthrough", "filename", part.Filename)
		_, err = w.Write(part.Data)
		return err
	case errors.Is(err, pdfcpu.ErrWrongPassword):
		return ErrWrongPassword
	default:
		return fmt.Errorf("unlock %s: %w", part.Filename, err)
	}

	if _, err := out.WriteTo(w); err != nil {
		return err
	}
	s.logger.Info("unlock complete", "filename", part.Filename)
	return nil
}

// asPDF returns part as PDF bytes, importing images onto a fresh A4 page.
func (s *system) asPDF(p Part) ([]byte, error) {
	if isPDF(p) {
		return p.Data, nil
	}

	var out bytes.Buffer
	imgs := []io.Reader{bytes.NewReader(p.Data)}
	if err := api.ImportImages(nil, &out, imgs, pdfcpu.DefaultImportConfig(), model.NewDefaultConfiguration()); err != nil {
		s.logger.Warn("image import failed", "filename", p.Filename, "error", err)
		return nil, fmt.Errorf("%w: %s", ErrUnreadable, p.Filename)
	}
	return out.Bytes(), nil
}

func isPDF(p Part) bool {
	if strings.EqualFold(filepath.Ext(p.Filename), ".pdf") {
		return true
	}
	return http.DetectContentType(p.Data) == "application/pdf"
}

func decrypt(data []byte, password string, w io.Writer) error {
	conf := model.NewDefaultConfiguration()
	conf.UserPW = password
	conf.OwnerPW = password
	return api.Decrypt(bytes.NewReader(data), w, conf)
}

// isNotEncrypted matches the decrypt refusal for plain input, which pdfcpu
// reports without a sentinel.
func isNotEncrypted(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "not encrypted")
}
