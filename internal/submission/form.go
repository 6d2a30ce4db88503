package submission

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/textproto"
	"path/filepath"
	"strings"

	"github.com/JaimeStill/pdfdesk/internal/staging"
)

type part struct {
	field    string
	filename string
	blob     staging.Blob
	value    string
}

// Form is an ordered multipart payload. Parts are written in the order added,
// which the merge endpoint uses as page order.
type Form struct {
	parts []part
}

// AddFile appends a file part read from blob at encode time.
func (f *Form) AddFile(field, filename string, blob staging.Blob) {
	f.parts = append(f.parts, part{field: field, filename: filename, blob: blob})
}

// AddField appends a plain value part.
func (f *Form) AddField(field, value string) {
	f.parts = append(f.parts, part{field: field, value: value})
}

// Encode serializes the form and returns the body with its content type.
func (f *Form) Encode() (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, p := range f.parts {
		if p.blob == nil {
			if err := w.WriteField(p.field, p.value); err != nil {
				return nil, "", fmt.Errorf("write field %s: %w", p.field, err)
			}
			continue
		}
		if err := writeFile(w, p); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

func writeFile(w *multipart.Writer, p part) error {
	src, err := p.blob.Open()
	if err != nil {
		return fmt.Errorf("read %s: %w", p.filename, err)
	}
	defer src.Close()

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, escapeQuotes(p.field), escapeQuotes(p.filename)))
	h.Set("Content-Type", partContentType(p.filename))

	dst, err := w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("create part %s: %w", p.filename, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("read %s: %w", p.filename, err)
	}
	return nil
}

func partContentType(filename string) string {
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); t != "" {
		return t
	}
	return "application/octet-stream"
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
