package services

import (
	"context"
	"io"
	"strings"

	"github.com/vytor/mediquiz/internal/errors"
	"github.com/vytor/mediquiz/internal/extract"
)

// Upload is one user-supplied file.
type Upload struct {
	Filename string
	Body     io.Reader
}

func checkUpload(field string, u Upload) error {
	if u.Body == nil || strings.TrimSpace(u.Filename) == "" {
		return errors.NewValidationError(field, "file is required")
	}
	if !extract.Supported(u.Filename) {
		return errors.NewValidationError(field, "unsupported file type: "+u.Filename)
	}
	return nil
}

// optionalText extracts an optional upload. A missing or unreadable file
// reads as "".
func optionalText(ctx context.Context, u *Upload) string {
	if u == nil || u.Body == nil || !extract.Supported(u.Filename) {
		return ""
	}
	return extract.Text(ctx, u.Filename, u.Body)
}
