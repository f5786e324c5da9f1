package utils

import (
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Upload is a file received through a multipart form.
type Upload struct {
	Name    string
	Content []byte
}

// ReadUpload parses a multipart request and returns the named file part.
// It returns nil without error when the form carries no file.
func ReadUpload(w http.ResponseWriter, r *http.Request, field string, maxBytes int64) (*Upload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		return nil, fmt.Errorf("parse multipart form: %w", err)
	}

	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read form file %q: %w", field, err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read upload %q: %w", header.Filename, err)
	}

	return &Upload{Name: header.Filename, Content: content}, nil
}
