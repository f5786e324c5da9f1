package chat

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// AllowedExtensions lists the file types accepted for upload, without dots.
var AllowedExtensions = []string{"csv", "log"}

// FileLabel is the visible turn recorded in place of an uploaded file.
func FileLabel(name string) string {
	return "File uploaded: " + name
}

// decodeUpload validates the extension and returns the content as text.
func decodeUpload(name string, content []byte) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	allowed := false
	for _, candidate := range AllowedExtensions {
		if ext == candidate {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", fmt.Errorf("%q: %w", name, ErrUnsupportedFile)
	}

	if !utf8.Valid(content) {
		return "", fmt.Errorf("%q: %w", name, ErrInvalidEncoding)
	}
	return string(content), nil
}
