// Package docext extracts plain text from uploaded resume documents.
package docext

import (
	"fmt"
	"path/filepath"
	"strings"
)

// SupportedExtensions lists the document types ExtractText understands.
var SupportedExtensions = []string{".pdf", ".docx", ".txt"}

// IsSupported reports whether the filename has a readable extension.
func IsSupported(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, s := range SupportedExtensions {
		if ext == s {
			return true
		}
	}
	return false
}

// ExtractText pulls the raw text out of a document, dispatching on the
// filename extension.
func ExtractText(data []byte, filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return extractPDF(data)
	case ".docx":
		return extractDocx(data)
	case ".txt":
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported document type: %s", filepath.Ext(filename))
	}
}
