// Package source converts uploaded menu files into OCR-style text
// fragments. Photographed menus go through the OCR engine and yield
// positioned fragments; document formats yield already-ordered lines
// without geometry, which the row clusterer passes through unchanged.
package source

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/mbracher/winescan/internal/menu"
	"github.com/mbracher/winescan/internal/ocr"
)

// Source converts raw menu bytes into text fragments.
type Source interface {
	Extract(ctx context.Context, r io.Reader) ([]menu.Fragment, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".pdf":  true,
	".docx": true,
	".html": true,
	".htm":  true,
	".md":   true,
	".txt":  true,
	".csv":  true,
}

// ForUpload returns the source for an uploaded file, picked by content
// type first and file extension second.
func ForUpload(filename, contentType string, engine ocr.Engine) (Source, error) {
	switch contentType {
	case "image/jpeg", "image/png":
		return &ImageSource{Engine: engine}, nil
	}

	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png":
		return &ImageSource{Engine: engine}, nil
	case ".pdf":
		return &PDFSource{}, nil
	case ".docx":
		return &DOCXSource{}, nil
	case ".html", ".htm":
		return &HTMLSource{}, nil
	case ".md", ".markdown":
		return &MarkdownSource{}, nil
	case ".txt":
		return &TextSource{}, nil
	case ".csv":
		return &CSVSource{}, nil
	default:
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
}

// IsSupported checks whether an upload can be handled at all.
func IsSupported(filename, contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/png":
		return true
	}
	return SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
}
