package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/mbracher/winescan/internal/menu"
	"github.com/mbracher/winescan/internal/source"
)

// AnalyzeResponse is the result of one menu analysis.
type AnalyzeResponse struct {
	RawText string       `json:"rawText"`
	Wines   []*menu.Wine `json:"wines"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("image")
	if err != nil {
		file, header, err = r.FormFile("file")
	}
	if err != nil {
		jsonError(w, "image is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	contentType := header.Header.Get("Content-Type")
	if !source.IsSupported(filename, contentType) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read upload", http.StatusInternalServerError)
		return
	}
	if len(data) == 0 {
		jsonError(w, "empty upload", http.StatusBadRequest)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("upload exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	src, err := source.ForUpload(filename, contentType, s.engine)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	fragments, err := src.Extract(r.Context(), bytes.NewReader(data))
	if err != nil {
		if _, isImage := src.(*source.ImageSource); isImage {
			// OCR failure never fails the request: the caller gets a
			// placeholder transcript and an empty wine list.
			s.log.Warn("ocr failed", "file", filename, "error", err)
			writeAnalyzeResponse(w, AnalyzeResponse{
				RawText: fmt.Sprintf("[OCR unavailable: %v]", err),
				Wines:   []*menu.Wine{},
			})
			return
		}
		jsonError(w, "failed to read menu: "+err.Error(), http.StatusBadRequest)
		return
	}

	rows := s.clusterer.Rows(fragments)
	wines := menu.ParseLines(rows)

	if s.enricher.Enabled() {
		s.enricher.EnrichWines(r.Context(), wines)
	}
	menu.Normalize(wines)

	s.log.Info("menu analyzed", "file", filename, "rows", len(rows), "wines", len(wines))
	writeAnalyzeResponse(w, AnalyzeResponse{
		RawText: strings.Join(rows, "\n"),
		Wines:   wines,
	})
}

func writeAnalyzeResponse(w http.ResponseWriter, resp AnalyzeResponse) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
