package http

import (
	"io"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/bandnine/ielts-platform/internal/storage"
)

// MountAssets serves exam package assets (images, audio, css) uploaded
// during ingestion.
func MountAssets(r chi.Router, bs storage.BlobStore) {
	// GET /assets/*  -> returns the blob at whatever follows /assets/
	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "*")
		key = strings.TrimPrefix(key, "/")
		rc, err := bs.Get(key)
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer rc.Close()
		ct := mime.TypeByExtension(path.Ext(key))
		if ct == "" {
			ct = "application/octet-stream"
		}
		w.Header().Set("Content-Type", ct)
		_, _ = io.Copy(w, rc)
	})
}
