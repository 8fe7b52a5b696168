package http

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/classpoll/classpoll/internal/storage"
)

// MountAssets serves stored blobs (slide images, uploaded decks).
//
// GET /assets/* -> returns the blob at whatever follows /assets/
func MountAssets(r chi.Router, bs storage.BlobStore) {
	r.Get("/*", func(w http.ResponseWriter, req *http.Request) {
		key := chi.URLParam(req, "*")
		key = strings.TrimPrefix(key, "/")
		rc, err := bs.Get(key)
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer rc.Close()

		ct := mime.TypeByExtension(filepath.Ext(key))
		if ct == "" {
			ct = "application/octet-stream"
		}
		w.Header().Set("Content-Type", ct)
		_, _ = io.Copy(w, rc)
	})
}
