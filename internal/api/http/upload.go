package http

import (
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/classpoll/classpoll/internal/converter"
	"github.com/classpoll/classpoll/internal/deck"
	"github.com/classpoll/classpoll/internal/storage"
)

// ErrUnsupportedFormat is the fixed message returned for non-PDF uploads.
const ErrUnsupportedFormat = "unsupported file format"

// POST /upload (multipart: file=deck.pdf)
//
// The PDF is copied to scratch space and converted there; the stored blobs
// are only swapped once conversion has succeeded. A rejected or failed
// upload leaves the current deck, its responses, and its slide images
// intact.
func UploadHandler(store deck.Store, conv converter.Converter, blobs *storage.FSStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, hdr, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file required", http.StatusBadRequest)
			return
		}
		defer f.Close()

		name := filepath.Base(hdr.Filename)
		if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
			http.Error(w, ErrUnsupportedFormat, http.StatusBadRequest)
			return
		}

		tmp, err := os.CreateTemp("", "classpoll-upload-*.pdf")
		if err != nil {
			http.Error(w, "store error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		defer os.Remove(tmp.Name())
		if _, err := io.Copy(tmp, f); err != nil {
			tmp.Close()
			http.Error(w, "store error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		if err := tmp.Close(); err != nil {
			http.Error(w, "store error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		stage, err := os.MkdirTemp("", "classpoll-slides-*")
		if err != nil {
			http.Error(w, "store error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		defer os.RemoveAll(stage)

		names, err := conv.Convert(r.Context(), tmp.Name(), stage)
		if err != nil {
			http.Error(w, "convert: "+err.Error(), http.StatusInternalServerError)
			return
		}

		// Conversion succeeded; swap the staged files in.
		if err := blobs.Reset(storage.PrefixUploads); err != nil {
			http.Error(w, "store error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		if err := blobs.Reset(storage.PrefixSlides); err != nil {
			http.Error(w, "store error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		if err := putFile(blobs, path.Join(storage.PrefixUploads, name), tmp.Name()); err != nil {
			http.Error(w, "store error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		slides := make([]string, len(names))
		for i, n := range names {
			key := path.Join(storage.PrefixSlides, n)
			if err := putFile(blobs, key, filepath.Join(stage, n)); err != nil {
				http.Error(w, "store error: "+err.Error(), http.StatusInternalServerError)
				return
			}
			slides[i] = key
		}

		if _, err := store.ReplaceDeck(r.Context(), slides, deck.SlideTypeImage); err != nil {
			http.Error(w, "store error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		http.Redirect(w, r, "/slides/1", http.StatusSeeOther)
	}
}

func putFile(blobs *storage.FSStore, key, src string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	_, err = blobs.Put(key, in)
	return err
}
