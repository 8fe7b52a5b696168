package http

import "net/http"

// GET /
func IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(w, "index.html", nil)
	}
}

// GET /upload
func UploadPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(w, "upload.html", nil)
	}
}
