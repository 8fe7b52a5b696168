package http

import (
	"github.com/go-chi/chi/v5"

	"github.com/classpoll/classpoll/internal/converter"
	"github.com/classpoll/classpoll/internal/deck"
	"github.com/classpoll/classpoll/internal/session"
	"github.com/classpoll/classpoll/internal/storage"
)

// Routes mounts the whole HTTP surface onto r. Every route runs behind the
// session middleware so handlers can rely on an identity being present.
func Routes(r chi.Router, store deck.Store, conv converter.Converter, blobs *storage.FSStore, sess *session.Service) {
	r.Group(func(sr chi.Router) {
		sr.Use(session.Middleware(sess))

		sr.Get("/", IndexHandler())
		sr.Get("/upload", UploadPageHandler())
		sr.Post("/upload", UploadHandler(store, conv, blobs))
		sr.Get("/slide", SlideResumeHandler(store))
		sr.Get("/slides/{index}", SlidePageHandler(store))
		sr.Post("/slides/{index}", SlideSubmitHandler(store))
		sr.Get("/stats", StatsPageHandler(store))
		sr.Get("/api/stats", StatsAPIHandler(store))
		sr.Get("/result", ResultHandler(store))
	})

	r.Route("/assets", func(ar chi.Router) {
		MountAssets(ar, blobs)
	})
}
