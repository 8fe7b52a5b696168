package main

import (
	"context"
	"log"
	"net/http"
	"time"

	api "github.com/classpoll/classpoll/internal/api/http"
	"github.com/classpoll/classpoll/internal/config"
	"github.com/classpoll/classpoll/internal/converter"
	"github.com/classpoll/classpoll/internal/db"
	"github.com/classpoll/classpoll/internal/deck"
	"github.com/classpoll/classpoll/internal/session"
	storage "github.com/classpoll/classpoll/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	store := deck.NewSQLStore(dbh)

	// --- Blob store + converter ---
	blobs, err := storage.NewFSStore(cfg.BlobBasePath)
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}
	conv := converter.NewFitzConverter()

	// --- Session identity ---
	sess := session.NewService(cfg.SessionSecret, cfg.SessionTTL)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	api.Routes(r, store, conv, blobs, sess)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (db=%s, blobs=%s)", cfg.HTTPAddr, cfg.DBDriver, cfg.BlobBasePath)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
