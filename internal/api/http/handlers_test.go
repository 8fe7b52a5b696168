package http

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/classpoll/classpoll/internal/converter"
	"github.com/classpoll/classpoll/internal/db"
	"github.com/classpoll/classpoll/internal/deck"
	"github.com/classpoll/classpoll/internal/session"
	"github.com/classpoll/classpoll/internal/storage"
)

// fakeConverter stands in for the MuPDF renderer: it writes one stub image
// per page so asset serving can be exercised too.
type fakeConverter struct {
	pages int
	err   error
}

func (f fakeConverter) Convert(ctx context.Context, pdfPath, outDir string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}
	names := make([]string, f.pages)
	for i := range names {
		name := converter.SlideName(i + 1)
		if err := os.WriteFile(filepath.Join(outDir, name), []byte("png-bytes"), 0o644); err != nil {
			return nil, err
		}
		names[i] = name
	}
	return names, nil
}

var errConvert = errors.New("broken pdf")

// testEnv is one running app instance plus a cookie jar, so consecutive
// requests share a session identity the way one browser would.
type testEnv struct {
	t       *testing.T
	dbh     *sql.DB
	store   *deck.SQLStore
	router  *chi.Mux
	cookies []*http.Cookie
}

func newTestEnv(t *testing.T, conv converter.Converter) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	dbh, err := db.Open(context.Background(), db.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { dbh.Close() })
	store := deck.NewSQLStore(dbh)

	blobs, err := storage.NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("blob store: %v", err)
	}
	sess := session.NewService("test-secret", time.Hour)

	r := chi.NewRouter()
	Routes(r, store, conv, blobs, sess)
	return &testEnv{t: t, dbh: dbh, store: store, router: r}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	e.t.Helper()
	for _, c := range e.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	e.cookies = append(e.cookies, rec.Result().Cookies()...)
	return rec
}

func (e *testEnv) get(path string) *httptest.ResponseRecorder {
	return e.do(httptest.NewRequest("GET", path, nil))
}

func (e *testEnv) postForm(path, form string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(req)
}

func (e *testEnv) upload(filename string, content []byte) *httptest.ResponseRecorder {
	e.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		e.t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		e.t.Fatalf("write form file: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest("POST", "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return e.do(req)
}

func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d. Body: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Location"); got != location {
		t.Fatalf("redirect to %q, want %q", got, location)
	}
}
