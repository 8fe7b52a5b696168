package http

import (
	"context"
	"encoding/json"
	"net/http"
	"reflect"
	"strings"
	"testing"

	"github.com/classpoll/classpoll/internal/deck"
)

func decodeStats(t *testing.T, body *strings.Reader) statsPayload {
	t.Helper()
	var p statsPayload
	if err := json.NewDecoder(body).Decode(&p); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	return p
}

func TestStatsAPIEmpty(t *testing.T) {
	env := newTestEnv(t, fakeConverter{pages: 5})
	env.upload("deck.pdf", []byte("%PDF-1.4"))

	rec := env.get("/api/stats")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	p := decodeStats(t, strings.NewReader(rec.Body.String()))
	if len(p.Stats) != 0 || len(p.Labels) != 0 || len(p.OCounts) != 0 || len(p.XCounts) != 0 {
		t.Errorf("expected empty payload, got %+v", p)
	}
}

func TestStatsAPIScenario(t *testing.T) {
	env := newTestEnv(t, fakeConverter{pages: 5})
	env.upload("deck.pdf", []byte("%PDF-1.4"))
	ctx := context.Background()

	// (u1,2,O) (u1,3,X) (u2,3,X) and an attempt on the last slide, which
	// the store drops.
	for _, r := range []deck.Response{
		{UserID: "u1", SlideIndex: 2, Answer: "O"},
		{UserID: "u1", SlideIndex: 3, Answer: "X"},
		{UserID: "u2", SlideIndex: 3, Answer: "X"},
		{UserID: "u1", SlideIndex: 5, Answer: "O"},
	} {
		if err := env.store.RecordResponse(ctx, r.UserID, r.SlideIndex, r.Answer); err != nil {
			t.Fatalf("RecordResponse: %v", err)
		}
	}

	rec := env.get("/api/stats")
	p := decodeStats(t, strings.NewReader(rec.Body.String()))

	if !reflect.DeepEqual(p.Labels, []string{"Slide 2", "Slide 3"}) {
		t.Errorf("labels = %v", p.Labels)
	}
	if !reflect.DeepEqual(p.OCounts, []int{1, 0}) {
		t.Errorf("o_counts = %v", p.OCounts)
	}
	if !reflect.DeepEqual(p.XCounts, []int{0, 2}) {
		t.Errorf("x_counts = %v", p.XCounts)
	}
}

func TestStatsPageRenders(t *testing.T) {
	env := newTestEnv(t, fakeConverter{pages: 5})
	env.upload("deck.pdf", []byte("%PDF-1.4"))
	if err := env.store.RecordResponse(context.Background(), "u1", 2, "O"); err != nil {
		t.Fatalf("RecordResponse: %v", err)
	}

	rec := env.get("/stats")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Slide 2") {
		t.Errorf("stats page missing tally: %s", rec.Body.String())
	}
}

func TestStatsDegradesOnReadFailure(t *testing.T) {
	env := newTestEnv(t, fakeConverter{pages: 5})
	env.upload("deck.pdf", []byte("%PDF-1.4"))

	// Force every subsequent store read to fail.
	env.dbh.Close()

	rec := env.get("/stats")
	if rec.Code != http.StatusOK {
		t.Fatalf("stats page must degrade, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No responses recorded yet.") {
		t.Errorf("expected empty tally, got: %s", rec.Body.String())
	}

	rec = env.get("/api/stats")
	if rec.Code != http.StatusOK {
		t.Fatalf("stats api must degrade, got %d", rec.Code)
	}
	p := decodeStats(t, strings.NewReader(rec.Body.String()))
	if len(p.Stats) != 0 {
		t.Errorf("expected empty payload, got %+v", p)
	}
}
