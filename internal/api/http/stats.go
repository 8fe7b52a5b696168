package http

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/classpoll/classpoll/internal/deck"
)

type statsPayload struct {
	Labels  []string         `json:"labels"`
	OCounts []int            `json:"o_counts"`
	XCounts []int            `json:"x_counts"`
	Stats   []deck.SlideStat `json:"stats"`
}

// loadStats reads the deck and responses and aggregates them. Read failures
// are reported to the caller; both handlers degrade to an empty tally rather
// than failing the request.
func loadStats(r *http.Request, store deck.Store) (statsPayload, error) {
	p := statsPayload{Labels: []string{}, OCounts: []int{}, XCounts: []int{}, Stats: []deck.SlideStat{}}

	d, err := store.CurrentDeck(r.Context())
	if err != nil {
		return p, fmt.Errorf("load deck: %w", err)
	}
	records, err := store.Responses(r.Context())
	if err != nil {
		return p, fmt.Errorf("load responses: %w", err)
	}

	p.Stats = deck.ComputeStats(d, records)
	for _, st := range p.Stats {
		p.Labels = append(p.Labels, fmt.Sprintf("Slide %d", st.SlideIndex))
		p.OCounts = append(p.OCounts, st.OCount)
		p.XCounts = append(p.XCounts, st.XCount)
	}
	return p, nil
}

// GET /stats
func StatsPageHandler(store deck.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := loadStats(r, store)
		if err != nil {
			log.Printf("stats: %v", err)
		}
		render(w, "stats.html", p)
	}
}

// GET /api/stats
func StatsAPIHandler(store deck.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := loadStats(r, store)
		if err != nil {
			log.Printf("stats: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(p)
	}
}
