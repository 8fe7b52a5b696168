package http

import (
	"net/http"

	"github.com/classpoll/classpoll/internal/deck"
	"github.com/classpoll/classpoll/internal/session"
)

// GET /result
//
// Legacy per-user score: the share of this session's "O" answers over the
// deck size, as a percentage.
func ResultHandler(store deck.Store) http.HandlerFunc {
	type view struct {
		OCount     int
		SlideCount int
		Score      float64
	}
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := store.CurrentDeck(r.Context())
		if err != nil {
			http.Error(w, "store error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		if d.Empty() {
			http.Redirect(w, r, "/upload", http.StatusSeeOther)
			return
		}

		records, err := store.UserResponses(r.Context(), session.UserID(r.Context()))
		if err != nil {
			http.Error(w, "store error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		o := 0
		for _, rec := range records {
			if rec.Answer == deck.AnswerO {
				o++
			}
		}
		render(w, "result.html", view{
			OCount:     o,
			SlideCount: d.Size(),
			Score:      deck.Score(d, records),
		})
	}
}
