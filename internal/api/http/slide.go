package http

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/classpoll/classpoll/internal/deck"
	"github.com/classpoll/classpoll/internal/session"
)

func slideIndex(r *http.Request) (int, bool) {
	i, err := strconv.Atoi(chi.URLParam(r, "index"))
	return i, err == nil
}

// GET /slide
//
// Legacy entry point without an index: resumes at the caller's stored
// position, or slide 1 when there is none or it refers to an older deck.
func SlideResumeHandler(store deck.Store) http.HandlerFunc {
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
		p, ok, err := store.Position(r.Context(), session.UserID(r.Context()))
		if err != nil {
			log.Printf("load position: %v", err)
			ok = false
		}
		index := deck.ResolveIndex(d, p, ok)
		if deck.Completed(d, index) {
			http.Redirect(w, r, "/stats", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, fmt.Sprintf("/slides/%d", index), http.StatusSeeOther)
	}
}

// GET /slides/{index}
func SlidePageHandler(store deck.Store) http.HandlerFunc {
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

		index, ok := slideIndex(r)
		if !ok || index < 1 {
			http.Redirect(w, r, "/slides/1", http.StatusSeeOther)
			return
		}
		if deck.Completed(d, index) {
			http.Redirect(w, r, "/stats", http.StatusSeeOther)
			return
		}

		view, ok := deck.View(d, index)
		if !ok {
			http.Redirect(w, r, "/slides/1", http.StatusSeeOther)
			return
		}

		userID := session.UserID(r.Context())
		if err := store.SetPosition(r.Context(), deck.Position{
			UserID: userID, DeckVersion: d.Version, CurrentIndex: index,
		}); err != nil {
			log.Printf("set position for %s: %v", userID, err)
		}

		render(w, "slide.html", view)
	}
}

// POST /slides/{index} (form: answer=O|X, may be absent)
//
// The position always advances, whether or not the answer qualified for
// recording.
func SlideSubmitHandler(store deck.Store) http.HandlerFunc {
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

		index, ok := slideIndex(r)
		if !ok || index < 1 {
			http.Redirect(w, r, "/slides/1", http.StatusSeeOther)
			return
		}

		userID := session.UserID(r.Context())
		answer := r.FormValue("answer")
		if answer != "" && deck.ValidAnswer(answer) && deck.Eligible(d, index) {
			if err := store.RecordResponse(r.Context(), userID, index, answer); err != nil {
				http.Error(w, "store error: "+err.Error(), http.StatusInternalServerError)
				return
			}
		}

		next := index + 1
		if err := store.SetPosition(r.Context(), deck.Position{
			UserID: userID, DeckVersion: d.Version, CurrentIndex: next,
		}); err != nil {
			log.Printf("set position for %s: %v", userID, err)
		}

		if deck.Completed(d, next) {
			http.Redirect(w, r, "/stats", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, fmt.Sprintf("/slides/%d", next), http.StatusSeeOther)
	}
}
