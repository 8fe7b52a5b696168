package deck

import (
	"context"
	"errors"
)

// ErrNoDeck is returned by store operations that require an uploaded deck.
var ErrNoDeck = errors.New("no deck uploaded")

type Store interface {
	// ReplaceDeck atomically replaces the current deck, bumps the deck
	// version, and clears all responses and positions.
	ReplaceDeck(ctx context.Context, slides []string, slideType string) (Deck, error)
	// CurrentDeck returns the current deck, or an empty Deck (Size()==0)
	// when nothing has been uploaded yet.
	CurrentDeck(ctx context.Context) (Deck, error)

	// RecordResponse upserts a response keyed by (userID, slideIndex).
	// Submissions for the first or last slide of the current deck, or with
	// an answer outside {"O","X"}, are dropped without error.
	RecordResponse(ctx context.Context, userID string, slideIndex int, answer string) error
	// Responses returns every persisted response. An empty store yields an
	// empty slice, not an error.
	Responses(ctx context.Context) ([]Response, error)
	// UserResponses returns the responses recorded for one user.
	UserResponses(ctx context.Context, userID string) ([]Response, error)

	// Position returns the stored cursor for userID; ok is false when the
	// user has none.
	Position(ctx context.Context, userID string) (Position, bool, error)
	SetPosition(ctx context.Context, p Position) error
}
