package deck

// SlideTypeImage is the only slide type produced by the PDF converter.
const SlideTypeImage = "image"

// Answers a student may submit for a slide.
const (
	AnswerO = "O"
	AnswerX = "X"
)

// ValidAnswer reports whether a is one of the two recordable answers.
func ValidAnswer(a string) bool {
	return a == AnswerO || a == AnswerX
}

// Deck is the single current slide deck. It is replaced wholesale on every
// upload; Version increases with each replacement so stale per-user positions
// can be detected.
type Deck struct {
	Version   int64    `json:"version"`
	SlideType string   `json:"slide_type"`
	Slides    []string `json:"slides"` // image keys, 1-indexed externally
	CreatedAt int64    `json:"created_at,omitempty"`
}

func (d Deck) Size() int   { return len(d.Slides) }
func (d Deck) Empty() bool { return len(d.Slides) == 0 }

// Image returns the image reference for the 1-based slide index.
func (d Deck) Image(index int) (string, bool) {
	if index < 1 || index > len(d.Slides) {
		return "", false
	}
	return d.Slides[index-1], true
}

// Response is one student's answer to one slide. Responses are keyed by
// (UserID, SlideIndex); a later submission overwrites the earlier one.
type Response struct {
	UserID     string `json:"user_id"`
	SlideIndex int    `json:"slide_index"`
	Answer     string `json:"answer"`
}

// SlideStat is the aggregate O/X tally for one slide.
type SlideStat struct {
	SlideIndex int `json:"slide_index"`
	OCount     int `json:"o_count"`
	XCount     int `json:"x_count"`
}

// Position is a user's cursor into the deck. A Position whose DeckVersion
// differs from the current deck is stale and must not be trusted.
type Position struct {
	UserID       string `json:"user_id"`
	DeckVersion  int64  `json:"deck_version"`
	CurrentIndex int    `json:"current_index"`
}
