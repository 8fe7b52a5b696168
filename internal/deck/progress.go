package deck

// Slide progression. Indexes are 1-based; Viewing(i) is valid for i in
// 1..Size, and any i past the deck means the run is complete.

// ViewState carries what a slide page needs to render.
type ViewState struct {
	Index   int
	Count   int
	Image   string
	IsFirst bool
	IsLast  bool
}

// View resolves the state for a 1-based slide index. ok is false when the
// index falls outside the deck.
func View(d Deck, index int) (ViewState, bool) {
	img, ok := d.Image(index)
	if !ok {
		return ViewState{}, false
	}
	return ViewState{
		Index:   index,
		Count:   d.Size(),
		Image:   img,
		IsFirst: index == 1,
		IsLast:  index == d.Size(),
	}, true
}

// Eligible reports whether a response for index may be recorded: strictly
// between the first and last slides.
func Eligible(d Deck, index int) bool {
	return index > 1 && index < d.Size()
}

// Completed reports whether index is past the end of the deck.
func Completed(d Deck, index int) bool {
	return index > d.Size()
}

// ResolveIndex maps a stored position onto the current deck. Missing
// positions and positions recorded against an older deck version start over
// at slide 1.
func ResolveIndex(d Deck, p Position, ok bool) int {
	if !ok || p.DeckVersion != d.Version || p.CurrentIndex < 1 {
		return 1
	}
	return p.CurrentIndex
}
