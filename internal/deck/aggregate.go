package deck

import "sort"

// ComputeStats tallies O/X responses per slide. The first and last slides of
// the deck are excluded, as are records with an out-of-range index or an
// answer outside {"O","X"}. Output is sorted ascending by slide index with
// one entry per index; a slide with responses of only one kind reports 0 for
// the other.
func ComputeStats(d Deck, records []Response) []SlideStat {
	if d.Empty() {
		return []SlideStat{}
	}
	last := d.Size()

	byIndex := map[int]*SlideStat{}
	for _, r := range records {
		if r.SlideIndex <= 1 || r.SlideIndex >= last {
			continue
		}
		st, ok := byIndex[r.SlideIndex]
		if !ok {
			st = &SlideStat{SlideIndex: r.SlideIndex}
			byIndex[r.SlideIndex] = st
		}
		switch r.Answer {
		case AnswerO:
			st.OCount++
		case AnswerX:
			st.XCount++
		default:
			// malformed record, skip
		}
	}

	out := make([]SlideStat, 0, len(byIndex))
	for _, st := range byIndex {
		if st.OCount == 0 && st.XCount == 0 {
			continue
		}
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SlideIndex < out[j].SlideIndex })
	return out
}

// Score is the legacy per-user result: the share of a user's "O" answers
// over the deck size, as a percentage.
func Score(d Deck, records []Response) float64 {
	if d.Empty() {
		return 0
	}
	o := 0
	for _, r := range records {
		if r.Answer == AnswerO {
			o++
		}
	}
	return float64(o) / float64(d.Size()) * 100
}
