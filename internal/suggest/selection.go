package suggest

import "mealsearch/internal/domain"

// NoSelection is the highlight index when nothing is highlighted.
const NoSelection = -1

// Selection tracks the highlighted candidate. The zero value is an empty list
// with nothing highlighted.
type Selection struct {
	items []domain.Candidate
	// pos is the highlight index plus one so the zero value means none.
	pos int
}

// Replace installs a new candidate list and clears the highlight.
func (s *Selection) Replace(items []domain.Candidate) {
	s.items = append([]domain.Candidate(nil), items...)
	s.pos = 0
}

// Reset clears the highlight.
func (s *Selection) Reset() {
	s.pos = 0
}

// MoveDown highlights the next candidate, stopping at the last one.
func (s *Selection) MoveDown() {
	if len(s.items) == 0 {
		return
	}
	if s.pos < len(s.items) {
		s.pos++
	}
}

// MoveUp highlights the previous candidate, stopping at the first one. From
// no highlight it moves to the first candidate.
func (s *Selection) MoveUp() {
	if len(s.items) == 0 {
		return
	}
	if s.pos > 1 {
		s.pos--
		return
	}
	s.pos = 1
}

// Index returns the highlight index in [-1, Len()-1].
func (s *Selection) Index() int {
	return s.pos - 1
}

// Len returns the number of candidates.
func (s *Selection) Len() int {
	return len(s.items)
}

// Items returns a copy of the candidates.
func (s *Selection) Items() []domain.Candidate {
	return append([]domain.Candidate{}, s.items...)
}

// Current returns the highlighted candidate.
func (s *Selection) Current() (domain.Candidate, bool) {
	if s.pos == 0 {
		return domain.Candidate{}, false
	}
	return s.items[s.pos-1], true
}

// Find returns the candidate with the given id.
func (s *Selection) Find(id string) (domain.Candidate, bool) {
	for _, c := range s.items {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Candidate{}, false
}
