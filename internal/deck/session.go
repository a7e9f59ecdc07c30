package deck

import "github.com/kpauljoseph/pdfreview/pkg/models"

type Mode int

const (
	Ordered Mode = iota
	Shuffled
)

func (m Mode) String() string {
	if m == Shuffled {
		return "shuffled"
	}
	return "ordered"
}

// Session is the result of a merge: the card sequence of one review pass plus
// the maps from page number and flashcard index to sequence position. It is
// never patched; any change to the deck builds a new one.
type Session struct {
	Mode  Mode
	Cards []models.Card
	// PageIndex[page] is the position of that page in Cards.
	PageIndex []int
	// FlashcardIndex[i] is the position of the i-th flashcard in Cards.
	FlashcardIndex []int
}

func (s *Session) Len() int {
	return len(s.Cards)
}

func (s *Session) NumPdfPages() int {
	return len(s.PageIndex)
}

func (s *Session) NumFlashcards() int {
	return len(s.FlashcardIndex)
}

// At returns the card at pos, or nil when pos is out of range.
func (s *Session) At(pos int) models.Card {
	if pos < 0 || pos >= len(s.Cards) {
		return nil
	}
	return s.Cards[pos]
}

// PagePosition returns the sequence position of a page number.
func (s *Session) PagePosition(page int) (int, bool) {
	if page < 0 || page >= len(s.PageIndex) || s.PageIndex[page] < 0 {
		return 0, false
	}
	return s.PageIndex[page], true
}

// FlashcardPosition returns the sequence position of the i-th flashcard.
func (s *Session) FlashcardPosition(i int) (int, bool) {
	if i < 0 || i >= len(s.FlashcardIndex) {
		return 0, false
	}
	return s.FlashcardIndex[i], true
}

// Merge builds the session of d for the given mode.
func Merge(d *Deck, mode Mode) *Session {
	if mode == Shuffled {
		return MergeShuffle(d.byPage, d.numPdfPages)
	}
	return MergeOrdered(d.byPage, d.numPdfPages)
}
