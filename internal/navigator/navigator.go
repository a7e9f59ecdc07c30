package navigator

import (
	"github.com/kpauljoseph/pdfreview/internal/deck"
	"github.com/kpauljoseph/pdfreview/pkg/logger"
	"github.com/kpauljoseph/pdfreview/pkg/models"
)

type Side int

const (
	Question Side = iota
	Answer
)

func (s Side) String() string {
	if s == Answer {
		return "answer"
	}
	return "question"
}

// shuffleLoop tracks page navigation in a shuffled session. A page can appear
// several times there, so paging away from a page and back would otherwise
// land on whichever copy the page index kept.
type shuffleLoop struct {
	active bool
	anchor *models.PageCard
}

// Navigator is a cursor over a session with question/answer reveal. Moves
// that would leave the sequence are ignored.
type Navigator struct {
	session *deck.Session
	cursor  int
	side    Side
	loop    shuffleLoop
	logger  *logger.Logger
}

func New(session *deck.Session, logger *logger.Logger) *Navigator {
	return &Navigator{
		session: session,
		logger:  logger,
	}
}

func (n *Navigator) Session() *deck.Session {
	return n.session
}

func (n *Navigator) Cursor() int {
	return n.cursor
}

func (n *Navigator) Side() Side {
	return n.side
}

func (n *Navigator) LoopActive() bool {
	return n.loop.active
}

func (n *Navigator) LoopAnchor() (*models.PageCard, bool) {
	return n.loop.anchor, n.loop.active
}

// Current returns the card under the cursor, or nil for an empty session.
func (n *Navigator) Current() models.Card {
	return n.session.At(n.cursor)
}

// Restart puts the cursor back on the first card.
func (n *Navigator) Restart() {
	n.cursor = 0
	n.side = Question
	n.loop = shuffleLoop{}
	n.logger.Trace("navigator restarted")
}

// Rebind attaches a rebuilt session. The cursor keeps its position, clamped
// into the new sequence.
func (n *Navigator) Rebind(session *deck.Session) {
	n.session = session
	n.loop = shuffleLoop{}
	n.side = Question
	n.cursor = n.clamp(n.cursor)
	n.logger.Trace("navigator rebound to %s session of %d cards, cursor %d", session.Mode, session.Len(), n.cursor)
}

// SetCursor moves to pos, clamped into the sequence.
func (n *Navigator) SetCursor(pos int) {
	n.loop = shuffleLoop{}
	n.moveTo(n.clamp(pos))
}

func (n *Navigator) NextCard() {
	if fc, ok := n.Current().(*models.FlashcardCard); ok && n.side == Question && fc.Flashcard.HasAnswer() {
		n.side = Answer
		n.logger.Trace("revealed answer at %d", n.cursor)
		return
	}
	n.moveTo(n.cursor + 1)
}

func (n *Navigator) PreviousCard() {
	if _, ok := n.Current().(*models.FlashcardCard); ok && n.side == Answer {
		n.side = Question
		n.logger.Trace("back to question at %d", n.cursor)
		return
	}
	n.moveTo(n.cursor - 1)
}

func (n *Navigator) NextPage() {
	if pos, ok := n.nextPageTarget(); ok {
		n.armLoop()
		n.moveTo(pos)
	}
}

func (n *Navigator) PreviousPage() {
	if pos, ok := n.previousPageTarget(); ok {
		n.armLoop()
		n.moveTo(pos)
	}
}

func (n *Navigator) NextFlashcard() {
	if pos, ok := n.nextFlashcardTarget(); ok {
		n.moveTo(pos)
	}
}

func (n *Navigator) PreviousFlashcard() {
	if pos, ok := n.previousFlashcardTarget(); ok {
		n.moveTo(pos)
	}
}

// GoToPage jumps straight to a page number. In a shuffled session this is
// the last copy of the page.
func (n *Navigator) GoToPage(page int) {
	if pos, ok := n.session.PagePosition(page); ok {
		n.moveTo(pos)
	}
}

// moveTo lands on pos and applies the shuffle loop rules: reaching another
// copy of the anchor page returns to the anchor itself, reaching a flashcard
// ends page navigation.
func (n *Navigator) moveTo(pos int) {
	card := n.session.At(pos)
	if card == nil {
		return
	}
	n.cursor = pos
	n.side = Question

	if n.loop.active {
		switch c := card.(type) {
		case *models.PageCard:
			if c.SamePage(n.loop.anchor) {
				n.cursor = n.loop.anchor.Position
				n.loop = shuffleLoop{}
				n.logger.Trace("page loop closed on page %d at %d", c.NumPage, n.cursor)
			}
		case *models.FlashcardCard:
			n.loop = shuffleLoop{}
		}
	}
	n.logger.Trace("cursor at %d of %d", n.cursor, n.session.Len())
}

func (n *Navigator) armLoop() {
	if n.session.Mode != deck.Shuffled || n.loop.active {
		return
	}
	if p, ok := n.Current().(*models.PageCard); ok {
		n.loop = shuffleLoop{active: true, anchor: p}
		n.logger.Trace("page loop anchored on page %d at %d", p.NumPage, p.Position)
	}
}

func (n *Navigator) clamp(pos int) int {
	if pos >= n.session.Len() {
		pos = n.session.Len() - 1
	}
	if pos < 0 {
		pos = 0
	}
	return pos
}

func (n *Navigator) previousPageTarget() (int, bool) {
	switch c := n.Current().(type) {
	case *models.FlashcardCard:
		if n.session.Mode == deck.Shuffled {
			prev, ok := n.session.FlashcardPosition(c.FlashcardIndexBefore)
			if !ok {
				return 0, false
			}
			return n.pageAfter(prev)
		}
		return n.session.PagePosition(c.PdfPageIndexBefore)
	case *models.PageCard:
		return n.session.PagePosition(c.PdfPageIndexBefore)
	}
	return 0, false
}

func (n *Navigator) nextPageTarget() (int, bool) {
	switch c := n.Current().(type) {
	case *models.FlashcardCard:
		if n.session.Mode == deck.Shuffled {
			return n.pageAfter(n.cursor)
		}
		return n.session.PagePosition(c.PdfPageIndexBefore + 1)
	case *models.PageCard:
		return n.session.PagePosition(c.PdfPageIndexBefore + 2)
	}
	return 0, false
}

// pageAfter returns the page a shuffled session placed right after the
// flashcard at pos.
func (n *Navigator) pageAfter(pos int) (int, bool) {
	fc, ok := n.session.At(pos).(*models.FlashcardCard)
	if !ok || !fc.Flashcard.FollowedByPage(n.session.NumPdfPages()) {
		return 0, false
	}
	if _, ok := n.session.At(pos + 1).(*models.PageCard); !ok {
		return 0, false
	}
	return pos + 1, true
}

func (n *Navigator) flashcardIndexBefore() int {
	if n.loop.active {
		return n.loop.anchor.FlashcardIndexBefore
	}
	card := n.Current()
	if card == nil {
		return models.NoIndex
	}
	return card.Refs().FlashcardIndexBefore
}

func (n *Navigator) previousFlashcardTarget() (int, bool) {
	return n.session.FlashcardPosition(n.flashcardIndexBefore())
}

func (n *Navigator) nextFlashcardTarget() (int, bool) {
	if n.Current() == nil {
		return 0, false
	}
	next := n.flashcardIndexBefore() + 1
	if _, ok := n.Current().(*models.FlashcardCard); ok {
		next++
	}
	return n.session.FlashcardPosition(next)
}
