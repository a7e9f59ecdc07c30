package navigator

import "github.com/kpauljoseph/pdfreview/pkg/models"

// Controls says which moves currently lead somewhere. It is advisory: every
// move is safe to call regardless.
type Controls struct {
	CanGoPrevPage      bool
	CanGoNextPage      bool
	CanGoPrevFlashcard bool
	CanGoNextFlashcard bool
	CanGoPrevCard      bool
	CanGoNextCard      bool
}

type Kind int

const (
	KindNone Kind = iota
	KindPage
	KindFlashcard
)

// View is what a renderer needs to draw the current position.
type View struct {
	Kind Kind
	// PageNumber is the page shown, or the reference page of a flashcard.
	PageNumber int
	// Text is the visible side of a flashcard.
	Text     string
	Side     Side
	Position int
	Total    int
	Controls Controls
}

func (n *Navigator) Controls() Controls {
	var c Controls
	card := n.Current()
	if card == nil {
		return c
	}

	_, c.CanGoPrevPage = n.previousPageTarget()
	_, c.CanGoNextPage = n.nextPageTarget()
	_, c.CanGoPrevFlashcard = n.previousFlashcardTarget()
	_, c.CanGoNextFlashcard = n.nextFlashcardTarget()

	// Card stepping is switched off while paging through a shuffled session.
	if n.loop.active {
		return c
	}
	fc, isFlashcard := card.(*models.FlashcardCard)
	c.CanGoPrevCard = n.cursor > 0 || (isFlashcard && n.side == Answer)
	c.CanGoNextCard = n.cursor < n.session.Len()-1 ||
		(isFlashcard && n.side == Question && fc.Flashcard.HasAnswer())
	return c
}

func (n *Navigator) View() View {
	v := View{
		Position: n.cursor,
		Total:    n.session.Len(),
		Side:     n.side,
		Controls: n.Controls(),
	}
	switch c := n.Current().(type) {
	case *models.PageCard:
		v.Kind = KindPage
		v.PageNumber = c.NumPage
	case *models.FlashcardCard:
		v.Kind = KindFlashcard
		v.PageNumber = c.Flashcard.ReferencePage
		v.Text = c.Flashcard.Question
		if n.side == Answer {
			v.Text = c.Flashcard.Answer
		}
	}
	return v
}
