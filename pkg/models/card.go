package models

// NoIndex marks a back-reference with nothing before it.
const NoIndex = -1

// BackRef locates a card relative to the pages-only and flashcards-only
// sub-sequences of a session.
type BackRef struct {
	PdfPageIndexBefore   int
	FlashcardIndexBefore int
}

// Card is one entry of a session sequence. The only implementations are
// *PageCard and *FlashcardCard; switch on the concrete type.
type Card interface {
	PdfPage() int
	Refs() BackRef
	isCard()
}

// PageCard is a pdf page placed in a session. Two page cards are the same
// page when their page numbers match, even if they are distinct values.
type PageCard struct {
	NumPage int
	// Position is the index of this card in the sequence it was built for.
	Position int
	BackRef
}

func (p *PageCard) PdfPage() int  { return p.NumPage }
func (p *PageCard) Refs() BackRef { return p.BackRef }
func (*PageCard) isCard()         {}

func (p *PageCard) SamePage(other *PageCard) bool {
	return other != nil && p.NumPage == other.NumPage
}

// FlashcardCard places a deck flashcard in a session. The back-references
// belong to the session, not to the flashcard, so rebuilding a session never
// touches deck state.
type FlashcardCard struct {
	Flashcard *Flashcard
	BackRef
}

func (c *FlashcardCard) PdfPage() int  { return c.Flashcard.ReferencePage }
func (c *FlashcardCard) Refs() BackRef { return c.BackRef }
func (*FlashcardCard) isCard()         {}
