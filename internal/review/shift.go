package review

import "github.com/kpauljoseph/pdfreview/pkg/models"

// ShiftReferencePages moves the reference page of page-specific flashcards
// by increment, clamped to the pages of the pdf. With fromHere it covers the
// cards from the cursor to the end of the session, otherwise the cards from
// the start up to the cursor; the card under the cursor is included either
// way. It returns how many flashcards changed page.
func (r *Reviewer) ShiftReferencePages(increment int, fromHere bool) int {
	numPages := r.deck.NumPdfPages()
	if increment == 0 || numPages == 0 || r.session.Len() == 0 {
		return 0
	}

	start, end := 0, r.nav.Cursor()
	if fromHere {
		start, end = r.nav.Cursor(), r.session.Len()-1
	}

	moved := 0
	for pos := start; pos <= end; pos++ {
		card, ok := r.session.At(pos).(*models.FlashcardCard)
		if !ok || card.Flashcard.QuestionType != models.PageSpecific || card.Flashcard.IsGeneric() {
			continue
		}
		fc := card.Flashcard
		page := min(max(fc.ReferencePage+increment, 0), numPages-1)
		if page != fc.ReferencePage {
			fc.ReferencePage = page
			moved++
		}
	}
	if moved == 0 {
		return 0
	}

	r.deck.Regroup()
	r.dirty = true
	r.remerge()

	r.logger.Info("Shifted %d flashcards by %d pages", moved, increment)
	return moved
}
