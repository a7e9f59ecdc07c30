package review

import (
	"fmt"
	"strings"

	"github.com/kpauljoseph/pdfreview/pkg/models"
)

// FlashcardEdit is the new content of a flashcard being modified.
type FlashcardEdit struct {
	Question     string
	Answer       string
	PageSpecific bool
	// TargetPage is the page to anchor to, or models.GenericPage.
	TargetPage int
}

// AddFlashcard anchors a new flashcard to targetPage, or to no page when
// targetPage is models.GenericPage. The cursor moves one card forward so the
// learner keeps looking at the same card in an ordered session.
func (r *Reviewer) AddFlashcard(question, answer string, pageSpecific bool, targetPage int) (*models.Flashcard, error) {
	question = strings.TrimSpace(question)
	if err := r.validate(question, targetPage); err != nil {
		return nil, err
	}

	questionType := models.Generic
	if pageSpecific {
		questionType = models.PageSpecific
	}
	fc := models.NewFlashcard(question, strings.TrimSpace(answer), questionType, targetPage)

	r.deck.Insert(fc, r.insertionIndex(targetPage))
	r.dirty = true
	r.remerge()
	r.nav.SetCursor(r.nav.Cursor() + 1)

	r.logger.Info("Added %s flashcard on page %d", fc.QuestionType, fc.ReferencePage)
	return fc, nil
}

// RemoveFlashcard deletes the flashcard under the cursor.
func (r *Reviewer) RemoveFlashcard() (*models.Flashcard, error) {
	current, ok := r.nav.Current().(*models.FlashcardCard)
	if !ok {
		return nil, &LogicError{Op: "remove", Reason: "the current card is not a flashcard"}
	}
	fc := current.Flashcard
	if !r.deck.Remove(fc) {
		return nil, &LogicError{Op: "remove", Reason: "the flashcard is no longer in the deck"}
	}

	r.dirty = true
	r.remerge()

	r.logger.Info("Removed flashcard from page %d", fc.ReferencePage)
	return fc, nil
}

// ModifyFlashcard rewrites the flashcard under the cursor and moves the
// cursor to the page it is anchored to afterwards. Generic flashcards land on
// the first page.
func (r *Reviewer) ModifyFlashcard(edit FlashcardEdit) (*models.Flashcard, error) {
	current, ok := r.nav.Current().(*models.FlashcardCard)
	if !ok {
		return nil, &LogicError{Op: "modify", Reason: "the current card is not a flashcard"}
	}
	question := strings.TrimSpace(edit.Question)
	if err := r.validate(question, edit.TargetPage); err != nil {
		return nil, err
	}

	fc := current.Flashcard
	index := r.insertionIndex(edit.TargetPage)
	if !r.deck.Remove(fc) {
		return nil, &LogicError{Op: "modify", Reason: "the flashcard is no longer in the deck"}
	}

	fc.Question = question
	fc.Answer = strings.TrimSpace(edit.Answer)
	fc.ReferencePage = edit.TargetPage
	fc.QuestionType = models.Generic
	if edit.PageSpecific && edit.TargetPage != models.GenericPage {
		fc.QuestionType = models.PageSpecific
	}
	r.deck.Insert(fc, index)
	r.dirty = true
	r.remerge()

	anchor := fc.ReferencePage
	if fc.IsGeneric() {
		anchor = 0
	}
	if pos, ok := r.session.PagePosition(anchor); ok {
		r.nav.SetCursor(pos)
	}

	r.logger.Info("Modified flashcard, now %s on page %d", fc.QuestionType, fc.ReferencePage)
	return fc, nil
}

func (r *Reviewer) validate(question string, targetPage int) error {
	if question == "" {
		return &ValidationError{Field: "question", Reason: "must not be empty"}
	}
	if targetPage != models.GenericPage && (targetPage < 0 || targetPage >= r.deck.NumPdfPages()) {
		return &ValidationError{Field: "page", Reason: fmt.Sprintf("%d is not a page of the pdf", targetPage)}
	}
	return nil
}

// insertionIndex places new and modified flashcards right before the
// flashcard under the cursor when it belongs to the target page, and at the
// end of the page list otherwise.
func (r *Reviewer) insertionIndex(targetPage int) int {
	if current, ok := r.nav.Current().(*models.FlashcardCard); ok {
		if i := r.deck.IndexOf(targetPage, current.Flashcard); i >= 0 {
			return i
		}
	}
	return len(r.deck.PageFlashcards(targetPage))
}
