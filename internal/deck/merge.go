package deck

import (
	"math/rand/v2"

	"github.com/kpauljoseph/pdfreview/pkg/models"
)

// Shuffler permutes n elements through swap, with the signature of
// rand.Shuffle.
type Shuffler func(n int, swap func(i, j int))

// MergeOrdered interleaves pages and flashcards by page number. Flashcards of
// a page come right before that page, in their list order; generic
// flashcards come before every page.
func MergeOrdered(byPage map[int][]*models.Flashcard, numPdfPages int) *Session {
	if numPdfPages < 0 {
		numPdfPages = 0
	}
	flashcards := flatten(byPage)
	numFlashcards := len(flashcards)
	numCards := numFlashcards + numPdfPages

	s := &Session{
		Mode:           Ordered,
		Cards:          make([]models.Card, 0, numCards),
		PageIndex:      make([]int, 0, numPdfPages),
		FlashcardIndex: make([]int, 0, numFlashcards),
	}

	nextFlashcard, nextPage := 0, 0
	for pos := 0; pos < numCards; pos++ {
		ref := models.BackRef{
			PdfPageIndexBefore:   nextPage - 1,
			FlashcardIndexBefore: nextFlashcard - 1,
		}

		if isFlashcardNext(flashcards, nextFlashcard, nextPage, numPdfPages) {
			s.Cards = append(s.Cards, &models.FlashcardCard{Flashcard: flashcards[nextFlashcard], BackRef: ref})
			s.FlashcardIndex = append(s.FlashcardIndex, pos)
			nextFlashcard++
		} else {
			s.Cards = append(s.Cards, &models.PageCard{NumPage: nextPage, Position: pos, BackRef: ref})
			s.PageIndex = append(s.PageIndex, pos)
			nextPage++
		}
	}

	return s
}

func isFlashcardNext(flashcards []*models.Flashcard, nextFlashcard, nextPage, numPdfPages int) bool {
	switch {
	case nextFlashcard == len(flashcards):
		return false
	case nextPage == numPdfPages:
		return true
	default:
		return flashcards[nextFlashcard].ReferencePage <= nextPage
	}
}

// MergeShuffle is MergeShuffleWith using math/rand. The order is not
// reproducible; it only affects review order, never stored state.
func MergeShuffle(byPage map[int][]*models.Flashcard, numPdfPages int) *Session {
	return MergeShuffleWith(byPage, numPdfPages, rand.Shuffle)
}

// MergeShuffleWith permutes the flashcards once with shuffle and places a
// fresh copy of the reference page right after every page specific
// flashcard. Pages no flashcard pointed at are appended in ascending order.
//
// A page referenced by several flashcards is emitted several times and
// PageIndex keeps the last emission. Direct page jumps therefore land on the
// last copy; the navigator's loop anchor compensates for that when paging.
func MergeShuffleWith(byPage map[int][]*models.Flashcard, numPdfPages int, shuffle Shuffler) *Session {
	if numPdfPages < 0 {
		numPdfPages = 0
	}
	flashcards := flatten(byPage)
	if shuffle != nil {
		shuffle(len(flashcards), func(i, j int) {
			flashcards[i], flashcards[j] = flashcards[j], flashcards[i]
		})
	}

	s := &Session{
		Mode:           Shuffled,
		Cards:          make([]models.Card, 0, len(flashcards)+numPdfPages),
		PageIndex:      make([]int, numPdfPages),
		FlashcardIndex: make([]int, 0, len(flashcards)),
	}
	for page := range s.PageIndex {
		s.PageIndex[page] = models.NoIndex
	}
	emitted := make([]bool, numPdfPages)

	for i, fc := range flashcards {
		followed := fc.FollowedByPage(numPdfPages)
		pageBefore := models.GenericPage
		if followed {
			pageBefore = fc.ReferencePage - 1
		}

		s.FlashcardIndex = append(s.FlashcardIndex, len(s.Cards))
		s.Cards = append(s.Cards, &models.FlashcardCard{
			Flashcard: fc,
			BackRef:   models.BackRef{PdfPageIndexBefore: pageBefore, FlashcardIndexBefore: i - 1},
		})

		if !followed {
			continue
		}
		pos := len(s.Cards)
		s.Cards = append(s.Cards, &models.PageCard{
			NumPage:  fc.ReferencePage,
			Position: pos,
			BackRef:  models.BackRef{PdfPageIndexBefore: pageBefore, FlashcardIndexBefore: i},
		})
		s.PageIndex[fc.ReferencePage] = pos
		emitted[fc.ReferencePage] = true
	}

	lastFlashcard := len(flashcards) - 1
	for page := 0; page < numPdfPages; page++ {
		if emitted[page] {
			continue
		}
		pos := len(s.Cards)
		s.Cards = append(s.Cards, &models.PageCard{
			NumPage:  page,
			Position: pos,
			BackRef:  models.BackRef{PdfPageIndexBefore: page - 1, FlashcardIndexBefore: lastFlashcard},
		})
		s.PageIndex[page] = pos
	}

	return s
}
