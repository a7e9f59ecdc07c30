package deck

import (
	"sort"

	"github.com/kpauljoseph/pdfreview/pkg/models"
)

// Deck holds the flashcards of one pdf, grouped by reference page. Each page
// list keeps the order in which the learner placed its flashcards.
type Deck struct {
	byPage      map[int][]*models.Flashcard
	numPdfPages int
}

// New takes ownership of byPage. A nil map is treated as empty.
func New(byPage map[int][]*models.Flashcard, numPdfPages int) *Deck {
	if byPage == nil {
		byPage = make(map[int][]*models.Flashcard)
	}
	if numPdfPages < 0 {
		numPdfPages = 0
	}
	return &Deck{
		byPage:      byPage,
		numPdfPages: numPdfPages,
	}
}

func (d *Deck) NumPdfPages() int {
	return d.numPdfPages
}

func (d *Deck) SetNumPdfPages(n int) {
	if n < 0 {
		n = 0
	}
	d.numPdfPages = n
}

// FlashcardsByPage returns the live map, for handing back to persistence.
func (d *Deck) FlashcardsByPage() map[int][]*models.Flashcard {
	return d.byPage
}

func (d *Deck) NumFlashcards() int {
	count := 0
	for _, list := range d.byPage {
		count += len(list)
	}
	return count
}

// Flashcards returns every flashcard ordered by reference page, then by
// position within the page.
func (d *Deck) Flashcards() []*models.Flashcard {
	return flatten(d.byPage)
}

func (d *Deck) PageFlashcards(page int) []*models.Flashcard {
	return d.byPage[page]
}

// IndexOf returns the position of fc in the list of the given page, or -1.
func (d *Deck) IndexOf(page int, fc *models.Flashcard) int {
	for i, candidate := range d.byPage[page] {
		if candidate == fc {
			return i
		}
	}
	return -1
}

// Insert places fc in the list of its reference page at index. Indices
// outside the list append.
func (d *Deck) Insert(fc *models.Flashcard, index int) {
	list := d.byPage[fc.ReferencePage]
	if index < 0 || index > len(list) {
		index = len(list)
	}
	list = append(list, nil)
	copy(list[index+1:], list[index:])
	list[index] = fc
	d.byPage[fc.ReferencePage] = list
}

// Remove deletes fc from the list of its reference page. It reports whether
// the flashcard was found.
func (d *Deck) Remove(fc *models.Flashcard) bool {
	page := fc.ReferencePage
	i := d.IndexOf(page, fc)
	if i < 0 {
		return false
	}
	list := d.byPage[page]
	list = append(list[:i], list[i+1:]...)
	if len(list) == 0 {
		delete(d.byPage, page)
	} else {
		d.byPage[page] = list
	}
	return true
}

// ClampPageReferences moves flashcards that reference a page past the end of
// the pdf onto the last page, after the flashcards already there. The pdf may
// have lost pages since the flashcards were written. It returns the number of
// flashcards moved.
func (d *Deck) ClampPageReferences() int {
	if d.numPdfPages == 0 {
		return 0
	}
	last := d.numPdfPages - 1
	moved := 0
	for _, page := range sortedPages(d.byPage) {
		if page < d.numPdfPages {
			continue
		}
		for _, fc := range d.byPage[page] {
			fc.ReferencePage = last
			d.byPage[last] = append(d.byPage[last], fc)
			moved++
		}
		delete(d.byPage, page)
	}
	return moved
}

// Regroup files every flashcard under the list of its current reference
// page, after reference pages were changed in place. Flashcards keep their
// relative order.
func (d *Deck) Regroup() {
	byPage := make(map[int][]*models.Flashcard)
	for _, fc := range flatten(d.byPage) {
		byPage[fc.ReferencePage] = append(byPage[fc.ReferencePage], fc)
	}
	d.byPage = byPage
}

func sortedPages(byPage map[int][]*models.Flashcard) []int {
	pages := make([]int, 0, len(byPage))
	for page := range byPage {
		pages = append(pages, page)
	}
	sort.Ints(pages)
	return pages
}

func flatten(byPage map[int][]*models.Flashcard) []*models.Flashcard {
	var flashcards []*models.Flashcard
	for _, page := range sortedPages(byPage) {
		flashcards = append(flashcards, byPage[page]...)
	}
	return flashcards
}
