package review_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/pdfreview/internal/deck"
	"github.com/kpauljoseph/pdfreview/internal/review"
	"github.com/kpauljoseph/pdfreview/pkg/models"
)

var _ = Describe("ShiftReferencePages", func() {
	var (
		a, b, c, loose, g *models.Flashcard
		d                 *deck.Deck
		r                 *review.Reviewer
	)

	// [G, A, P0, P1, loose, B, P2, P3, C, P4]
	BeforeEach(func() {
		g = models.NewFlashcard("overview", "", models.Generic, models.GenericPage)
		a = models.NewFlashcard("a", "", models.PageSpecific, 0)
		loose = models.NewFlashcard("loose", "", models.Generic, 2)
		b = models.NewFlashcard("b", "", models.PageSpecific, 2)
		c = models.NewFlashcard("c", "", models.PageSpecific, 4)
		d = deck.New(map[int][]*models.Flashcard{
			models.GenericPage: {g},
			0:                  {a},
			2:                  {loose, b},
			4:                  {c},
		}, 5)
		r = review.New(d, reviewTestLogger())
	})

	positionOf := func(fc *models.Flashcard) int {
		s := r.Session()
		for i := 0; i < s.Len(); i++ {
			if card, ok := s.At(i).(*models.FlashcardCard); ok && card.Flashcard == fc {
				return i
			}
		}
		Fail("flashcard not in session")
		return -1
	}

	It("should shift page-specific flashcards from the cursor to the end", func() {
		r.Navigator().SetCursor(positionOf(b))

		Expect(r.ShiftReferencePages(1, true)).To(Equal(1))
		Expect(a.ReferencePage).To(Equal(0))
		Expect(b.ReferencePage).To(Equal(3))
		Expect(c.ReferencePage).To(Equal(4))
		Expect(d.PageFlashcards(3)).To(Equal([]*models.Flashcard{b}))
		Expect(d.PageFlashcards(2)).To(Equal([]*models.Flashcard{loose}))
		Expect(r.Dirty()).To(BeTrue())
		Expect(r.Session().Len()).To(Equal(10))
	})

	It("should shift flashcards up to the cursor", func() {
		r.Navigator().SetCursor(positionOf(b))

		Expect(r.ShiftReferencePages(2, false)).To(Equal(2))
		Expect(a.ReferencePage).To(Equal(2))
		Expect(b.ReferencePage).To(Equal(4))
		Expect(c.ReferencePage).To(Equal(4))
		Expect(d.PageFlashcards(2)).To(Equal([]*models.Flashcard{a, loose}))
		Expect(d.PageFlashcards(4)).To(Equal([]*models.Flashcard{b, c}))
	})

	It("should clamp to the first page", func() {
		r.Navigator().SetCursor(0)

		Expect(r.ShiftReferencePages(-3, true)).To(Equal(2))
		Expect(a.ReferencePage).To(Equal(0))
		Expect(b.ReferencePage).To(Equal(0))
		Expect(c.ReferencePage).To(Equal(1))
	})

	It("should clamp to the last page", func() {
		r.Navigator().SetCursor(r.Session().Len() - 1)

		Expect(r.ShiftReferencePages(10, false)).To(Equal(2))
		Expect(a.ReferencePage).To(Equal(4))
		Expect(b.ReferencePage).To(Equal(4))
		Expect(c.ReferencePage).To(Equal(4))
	})

	It("should leave generic flashcards alone", func() {
		r.Navigator().SetCursor(0)

		r.ShiftReferencePages(1, true)
		Expect(g.IsGeneric()).To(BeTrue())
		Expect(loose.ReferencePage).To(Equal(2))
	})

	It("should do nothing for a zero shift", func() {
		Expect(r.ShiftReferencePages(0, true)).To(BeZero())
		Expect(r.Dirty()).To(BeFalse())
	})

	It("should keep the cursor where it was", func() {
		pos := positionOf(b)
		r.Navigator().SetCursor(pos)

		r.ShiftReferencePages(-1, true)
		Expect(r.Navigator().Cursor()).To(Equal(pos))
	})
})
