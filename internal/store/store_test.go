package store_test

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/pdfreview/internal/deck"
	"github.com/kpauljoseph/pdfreview/internal/store"
	"github.com/kpauljoseph/pdfreview/pkg/models"
)

var _ = Describe("Store", func() {
	var (
		tempDir string
		pdfPath string
		s       *store.Store
	)

	BeforeEach(func() {
		tempDir = GinkgoT().TempDir()
		pdfPath = filepath.Join(tempDir, "chapter1.pdf")
		s = store.New(storeTestLogger())
	})

	DescribeTable("SidecarPath",
		func(pdf, expected string) {
			Expect(store.SidecarPath(pdf)).To(Equal(expected))
		},
		Entry("plain name", "notes.pdf", "notes.flashcards.yaml"),
		Entry("nested path", filepath.Join("a", "b", "c.pdf"), filepath.Join("a", "b", "c.flashcards.yaml")),
		Entry("upper case extension", "notes.PDF", "notes.flashcards.yaml"),
		Entry("dots in the name", "v1.2-notes.pdf", "v1.2-notes.flashcards.yaml"),
	)

	It("should load an empty deck when there is no sidecar file", func() {
		snapshot, err := s.Load(pdfPath, 4)
		Expect(err).NotTo(HaveOccurred())
		Expect(snapshot.Deck.NumPdfPages()).To(Equal(4))
		Expect(snapshot.Deck.NumFlashcards()).To(BeZero())
		Expect(snapshot.Passes).To(BeEmpty())
		Expect(snapshot.FirstPass).To(BeTrue())
	})

	It("should remember that a later pass is running", func() {
		fc := models.NewFlashcard("q", "", models.PageSpecific, 0)
		fc.CurrentResult = models.Know
		Expect(s.Save(pdfPath, &store.Snapshot{
			Deck:      deck.New(map[int][]*models.Flashcard{0: {fc}}, 1),
			FirstPass: false,
		})).To(Succeed())

		snapshot, err := s.Load(pdfPath, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(snapshot.FirstPass).To(BeFalse())
		Expect(snapshot.Deck.PageFlashcards(0)[0].CurrentResult).To(Equal(models.Know))

		Expect(s.Save(pdfPath, &store.Snapshot{Deck: snapshot.Deck, FirstPass: true})).To(Succeed())
		snapshot, err = s.Load(pdfPath, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(snapshot.FirstPass).To(BeTrue())
	})

	It("should keep flashcards, their order and the pass history across save and load", func() {
		g := models.NewFlashcard("What is the topic?", "Graphs", models.Generic, models.GenericPage)
		a := models.NewFlashcard("Define a tree", "A connected acyclic graph", models.PageSpecific, 2)
		b := models.NewFlashcard("Name a traversal", "", models.Generic, 2)
		a.PastResults = []models.Result{models.StillLearning, models.Know}
		b.CurrentResult = models.Know
		completed := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

		Expect(s.Save(pdfPath, &store.Snapshot{
			Deck:   deck.New(map[int][]*models.Flashcard{models.GenericPage: {g}, 2: {a, b}}, 3),
			Passes: []models.Pass{{CompletedAt: completed, Percentage: 75}},
		})).To(Succeed())

		snapshot, err := s.Load(pdfPath, 3)
		Expect(err).NotTo(HaveOccurred())

		loaded := snapshot.Deck
		Expect(loaded.NumFlashcards()).To(Equal(3))
		Expect(loaded.PageFlashcards(models.GenericPage)).To(HaveLen(1))
		Expect(loaded.PageFlashcards(2)).To(HaveLen(2))

		lg := loaded.PageFlashcards(models.GenericPage)[0]
		Expect(lg.ID).To(Equal(g.ID))
		Expect(lg.IsGeneric()).To(BeTrue())
		Expect(lg.Answer).To(Equal("Graphs"))

		la, lb := loaded.PageFlashcards(2)[0], loaded.PageFlashcards(2)[1]
		Expect(la.ID).To(Equal(a.ID))
		Expect(la.QuestionType).To(Equal(models.PageSpecific))
		Expect(la.PastResults).To(Equal([]models.Result{models.StillLearning, models.Know}))
		Expect(lb.ID).To(Equal(b.ID))
		Expect(lb.QuestionType).To(Equal(models.Generic))
		Expect(lb.CurrentResult).To(Equal(models.Know))

		Expect(snapshot.Passes).To(HaveLen(1))
		Expect(snapshot.Passes[0].CompletedAt.Equal(completed)).To(BeTrue())
		Expect(snapshot.Passes[0].Percentage).To(BeNumerically("~", 75.0))
	})

	It("should replace the sidecar without leaving temp files behind", func() {
		first := deck.New(map[int][]*models.Flashcard{0: {models.NewFlashcard("one", "", models.PageSpecific, 0)}}, 1)
		second := deck.New(nil, 1)

		Expect(s.Save(pdfPath, &store.Snapshot{Deck: first})).To(Succeed())
		Expect(s.Save(pdfPath, &store.Snapshot{Deck: second})).To(Succeed())

		entries, err := os.ReadDir(tempDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(HaveLen(1))
		Expect(entries[0].Name()).To(Equal("chapter1.flashcards.yaml"))

		snapshot, err := s.Load(pdfPath, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(snapshot.Deck.NumFlashcards()).To(BeZero())
	})

	It("should read hand-written files and fill in missing ids", func() {
		content := `version: 1
flashcards:
  - page: 0
    type: page
    question: First page question
    answer: Sure
  - type: generic
    question: Overall question
    past_results: [know]
`
		Expect(os.WriteFile(store.SidecarPath(pdfPath), []byte(content), 0644)).To(Succeed())

		snapshot, err := s.Load(pdfPath, 2)
		Expect(err).NotTo(HaveOccurred())

		first := snapshot.Deck.PageFlashcards(0)
		Expect(first).To(HaveLen(1))
		Expect(first[0].ID).NotTo(BeEmpty())
		Expect(first[0].QuestionType).To(Equal(models.PageSpecific))

		generic := snapshot.Deck.PageFlashcards(models.GenericPage)
		Expect(generic).To(HaveLen(1))
		Expect(generic[0].PastResults).To(Equal([]models.Result{models.Know}))
		Expect(generic[0].CurrentResult).To(Equal(models.NotDone))
		Expect(snapshot.FirstPass).To(BeTrue())
	})

	DescribeTable("rejecting broken files",
		func(content string) {
			Expect(os.WriteFile(store.SidecarPath(pdfPath), []byte(content), 0644)).To(Succeed())
			_, err := s.Load(pdfPath, 2)
			Expect(err).To(HaveOccurred())
		},
		Entry("invalid yaml", "flashcards: [\n"),
		Entry("newer format", "version: 99\nflashcards: []\n"),
		Entry("empty question", "flashcards:\n  - page: 0\n    question: \"  \"\n"),
		Entry("negative page", "flashcards:\n  - page: -4\n    question: q\n"),
	)
})
