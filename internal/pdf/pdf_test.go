package pdf_test

import (
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/pdfreview/internal/pdf"
	"github.com/kpauljoseph/pdfreview/pkg/logger"
)

type stubCounter struct {
	pages int
	err   error
	calls int
}

func (s *stubCounter) PageCount(ctx context.Context, pdfPath string) (int, error) {
	s.calls++
	return s.pages, s.err
}

var _ = Describe("PDF", func() {
	var (
		tempDir    string
		pdfPath    string
		testLogger *logger.Logger
		ctx        context.Context
	)

	BeforeEach(func() {
		tempDir = GinkgoT().TempDir()
		pdfPath = filepath.Join(tempDir, "notes.pdf")
		testLogger = pdfTestLogger()
		ctx = context.Background()
		writeBlankPDF(pdfPath, 3)
	})

	Context("Counter", func() {
		It("should count the pages of a pdf", func() {
			n, err := pdf.NewCounter(testLogger).PageCount(ctx, pdfPath)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(3))
		})

		It("should fail on a missing file", func() {
			_, err := pdf.NewCounter(testLogger).PageCount(ctx, filepath.Join(tempDir, "missing.pdf"))
			Expect(err).To(HaveOccurred())
		})

		It("should stop when the context is cancelled", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()
			_, err := pdf.NewCounter(testLogger).PageCount(cancelled, pdfPath)
			Expect(err).To(Equal(context.Canceled))
		})
	})

	Context("Renderer", func() {
		var (
			outputDir string
			renderer  *pdf.Renderer
		)

		BeforeEach(func() {
			var err error
			outputDir = filepath.Join(tempDir, "nested", "render")
			renderer, err = pdf.NewRenderer(outputDir, testLogger)
			Expect(err).NotTo(HaveOccurred())
		})

		It("should create the output directory", func() {
			Expect(outputDir).To(BeADirectory())
			Expect(renderer.OutputDir()).To(Equal(outputDir))
		})

		It("should render a page to png", func() {
			imagePath, err := renderer.RenderPage(ctx, pdfPath, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(imagePath).To(Equal(filepath.Join(outputDir, "notes_page_2.png")))

			f, err := os.Open(imagePath)
			Expect(err).NotTo(HaveOccurred())
			defer f.Close()
			img, err := png.Decode(f)
			Expect(err).NotTo(HaveOccurred())
			Expect(img.Bounds().Dx()).To(BeNumerically(">", 0))
		})

		DescribeTable("rejecting pages outside the pdf",
			func(page int) {
				_, err := renderer.RenderPage(ctx, pdfPath, page)
				Expect(err).To(MatchError(ContainSubstring("out of range")))
			},
			Entry("negative", -1),
			Entry("one past the end", 3),
		)

		It("should count pages as well", func() {
			n, err := renderer.PageCount(ctx, pdfPath)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(3))
		})

		It("should remove its output on cleanup", func() {
			Expect(renderer.Cleanup()).To(Succeed())
			Expect(outputDir).NotTo(BeADirectory())
		})
	})

	Context("FallbackCounter", func() {
		It("should use the first counter that succeeds", func() {
			failing := &stubCounter{err: errors.New("broken xref")}
			working := &stubCounter{pages: 7}
			unused := &stubCounter{pages: 9}

			n, err := pdf.NewFallbackCounter(testLogger, failing, working, unused).PageCount(ctx, pdfPath)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(7))
			Expect(failing.calls).To(Equal(1))
			Expect(unused.calls).To(BeZero())
		})

		It("should return the last error when every counter fails", func() {
			last := errors.New("second")
			_, err := pdf.NewFallbackCounter(testLogger,
				&stubCounter{err: errors.New("first")},
				&stubCounter{err: last},
			).PageCount(ctx, pdfPath)
			Expect(err).To(MatchError(last))
		})

		It("should fail without counters", func() {
			_, err := pdf.NewFallbackCounter(testLogger).PageCount(ctx, pdfPath)
			Expect(err).To(HaveOccurred())
		})
	})
})
