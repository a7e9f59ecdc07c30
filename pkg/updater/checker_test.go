package updater_test

import (
	"context"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/pdfreview/pkg/logger"
	"github.com/kpauljoseph/pdfreview/pkg/updater"
)

var _ = Describe("Checker", func() {
	var (
		status int
		body   string
		server *httptest.Server
	)

	BeforeEach(func() {
		status, body = http.StatusOK, `{"tag_name": "v1.10.0", "body": "Faster shuffles", "html_url": "https://example.com/release"}`
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			Expect(r.Header.Get("User-Agent")).To(Equal("PDFReview-Updater"))
			w.WriteHeader(status)
			_, _ = w.Write([]byte(body))
		}))
	})

	AfterEach(func() {
		server.Close()
	})

	newChecker := func(current string) *updater.Checker {
		return updater.NewChecker(
			logger.New(logger.WithOutput(GinkgoWriter), logger.WithFlags(0)),
			updater.WithReleasesURL(server.URL),
			updater.WithCurrentVersion(current),
		)
	}

	It("should report a newer release", func() {
		info, err := newChecker("v1.9.2").CheckForUpdates(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(info.IsAvailable).To(BeTrue())
		Expect(info.CurrentVersion).To(Equal("1.9.2"))
		Expect(info.LatestVersion).To(Equal("1.10.0"))
		Expect(info.UpdateMessage).To(Equal("Faster shuffles"))
		Expect(info.DownloadURL).To(Equal("https://example.com/release"))
	})

	It("should not report the running release", func() {
		info, err := newChecker("1.10.0").CheckForUpdates(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(info.IsAvailable).To(BeFalse())
	})

	It("should fail on an error status", func() {
		status = http.StatusForbidden
		_, err := newChecker("1.0.0").CheckForUpdates(context.Background())
		Expect(err).To(MatchError(ContainSubstring("status 403")))
	})

	DescribeTable("CompareVersions",
		func(v1, v2 string, expected int) {
			Expect(updater.CompareVersions(v1, v2)).To(Equal(expected))
		},
		Entry("equal", "1.2.3", "1.2.3", 0),
		Entry("older patch", "1.2.3", "1.2.4", -1),
		Entry("numeric not lexical", "1.10.0", "1.9.0", 1),
		Entry("shorter is older", "1.2", "1.2.1", -1),
		Entry("longer is newer", "2.0.0.1", "2.0.0", 1),
	)
})
