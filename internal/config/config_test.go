package config_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/pdfreview/internal/config"
)

var _ = Describe("Config", func() {
	var configPath string

	BeforeEach(func() {
		configPath = filepath.Join(GinkgoT().TempDir(), "config.yaml")
	})

	It("should use defaults when the file does not exist", func() {
		cfg, err := config.Load(configPath)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg).To(Equal(config.Default()))
		Expect(cfg.DecksDir).To(Equal(config.DefaultDecksDir))
		Expect(cfg.StartShuffled).To(BeFalse())
		Expect(cfg.Anki.ConnectURL).To(Equal("http://localhost:8765"))
		Expect(cfg.Anki.RootDeck).To(Equal("PDFReview"))
	})

	It("should read values and fill in the rest", func() {
		content := `decks_dir: /srv/notes
start_shuffled: true
anki:
  root_deck: Uni
log:
  verbose: true
`
		Expect(os.WriteFile(configPath, []byte(content), 0644)).To(Succeed())

		cfg, err := config.Load(configPath)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.DecksDir).To(Equal("/srv/notes"))
		Expect(cfg.StartShuffled).To(BeTrue())
		Expect(cfg.Anki.RootDeck).To(Equal("Uni"))
		Expect(cfg.Anki.ConnectURL).To(Equal(config.DefaultAnkiConnectURL))
		Expect(cfg.Log.Verbose).To(BeTrue())
		Expect(cfg.Log.Debug).To(BeFalse())
	})

	It("should report invalid yaml", func() {
		Expect(os.WriteFile(configPath, []byte("decks_dir: [unclosed\n"), 0644)).To(Succeed())

		_, err := config.Load(configPath)
		Expect(err).To(MatchError(ContainSubstring("failed to parse config")))
	})
})
