package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kpauljoseph/pdfreview/internal/deck"
	"github.com/kpauljoseph/pdfreview/pkg/logger"
	"github.com/kpauljoseph/pdfreview/pkg/models"
)

const (
	SidecarSuffix = ".flashcards.yaml"
	formatVersion = 1
)

// SidecarPath is the flashcard file kept next to a pdf:
// notes/chapter1.pdf -> notes/chapter1.flashcards.yaml
func SidecarPath(pdfPath string) string {
	return strings.TrimSuffix(pdfPath, filepath.Ext(pdfPath)) + SidecarSuffix
}

type document struct {
	Version    int              `yaml:"version"`
	Flashcards []flashcardEntry `yaml:"flashcards"`
	Passes     []passEntry      `yaml:"passes,omitempty"`
	// Absent in files written before passes were tracked.
	FirstPass *bool `yaml:"first_pass,omitempty"`
}

type flashcardEntry struct {
	ID       string `yaml:"id"`
	Page     *int   `yaml:"page,omitempty"`
	Type     string `yaml:"type"`
	Question string `yaml:"question"`
	Answer   string `yaml:"answer,omitempty"`
	// Results of completed passes, oldest first.
	PastResults   []string `yaml:"past_results,omitempty"`
	CurrentResult string   `yaml:"current_result,omitempty"`
}

type passEntry struct {
	CompletedAt time.Time `yaml:"completed_at"`
	Percentage  float64   `yaml:"percentage"`
}

// Snapshot is everything kept in a sidecar file.
type Snapshot struct {
	Deck   *deck.Deck
	Passes []models.Pass
	// FirstPass is set while the running shuffled pass starts from a clean
	// slate.
	FirstPass bool
}

type Store struct {
	logger *logger.Logger
}

func New(logger *logger.Logger) *Store {
	return &Store{logger: logger}
}

// Load reads the flashcards of pdfPath. A pdf without a sidecar file has an
// empty deck.
func (s *Store) Load(pdfPath string, numPdfPages int) (*Snapshot, error) {
	path := SidecarPath(pdfPath)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("No flashcards found for %s", pdfPath)
		return &Snapshot{Deck: deck.New(nil, numPdfPages), FirstPass: true}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read flashcards file: %w", err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse flashcards file %s: %w", path, err)
	}
	if doc.Version > formatVersion {
		return nil, fmt.Errorf("flashcards file %s has version %d, newest supported is %d", path, doc.Version, formatVersion)
	}

	byPage := make(map[int][]*models.Flashcard)
	for i, entry := range doc.Flashcards {
		fc, err := entry.toFlashcard()
		if err != nil {
			return nil, fmt.Errorf("flashcard %d in %s: %w", i+1, path, err)
		}
		byPage[fc.ReferencePage] = append(byPage[fc.ReferencePage], fc)
	}

	passes := make([]models.Pass, 0, len(doc.Passes))
	for _, p := range doc.Passes {
		passes = append(passes, models.Pass{CompletedAt: p.CompletedAt, Percentage: p.Percentage})
	}

	s.logger.Debug("Loaded %d flashcards and %d passes from %s", len(doc.Flashcards), len(passes), path)
	firstPass := doc.FirstPass == nil || *doc.FirstPass
	return &Snapshot{Deck: deck.New(byPage, numPdfPages), Passes: passes, FirstPass: firstPass}, nil
}

// Save writes the sidecar of pdfPath. The file is replaced in one rename so a
// crash never leaves it half written.
func (s *Store) Save(pdfPath string, snapshot *Snapshot) error {
	firstPass := snapshot.FirstPass
	doc := document{Version: formatVersion, FirstPass: &firstPass}
	for _, fc := range snapshot.Deck.Flashcards() {
		doc.Flashcards = append(doc.Flashcards, fromFlashcard(fc))
	}
	for _, p := range snapshot.Passes {
		doc.Passes = append(doc.Passes, passEntry{CompletedAt: p.CompletedAt.UTC(), Percentage: p.Percentage})
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("failed to encode flashcards: %w", err)
	}

	path := SidecarPath(pdfPath)
	if err := writeFileAtomic(path, data); err != nil {
		return err
	}

	s.logger.Debug("Saved %d flashcards to %s", len(doc.Flashcards), path)
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write flashcards: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to sync flashcards: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

func fromFlashcard(fc *models.Flashcard) flashcardEntry {
	entry := flashcardEntry{
		ID:            fc.ID,
		Type:          fc.QuestionType.String(),
		Question:      fc.Question,
		Answer:        fc.Answer,
		CurrentResult: fc.CurrentResult.String(),
	}
	if !fc.IsGeneric() {
		page := fc.ReferencePage
		entry.Page = &page
	}
	for _, r := range fc.PastResults {
		entry.PastResults = append(entry.PastResults, r.String())
	}
	return entry
}

func (e flashcardEntry) toFlashcard() (*models.Flashcard, error) {
	if strings.TrimSpace(e.Question) == "" {
		return nil, errors.New("empty question")
	}
	page := models.GenericPage
	if e.Page != nil {
		if *e.Page < 0 {
			return nil, fmt.Errorf("invalid page %d", *e.Page)
		}
		page = *e.Page
	}

	fc := models.NewFlashcard(e.Question, e.Answer, models.ParseQuestionType(e.Type), page)
	if e.ID != "" {
		fc.ID = e.ID
	}
	fc.CurrentResult = models.ParseResult(e.CurrentResult)
	for _, r := range e.PastResults {
		fc.PastResults = append(fc.PastResults, models.ParseResult(r))
	}
	return fc, nil
}
