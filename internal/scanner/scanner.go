package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kpauljoseph/pdfreview/internal/store"
	"github.com/kpauljoseph/pdfreview/pkg/logger"
)

// Deck is a pdf found on disk together with its flashcard file.
type Deck struct {
	PDFPath string
	// RelPath is PDFPath relative to the scanned directory.
	RelPath       string
	SidecarPath   string
	HasFlashcards bool
}

type DirectoryScanner struct {
	logger *logger.Logger
}

func New(logger *logger.Logger) *DirectoryScanner {
	return &DirectoryScanner{
		logger: logger,
	}
}

// FindPDFs returns every pdf below dir, sorted by path.
func (s *DirectoryScanner) FindPDFs(ctx context.Context, dir string) ([]string, error) {
	var pdfs []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			return fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if d.IsDir() {
			s.logger.Trace("Scanning directory: %s", path)
			return nil
		}

		if !strings.EqualFold(filepath.Ext(path), ".pdf") {
			return nil
		}

		pdfs = append(pdfs, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(pdfs) == 0 {
		return nil, fmt.Errorf("no PDF files found in %s or its subdirectories", dir)
	}

	sort.Strings(pdfs)
	return pdfs, nil
}

// FindDecks returns every pdf below dir and where its flashcards live.
func (s *DirectoryScanner) FindDecks(ctx context.Context, dir string) ([]Deck, error) {
	pdfs, err := s.FindPDFs(ctx, dir)
	if err != nil {
		return nil, err
	}

	decks := make([]Deck, 0, len(pdfs))
	for _, path := range pdfs {
		relPath, err := filepath.Rel(dir, path)
		if err != nil {
			relPath = path
		}

		sidecar := store.SidecarPath(path)
		_, statErr := os.Stat(sidecar)

		decks = append(decks, Deck{
			PDFPath:       path,
			RelPath:       relPath,
			SidecarPath:   sidecar,
			HasFlashcards: statErr == nil,
		})
		s.logger.Debug("Found deck (%d): %s", len(decks), relPath)
	}

	return decks, nil
}
