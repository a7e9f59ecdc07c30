package main

import (
	"path/filepath"
	"strings"
)

// deckRelPath is pdfPath relative to the decks directory, or just its file
// name when it lives elsewhere.
func deckRelPath(decksDir, pdfPath string) string {
	absDir, err := filepath.Abs(decksDir)
	if err != nil {
		return filepath.Base(pdfPath)
	}
	absPDF, err := filepath.Abs(pdfPath)
	if err != nil {
		return filepath.Base(pdfPath)
	}
	rel, err := filepath.Rel(absDir, absPDF)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.Base(pdfPath)
	}
	return rel
}
