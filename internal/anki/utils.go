package anki

import (
	"path/filepath"
	"strings"
)

const (
	ANKI_CONNECT_VERSION = 6
	deckSeparator        = "::"
)

// GetDeckNameFromPath maps a pdf path relative to the decks directory onto
// a nested Anki deck: math/graphs/trees.pdf -> <root>::math::graphs::trees
func GetDeckNameFromPath(rootPrefix string, relativePath string) string {
	var parts []string
	if rootPrefix != "" {
		parts = append(parts, rootPrefix)
	}

	dirPath := filepath.ToSlash(filepath.Dir(relativePath))
	if dirPath != "." && dirPath != "" {
		for _, dir := range strings.Split(dirPath, "/") {
			if dir != "" {
				parts = append(parts, dir)
			}
		}
	}

	fileName := strings.TrimSuffix(filepath.Base(relativePath), filepath.Ext(relativePath))
	parts = append(parts, fileName)

	return strings.Join(parts, deckSeparator)
}
