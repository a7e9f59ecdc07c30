package navigator

import (
	"strings"

	"github.com/kpauljoseph/pdfreview/internal/deck"
	"github.com/kpauljoseph/pdfreview/pkg/models"
)

// SearchFlashcard moves to the first flashcard whose question or answer
// contains text, ignoring case. The search starts at the cursor, or just
// after it when includeCurrent is false, and wraps around to the start of
// the session. It reports whether a flashcard was found; the cursor does not
// move otherwise. Shuffled sessions are not searched.
func (n *Navigator) SearchFlashcard(text string, includeCurrent bool) bool {
	if n.session.Mode != deck.Ordered || n.session.Len() == 0 {
		return false
	}
	needle := strings.ToLower(strings.TrimSpace(text))

	total := n.session.Len()
	for offset := 0; offset < total; offset++ {
		pos := (n.cursor + offset) % total
		if pos == n.cursor && !includeCurrent {
			continue
		}
		fc, ok := n.session.At(pos).(*models.FlashcardCard)
		if !ok {
			continue
		}
		haystack := strings.ToLower(fc.Flashcard.Question + fc.Flashcard.Answer)
		if strings.Contains(haystack, needle) {
			n.logger.Trace("search %q matched at %d", needle, pos)
			n.moveTo(pos)
			return true
		}
	}

	n.logger.Trace("search %q found nothing", needle)
	return false
}
