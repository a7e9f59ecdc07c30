package models

import "time"

// Pass is one completed review of every flashcard of a deck.
type Pass struct {
	CompletedAt time.Time
	// Percentage of flashcards marked Know, 0 to 100.
	Percentage float64
}
