package review

import (
	"math/rand/v2"
	"time"

	"github.com/kpauljoseph/pdfreview/internal/deck"
	"github.com/kpauljoseph/pdfreview/internal/navigator"
	"github.com/kpauljoseph/pdfreview/pkg/logger"
	"github.com/kpauljoseph/pdfreview/pkg/models"
)

// Reviewer owns the deck, session and navigator of one review. It is not safe
// for concurrent use; every call finishes, remerge included, before it
// returns.
type Reviewer struct {
	deck      *deck.Deck
	mode      deck.Mode
	session   *deck.Session
	nav       *navigator.Navigator
	passes    []models.Pass
	firstPass bool
	dirty     bool

	shuffle deck.Shuffler
	now     func() time.Time
	logger  *logger.Logger
}

type Option func(*Reviewer)

func WithMode(mode deck.Mode) Option {
	return func(r *Reviewer) {
		r.mode = mode
	}
}

func WithShuffler(shuffle deck.Shuffler) Option {
	return func(r *Reviewer) {
		r.shuffle = shuffle
	}
}

func WithPasses(passes []models.Pass) Option {
	return func(r *Reviewer) {
		r.passes = append([]models.Pass(nil), passes...)
	}
}

// WithFirstPass restores whether the running pass is a first pass. New
// reviews start with one.
func WithFirstPass(firstPass bool) Option {
	return func(r *Reviewer) {
		r.firstPass = firstPass
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *Reviewer) {
		r.now = now
	}
}

// New clamps stale page references of d, merges it and puts the cursor on
// the first card.
func New(d *deck.Deck, logger *logger.Logger, options ...Option) *Reviewer {
	r := &Reviewer{
		deck:      d,
		mode:      deck.Ordered,
		firstPass: true,
		shuffle:   rand.Shuffle,
		now:       time.Now,
		logger:    logger,
	}
	for _, opt := range options {
		opt(r)
	}

	if moved := d.ClampPageReferences(); moved > 0 {
		r.logger.Info("Moved %d flashcards past the end of the pdf to page %d", moved, d.NumPdfPages())
		r.dirty = true
	}

	r.session = r.merge()
	r.nav = navigator.New(r.session, logger)
	r.logger.Debug("Review ready: %d pages, %d flashcards, %s", d.NumPdfPages(), d.NumFlashcards(), r.mode)
	return r
}

func (r *Reviewer) Deck() *deck.Deck {
	return r.deck
}

func (r *Reviewer) Session() *deck.Session {
	return r.session
}

func (r *Reviewer) Navigator() *navigator.Navigator {
	return r.nav
}

func (r *Reviewer) Mode() deck.Mode {
	return r.mode
}

// Dirty reports whether the deck changed since the last MarkSaved.
func (r *Reviewer) Dirty() bool {
	return r.dirty
}

func (r *Reviewer) MarkSaved() {
	r.dirty = false
}

// CurrentPage is the page of the card under the cursor: the page itself, or
// the reference page of a flashcard.
func (r *Reviewer) CurrentPage() int {
	card := r.nav.Current()
	if card == nil {
		return models.GenericPage
	}
	return card.PdfPage()
}

// SetMode switches between ordered and shuffled review and starts over from
// the first card.
func (r *Reviewer) SetMode(mode deck.Mode) {
	r.mode = mode
	r.remerge()
	r.nav.Restart()
	r.logger.Info("Switched to %s review", mode)
}

// Reshuffle rebuilds the session in the current mode.
func (r *Reviewer) Reshuffle() {
	r.remerge()
	r.nav.Restart()
}

// SetNumPdfPages follows a change of the pdf's page count.
func (r *Reviewer) SetNumPdfPages(n int) {
	r.deck.SetNumPdfPages(n)
	if moved := r.deck.ClampPageReferences(); moved > 0 {
		r.logger.Info("Moved %d flashcards past the end of the pdf to page %d", moved, r.deck.NumPdfPages())
		r.dirty = true
	}
	r.remerge()
}

func (r *Reviewer) merge() *deck.Session {
	if r.mode == deck.Shuffled {
		return deck.MergeShuffleWith(r.deck.FlashcardsByPage(), r.deck.NumPdfPages(), r.shuffle)
	}
	return deck.MergeOrdered(r.deck.FlashcardsByPage(), r.deck.NumPdfPages())
}

func (r *Reviewer) remerge() {
	r.session = r.merge()
	r.nav.Rebind(r.session)
	r.logger.Debug("Rebuilt %s session: %d cards", r.mode, r.session.Len())
}
