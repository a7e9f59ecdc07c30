package review

import (
	"github.com/kpauljoseph/pdfreview/internal/deck"
	"github.com/kpauljoseph/pdfreview/pkg/models"
)

type Progress struct {
	Total    int
	Answered int
	Known    int
}

func (r *Reviewer) Progress() Progress {
	var p Progress
	for _, fc := range r.deck.Flashcards() {
		p.Total++
		if fc.CurrentResult != models.NotDone {
			p.Answered++
		}
		if fc.CurrentResult == models.Know {
			p.Known++
		}
	}
	return p
}

func (r *Reviewer) Passes() []models.Pass {
	return r.passes
}

// CompletedPasses counts the first passes recorded in the history. It only
// ever grows.
func (r *Reviewer) CompletedPasses() int {
	return len(r.passes)
}

// FirstPass reports whether the running pass starts from a clean slate. Only
// first passes go into the history.
func (r *Reviewer) FirstPass() bool {
	return r.firstPass
}

// RecordResult marks the flashcard under the cursor during a shuffled
// review. Once every flashcard has a result the pass is closed and returned.
//
// A first pass is added to the history and each flashcard's result to its
// past results. If every flashcard is known, all results are cleared, the
// next pass is a first pass again and the review goes back to ordered mode.
// Otherwise known flashcards keep their result and the learner goes on with
// the rest in a new shuffled session.
func (r *Reviewer) RecordResult(result models.Result) (*models.Pass, error) {
	if result != models.Know && result != models.StillLearning {
		return nil, &ValidationError{Field: "result", Reason: "must be know or still learning"}
	}
	if r.mode != deck.Shuffled {
		return nil, &LogicError{Op: "record result", Reason: "results are only recorded in a shuffled review"}
	}
	current, ok := r.nav.Current().(*models.FlashcardCard)
	if !ok {
		return nil, &LogicError{Op: "record result", Reason: "the current card is not a flashcard"}
	}

	current.Flashcard.CurrentResult = result
	r.dirty = true
	r.logger.Debug("Recorded %s for flashcard %s", result, current.Flashcard.ID)

	progress := r.Progress()
	if progress.Answered < progress.Total {
		return nil, nil
	}

	pass := models.Pass{
		CompletedAt: r.now(),
		Percentage:  float64(progress.Known) / float64(progress.Total) * 100,
	}
	finished := progress.Known == progress.Total

	if r.firstPass {
		r.passes = append(r.passes, pass)
		for _, fc := range r.deck.Flashcards() {
			fc.PastResults = append(fc.PastResults, fc.CurrentResult)
		}
		r.logger.Info("Completed review pass %d: %.1f%% known", len(r.passes), pass.Percentage)
	}
	r.firstPass = finished

	for _, fc := range r.deck.Flashcards() {
		if finished || fc.CurrentResult != models.Know {
			fc.CurrentResult = models.NotDone
		}
	}

	if finished {
		r.mode = deck.Ordered
		r.logger.Info("Every flashcard is known, back to ordered review")
	}
	r.remerge()
	r.nav.Restart()

	return &pass, nil
}
