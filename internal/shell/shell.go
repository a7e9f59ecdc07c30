package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kpauljoseph/pdfreview/internal/deck"
	"github.com/kpauljoseph/pdfreview/internal/navigator"
	"github.com/kpauljoseph/pdfreview/internal/pdf"
	"github.com/kpauljoseph/pdfreview/internal/review"
	"github.com/kpauljoseph/pdfreview/pkg/logger"
	"github.com/kpauljoseph/pdfreview/pkg/models"
)

// ErrQuit is returned by Execute for the quit command.
var ErrQuit = errors.New("quit")

const helpText = `Commands:
  n / p              next / previous card (reveals and hides answers)
  N / P              next / previous page
  f / F              next / previous flashcard
  g <page>           go to page (numbered from 1)
  add <q> | <a>      add a flashcard about the current page
  addg <q> | <a>     add a flashcard about the whole document
  edit <q> | <a>     change the current flashcard
  move <page>|g      anchor the current flashcard to another page, or to none
  rm                 remove the current flashcard
  search <text>      next flashcard containing text, from the current card
  again              repeat the last search past the current card
  shift <n> [to]     move flashcards from here to the end n pages, or up to here
  know / learning    record a result (shuffled review only)
  shuffle / order    switch review mode
  restart            back to the first card
  status             review progress
  save               write flashcards to disk
  help               this text
  quit               save and leave`

// Saver persists the reviewer's deck.
type Saver func() error

// Shell is the interactive review loop: one command per line in, one view
// per command out.
type Shell struct {
	reviewer *review.Reviewer
	save     Saver
	pdfPath  string
	renderer pdf.PageRenderer
	out      io.Writer
	logger   *logger.Logger

	lastSearch string
}

type Option func(*Shell)

// WithRenderer writes the page under the cursor to an image after every
// command.
func WithRenderer(pdfPath string, renderer pdf.PageRenderer) Option {
	return func(s *Shell) {
		s.pdfPath = pdfPath
		s.renderer = renderer
	}
}

func New(reviewer *review.Reviewer, save Saver, out io.Writer, logger *logger.Logger, options ...Option) *Shell {
	s := &Shell{
		reviewer: reviewer,
		save:     save,
		out:      out,
		logger:   logger,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Run reads commands from in until quit, end of input or ctx is done.
// Unsaved changes are saved on the way out.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				readErr <- nil
				return
			}
		}
		readErr <- scanner.Err()
	}()

	s.show(ctx)
	var err error
loop:
	for {
		fmt.Fprint(s.out, "> ")
		select {
		case <-ctx.Done():
			fmt.Fprintln(s.out)
			s.logger.Debug("Review interrupted: %v", ctx.Err())
			break loop
		case line, ok := <-lines:
			if !ok {
				if scanErr := <-readErr; scanErr != nil {
					err = fmt.Errorf("failed to read commands: %w", scanErr)
				}
				break loop
			}
			execErr := s.Execute(ctx, line)
			if errors.Is(execErr, ErrQuit) {
				break loop
			}
			if execErr != nil {
				fmt.Fprintf(s.out, "error: %v\n", execErr)
				continue
			}
			s.show(ctx)
		}
	}

	if s.reviewer.Dirty() {
		if saveErr := s.saveDeck(); saveErr != nil {
			return saveErr
		}
	}
	return err
}

// Execute runs one command line.
func (s *Shell) Execute(ctx context.Context, line string) error {
	command, args, _ := strings.Cut(strings.TrimSpace(line), " ")
	args = strings.TrimSpace(args)
	nav := s.reviewer.Navigator()

	switch command {
	case "":
		return nil
	case "n":
		nav.NextCard()
	case "p":
		nav.PreviousCard()
	case "N":
		nav.NextPage()
	case "P":
		nav.PreviousPage()
	case "f":
		nav.NextFlashcard()
	case "F":
		nav.PreviousFlashcard()
	case "g":
		page, err := parsePage(args)
		if err != nil {
			return err
		}
		if page < 0 || page >= s.reviewer.Deck().NumPdfPages() {
			return fmt.Errorf("page %s is not in the pdf", args)
		}
		nav.GoToPage(page)
	case "add", "addg":
		question, answer := splitQA(args)
		target := s.reviewer.CurrentPage()
		if command == "addg" {
			target = models.GenericPage
		}
		if _, err := s.reviewer.AddFlashcard(question, answer, command == "add", target); err != nil {
			return err
		}
	case "edit":
		current, err := s.currentFlashcard("edit")
		if err != nil {
			return err
		}
		question, answer := splitQA(args)
		_, err = s.reviewer.ModifyFlashcard(review.FlashcardEdit{
			Question:     question,
			Answer:       answer,
			PageSpecific: current.QuestionType == models.PageSpecific,
			TargetPage:   current.ReferencePage,
		})
		return err
	case "move":
		current, err := s.currentFlashcard("move")
		if err != nil {
			return err
		}
		target := models.GenericPage
		if args != "g" {
			if target, err = parsePage(args); err != nil {
				return err
			}
		}
		_, err = s.reviewer.ModifyFlashcard(review.FlashcardEdit{
			Question:     current.Question,
			Answer:       current.Answer,
			PageSpecific: target != models.GenericPage,
			TargetPage:   target,
		})
		return err
	case "rm":
		if _, err := s.reviewer.RemoveFlashcard(); err != nil {
			return err
		}
	case "know", "learning":
		result := models.Know
		if command == "learning" {
			result = models.StillLearning
		}
		pass, err := s.reviewer.RecordResult(result)
		if err != nil {
			return err
		}
		if pass == nil {
			nav.NextFlashcard()
			break
		}
		fmt.Fprintf(s.out, "Pass complete: %.0f%% known\n", pass.Percentage)
		if s.reviewer.Mode() == deck.Ordered {
			fmt.Fprintln(s.out, "Every flashcard is known, back to ordered review.")
		}
	case "search", "again":
		text := args
		if command == "again" {
			text = s.lastSearch
		}
		if strings.TrimSpace(text) == "" {
			return fmt.Errorf("nothing to search for")
		}
		if s.reviewer.Mode() != deck.Ordered {
			return &review.LogicError{Op: "search", Reason: "flashcards are only searched in an ordered review"}
		}
		s.lastSearch = text
		if !nav.SearchFlashcard(text, command == "search") {
			fmt.Fprintf(s.out, "No flashcard contains %q\n", text)
		}
	case "shift":
		amount, direction, _ := strings.Cut(args, " ")
		increment, err := strconv.Atoi(amount)
		if err != nil {
			return fmt.Errorf("invalid shift %q", amount)
		}
		fromHere := true
		switch strings.TrimSpace(direction) {
		case "", "from":
		case "to":
			fromHere = false
		default:
			return fmt.Errorf("shift direction must be from or to, got %q", direction)
		}
		moved := s.reviewer.ShiftReferencePages(increment, fromHere)
		fmt.Fprintf(s.out, "Moved %d flashcards\n", moved)
	case "shuffle":
		s.reviewer.SetMode(deck.Shuffled)
	case "order":
		s.reviewer.SetMode(deck.Ordered)
	case "restart":
		nav.Restart()
	case "status":
		s.printStatus()
	case "save":
		return s.saveDeck()
	case "help", "?":
		fmt.Fprintln(s.out, helpText)
	case "quit", "q", "exit":
		return ErrQuit
	default:
		return fmt.Errorf("unknown command %q, try help", command)
	}
	return nil
}

func (s *Shell) currentFlashcard(op string) (*models.Flashcard, error) {
	current, ok := s.reviewer.Navigator().Current().(*models.FlashcardCard)
	if !ok {
		return nil, &review.LogicError{Op: op, Reason: "the current card is not a flashcard"}
	}
	return current.Flashcard, nil
}

func (s *Shell) saveDeck() error {
	if err := s.save(); err != nil {
		return err
	}
	s.reviewer.MarkSaved()
	fmt.Fprintln(s.out, "Saved.")
	return nil
}

func (s *Shell) printStatus() {
	p := s.reviewer.Progress()
	d := s.reviewer.Deck()
	fmt.Fprintf(s.out, "%s review, %d pages, %d flashcards\n", s.reviewer.Mode(), d.NumPdfPages(), d.NumFlashcards())
	fmt.Fprintf(s.out, "This pass: %d/%d answered, %d known. Completed passes: %d\n",
		p.Answered, p.Total, p.Known, s.reviewer.CompletedPasses())
}

func (s *Shell) show(ctx context.Context) {
	v := s.reviewer.Navigator().View()
	fmt.Fprintln(s.out, FormatView(v))

	if s.renderer == nil || v.Kind != navigator.KindPage {
		return
	}
	imagePath, err := s.renderer.RenderPage(ctx, s.pdfPath, v.PageNumber)
	if err != nil {
		s.logger.Warn("Could not render page %d: %v", v.PageNumber+1, err)
		return
	}
	fmt.Fprintf(s.out, "  image: %s\n", imagePath)
}

// FormatView renders a view as two lines of text: the card and the moves
// available from it.
func FormatView(v navigator.View) string {
	var b strings.Builder
	switch v.Kind {
	case navigator.KindNone:
		return "Nothing to review: the pdf has no pages and there are no flashcards."
	case navigator.KindPage:
		fmt.Fprintf(&b, "[%d/%d] page %d", v.Position+1, v.Total, v.PageNumber+1)
	case navigator.KindFlashcard:
		where := "whole document"
		if v.PageNumber != models.GenericPage {
			where = fmt.Sprintf("page %d", v.PageNumber+1)
		}
		label := "Q"
		if v.Side == navigator.Answer {
			label = "A"
		}
		fmt.Fprintf(&b, "[%d/%d] flashcard (%s)\n  %s: %s", v.Position+1, v.Total, where, label, v.Text)
	}

	moves := []struct {
		ok  bool
		key string
	}{
		{v.Controls.CanGoPrevCard, "p"},
		{v.Controls.CanGoNextCard, "n"},
		{v.Controls.CanGoPrevPage, "P"},
		{v.Controls.CanGoNextPage, "N"},
		{v.Controls.CanGoPrevFlashcard, "F"},
		{v.Controls.CanGoNextFlashcard, "f"},
	}
	var keys []string
	for _, m := range moves {
		if m.ok {
			keys = append(keys, m.key)
		}
	}
	fmt.Fprintf(&b, "\n  moves: %s", strings.Join(keys, " "))
	return b.String()
}

// splitQA splits "question | answer". The answer is optional.
func splitQA(args string) (string, string) {
	question, answer, _ := strings.Cut(args, "|")
	return strings.TrimSpace(question), strings.TrimSpace(answer)
}

// parsePage turns a page number as shown to the learner into a page index.
func parsePage(arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, fmt.Errorf("invalid page number %q", arg)
	}
	return n - 1, nil
}
