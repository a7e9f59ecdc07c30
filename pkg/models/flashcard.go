package models

import (
	"github.com/google/uuid"
)

// GenericPage is the reference page of a flashcard that is not anchored to
// any page of the document.
const GenericPage = -2

type QuestionType int

const (
	Generic QuestionType = iota
	PageSpecific
)

func (t QuestionType) String() string {
	switch t {
	case PageSpecific:
		return "page"
	default:
		return "generic"
	}
}

func ParseQuestionType(s string) QuestionType {
	if s == "page" {
		return PageSpecific
	}
	return Generic
}

type Result int

const (
	NotDone Result = iota
	StillLearning
	Know
)

func (r Result) String() string {
	switch r {
	case StillLearning:
		return "still_learning"
	case Know:
		return "know"
	default:
		return "not_done"
	}
}

func ParseResult(s string) Result {
	switch s {
	case "still_learning":
		return StillLearning
	case "know":
		return Know
	default:
		return NotDone
	}
}

// Flashcard is a learner-authored question. Decks hold flashcards by pointer
// and every identity comparison (removal, insertion point lookup) is by
// pointer.
type Flashcard struct {
	ID            string
	Question      string
	Answer        string
	QuestionType  QuestionType
	ReferencePage int
	PastResults   []Result
	CurrentResult Result
}

func NewFlashcard(question, answer string, questionType QuestionType, referencePage int) *Flashcard {
	if referencePage == GenericPage {
		questionType = Generic
	}
	return &Flashcard{
		ID:            uuid.NewString(),
		Question:      question,
		Answer:        answer,
		QuestionType:  questionType,
		ReferencePage: referencePage,
		CurrentResult: NotDone,
	}
}

func (f *Flashcard) IsGeneric() bool {
	return f.ReferencePage == GenericPage
}

// FollowedByPage reports whether a shuffled session places a copy of the
// reference page right after this flashcard.
func (f *Flashcard) FollowedByPage(numPdfPages int) bool {
	return f.QuestionType == PageSpecific && f.ReferencePage >= 0 && f.ReferencePage < numPdfPages
}

func (f *Flashcard) HasAnswer() bool {
	return f.Answer != ""
}
