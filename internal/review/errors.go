package review

import (
	"errors"
	"fmt"
)

// Use errors.Is to check: errors.Is(err, review.ErrValidation)
var (
	ErrValidation = errors.New("review: invalid flashcard input")
	ErrLogic      = errors.New("review: operation not allowed on the current card")
)

// ValidationError rejects learner input. Nothing was changed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s %s", ErrValidation, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// LogicError means the caller asked for something the current position does
// not allow, usually because its view of the session is out of date.
type LogicError struct {
	Op     string
	Reason string
}

func (e *LogicError) Error() string {
	return fmt.Sprintf("%v: %s: %s", ErrLogic, e.Op, e.Reason)
}

func (e *LogicError) Unwrap() error {
	return ErrLogic
}
