package quiz

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrParseFailed matches every *ParseError.
	ErrParseFailed = errors.New("quiz parse failed")

	// ErrInvalidQuestionID matches every *InvalidQuestionIDError.
	ErrInvalidQuestionID = errors.New("invalid question id")

	// ErrInvalidChoice is returned for a choice key outside A..D.
	ErrInvalidChoice = errors.New("invalid choice key")

	// ErrIncompleteAnswers matches every *IncompleteAnswersError.
	ErrIncompleteAnswers = errors.New("incomplete answers")
)

// ParseError reports why model output could not become a Set.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse quiz: %s: %v", e.Reason, e.Err)
	}
	return "parse quiz: " + e.Reason
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParseFailed }

// InvalidQuestionIDError is returned when an answer names a question that is
// not in the set.
type InvalidQuestionIDError struct {
	ID   int
	Size int
}

func (e *InvalidQuestionIDError) Error() string {
	return fmt.Sprintf("invalid question id %d (set has ids 0..%d)", e.ID, e.Size-1)
}

func (e *InvalidQuestionIDError) Is(target error) bool { return target == ErrInvalidQuestionID }

// IncompleteAnswersError is returned by Submit when questions are unanswered.
type IncompleteAnswersError struct {
	// Missing holds the unanswered question ids in ascending order.
	Missing []int
}

func (e *IncompleteAnswersError) Error() string {
	ids := make([]string, len(e.Missing))
	for i, id := range e.Missing {
		ids[i] = fmt.Sprint(id)
	}
	return fmt.Sprintf("incomplete answers: questions %s unanswered", strings.Join(ids, ", "))
}

func (e *IncompleteAnswersError) Is(target error) bool { return target == ErrIncompleteAnswers }
