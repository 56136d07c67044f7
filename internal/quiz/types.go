// Package quiz turns model output into a validated five-question
// multiple-choice set and scores a learner's answers against it.
package quiz

import (
	"fmt"
	"strings"
)

// SetSize is the number of questions every generated set must contain.
const SetSize = 5

// ChoiceKey identifies one of the four lettered options.
type ChoiceKey string

const (
	ChoiceA ChoiceKey = "A"
	ChoiceB ChoiceKey = "B"
	ChoiceC ChoiceKey = "C"
	ChoiceD ChoiceKey = "D"
)

// ChoiceKeys lists the option keys in display order.
var ChoiceKeys = []ChoiceKey{ChoiceA, ChoiceB, ChoiceC, ChoiceD}

// Valid reports whether k is one of A, B, C or D.
func (k ChoiceKey) Valid() bool {
	switch k {
	case ChoiceA, ChoiceB, ChoiceC, ChoiceD:
		return true
	}
	return false
}

// ParseChoiceKey accepts user input such as "b" or " C " and returns the
// matching key.
func ParseChoiceKey(s string) (ChoiceKey, error) {
	k := ChoiceKey(strings.ToUpper(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidChoice, s)
	}
	return k, nil
}

// Question is one multiple-choice question of a Set.
type Question struct {
	// ID is the 0-based position of the question in the model's array.
	ID int `json:"id"`

	Prompt string `json:"question"`

	// Options holds the text for each of the four keys. Iterate with
	// ChoiceKeys to get A, B, C, D order.
	Options map[ChoiceKey]string `json:"options"`

	Answer      ChoiceKey `json:"answer"`
	Explanation string    `json:"explanation"`
}

// Option returns the text of option k.
func (q Question) Option(k ChoiceKey) string {
	return q.Options[k]
}

// Set is an ordered, validated group of exactly SetSize questions.
type Set struct {
	Questions []Question `json:"questions"`
}

// Len returns the number of questions.
func (s *Set) Len() int {
	return len(s.Questions)
}

// QuestionResult is the outcome for a single question in a ScoreReport.
type QuestionResult struct {
	ID          int       `json:"id"`
	Chosen      ChoiceKey `json:"chosen"`
	Correct     ChoiceKey `json:"correct"`
	IsCorrect   bool      `json:"is_correct"`
	Explanation string    `json:"explanation"`
}

// ScoreReport is the result of submitting a complete answer sheet.
type ScoreReport struct {
	Total       int              `json:"total"`
	PerQuestion []QuestionResult `json:"per_question"`
}
