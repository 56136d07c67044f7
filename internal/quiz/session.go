package quiz

import (
	"fmt"
	"maps"
)

// Session pairs a Set with the learner's answer sheet. A Session is owned
// by one caller and is not safe for concurrent use.
type Session struct {
	set     *Set
	answers map[int]ChoiceKey
}

// NewSession starts an empty answer sheet for set.
func NewSession(set *Set) *Session {
	return &Session{
		set:     set,
		answers: make(map[int]ChoiceKey, set.Len()),
	}
}

// Set returns the questions being answered.
func (s *Session) Set() *Set {
	return s.set
}

// RecordAnswer stores key as the answer to question id, replacing any
// earlier answer.
func (s *Session) RecordAnswer(id int, key ChoiceKey) error {
	if id < 0 || id >= s.set.Len() {
		return &InvalidQuestionIDError{ID: id, Size: s.set.Len()}
	}
	if !key.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidChoice, key)
	}
	s.answers[id] = key
	return nil
}

// Answers returns a copy of the answer sheet.
func (s *Session) Answers() map[int]ChoiceKey {
	return maps.Clone(s.answers)
}

// Answered reports how many questions have an answer.
func (s *Session) Answered() int {
	return len(s.answers)
}

// Submit scores the sheet. It fails with *IncompleteAnswersError when any
// question is unanswered. The report is rebuilt on every call, so repeated
// calls without new answers return equal reports.
func (s *Session) Submit() (*ScoreReport, error) {
	var missing []int
	for _, q := range s.set.Questions {
		if _, ok := s.answers[q.ID]; !ok {
			missing = append(missing, q.ID)
		}
	}
	if len(missing) > 0 {
		return nil, &IncompleteAnswersError{Missing: missing}
	}

	report := &ScoreReport{PerQuestion: make([]QuestionResult, 0, s.set.Len())}
	for _, q := range s.set.Questions {
		chosen := s.answers[q.ID]
		r := QuestionResult{
			ID:          q.ID,
			Chosen:      chosen,
			Correct:     q.Answer,
			IsCorrect:   chosen == q.Answer,
			Explanation: q.Explanation,
		}
		if r.IsCorrect {
			report.Total++
		}
		report.PerQuestion = append(report.PerQuestion, r)
	}
	return report, nil
}
