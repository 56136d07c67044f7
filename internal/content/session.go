package content

import (
	"context"

	"github.com/google/uuid"

	"github.com/praveenr14083/studygen/internal/llm"
	"github.com/praveenr14083/studygen/internal/quiz"
)

// Session is the caller-owned state of one learner: the latest explanation
// and the quiz being answered. It is not safe for concurrent use.
type Session struct {
	ID uuid.UUID

	// Language, when not English, is the language Refresh translates new
	// material into.
	Language string

	// Topic is the topic of Explanation.
	Topic       string
	Explanation string

	// QuizTopic is the topic of Quiz. It differs from Topic when the last
	// Refresh replaced only the explanation.
	QuizTopic string

	// Quiz is nil until a quiz has been generated successfully.
	Quiz *quiz.Session
}

// NewSession creates an empty session with a fresh id.
func NewSession() *Session {
	return &Session{ID: uuid.New()}
}

// Refresh generates new material for topic and applies whatever succeeded
// to s. A failed explanation keeps the previous one; a failed quiz keeps
// the previous quiz and its answers. A quiz that generated but could not
// be translated is applied untranslated.
func (o *Orchestrator) Refresh(ctx context.Context, s *Session, topic string) *Result {
	ctx = llm.WithSessionID(ctx, s.ID.String())

	res := o.Generate(ctx, topic)
	o.Localize(ctx, res, s.Language)

	if res.ExplanationErr == nil {
		s.Topic = res.Topic
		s.Explanation = res.Explanation
	}
	if res.Quiz != nil {
		s.QuizTopic = res.Topic
		s.Quiz = quiz.NewSession(res.Quiz)
	}
	return res
}
