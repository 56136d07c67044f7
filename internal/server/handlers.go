package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/praveenr14083/studygen/internal/content"
	"github.com/praveenr14083/studygen/internal/insights"
	"github.com/praveenr14083/studygen/internal/quiz"
)

type generateRequest struct {
	Topic    string `json:"topic" validate:"required"`
	Language string `json:"language"`
}

type answerRequest struct {
	QuestionID *int   `json:"question_id" validate:"required"`
	Choice     string `json:"choice" validate:"required"`
}

type translateRequest struct {
	Content  string `json:"content" validate:"required"`
	Language string `json:"language" validate:"required"`
}

type syllabusRequest struct {
	Topic string `json:"topic" validate:"required"`
}

type insightsRequest struct {
	CSV string `json:"csv" validate:"required"`
}

// questionView is a question as shown to the learner: no answer and no
// explanation.
type questionView struct {
	ID       int                       `json:"id"`
	Question string                    `json:"question"`
	Options  map[quiz.ChoiceKey]string `json:"options"`
}

type quizView struct {
	Topic     string                 `json:"topic"`
	Questions []questionView         `json:"questions"`
	Answers   map[int]quiz.ChoiceKey `json:"answers"`
}

type generateResponse struct {
	Topic            string    `json:"topic"`
	Language         string    `json:"language,omitempty"`
	Explanation      string    `json:"explanation,omitempty"`
	ExplanationError string    `json:"explanation_error,omitempty"`
	Quiz             *quizView `json:"quiz,omitempty"`
	QuizError        string    `json:"quiz_error,omitempty"`
}

type answerResponse struct {
	Answered int `json:"answered"`
	Total    int `json:"total"`
}

func newQuizView(sess *content.Session) *quizView {
	set := sess.Quiz.Set()
	v := &quizView{
		Topic:     sess.QuizTopic,
		Questions: make([]questionView, 0, set.Len()),
		Answers:   sess.Quiz.Answers(),
	}
	for _, q := range set.Questions {
		v.Questions = append(v.Questions, questionView{ID: q.ID, Question: q.Prompt, Options: q.Options})
	}
	return v
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := s.decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	entry, err := s.sessions.acquire(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	defer entry.mu.Unlock()
	sess := entry.sess

	prevLanguage := sess.Language
	sess.Language = strings.TrimSpace(req.Language)
	res := s.orch.Refresh(r.Context(), sess, req.Topic)
	if res.ExplanationErr != nil && res.Quiz == nil {
		sess.Language = prevLanguage
		s.respondError(w, r, res.ExplanationErr)
		return
	}

	resp := generateResponse{Topic: res.Topic, Language: sess.Language}
	if res.ExplanationErr != nil {
		resp.ExplanationError = res.ExplanationErr.Error()
	} else {
		resp.Explanation = res.Explanation
	}
	if res.QuizErr != nil {
		resp.QuizError = res.QuizErr.Error()
	}
	if res.Quiz != nil {
		resp.Quiz = newQuizView(sess)
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetQuiz(w http.ResponseWriter, r *http.Request) {
	entry, err := s.sessions.acquire(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	defer entry.mu.Unlock()

	if entry.sess.Quiz == nil {
		s.respondError(w, r, errNoQuiz)
		return
	}
	respondJSON(w, http.StatusOK, newQuizView(entry.sess))
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := s.decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	entry, err := s.sessions.acquire(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	defer entry.mu.Unlock()

	qs := entry.sess.Quiz
	if qs == nil {
		s.respondError(w, r, errNoQuiz)
		return
	}

	key := quiz.ChoiceKey(strings.ToUpper(strings.TrimSpace(req.Choice)))
	if err := qs.RecordAnswer(*req.QuestionID, key); err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, answerResponse{Answered: qs.Answered(), Total: qs.Set().Len()})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	entry, err := s.sessions.acquire(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	defer entry.mu.Unlock()

	if entry.sess.Quiz == nil {
		s.respondError(w, r, errNoQuiz)
		return
	}
	report, err := entry.sess.Quiz.Submit()
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := s.decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	text, err := s.orch.Translate(r.Context(), req.Content, req.Language)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"translation": text})
}

func (s *Server) handleSyllabus(w http.ResponseWriter, r *http.Request) {
	var req syllabusRequest
	if err := s.decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	text, err := s.orch.Syllabus(r.Context(), req.Topic)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"syllabus": text})
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	var req insightsRequest
	if err := s.decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	inv, err := insights.LoadCSV(strings.NewReader(req.CSV))
	if err != nil {
		s.respondError(w, r, fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}
	report, err := s.analyst.Analyze(r.Context(), inv)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"report":      report,
		"products":    len(inv.Products),
		"total_stock": inv.TotalStock(),
		"total_sold":  inv.TotalSold(),
	})
}
