package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praveenr14083/studygen/internal/llm"
	"github.com/praveenr14083/studygen/internal/quiz"
	"github.com/praveenr14083/studygen/internal/store"
)

const quizReply = "```json\n" + `{"questions": [
  {"question": "Q0?", "options": {"A": "a0", "B": "b0", "C": "c0", "D": "d0"}, "answer": "A", "explanation": "e0"},
  {"question": "Q1?", "options": {"A": "a1", "B": "b1", "C": "c1", "D": "d1"}, "answer": "B", "explanation": "e1"},
  {"question": "Q2?", "options": {"A": "a2", "B": "b2", "C": "c2", "D": "d2"}, "answer": "C", "explanation": "e2"},
  {"question": "Q3?", "options": {"A": "a3", "B": "b3", "C": "c3", "D": "d3"}, "answer": "D", "explanation": "e3"},
  {"question": "Q4?", "options": {"A": "a4", "B": "b4", "C": "c4", "D": "d4"}, "answer": "A", "explanation": "e4"}
]}` + "\n```"

// quizReplyTamil is quizReply with every text translated and the answers
// unchanged.
const quizReplyTamil = `{"questions": [
  {"question": "[ta] Q0?", "options": {"A": "[ta] a0", "B": "[ta] b0", "C": "[ta] c0", "D": "[ta] d0"}, "answer": "A", "explanation": "[ta] e0"},
  {"question": "[ta] Q1?", "options": {"A": "[ta] a1", "B": "[ta] b1", "C": "[ta] c1", "D": "[ta] d1"}, "answer": "B", "explanation": "[ta] e1"},
  {"question": "[ta] Q2?", "options": {"A": "[ta] a2", "B": "[ta] b2", "C": "[ta] c2", "D": "[ta] d2"}, "answer": "C", "explanation": "[ta] e2"},
  {"question": "[ta] Q3?", "options": {"A": "[ta] a3", "B": "[ta] b3", "C": "[ta] c3", "D": "[ta] d3"}, "answer": "D", "explanation": "[ta] e3"},
  {"question": "[ta] Q4?", "options": {"A": "[ta] a4", "B": "[ta] b4", "C": "[ta] c4", "D": "[ta] d4"}, "answer": "A", "explanation": "[ta] e4"}
]}`

func isQuizTranslatePrompt(req llm.Request) bool {
	return strings.HasPrefix(req.Messages[0].Content, "Translate the text values")
}

func isQuizPrompt(req llm.Request) bool {
	return strings.Contains(req.Messages[0].Content, `"questions"`)
}

func isTranslatePrompt(req llm.Request) bool {
	return strings.HasPrefix(req.Messages[0].Content, "Translate the following content")
}

// scripted answers quiz prompts with quizErr/quizText and every other prompt
// with explainErr/explainText. Quiz translations echo quizText unless
// quizTranslateText or quizTranslateErr is set.
type scripted struct {
	explainText       string
	explainErr        error
	quizText          string
	quizErr           error
	translateErr      error
	quizTranslateText string
	quizTranslateErr  error
}

func (s scripted) provider() *llm.MockProvider {
	m := llm.NewMockProvider()
	m.Responder = func(req llm.Request) llm.MockResponse {
		switch {
		case isQuizTranslatePrompt(req):
			if s.quizTranslateErr != nil || s.quizTranslateText != "" {
				return llm.MockResponse{Content: s.quizTranslateText, Err: s.quizTranslateErr}
			}
			return llm.MockResponse{Content: s.quizText}
		case isQuizPrompt(req):
			return llm.MockResponse{Content: s.quizText, Err: s.quizErr}
		case isTranslatePrompt(req):
			if s.translateErr != nil {
				return llm.MockResponse{Err: s.translateErr}
			}
			return llm.MockResponse{Content: "[ta] " + lastLine(req.Messages[0].Content)}
		default:
			return llm.MockResponse{Content: s.explainText, Err: s.explainErr}
		}
	}
	return m
}

func lastLine(s string) string {
	return s[strings.LastIndex(s, "\n")+1:]
}

func newTestOrchestrator(p llm.Provider) *Orchestrator {
	return New(p, DefaultConfig(), slog.New(slog.DiscardHandler))
}

func TestGenerate_BothSucceed(t *testing.T) {
	mock := scripted{explainText: "  Deadlock is...  ", quizText: quizReply}.provider()
	o := newTestOrchestrator(mock)

	res := o.Generate(context.Background(), " Deadlock ")
	require.True(t, res.OK())
	assert.Equal(t, "Deadlock", res.Topic)
	assert.Equal(t, "Deadlock is...", res.Explanation)
	require.NotNil(t, res.Quiz)
	assert.Equal(t, 5, res.Quiz.Len())
	assert.Equal(t, 2, mock.CallCount())

	for _, req := range mock.Requests() {
		assert.NotEmpty(t, req.System)
		assert.Equal(t, 0.5, req.Temperature)
		if isQuizPrompt(req) {
			assert.Equal(t, 1500, req.MaxTokens)
			assert.Contains(t, req.Messages[0].Content, `"Deadlock"`)
		} else {
			assert.Equal(t, 800, req.MaxTokens)
		}
	}
}

func TestGenerate_QuizParseFailureKeepsExplanation(t *testing.T) {
	mock := scripted{explainText: "Paging is...", quizText: "Sorry, I cannot make a quiz."}.provider()
	o := newTestOrchestrator(mock)

	res := o.Generate(context.Background(), "Paging")
	assert.NoError(t, res.ExplanationErr)
	assert.Equal(t, "Paging is...", res.Explanation)
	assert.Nil(t, res.Quiz)
	assert.ErrorIs(t, res.QuizErr, quiz.ErrParseFailed)
	assert.False(t, errors.Is(res.QuizErr, llm.ErrRemoteCall))
}

func TestGenerate_ExplanationRemoteFailureKeepsQuiz(t *testing.T) {
	mock := scripted{explainErr: &llm.ErrRateLimit{Err: errors.New("429")}, quizText: quizReply}.provider()
	o := newTestOrchestrator(mock)

	res := o.Generate(context.Background(), "Paging")
	assert.ErrorIs(t, res.ExplanationErr, llm.ErrRemoteCall)
	var rl *llm.ErrRateLimit
	assert.ErrorAs(t, res.ExplanationErr, &rl)
	assert.Empty(t, res.Explanation)
	require.NoError(t, res.QuizErr)
	assert.Equal(t, 5, res.Quiz.Len())
}

func TestGenerate_BlankTopicMakesNoCalls(t *testing.T) {
	mock := scripted{explainText: "x", quizText: quizReply}.provider()
	o := newTestOrchestrator(mock)

	res := o.Generate(context.Background(), "   ")
	assert.ErrorIs(t, res.ExplanationErr, ErrEmptyTopic)
	assert.ErrorIs(t, res.QuizErr, ErrEmptyTopic)
	assert.Equal(t, 0, mock.CallCount())
}

// barrierProvider only answers once two requests are in flight, proving the
// halves of Generate run concurrently.
type barrierProvider struct {
	mu      sync.Mutex
	arrived int
	both    chan struct{}
}

func (b *barrierProvider) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	b.mu.Lock()
	b.arrived++
	if b.arrived == 2 {
		close(b.both)
	}
	b.mu.Unlock()

	select {
	case <-b.both:
	case <-time.After(2 * time.Second):
		return nil, &llm.ErrTimeout{After: 2 * time.Second}
	}
	if isQuizPrompt(req) {
		return &llm.Response{Content: quizReply}, nil
	}
	return &llm.Response{Content: "explained"}, nil
}

func (b *barrierProvider) ModelID() string { return "barrier" }

func TestGenerate_CallsRunConcurrently(t *testing.T) {
	o := newTestOrchestrator(&barrierProvider{both: make(chan struct{})})

	res := o.Generate(context.Background(), "Scheduling")
	require.NoError(t, res.ExplanationErr)
	require.NoError(t, res.QuizErr)
}

func TestTranslate(t *testing.T) {
	mock := scripted{}.provider()
	o := newTestOrchestrator(mock)

	out, err := o.Translate(context.Background(), "A thread is a unit of execution.", "Tamil")
	require.NoError(t, err)
	assert.Equal(t, "[ta] A thread is a unit of execution.", out)

	req := mock.Requests()[0]
	assert.Contains(t, req.Messages[0].Content, "into Tamil.")
}

func TestTranslate_Validation(t *testing.T) {
	mock := scripted{}.provider()
	o := newTestOrchestrator(mock)

	_, err := o.Translate(context.Background(), " ", "Tamil")
	assert.ErrorIs(t, err, ErrEmptyContent)
	_, err = o.Translate(context.Background(), "text", "")
	assert.ErrorIs(t, err, ErrEmptyLanguage)
	assert.Equal(t, 0, mock.CallCount())
}

func TestTranslate_RemoteFailure(t *testing.T) {
	mock := scripted{translateErr: &llm.ErrProviderUnavailable{}}.provider()
	o := newTestOrchestrator(mock)

	_, err := o.Translate(context.Background(), "text", "Hindi")
	assert.ErrorIs(t, err, llm.ErrRemoteCall)
}

func TestSyllabus(t *testing.T) {
	mock := scripted{explainText: "Week 1: Basics"}.provider()
	o := newTestOrchestrator(mock)

	out, err := o.Syllabus(context.Background(), "Networks")
	require.NoError(t, err)
	assert.Equal(t, "Week 1: Basics", out)
	assert.Contains(t, mock.Requests()[0].Messages[0].Content, "week-by-week")

	_, err = o.Syllabus(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyTopic)
}

func TestLocalize(t *testing.T) {
	t.Run("english is a no-op", func(t *testing.T) {
		mock := scripted{}.provider()
		o := newTestOrchestrator(mock)
		res := &Result{Explanation: "hello"}
		o.Localize(context.Background(), res, "English")
		assert.Equal(t, "hello", res.Explanation)
		assert.Equal(t, 0, mock.CallCount())
	})

	t.Run("translates explanation", func(t *testing.T) {
		mock := scripted{}.provider()
		o := newTestOrchestrator(mock)
		res := &Result{Explanation: "hello"}
		o.Localize(context.Background(), res, "Tamil")
		assert.Equal(t, "[ta] hello", res.Explanation)
		assert.NoError(t, res.ExplanationErr)
	})

	t.Run("failed explanation is not translated", func(t *testing.T) {
		mock := scripted{}.provider()
		o := newTestOrchestrator(mock)
		res := &Result{ExplanationErr: errors.New("earlier")}
		o.Localize(context.Background(), res, "Tamil")
		assert.Equal(t, 0, mock.CallCount())
	})

	t.Run("translates quiz keeping answers", func(t *testing.T) {
		mock := scripted{quizTranslateText: quizReplyTamil}.provider()
		o := newTestOrchestrator(mock)
		orig, err := quiz.Parse(quizReply)
		require.NoError(t, err)

		res := &Result{Explanation: "hello", Quiz: orig}
		o.Localize(context.Background(), res, "Tamil")
		require.NoError(t, res.QuizErr)
		require.NotSame(t, orig, res.Quiz)
		for i, q := range res.Quiz.Questions {
			assert.Equal(t, fmt.Sprintf("[ta] Q%d?", i), q.Prompt)
			assert.Equal(t, fmt.Sprintf("[ta] e%d", i), q.Explanation)
			assert.Equal(t, orig.Questions[i].Answer, q.Answer)
			assert.Equal(t, i, q.ID)
		}
		assert.Equal(t, "[ta] b1", res.Quiz.Questions[1].Option(quiz.ChoiceB))
		assert.Equal(t, "[ta] hello", res.Explanation)

		var quizReq llm.Request
		for _, req := range mock.Requests() {
			if isQuizTranslatePrompt(req) {
				quizReq = req
			}
		}
		require.NotEmpty(t, quizReq.Messages, "quiz translation requested")
		assert.Contains(t, quizReq.Messages[0].Content, "into Tamil.")
		assert.Contains(t, quizReq.Messages[0].Content, `"question":"Q3?"`)
		assert.Equal(t, 1500, quizReq.MaxTokens)
	})

	t.Run("quiz translation failure keeps untranslated quiz", func(t *testing.T) {
		mock := scripted{quizTranslateErr: &llm.ErrProviderUnavailable{Err: errors.New("down")}}.provider()
		o := newTestOrchestrator(mock)
		orig, err := quiz.Parse(quizReply)
		require.NoError(t, err)

		res := &Result{Explanation: "hello", Quiz: orig}
		o.Localize(context.Background(), res, "Tamil")
		assert.ErrorIs(t, res.QuizErr, llm.ErrRemoteCall)
		assert.Same(t, orig, res.Quiz)
		assert.NoError(t, res.ExplanationErr)
		assert.Equal(t, "[ta] hello", res.Explanation)
	})

	t.Run("moved answer letter is rejected", func(t *testing.T) {
		drifted := strings.Replace(quizReplyTamil, `"answer": "B"`, `"answer": "C"`, 1)
		mock := scripted{quizTranslateText: drifted}.provider()
		o := newTestOrchestrator(mock)
		orig, err := quiz.Parse(quizReply)
		require.NoError(t, err)

		res := &Result{Explanation: "hello", Quiz: orig}
		o.Localize(context.Background(), res, "Tamil")
		assert.ErrorIs(t, res.QuizErr, ErrTranslationMismatch)
		assert.Same(t, orig, res.Quiz)
	})

	t.Run("unparseable translation is rejected", func(t *testing.T) {
		mock := scripted{quizTranslateText: "Voici le quiz."}.provider()
		o := newTestOrchestrator(mock)
		orig, err := quiz.Parse(quizReply)
		require.NoError(t, err)

		res := &Result{ExplanationErr: errors.New("earlier"), Quiz: orig}
		o.Localize(context.Background(), res, "French")
		assert.ErrorIs(t, res.QuizErr, quiz.ErrParseFailed)
		assert.Same(t, orig, res.Quiz)
		assert.Equal(t, 1, mock.CallCount())
	})

	t.Run("failed quiz is not translated", func(t *testing.T) {
		mock := scripted{}.provider()
		o := newTestOrchestrator(mock)
		res := &Result{Explanation: "hello", QuizErr: errors.New("earlier")}
		o.Localize(context.Background(), res, "Tamil")
		assert.Equal(t, 1, mock.CallCount())
		assert.Nil(t, res.Quiz)
	})

	t.Run("translation failure keeps quiz", func(t *testing.T) {
		mock := scripted{translateErr: &llm.ErrAuth{}}.provider()
		o := newTestOrchestrator(mock)
		set := &quiz.Set{}
		res := &Result{Explanation: "hello", Quiz: set}
		o.Localize(context.Background(), res, "Hindi")
		assert.ErrorIs(t, res.ExplanationErr, llm.ErrRemoteCall)
		assert.Empty(t, res.Explanation)
		assert.Same(t, set, res.Quiz)
	})
}

func TestIsEnglish(t *testing.T) {
	for _, l := range []string{"", "English", " english ", "EN"} {
		assert.True(t, IsEnglish(l), l)
	}
	for _, l := range []string{"Tamil", "Hindi", "fr"} {
		assert.False(t, IsEnglish(l), l)
	}
}

type recordingRepo struct {
	store.EventRepo
	mu     sync.Mutex
	events []store.LLMRequestEventData
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, d store.LLMRequestEventData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, d)
	return nil
}

func TestPurposesAreRecorded(t *testing.T) {
	repo := &recordingRepo{}
	mock := scripted{explainText: "x", quizText: quizReply}.provider()
	p := llm.WithLogging(mock, llm.ProviderMock, repo, slog.New(slog.DiscardHandler))
	o := newTestOrchestrator(p)

	s := NewSession()
	s.Language = "Tamil"
	o.Refresh(context.Background(), s, "Deadlock")

	purposes := map[string]int{}
	for _, e := range repo.events {
		purposes[e.Purpose]++
		assert.Equal(t, s.ID.String(), e.SessionID)
	}
	assert.Equal(t, map[string]int{
		llm.PurposeExplain:   1,
		llm.PurposeQuiz:      1,
		llm.PurposeTranslate: 2,
	}, purposes)
}
