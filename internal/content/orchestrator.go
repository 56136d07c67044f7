// Package content composes prompts, completions and quiz parsing into the
// study-material operations exposed by the CLI and the HTTP API.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/praveenr14083/studygen/internal/llm"
	"github.com/praveenr14083/studygen/internal/prompt"
	"github.com/praveenr14083/studygen/internal/quiz"
)

var (
	// ErrEmptyTopic is returned when a topic is blank.
	ErrEmptyTopic = errors.New("topic is empty")

	// ErrEmptyContent is returned when there is nothing to translate.
	ErrEmptyContent = errors.New("content is empty")

	// ErrEmptyLanguage is returned when no target language is given.
	ErrEmptyLanguage = errors.New("target language is empty")

	// ErrTranslationMismatch is returned when a translated quiz no longer
	// lines up with the original: a question went missing or an answer
	// letter moved.
	ErrTranslationMismatch = errors.New("translated quiz does not match the original")
)

// Result holds the outcome of Generate. Each half succeeds or fails on its
// own. Exactly one of Explanation/ExplanationErr is set. Quiz is nil
// whenever generation failed; after Localize it may also carry a QuizErr,
// in which case Quiz is the untranslated set.
type Result struct {
	Topic          string
	Explanation    string
	ExplanationErr error
	Quiz           *quiz.Set
	QuizErr        error
}

// OK reports whether both halves succeeded.
func (r *Result) OK() bool {
	return r.ExplanationErr == nil && r.QuizErr == nil
}

// Orchestrator issues the remote calls for each study-material operation.
// It performs no retries: a failed call is reported to the caller as is.
type Orchestrator struct {
	provider llm.Provider
	config   Config
	logger   *slog.Logger
}

// New creates an Orchestrator. A nil logger uses slog.Default().
func New(provider llm.Provider, cfg Config, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{provider: provider, config: cfg, logger: logger}
}

// Generate fetches an explanation and a quiz for topic. The two calls run
// concurrently and both are awaited; a failure in one does not discard the
// other.
func (o *Orchestrator) Generate(ctx context.Context, topic string) *Result {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return &Result{ExplanationErr: ErrEmptyTopic, QuizErr: ErrEmptyTopic}
	}

	res := &Result{Topic: topic}

	// A plain Group: one half failing must not cancel the other.
	var g errgroup.Group
	g.Go(func() error {
		res.Explanation, res.ExplanationErr = o.Explain(ctx, topic)
		return nil
	})
	g.Go(func() error {
		res.Quiz, res.QuizErr = o.Quiz(ctx, topic)
		return nil
	})
	_ = g.Wait()

	o.logger.InfoContext(ctx, "content generated",
		"topic", topic,
		"explanation_ok", res.ExplanationErr == nil,
		"quiz_ok", res.QuizErr == nil)

	return res
}

// Explain asks for a beginner-friendly explanation of topic.
func (o *Orchestrator) Explain(ctx context.Context, topic string) (string, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "", ErrEmptyTopic
	}
	text, err := o.complete(llm.WithPurpose(ctx, llm.PurposeExplain), prompt.Explain,
		prompt.Input{Topic: topic}, o.config.MaxTokens)
	if err != nil {
		return "", fmt.Errorf("generate explanation: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// Quiz asks for a five-question set on topic and parses the reply.
func (o *Orchestrator) Quiz(ctx context.Context, topic string) (*quiz.Set, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, ErrEmptyTopic
	}
	raw, err := o.complete(llm.WithPurpose(ctx, llm.PurposeQuiz), prompt.GenerateQuiz,
		prompt.Input{Topic: topic}, o.config.QuizMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("generate quiz: %w", err)
	}

	set, err := quiz.Parse(raw)
	if err != nil {
		o.logger.WarnContext(ctx, "quiz reply rejected", "topic", topic, "error", err)
		return nil, fmt.Errorf("generate quiz: %w", err)
	}
	return set, nil
}

// Translate renders content into language with a single remote call.
func (o *Orchestrator) Translate(ctx context.Context, content, language string) (string, error) {
	content = strings.TrimSpace(content)
	language = strings.TrimSpace(language)
	if content == "" {
		return "", ErrEmptyContent
	}
	if language == "" {
		return "", ErrEmptyLanguage
	}
	text, err := o.complete(llm.WithPurpose(ctx, llm.PurposeTranslate), prompt.Translate,
		prompt.Input{Content: content, Language: language}, o.config.MaxTokens)
	if err != nil {
		return "", fmt.Errorf("translate to %s: %w", language, err)
	}
	return strings.TrimSpace(text), nil
}

// Syllabus asks for a week-by-week study plan for topic.
func (o *Orchestrator) Syllabus(ctx context.Context, topic string) (string, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "", ErrEmptyTopic
	}
	text, err := o.complete(llm.WithPurpose(ctx, llm.PurposeSyllabus), prompt.GenerateSyllabus,
		prompt.Input{Topic: topic}, o.config.MaxTokens)
	if err != nil {
		return "", fmt.Errorf("generate syllabus: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// Localize translates the successful halves of r into language. English
// (or an empty language) leaves r unchanged.
//
// A failed explanation translation clears Explanation and sets
// ExplanationErr. A failed quiz translation sets QuizErr and leaves the
// untranslated Quiz in place.
func (o *Orchestrator) Localize(ctx context.Context, r *Result, language string) {
	if IsEnglish(language) {
		return
	}

	var g errgroup.Group
	if r.ExplanationErr == nil {
		g.Go(func() error {
			text, err := o.Translate(ctx, r.Explanation, language)
			if err != nil {
				r.Explanation = ""
				r.ExplanationErr = err
				return nil
			}
			r.Explanation = text
			return nil
		})
	}
	if r.Quiz != nil && r.QuizErr == nil {
		g.Go(func() error {
			set, err := o.TranslateQuiz(ctx, r.Quiz, language)
			if err != nil {
				o.logger.WarnContext(ctx, "quiz kept untranslated", "language", language, "error", err)
				r.QuizErr = err
				return nil
			}
			r.Quiz = set
			return nil
		})
	}
	_ = g.Wait()
}

// TranslateQuiz renders the question, option and explanation texts of set
// into language. The reply must parse as a quiz with the same questions in
// the same order and the same answer letters.
func (o *Orchestrator) TranslateQuiz(ctx context.Context, set *quiz.Set, language string) (*quiz.Set, error) {
	language = strings.TrimSpace(language)
	if language == "" {
		return nil, ErrEmptyLanguage
	}
	body, err := json.Marshal(set)
	if err != nil {
		return nil, fmt.Errorf("encode quiz: %w", err)
	}

	raw, err := o.complete(llm.WithPurpose(ctx, llm.PurposeTranslate), prompt.TranslateQuiz,
		prompt.Input{Content: string(body), Language: language}, o.config.QuizMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("translate quiz to %s: %w", language, err)
	}

	translated, err := quiz.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("translate quiz to %s: %w", language, err)
	}
	if translated.Len() != set.Len() {
		return nil, fmt.Errorf("translate quiz to %s: %w: %d questions, want %d",
			language, ErrTranslationMismatch, translated.Len(), set.Len())
	}
	for i, q := range translated.Questions {
		if want := set.Questions[i].Answer; q.Answer != want {
			return nil, fmt.Errorf("translate quiz to %s: %w: question %d answer %s, want %s",
				language, ErrTranslationMismatch, i, q.Answer, want)
		}
	}
	return translated, nil
}

// IsEnglish reports whether language needs no translation.
func IsEnglish(language string) bool {
	switch strings.ToLower(strings.TrimSpace(language)) {
	case "", "english", "en":
		return true
	}
	return false
}

func (o *Orchestrator) complete(ctx context.Context, kind prompt.Kind, in prompt.Input, maxTokens int) (string, error) {
	system, err := prompt.System(kind)
	if err != nil {
		return "", err
	}
	user, err := prompt.Render(kind, in)
	if err != nil {
		return "", err
	}
	return llm.Complete(ctx, o.provider, llm.CompletionRequest{
		System:      system,
		Prompt:      user,
		Temperature: o.config.Temperature,
		MaxTokens:   maxTokens,
	})
}
