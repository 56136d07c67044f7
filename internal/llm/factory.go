package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/praveenr14083/studygen/internal/store"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with logging and timeout middleware.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, logger *slog.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderGroq:
		base, err = NewGroqProvider(cfg.Groq)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		base = NewDemoProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → logging → timeout → base
	timed := WithTimeout(base, cfg.Timeout)
	logged := WithLogging(timed, cfg.Provider, eventRepo, logger)

	return logged, nil
}

// NewDemoProvider returns a MockProvider that answers every request with
// fixed offline content, so the CLI can be exercised without an API key.
func NewDemoProvider() *MockProvider {
	m := NewMockProvider()
	m.Responder = demoResponse
	return m
}

func demoResponse(req Request) MockResponse {
	if len(req.Messages) == 0 {
		return MockResponse{Err: &ErrInvalidResponse{Err: errors.New("empty request")}}
	}
	prompt := req.Messages[len(req.Messages)-1].Content
	if strings.Contains(prompt, `"questions"`) {
		return MockResponse{Content: "```json\n" + demoQuizJSON + "\n```"}
	}
	return MockResponse{Content: "(offline demo) " + firstLine(prompt)}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

const demoQuizJSON = `{
  "questions": [
    {"question": "What does a CPU scheduler decide?", "options": {"A": "Which process runs next", "B": "How much RAM to install", "C": "Which file system to mount", "D": "The screen resolution"}, "answer": "A", "explanation": "The scheduler picks the next ready process to run on the CPU."},
    {"question": "Which condition is NOT required for deadlock?", "options": {"A": "Mutual exclusion", "B": "Preemption", "C": "Hold and wait", "D": "Circular wait"}, "answer": "B", "explanation": "Deadlock requires no preemption; allowing preemption breaks it."},
    {"question": "What is a page fault?", "options": {"A": "A disk crash", "B": "A syntax error", "C": "Access to a page not in memory", "D": "A network timeout"}, "answer": "C", "explanation": "The referenced page must be loaded from backing store."},
    {"question": "What does a semaphore provide?", "options": {"A": "Encryption", "B": "Compression", "C": "Routing", "D": "Synchronization"}, "answer": "D", "explanation": "Semaphores coordinate access to shared resources."},
    {"question": "Which structure tracks a process's state?", "options": {"A": "Process control block", "B": "Inode", "C": "Routing table", "D": "Page cache"}, "answer": "A", "explanation": "The PCB stores registers, state and scheduling data."}
  ]
}`
