package content

// Config controls the generation parameters used by the Orchestrator.
type Config struct {
	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxTokens is the token budget for explanations, translations and
	// syllabi.
	MaxTokens int

	// QuizMaxTokens is the token budget for the quiz reply, which carries
	// five questions of JSON.
	QuizMaxTokens int
}

// DefaultConfig returns the recommended generation parameters.
func DefaultConfig() Config {
	return Config{
		Temperature:   0.5,
		MaxTokens:     800,
		QuizMaxTokens: 1500,
	}
}
