package insights

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/praveenr14083/studygen/internal/llm"
)

// ErrEmptyInventory is returned when there are no products to analyze.
var ErrEmptyInventory = errors.New("inventory has no products")

// Config controls the analysis request.
type Config struct {
	Temperature float64
	MaxTokens   int
}

// DefaultConfig returns the recommended analysis parameters.
func DefaultConfig() Config {
	return Config{Temperature: 0.4, MaxTokens: 1024}
}

// Analyst asks the model for stock and sales insights.
type Analyst struct {
	provider llm.Provider
	config   Config
}

// NewAnalyst creates an Analyst.
func NewAnalyst(provider llm.Provider, cfg Config) *Analyst {
	return &Analyst{provider: provider, config: cfg}
}

// Analyze sends the inventory table to the model and returns its report.
func (a *Analyst) Analyze(ctx context.Context, inv *Inventory) (string, error) {
	if inv == nil || len(inv.Products) == 0 {
		return "", ErrEmptyInventory
	}

	table, err := inv.Table()
	if err != nil {
		return "", fmt.Errorf("render inventory: %w", err)
	}

	text, err := llm.Complete(llm.WithPurpose(ctx, llm.PurposeInsights), a.provider, llm.CompletionRequest{
		System:      systemPrompt,
		Prompt:      buildUserMessage(table),
		Temperature: a.config.Temperature,
		MaxTokens:   a.config.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("generate insights: %w", err)
	}
	return strings.TrimSpace(text), nil
}
