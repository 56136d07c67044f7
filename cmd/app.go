package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/praveenr14083/studygen/internal/config"
	"github.com/praveenr14083/studygen/internal/content"
	"github.com/praveenr14083/studygen/internal/llm"
	"github.com/praveenr14083/studygen/internal/logger"
	"github.com/praveenr14083/studygen/internal/store"
)

// app bundles what every content command needs.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    *store.Store
	provider llm.Provider
	orch     *content.Orchestrator
}

// newApp loads configuration, opens the event store and builds the
// provider chain. The caller must Close the app.
func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	log, err := logger.Setup(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return nil, fmt.Errorf("set up logging: %w", err)
	}

	llmCfg, err := cfg.LLMProvider()
	if err != nil {
		return nil, err
	}

	s, err := openStore(cmd, cfg)
	if err != nil {
		return nil, err
	}

	provider, err := llm.NewProvider(cmd.Context(), llmCfg, s.EventRepo(), log)
	if err != nil {
		s.Close()
		return nil, err
	}

	return &app{
		cfg:      cfg,
		logger:   log,
		store:    s,
		provider: provider,
		orch:     content.New(provider, cfg.Content(), log),
	}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}
