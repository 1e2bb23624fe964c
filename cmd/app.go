package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizgen/internal/config"
	"github.com/abhisek/quizgen/internal/llm"
	"github.com/abhisek/quizgen/internal/logger"
	"github.com/abhisek/quizgen/internal/quiz"
	"github.com/abhisek/quizgen/internal/server"
	"github.com/abhisek/quizgen/internal/store"
)

// app holds the wired dependencies shared by serve, lambda and generate.
type app struct {
	cfg       *config.Config
	log       zerolog.Logger
	store     *store.Store
	events    *store.EventWriter
	validator *quiz.RequestValidator
	gateway   *quiz.Gateway
}

// buildApp loads configuration, opens the optional model-call log, and
// builds the provider chain. Logs go to w. Callers must call Close.
func buildApp(ctx context.Context, cmd *cobra.Command, w io.Writer) (*app, error) {
	cfg := config.Load()
	log := logger.New(w, cfg.LogLevel, cfg.LogFormat)

	a := &app{cfg: cfg, log: log}

	dbPath, err := resolveDBPath(cmd, cfg.EventsDB)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	var eventRepo store.EventRepo
	if dbPath != "" {
		a.store, err = store.Open(dbPath)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		// Appends go through a queue so the request path never waits on SQLite.
		a.events = store.NewEventWriter(a.store.EventRepo(), store.DefaultWriterQueue, log)
		eventRepo = a.events
	}

	// The offline mock answers every topic with a placeholder batch.
	provider, llmCfg, err := llm.NewProviderFromEnv(ctx, log, eventRepo, func(c *llm.Config) {
		c.Mock.Reply = quiz.SampleReply(cfg.QuestionCount)
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("LLM provider not configured: %w", err)
	}

	log.Info().
		Str("provider", llmCfg.Provider).
		Str("model", provider.ModelID()).
		Bool("events_db", dbPath != "").
		Msg("model provider ready")

	a.validator = quiz.NewRequestValidator(cfg.MaxTopicLength)
	a.gateway = quiz.NewGateway(provider, quiz.Config{
		QuestionCount: cfg.QuestionCount,
		MaxTokens:     quiz.DefaultConfig().MaxTokens,
		Temperature:   quiz.DefaultConfig().Temperature,
		StrictAnswers: cfg.StrictAnswers,
		Timeout:       llmCfg.Timeout,
	}, log)

	return a, nil
}

// router builds the gin engine for the HTTP surfaces.
func (a *app) router() *gin.Engine {
	h := server.NewQuestionHandler(a.validator, a.gateway)
	return server.NewRouter(h, server.Options{
		GinMode:        a.cfg.GinMode,
		AllowedOrigins: a.cfg.AllowedOrigins,
	}, a.log)
}

func (a *app) Close() {
	if a.events != nil {
		a.events.Close()
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn().Err(err).Msg("close store")
		}
	}
}
