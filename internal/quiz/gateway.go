package quiz

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/abhisek/quizgen/internal/llm"
)

// State names a step of one request's lifecycle. It appears as the
// "state" log field.
type State string

const (
	StateReceived         State = "received"
	StateValidatingInput  State = "validating_input"
	StateAwaitingModel    State = "awaiting_model"
	StateValidatingOutput State = "validating_output"
	StateSucceeded        State = "succeeded"
	StateFailed           State = "failed"
)

// Purpose labels model calls made by the gateway.
const Purpose = "question-gen"

// Gateway turns a validated topic into a question batch with exactly one
// call to the provider. It holds no per-request state.
type Gateway struct {
	provider llm.Provider
	config   Config
	log      zerolog.Logger
}

// NewGateway creates a Gateway. Zero QuestionCount and MaxTokens fall back
// to DefaultConfig values.
func NewGateway(provider llm.Provider, cfg Config, log zerolog.Logger) *Gateway {
	def := DefaultConfig()
	if cfg.QuestionCount <= 0 {
		cfg.QuestionCount = def.QuestionCount
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = def.MaxTokens
	}
	return &Gateway{
		provider: provider,
		config:   cfg,
		log:      log.With().Str("component", "quiz").Logger(),
	}
}

// Generate requests a batch for req and validates the reply. Failures are
// *GenerationError values; use KindOf to tell them apart.
func (g *Gateway) Generate(ctx context.Context, req TopicRequest) (Batch, error) {
	log := g.log.With().
		Str("request_id", llm.RequestIDFrom(ctx)).
		Str("topic", req.Topic).
		Logger()

	if g.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.config.Timeout)
		defer cancel()
	}
	ctx = llm.WithPurpose(ctx, Purpose)

	log.Debug().Str("state", string(StateAwaitingModel)).Msg("calling model")

	resp, err := g.provider.Generate(ctx, llm.Request{
		System: buildSystemPrompt(g.config.QuestionCount),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(req.Topic)},
		},
		Schema:      QuestionBatchSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, g.fail(log, classify(err), err)
	}

	log.Debug().
		Str("state", string(StateValidatingOutput)).
		Str("raw_response", string(resp.Content)).
		Msg("model replied")

	if _, err := llm.ValidateJSON(replySchema, resp.Content); err != nil {
		return nil, g.fail(log, classify(err), err)
	}

	var out batchOutput
	if err := json.Unmarshal(llm.StripCodeFence(resp.Content), &out); err != nil {
		return nil, g.fail(log, KindSchemaViolation, fmt.Errorf("decode questions: %w", err))
	}

	batch, corrections, err := normalize(out.Questions, g.config.StrictAnswers)
	if err != nil {
		return nil, g.fail(log, KindSchemaViolation, err)
	}
	for _, c := range corrections {
		log.Warn().Str("correction", c).Msg("model output corrected")
	}
	if len(batch) != g.config.QuestionCount {
		log.Info().
			Int("requested", g.config.QuestionCount).
			Int("received", len(batch)).
			Msg("question count differs from request")
	}

	log.Debug().
		Str("state", string(StateSucceeded)).
		Int("questions", len(batch)).
		Msg("batch ready")

	return batch, nil
}

func (g *Gateway) fail(log zerolog.Logger, kind Kind, err error) error {
	log.Warn().
		Err(err).
		Str("state", string(StateFailed)).
		Str("kind", string(kind)).
		Msg("question generation failed")
	return &GenerationError{Kind: kind, Err: err}
}
