package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/abhisek/quizgen/internal/store"
)

// LoggingProvider is a decorator that writes one structured log line per
// model call and, when a repo is configured, records the call as an event.
// Neither the log line nor the event can fail the call.
type LoggingProvider struct {
	inner     Provider
	vendor    string
	log       zerolog.Logger
	eventRepo store.EventRepo
}

// WithLogging wraps a Provider with call logging. vendor names the backing
// service ("openai", "gemini") in log lines and events. repo may be nil.
func WithLogging(p Provider, vendor string, log zerolog.Logger, repo store.EventRepo) Provider {
	return &LoggingProvider{inner: p, vendor: vendor, log: log, eventRepo: repo}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	latencyMs := time.Since(start).Milliseconds()

	data := store.LLMRequestEventData{
		RequestID:   RequestIDFrom(ctx),
		Provider:    l.vendor,
		Model:       l.inner.ModelID(),
		Purpose:     purpose,
		LatencyMs:   latencyMs,
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}

	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.Model = resp.Model
		data.ResponseBody = string(resp.Content)
	}

	if err != nil {
		data.ErrorMessage = err.Error()
		data.ResponseBody = string(contentOf(err))
	}

	ev := l.log.Info()
	if err != nil {
		ev = l.log.Warn().Err(err)
	}
	ev.Str("request_id", data.RequestID).
		Str("purpose", purpose).
		Str("provider", l.vendor).
		Str("model", data.Model).
		Int64("latency_ms", latencyMs).
		Int("input_tokens", data.InputTokens).
		Int("output_tokens", data.OutputTokens).
		Msg("llm call")

	if data.ResponseBody != "" {
		l.log.Debug().
			Str("request_id", data.RequestID).
			Str("raw_response", data.ResponseBody).
			Msg("llm raw response")
	}

	if l.eventRepo != nil {
		if logErr := l.eventRepo.AppendLLMRequest(ctx, data); logErr != nil {
			l.log.Warn().Err(logErr).Msg("failed to record LLM request event")
		}
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// contentOf returns any raw model output carried by err.
func contentOf(err error) json.RawMessage {
	var mt *ErrMaxTokensExceeded
	if errors.As(err, &mt) {
		return mt.Content
	}
	var mj *ErrMalformedJSON
	if errors.As(err, &mj) {
		return mj.Content
	}
	var sv *ErrSchemaViolation
	if errors.As(err, &sv) {
		return sv.Content
	}
	return nil
}

// serializeRequest builds a readable representation of the model request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n", m.Role)
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}

	if req.Schema != nil {
		schemaDef, err := json.Marshal(req.Schema.Definition)
		if err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n", req.Schema.Name)
			b.Write(schemaDef)
			b.WriteString("\n")
		}
	}

	return b.String()
}
