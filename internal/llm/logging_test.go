package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizgen/internal/store"
)

type fakeEventRepo struct {
	store.EventRepo
	appended []store.LLMRequestEventData
	err      error
}

func (f *fakeEventRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	f.appended = append(f.appended, data)
	return f.err
}

func logLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var lines []map[string]any
	for _, l := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if l == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(l), &m))
		lines = append(lines, m)
	}
	return lines
}

func TestLoggingProvider_Success(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.InfoLevel)
	repo := &fakeEventRepo{}

	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"questions":[]}`),
		Usage:   Usage{InputTokens: 12, OutputTokens: 34},
	})
	p := WithLogging(mock, "mock", log, repo)

	ctx := WithRequestID(WithPurpose(context.Background(), "question-gen"), "req-7")
	resp, err := p.Generate(ctx, Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "Generate questions about: owls"}},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"questions":[]}`, string(resp.Content))

	lines := logLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "info", lines[0]["level"])
	assert.Equal(t, "llm call", lines[0]["message"])
	assert.Equal(t, "req-7", lines[0]["request_id"])
	assert.Equal(t, "question-gen", lines[0]["purpose"])
	assert.EqualValues(t, 34, lines[0]["output_tokens"])

	require.Len(t, repo.appended, 1)
	ev := repo.appended[0]
	assert.True(t, ev.Success)
	assert.Equal(t, "mock", ev.Model)
	assert.Equal(t, "mock", ev.Provider)
	assert.Equal(t, "mock", lines[0]["provider"])
	assert.Equal(t, 12, ev.InputTokens)
	assert.Contains(t, ev.RequestBody, "[system]\nsys")
	assert.Contains(t, ev.RequestBody, "[user]\nGenerate questions about: owls")
}

func TestLoggingProvider_FailureRecordsRawContent(t *testing.T) {
	var buf bytes.Buffer
	repo := &fakeEventRepo{}

	raw := json.RawMessage(`{"questions": [`)
	mock := NewMockProvider(MockResponse{Err: &ErrMaxTokensExceeded{Content: raw}})
	p := WithLogging(mock, "mock", zerolog.New(&buf), repo)

	_, err := p.Generate(context.Background(), Request{})
	var mt *ErrMaxTokensExceeded
	require.ErrorAs(t, err, &mt)

	lines := logLines(t, &buf)
	require.NotEmpty(t, lines)
	assert.Equal(t, "warn", lines[0]["level"])
	assert.Equal(t, "unknown", lines[0]["purpose"])

	require.Len(t, repo.appended, 1)
	assert.False(t, repo.appended[0].Success)
	assert.Equal(t, string(raw), repo.appended[0].ResponseBody)
	assert.NotEmpty(t, repo.appended[0].ErrorMessage)
}

func TestLoggingProvider_RepoErrorDoesNotFailCall(t *testing.T) {
	var buf bytes.Buffer
	repo := &fakeEventRepo{err: errors.New("disk full")}
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})

	p := WithLogging(mock, "mock", zerolog.New(&buf), repo)
	_, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "failed to record LLM request event")
}

func TestLoggingProvider_NilRepo(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	p := WithLogging(mock, "mock", zerolog.Nop(), nil)

	_, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())
}

func TestContentOf(t *testing.T) {
	assert.Equal(t, "a", string(contentOf(&ErrMalformedJSON{Content: json.RawMessage("a")})))
	assert.Equal(t, "b", string(contentOf(&ErrSchemaViolation{Content: json.RawMessage("b")})))
	assert.Nil(t, contentOf(&ErrRateLimit{}))
}
