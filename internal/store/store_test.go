package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "events.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)

	var mode string
	require.NoError(t, s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)

	var sync string
	require.NoError(t, s.DB().QueryRow("PRAGMA synchronous").Scan(&sync))
	assert.Equal(t, "1", sync) // NORMAL
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.db")
	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.EventRepo().AppendLLMRequest(context.Background(), LLMRequestEventData{
		Provider: "gpt-4o-mini", Model: "gpt-4o-mini", Purpose: "question-gen", Success: true,
	}))
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	events, err := s2.EventRepo().QueryLLMEvents(context.Background(), QueryOpts{})
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestAppendAndGetLLMEvent(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()

	before := time.Now().Add(-time.Second)
	err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		RequestID:    "req-1",
		Provider:     "gpt-4o-mini",
		Model:        "gpt-4o-mini-2024-07-18",
		Purpose:      "question-gen",
		InputTokens:  120,
		OutputTokens: 800,
		LatencyMs:    950,
		Success:      false,
		ErrorMessage: "response is not valid JSON",
		RequestBody:  "[user]\nGenerate questions about: tides",
		ResponseBody: "{oops",
	})
	require.NoError(t, err)

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 10})
	require.NoError(t, err)
	require.Len(t, events, 1)

	got, err := repo.GetLLMEvent(ctx, events[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "req-1", got.RequestID)
	assert.Equal(t, "gpt-4o-mini-2024-07-18", got.Model)
	assert.Equal(t, 800, got.OutputTokens)
	assert.False(t, got.Success)
	assert.Equal(t, "{oops", got.ResponseBody)
	assert.True(t, got.Timestamp.After(before))
}

func TestGetLLMEvent_NotFound(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	got, err := repo.GetLLMEvent(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestQueryLLMEvents_FilterAndOrder(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()

	for _, purpose := range []string{"question-gen", "cli", "question-gen"} {
		require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider: "m", Model: "m", Purpose: purpose, Success: true,
		}))
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Greater(t, all[0].ID, all[1].ID, "newest first")

	filtered, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "question-gen", Limit: 1})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, all[0].ID, filtered[0].ID)

	future, err := repo.QueryLLMEvents(ctx, QueryOpts{From: time.Now().Add(time.Hour)})
	require.NoError(t, err)
	assert.Empty(t, future)
}

func TestUsageAggregates(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()

	rows := []LLMRequestEventData{
		{Provider: "a", Model: "gpt-4o-mini", Purpose: "question-gen", InputTokens: 100, OutputTokens: 10, LatencyMs: 100, Success: true},
		{Provider: "a", Model: "gpt-4o-mini", Purpose: "question-gen", InputTokens: 50, OutputTokens: 5, LatencyMs: 300, Success: false},
		{Provider: "b", Model: "gemini-2.5-flash", Purpose: "cli", InputTokens: 7, OutputTokens: 3, LatencyMs: 10, Success: true},
	}
	for _, r := range rows {
		require.NoError(t, repo.AppendLLMRequest(ctx, r))
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 2)
	assert.Equal(t, PurposeUsage{Purpose: "cli", Calls: 1, InputTokens: 7, OutputTokens: 3, AvgLatencyMs: 10}, byPurpose[0])
	assert.Equal(t, PurposeUsage{Purpose: "question-gen", Calls: 2, Failures: 1, InputTokens: 150, OutputTokens: 15, AvgLatencyMs: 200}, byPurpose[1])

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 2)
	assert.Equal(t, ModelUsage{Model: "gemini-2.5-flash", Calls: 1, InputTokens: 7, OutputTokens: 3}, byModel[0])
	assert.Equal(t, ModelUsage{Model: "gpt-4o-mini", Calls: 2, InputTokens: 150, OutputTokens: 15}, byModel[1])
}
