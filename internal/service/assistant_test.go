package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/chaisthra/vibetrack/internal"
	"github.com/chaisthra/vibetrack/internal/storage"
)

type stubAssistant struct {
	content string
	err     error
}

func (s stubAssistant) Answer(ctx context.Context, system, prompt string) (string, error) {
	return s.content, s.err
}

func TestTimeframeStart(t *testing.T) {
	// A Wednesday.
	now := time.Date(2026, 3, 4, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		timeframe string
		want      string
		ok        bool
	}{
		{"today", "2026-03-04T00:00:00Z", true},
		{"yesterday", "2026-03-03T00:00:00Z", true},
		{"this week", "2026-03-02T00:00:00Z", true},
		{"this_week", "2026-03-02T00:00:00Z", true},
		{"last week", "2026-02-23T00:00:00Z", true},
		{"this month", "2026-03-01T00:00:00Z", true},
		{"last_month", "2026-02-01T00:00:00Z", true},
		{"", "", false},
		{"fortnight", "", false},
	}
	for _, tc := range tests {
		got, ok := TimeframeStart(now, tc.timeframe)
		assert.Equal(t, tc.ok, ok, tc.timeframe)
		assert.Equal(t, tc.want, got, tc.timeframe)
	}
}

func newAssistantStore(t *testing.T) *storage.FileStorage {
	t.Helper()
	store, err := storage.NewFileStorage(t.TempDir(), internal.NopLogger{})
	assert.NoError(t, err)
	return store
}

func seedActivity(t *testing.T, store *storage.FileStorage, userID, category, text, ts string) {
	t.Helper()
	err := store.SaveActivity(context.Background(), &internal.Activity{
		ID:        text,
		UserID:    userID,
		Type:      internal.ActivityTypeText,
		RawText:   text,
		Category:  category,
		Timestamp: ts,
	})
	assert.NoError(t, err)
}

func TestAnalyzeParsesModelReply(t *testing.T) {
	store := newAssistantStore(t)
	seedActivity(t, store, "alice", "Work", "wrote a report", "2026-01-10T09:00:00Z")

	assistant := stubAssistant{content: `{"analysis_type":"category_summary","description":"Mostly work","metrics":{},"insights":["focus on work"]}`}
	result, err := Analyze(context.Background(), store, assistant, "alice", &AnalyzeRequest{Query: "what did I do?"})
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, "category_summary", result.Analysis.AnalysisType)
	assert.Equal(t, "Mostly work", result.Analysis.Description)
}

func TestAnalyzeDegradesOnModelFailure(t *testing.T) {
	store := newAssistantStore(t)

	result, err := Analyze(context.Background(), store, stubAssistant{err: errors.New("down")}, "alice", &AnalyzeRequest{Query: "q"})
	assert.NoError(t, err)
	assert.Equal(t, "error", result.Analysis.AnalysisType)
	assert.Equal(t, 0, result.Total)
}

func TestAnalyzeDegradesOnUnparseableReply(t *testing.T) {
	store := newAssistantStore(t)

	result, err := Analyze(context.Background(), store, stubAssistant{content: "sure, here's my thinking..."}, "alice", &AnalyzeRequest{Query: "q"})
	assert.NoError(t, err)
	assert.Equal(t, "error", result.Analysis.AnalysisType)
}

func TestQueryLogsCategoryFilter(t *testing.T) {
	store := newAssistantStore(t)
	seedActivity(t, store, "alice", "Work", "wrote a report", "2026-01-10T09:00:00Z")
	seedActivity(t, store, "alice", "Health", "went running", "2026-01-11T07:00:00Z")

	assistant := stubAssistant{content: `{"answer":"You worked.","relevant_activities":[],"metrics":{},"suggestions":[]}`}
	result, err := QueryLogs(context.Background(), store, assistant, "alice", &QueryLogsRequest{
		Query:          "what work did I do?",
		CategoryFilter: "Work",
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, map[string]int{"Work": 1}, result.CategoryStats)
	assert.Equal(t, "You worked.", result.Analysis.Answer)
}

func TestQueryLogsFallbackAnswer(t *testing.T) {
	store := newAssistantStore(t)

	result, err := QueryLogs(context.Background(), store, stubAssistant{err: errors.New("down")}, "alice", &QueryLogsRequest{Query: "q"})
	assert.NoError(t, err)
	assert.Contains(t, result.Analysis.Answer, "Could not analyze")
}
