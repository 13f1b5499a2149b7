package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chaisthra/vibetrack/internal"
	"github.com/chaisthra/vibetrack/internal/llm"
	"github.com/chaisthra/vibetrack/internal/storage"
)

type stubCategorizer struct {
	result llm.CategoryResult
	err    error
}

func (s stubCategorizer) Categorize(ctx context.Context, text string) (llm.CategoryResult, error) {
	return s.result, s.err
}

func newTestRecorder(t *testing.T, categorize llm.Categorizer) (*ActivityRecorder, *storage.FileStorage) {
	t.Helper()
	store, err := storage.NewFileStorage(t.TempDir(), internal.NopLogger{})
	assert.NoError(t, err)
	return &ActivityRecorder{
		Activities: store,
		Categories: store,
		Categorize: categorize,
		Fallback:   "Personal",
		Logger:     internal.NopLogger{},
	}, store
}

func TestLogProcessedStoresAndCounts(t *testing.T) {
	recorder, store := newTestRecorder(t, stubCategorizer{
		result: llm.CategoryResult{ProcessedText: "Ran 5 kilometers", Category: "Health"},
	})
	ctx := context.Background()

	activity, err := recorder.LogProcessed(ctx, "alice", "ran 5k this morning", internal.ActivityTypeText, "")
	assert.NoError(t, err)
	assert.Equal(t, "Health", activity.Category)
	assert.Equal(t, "Ran 5 kilometers", activity.ProcessedText)
	assert.Equal(t, "ran 5k this morning", activity.RawText)
	assert.NotEmpty(t, activity.ID)
	assert.NotEmpty(t, activity.Timestamp)

	stored, err := store.ListActivities(ctx, "alice", "", "")
	assert.NoError(t, err)
	assert.Len(t, stored, 1)

	counters, err := store.LoadCounters(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1, counters["Health"].Count)
	assert.Equal(t, 1, counters["Health"].UserStats["alice"].Count)
	assert.Contains(t, counters["Health"].ContextClues, "Ran 5 kilometers")
}

func TestLogProcessedFallsBackWhenModelFails(t *testing.T) {
	recorder, _ := newTestRecorder(t, stubCategorizer{err: errors.New("model unavailable")})

	activity, err := recorder.LogProcessed(context.Background(), "alice", "did a thing", internal.ActivityTypeText, "")
	assert.NoError(t, err)
	assert.Equal(t, "Personal", activity.Category)
	assert.Equal(t, "did a thing", activity.ProcessedText)
}

func TestLogProcessedKeepsConversationID(t *testing.T) {
	recorder, _ := newTestRecorder(t, stubCategorizer{
		result: llm.CategoryResult{ProcessedText: "Talked about work", Category: "Work"},
	})

	activity, err := recorder.LogProcessed(context.Background(), "alice", "talked about work", internal.ActivityTypeVoice, "conv-42")
	assert.NoError(t, err)
	assert.Equal(t, internal.ActivityTypeVoice, activity.Type)
	assert.Equal(t, "conv-42", activity.ConversationID)
}

func TestLogRawDefaultsTimestamp(t *testing.T) {
	recorder, _ := newTestRecorder(t, stubCategorizer{})

	activity, err := recorder.LogRaw(context.Background(), "alice", &ActivityRequest{Text: "quick note"})
	assert.NoError(t, err)
	assert.Equal(t, "Personal", activity.Category)
	assert.NotEmpty(t, activity.Timestamp)

	withTS, err := recorder.LogRaw(context.Background(), "alice", &ActivityRequest{
		Text:      "older note",
		Timestamp: "2026-01-01T12:00:00Z",
	})
	assert.NoError(t, err)
	assert.Equal(t, "2026-01-01T12:00:00Z", withTS.Timestamp)
}

func TestListActivitiesDescOrder(t *testing.T) {
	recorder, store := newTestRecorder(t, stubCategorizer{})
	ctx := context.Background()

	for _, ts := range []string{"2026-01-02T08:00:00Z", "2026-01-03T08:00:00Z", "2026-01-01T08:00:00Z"} {
		_, err := recorder.LogRaw(ctx, "alice", &ActivityRequest{Text: "note", Timestamp: ts})
		assert.NoError(t, err)
	}

	got, err := ListActivitiesDesc(ctx, store, "alice", "", "")
	assert.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, "2026-01-03T08:00:00Z", got[0].Timestamp)
	assert.Equal(t, "2026-01-01T08:00:00Z", got[2].Timestamp)
}
