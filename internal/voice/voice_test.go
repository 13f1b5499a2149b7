package voice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chaisthra/vibetrack/internal"
)

func TestSessionManagerSingleSlot(t *testing.T) {
	m := NewSessionManager()
	assert.Nil(t, m.Active())

	first, replaced := m.Start("alice", "agent-1")
	assert.Nil(t, replaced)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, "alice", first.UserID)
	assert.Equal(t, first, m.Active())

	// A second start replaces the running session, regardless of owner.
	second, replaced := m.Start("bob", "agent-1")
	assert.Equal(t, first, replaced)
	assert.NotEqual(t, first.ID, second.ID)

	ended, err := m.End()
	assert.NoError(t, err)
	assert.Equal(t, second, ended)
	assert.Nil(t, m.Active())

	_, err = m.End()
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestFetchConversation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/convai/conversations/conv-42", r.URL.Path)
		assert.Equal(t, "el-key", r.Header.Get("xi-api-key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"transcript": [{"role": "user", "message": "ran 5k"}, {"role": "agent", "message": "nice"}]}`))
	}))
	defer srv.Close()

	client := NewTranscriptClient(srv.URL, internal.NopLogger{})
	conv, err := client.FetchConversation(context.Background(), "conv-42", "el-key")
	assert.NoError(t, err)
	assert.Len(t, conv.Transcript, 2)
	assert.Equal(t, "user", conv.Transcript[0].Role)
}

func TestFetchConversationRequiresKey(t *testing.T) {
	client := NewTranscriptClient("http://localhost:0", internal.NopLogger{})
	_, err := client.FetchConversation(context.Background(), "conv-42", "")
	assert.Error(t, err)
}

func TestFetchConversationNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewTranscriptClient(srv.URL, internal.NopLogger{})
	_, err := client.FetchConversation(context.Background(), "conv-42", "bad-key")
	assert.Error(t, err)
}
