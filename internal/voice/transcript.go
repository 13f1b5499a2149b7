// Package voice integrates with the conversational voice provider: fetching
// finished-session transcripts and tracking the one active session.
package voice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/chaisthra/vibetrack/internal"
)

type TranscriptEntry struct {
	Role    string `json:"role"`
	Message string `json:"message"`
}

type Conversation struct {
	Transcript []TranscriptEntry `json:"transcript"`
}

type TranscriptFetcher interface {
	FetchConversation(ctx context.Context, conversationID, apiKey string) (*Conversation, error)
}

type TranscriptClient struct {
	baseURL    string
	httpClient *http.Client
	logger     internal.Logger
}

func NewTranscriptClient(baseURL string, logger internal.Logger) *TranscriptClient {
	return &TranscriptClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

// FetchConversation retrieves a finished conversation's transcript using the
// caller's provider API key.
func (c *TranscriptClient) FetchConversation(ctx context.Context, conversationID, apiKey string) (*Conversation, error) {
	if apiKey == "" {
		return nil, errors.New("voice: api key required")
	}

	url := fmt.Sprintf("%s/v1/convai/conversations/%s", c.baseURL, conversationID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("xi-api-key", apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Errorf("voice: failed to fetch conversation %s: %v", conversationID, err)
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		c.logger.Errorf("voice: conversation endpoint returned %d", resp.StatusCode)
		return nil, fmt.Errorf("voice: conversation endpoint returned %d", resp.StatusCode)
	}

	var conv Conversation
	if err := json.NewDecoder(resp.Body).Decode(&conv); err != nil {
		c.logger.Errorf("voice: failed to decode conversation: %v", err)
		return nil, err
	}
	return &conv, nil
}

var _ TranscriptFetcher = (*TranscriptClient)(nil)
