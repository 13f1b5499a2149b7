// Package llm talks to an OpenAI-compatible chat-completions endpoint
// (Groq hosts one) over plain HTTP.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/chaisthra/vibetrack/internal"
)

type CategoryResult struct {
	ProcessedText string `json:"processed_text"`
	Category      string `json:"category"`
}

type Categorizer interface {
	Categorize(ctx context.Context, text string) (CategoryResult, error)
}

type Assistant interface {
	Answer(ctx context.Context, system, prompt string) (string, error)
}

type Client struct {
	url        string
	apiKey     string
	model      string
	categories []string
	fallback   string
	httpClient *http.Client
	logger     internal.Logger
}

func NewClient(url, apiKey, model string, categories []string, fallback string, logger internal.Logger) *Client {
	return &Client{
		url:        url,
		apiKey:     apiKey,
		model:      model,
		categories: categories,
		fallback:   fallback,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (c *Client) complete(ctx context.Context, messages []chatMessage, maxTokens int) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: 0.1,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Errorf("llm: request failed: %v", err)
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		c.logger.Errorf("llm: completion endpoint returned %d", resp.StatusCode)
		return "", fmt.Errorf("llm: completion endpoint returned %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		c.logger.Errorf("llm: failed to decode response: %v", err)
		return "", err
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("llm: response has no choices")
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

const categorizeSystem = "You are an activity categorization assistant. Categorize activities accurately into the predefined categories."

func (c *Client) categorizePrompt(text string) string {
	return fmt.Sprintf(`Analyze this activity text and categorize it into one of these categories: %s.
Return a simple JSON with two fields:
{
    "processed_text": "cleaned activity text",
    "category": "category_name"
}

Activity text: %s`, strings.Join(c.categories, ", "), text)
}

// Categorize asks the model to clean and label the text. A malformed model
// reply or an out-of-set label falls back to the default category; only
// transport failures surface as errors.
func (c *Client) Categorize(ctx context.Context, text string) (CategoryResult, error) {
	content, err := c.complete(ctx, []chatMessage{
		{Role: "system", Content: categorizeSystem},
		{Role: "user", Content: c.categorizePrompt(text)},
	}, 100)
	if err != nil {
		return CategoryResult{}, err
	}

	var result CategoryResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		c.logger.Warnf("llm: unparseable categorization %q", content)
		return CategoryResult{ProcessedText: strings.TrimSpace(text), Category: c.fallback}, nil
	}
	if result.ProcessedText == "" {
		result.ProcessedText = text
	}
	if !c.knownCategory(result.Category) {
		result.Category = c.fallback
	}
	return result, nil
}

func (c *Client) knownCategory(name string) bool {
	for _, cat := range c.categories {
		if cat == name {
			return true
		}
	}
	return false
}

// Answer runs a free-form assistant exchange and returns the raw content.
func (c *Client) Answer(ctx context.Context, system, prompt string) (string, error) {
	messages := []chatMessage{}
	if system != "" {
		messages = append(messages, chatMessage{Role: "system", Content: system})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})
	return c.complete(ctx, messages, 500)
}

var _ Categorizer = (*Client)(nil)
var _ Assistant = (*Client)(nil)
