package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const defaultBaseURL = "https://api.openai.com/v1"

// ClientConfig configures the chat-completions client backing both oracles.
type ClientConfig struct {
	APIKey       string
	BaseURL      string // defaults to the OpenAI API
	SummaryModel string
	ExtractModel string
	Timeout      time.Duration
}

// Client implements both oracles over an OpenAI-compatible chat-completions
// endpoint. Calls retry up to three times with exponential backoff before
// surfacing ErrUnavailable.
type Client struct {
	cfg        ClientConfig
	httpClient *http.Client
	logger     zerolog.Logger
}

func NewClient(cfg ClientConfig, logger zerolog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Extract implements ExtractionOracle. The returned payload always carries
// the four top-level entity keys even when the model omitted them.
func (c *Client) Extract(ctx context.Context, text string) (map[string]interface{}, error) {
	raw, err := c.chat(ctx, c.cfg.ExtractModel, extractSystemPrompt, text)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	data := safeJSON(raw)
	if data == nil {
		c.logger.Warn().Str("raw", truncate(raw, 512)).Msg("extraction model returned unparsable JSON")
		return nil, fmt.Errorf("extract: invalid JSON from model: %w", ErrUnavailable)
	}

	for _, key := range []string{"conditions", "symptoms", "medications", "procedures"} {
		if _, ok := data[key]; !ok {
			data[key] = []interface{}{}
		}
	}
	return data, nil
}

// Summarize implements SummarizationOracle.
func (c *Client) Summarize(ctx context.Context, text string) (*NoteSummary, error) {
	raw, err := c.chat(ctx, c.cfg.SummaryModel, summarySystemPrompt, text)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}

	data := safeJSON(raw)
	if data == nil {
		c.logger.Warn().Str("raw", truncate(raw, 512)).Msg("summarization model returned unparsable JSON")
		return nil, fmt.Errorf("summarize: invalid JSON from model: %w", ErrUnavailable)
	}

	summary := &NoteSummary{
		Diagnoses:   []string{},
		Symptoms:    []string{},
		Medications: []string{},
	}
	summary.Summary, _ = data["summary"].(string)
	summary.Diagnoses = stringList(data["diagnoses"])
	summary.Symptoms = stringList(data["symptoms"])
	summary.Medications = stringList(data["medications"])
	return summary, nil
}

// chat performs one completion with retry. Backoff doubles from one second
// and is capped at eight.
func (c *Client) chat(ctx context.Context, model, system, userText string) (string, error) {
	req := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: "Clinical note:\n" + userText + "\nReturn ONLY the required JSON."},
		},
	}

	var lastErr error
	backoff := time.Second
	for attempt := 0; attempt < 3; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", fmt.Errorf("%w: %v", ErrUnavailable, ctx.Err())
			}
			if backoff *= 2; backoff > 8*time.Second {
				backoff = 8 * time.Second
			}
		}

		content, err := c.completion(ctx, req)
		if err == nil {
			return content, nil
		}
		lastErr = err
		c.logger.Warn().Err(err).Int("attempt", attempt+1).Str("model", model).Msg("chat completion failed")
	}
	return "", fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
}

func (c *Client) completion(ctx context.Context, req chatRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("chat completion request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("chat completion status %d: %s", resp.StatusCode, snippet)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

// safeJSON leniently parses model output into an object. It strips markdown
// code fences, and as a repair attempt falls back to the outermost brace
// pair. Returns nil when no object can be recovered.
func safeJSON(raw string) map[string]interface{} {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(s), &data); err == nil {
		return data
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(s[start:end+1]), &data); err == nil {
			return data
		}
	}
	return nil
}

func stringList(v interface{}) []string {
	items, _ := v.([]interface{})
	out := []string{}
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
