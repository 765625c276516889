package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"dermAssist/domain"
	"dermAssist/pkg/config"
	"dermAssist/pkg/logger"
	"dermAssist/pkg/metrics"
	"dermAssist/pkg/retry"
)

const (
	// maxCandidates is enforced here regardless of the upstream pool cap.
	maxCandidates = 25

	rerankMaxTokens = 1500
	visionMaxTokens = 2000
)

type Client struct {
	httpClient *http.Client
	cfg        config.OpenAIConfig

	// Retry controls backoff for transient provider failures. Exposed so
	// tests can shrink the delays.
	Retry retry.Config
}

func NewClient(cfg config.OpenAIConfig) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		cfg: cfg,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *imageURLPart `json:"image_url,omitempty"`
}

type imageURLPart struct {
	URL string `json:"url"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// isRetryable marks only rate limiting and provider 5xx as transient.
// Parse and schema failures are structural and never retried.
func isRetryable(err error) bool {
	return errors.Is(err, domain.ErrRateLimited) || errors.Is(err, domain.ErrUpstreamUnavailable)
}

// Rerank sends the candidate payload to the chat-completion endpoint and
// returns the schema-validated ranking. Generation is pinned to
// temperature 0 so repeated calls over the same pool stay stable.
func (c *Client) Rerank(ctx context.Context, input domain.RerankInput) (*domain.RerankOutput, error) {
	if len(input.Candidates) > maxCandidates {
		input.Candidates = input.Candidates[:maxCandidates]
	}

	payload, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal rerank input: %w", err)
	}

	messages := []chatMessage{
		{Role: "system", Content: rerankSystemPrompt},
		{Role: "user", Content: string(payload)},
	}

	var out *domain.RerankOutput
	err = retry.Do(ctx, c.Retry, isRetryable, func(ctx context.Context) error {
		content, err := c.chatCompletion(ctx, c.cfg.Model, messages, rerankMaxTokens)
		if err != nil {
			return err
		}

		parsed, err := parseRerankOutput(content)
		if err != nil {
			return err
		}

		out = parsed
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("rerank: %w", err)
	}

	logger.Info("Reranked candidate pool",
		"model", c.cfg.Model,
		"candidates", len(input.Candidates),
		"items", len(out.Items),
	)

	return out, nil
}

// AnalyzeSkin runs the vision model over the uploaded photo URLs and
// returns validated traits. Sibling of Rerank, same retry and
// validation treatment.
func (c *Client) AnalyzeSkin(ctx context.Context, imageURLs []string) (*domain.VisionAnalysis, error) {
	if len(imageURLs) == 0 {
		return nil, errors.New("at least one image url is required")
	}

	parts := []contentPart{{Type: "text", Text: visionUserPrompt}}
	for _, u := range imageURLs {
		parts = append(parts, contentPart{
			Type:     "image_url",
			ImageURL: &imageURLPart{URL: u},
		})
	}

	messages := []chatMessage{
		{Role: "system", Content: visionSystemPrompt},
		{Role: "user", Content: parts},
	}

	var out *domain.VisionAnalysis
	err := retry.Do(ctx, c.Retry, isRetryable, func(ctx context.Context) error {
		content, err := c.chatCompletion(ctx, c.cfg.VisionModel, messages, visionMaxTokens)
		if err != nil {
			return err
		}

		parsed, err := parseVisionOutput(content)
		if err != nil {
			return err
		}

		out = parsed
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("vision analysis: %w", err)
	}

	logger.Info("Vision analysis complete",
		"model", c.cfg.VisionModel,
		"images", len(imageURLs),
		"traits", len(out.Traits),
	)

	return out, nil
}

func (c *Client) chatCompletion(ctx context.Context, model string, messages []chatMessage, maxTokens int) (string, error) {
	req := &chatRequest{
		Model:          model,
		Messages:       messages,
		MaxTokens:      maxTokens,
		Temperature:    0,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	reqBody, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewBuffer(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		logger.Error("Failed to send request to LLM provider",
			"error", err,
			"model", model,
		)
		return "", fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		logger.Warn("LLM provider rate limited",
			"model", model,
			"status_code", resp.StatusCode,
		)
		metrics.LLMRetries.WithLabelValues("rate_limited").Inc()
		return "", fmt.Errorf("%w: status %d", domain.ErrRateLimited, resp.StatusCode)
	case resp.StatusCode >= http.StatusInternalServerError:
		logger.Warn("LLM provider server error",
			"model", model,
			"status_code", resp.StatusCode,
		)
		metrics.LLMRetries.WithLabelValues("server_error").Inc()
		return "", fmt.Errorf("%w: status %d", domain.ErrUpstreamUnavailable, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("llm provider error (status %d): %s", resp.StatusCode, string(body))
	}

	var response chatResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrMalformedCompletion, err)
	}

	if len(response.Choices) == 0 || response.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: no choices returned", domain.ErrEmptyCompletion)
	}

	return response.Choices[0].Message.Content, nil
}
