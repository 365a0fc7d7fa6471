package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Config holds connection details for the chat-completion endpoint.
type Config struct {
	APIURL      string
	APIKey      string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// Client performs synchronous chat-completion round-trips. The HTTP client
// carries a hard timeout; there is no retry at this layer or above.
type Client struct {
	httpClient *http.Client
	config     Config
	logger     zerolog.Logger
}

func NewClient(cfg Config, logger zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.7
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		config: cfg,
		logger: logger.With().Str("component", "ai_client").Logger(),
	}
}

type completionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

// Complete sends the fixed two-message conversation for prompt and returns the
// raw response body. Any network error or non-2xx status surfaces as a
// *TransportError.
func (c *Client) Complete(ctx context.Context, prompt string) ([]byte, error) {
	payload := completionRequest{
		Model:       c.config.Model,
		Messages:    conversation(prompt),
		Temperature: c.config.Temperature,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.APIURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.config.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		completionCalls.WithLabelValues("network_error").Inc()
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		completionCalls.WithLabelValues("http_error").Inc()
		c.logger.Warn().Int("status", resp.StatusCode).Msg("completion endpoint returned error status")
		return nil, &TransportError{Status: resp.StatusCode}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		completionCalls.WithLabelValues("network_error").Inc()
		return nil, &TransportError{Err: err}
	}

	completionCalls.WithLabelValues("ok").Inc()
	return raw, nil
}
