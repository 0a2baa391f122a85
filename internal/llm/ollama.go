package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/casemate-ai/casemate-gateway/pkg/logger"
	"github.com/casemate-ai/casemate-gateway/pkg/metrics"
)

// OllamaConfig holds the inference backend configuration.
type OllamaConfig struct {
	Endpoint string
	Model    string
	Timeout  time.Duration
}

// OllamaClient talks to a local Ollama-compatible chat endpoint. One
// request per call, no streaming, no retries; the configured timeout
// bounds the connection and the full response together.
type OllamaClient struct {
	endpoint string
	model    string
	http     *http.Client
	logger   *logger.Logger
}

// NewOllamaClient creates a client for the given endpoint and model.
func NewOllamaClient(cfg OllamaConfig, log *logger.Logger) *OllamaClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &OllamaClient{
		endpoint: cfg.Endpoint,
		model:    cfg.Model,
		http:     &http.Client{Timeout: timeout},
		logger:   log,
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatResponse struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
}

// Complete sends the entire supplied history to the chat endpoint and
// returns the reply text, or a fallback string on failure.
func (c *OllamaClient) Complete(ctx context.Context, history []ChatMessage) string {
	start := time.Now()

	body, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: history,
		Stream:   false,
	})
	if err != nil {
		c.logger.Error("failed to encode inference request", zap.Error(err))
		return c.fallback("encode", FallbackUnexpected, start)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		c.logger.Error("failed to build inference request", zap.Error(err))
		return c.fallback("encode", FallbackUnexpected, start)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("inference backend unreachable",
			zap.String("endpoint", c.endpoint),
			zap.Error(err),
		)
		return c.fallback("transport", FallbackUnreachable, start)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("inference backend returned error status",
			zap.Int("status", resp.StatusCode),
		)
		return c.fallback("status", FallbackUnexpected, start)
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		c.logger.Warn("failed to decode inference response", zap.Error(err))
		return c.fallback("decode", FallbackUnexpected, start)
	}

	reply := strings.TrimSpace(decoded.Message.Content)
	if reply == "" {
		return c.fallback("empty", FallbackEmptyReply, start)
	}

	metrics.RecordLLMRequest(c.model, "success", time.Since(start).Seconds())
	return reply
}

func (c *OllamaClient) fallback(reason, reply string, start time.Time) string {
	metrics.RecordLLMRequest(c.model, "fallback", time.Since(start).Seconds())
	metrics.LLMFallbacksTotal.WithLabelValues(c.model, reason).Inc()
	return reply
}
