// Package client wraps calls to an OpenAI-compatible chat-completions
// endpoint as served by vLLM. It builds request bodies, enforces the
// per-request timeout, and parses responses into ResponseRecord values for
// the assertion layer. Failures are reported as typed errors so the caller
// can tell a transport problem from a wrong answer.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/DealExMachina/nemotron-3-inference/logger"
)

const (
	chatCompletionsPath = "/v1/chat/completions"
	modelsPath          = "/v1/models"
	contentTypeHeader   = "Content-Type"
	applicationJSON     = "application/json"
)

// defaultTimeout is a generous ceiling scaled for long-context requests.
const defaultTimeout = 5 * time.Minute

// RetryPolicy bounds retries for transient cold-start failures at the
// adapter boundary. It applies to transport errors only, never to
// assertion outcomes. The zero value disables retries.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration
}

// Config holds the endpoint parameters, read once at startup.
type Config struct {
	BaseURL string
	APIKey  string // optional - vLLM does not require auth by default
	Timeout time.Duration
	Retry   RetryPolicy
}

// Client issues chat-completion requests against a single endpoint.
// One instance, and its underlying http.Client, is reused across calls.
type Client struct {
	baseURL string
	apiKey  string
	retry   RetryPolicy
	http    *http.Client
}

// New creates a Client from config, applying the default timeout when unset.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		retry:   cfg.Retry,
		http:    &http.Client{Timeout: timeout},
	}
}

// ToolCallRecord is one parsed tool invocation from a response.
type ToolCallRecord struct {
	Name         string
	Arguments    map[string]interface{}
	RawArguments string
}

// ResponseRecord is the parsed outcome of a single chat completion.
// Content and Reasoning are carried separately: the upstream reasoning
// parser sometimes returns the answer in reasoning_content with content
// null, and choosing which one is "the answer" belongs to the assertion
// layer, not here.
type ResponseRecord struct {
	ScenarioID       string
	Content          string
	Reasoning        string
	ToolCalls        []ToolCallRecord
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	Latency          time.Duration
	FinishReason     string
}

// TokensPerSecond reports completion-token throughput for this response.
func (r *ResponseRecord) TokensPerSecond() float64 {
	secs := r.Latency.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(r.CompletionTokens) / secs
}

// Complete sends one chat-completion request and returns the parsed record.
// Transport, malformed-body, and timeout failures come back as the typed
// errors from errors.go.
func (c *Client) Complete(ctx context.Context, req *ChatRequest) (*ResponseRecord, error) {
	attempts := c.retry.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			logger.Warn("retrying after transport failure",
				"attempt", attempt+1, "backoff", c.retry.Backoff)
			select {
			case <-ctx.Done():
				return nil, classifyRequestErr(ctx, c.baseURL+chatCompletionsPath, 0, ctx.Err())
			case <-time.After(c.retry.Backoff):
			}
		}

		record, err := c.completeOnce(ctx, req)
		if err == nil {
			return record, nil
		}
		lastErr = err

		// Only transport failures are worth retrying: cold-starting
		// backends refuse connections until the replica wakes.
		var te *TransportError
		if !errors.As(err, &te) {
			return nil, err
		}
	}
	return nil, lastErr
}

func (c *Client) completeOnce(ctx context.Context, req *ChatRequest) (*ResponseRecord, error) {
	url := c.baseURL + chatCompletionsPath

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	start := time.Now()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set(contentTypeHeader, applicationJSON)
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	logger.APIRequest(http.MethodPost, url, map[string]string{
		contentTypeHeader: applicationJSON,
	}, req)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, classifyRequestErr(ctx, url, time.Since(start), err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyRequestErr(ctx, url, time.Since(start), fmt.Errorf("failed to read response body: %w", err))
	}

	latency := time.Since(start)
	logger.APIResponse(resp.StatusCode, string(respBody))

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{
			URL:    url,
			Status: resp.StatusCode,
			Body:   truncate(string(respBody), 300),
		}
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, &MalformedResponseError{Reason: "body is not valid JSON", Err: err}
	}
	if parsed.Error != nil {
		return nil, &TransportError{URL: url, Status: resp.StatusCode, Body: parsed.Error.Message}
	}
	if len(parsed.Choices) == 0 {
		return nil, &MalformedResponseError{Reason: "no choices in response"}
	}

	return buildRecord(&parsed, latency), nil
}

func buildRecord(resp *chatResponse, latency time.Duration) *ResponseRecord {
	ch := resp.Choices[0]

	record := &ResponseRecord{
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
		Latency:          latency,
		FinishReason:     ch.FinishReason,
	}
	if ch.Message.Content != nil {
		record.Content = *ch.Message.Content
	}
	if ch.Message.ReasoningContent != nil {
		record.Reasoning = *ch.Message.ReasoningContent
	}

	for _, tc := range ch.Message.ToolCalls {
		call := ToolCallRecord{
			Name:         tc.Function.Name,
			RawArguments: tc.Function.Arguments,
		}
		// Arguments arrive as a JSON string; keep the raw form when it
		// does not parse so assertions can still report it.
		var args map[string]interface{}
		if json.Unmarshal([]byte(tc.Function.Arguments), &args) == nil {
			call.Arguments = args
		}
		record.ToolCalls = append(record.ToolCalls, call)
	}

	return record
}

// ListModels queries /v1/models, used to confirm the deployment is up and
// report what it serves before a run.
func (c *Client) ListModels(ctx context.Context) ([]ModelInfo, error) {
	url := c.baseURL + modelsPath

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	logger.APIResponse(resp.StatusCode, string(respBody))

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{URL: url, Status: resp.StatusCode, Body: truncate(string(respBody), 300)}
	}

	var list modelList
	if err := json.Unmarshal(respBody, &list); err != nil {
		return nil, &MalformedResponseError{Reason: "model list is not valid JSON", Err: err}
	}
	return list.Data, nil
}

// classifyRequestErr maps a failed request onto the error taxonomy. A
// context deadline is a timeout, a context cancel is a cancel regardless of
// where it interrupted the request, everything else is transport.
func classifyRequestErr(ctx context.Context, url string, elapsed time.Duration, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &TimeoutError{URL: url, Elapsed: elapsed, Err: err}
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		return &CanceledError{URL: url, Err: err}
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &TimeoutError{URL: url, Elapsed: elapsed, Err: err}
	}
	return &TransportError{URL: url, Err: err}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
