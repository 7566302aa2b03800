package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatReq() *ChatRequest {
	return &ChatRequest{
		Model:    "nemotron",
		Messages: []Message{{Role: "user", Content: "What is 2+2?"}},
	}
}

func TestCompleteParsesContentAndUsage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "nemotron", req.Model)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"choices": [{"message": {"content": "4"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 12, "completion_tokens": 3, "total_tokens": 15}
		}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	record, err := c.Complete(context.Background(), chatReq())
	require.NoError(t, err)

	assert.Equal(t, "4", record.Content)
	assert.Equal(t, 12, record.PromptTokens)
	assert.Equal(t, 3, record.CompletionTokens)
	assert.Equal(t, 15, record.TotalTokens)
	assert.Equal(t, "stop", record.FinishReason)
	assert.Greater(t, record.Latency, time.Duration(0))
}

func TestCompleteNullContentWithReasoning(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"choices": [{"message": {"content": null, "reasoning_content": "the answer is 4"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
		}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	record, err := c.Complete(context.Background(), chatReq())
	require.NoError(t, err)

	assert.Empty(t, record.Content)
	assert.Equal(t, "the answer is 4", record.Reasoning)
}

func TestCompleteParsesToolCalls(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"choices": [{"message": {"content": null, "tool_calls": [
				{"id": "call_1", "type": "function", "function": {"name": "get_weather", "arguments": "{\"location\": \"Paris\"}"}},
				{"id": "call_2", "type": "function", "function": {"name": "calculate", "arguments": "not json"}}
			]}, "finish_reason": "tool_calls"}],
			"usage": {"prompt_tokens": 40, "completion_tokens": 20, "total_tokens": 60}
		}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	record, err := c.Complete(context.Background(), chatReq())
	require.NoError(t, err)
	require.Len(t, record.ToolCalls, 2)

	assert.Equal(t, "get_weather", record.ToolCalls[0].Name)
	assert.Equal(t, "Paris", record.ToolCalls[0].Arguments["location"])

	// Unparseable arguments keep the raw string and leave Arguments nil.
	assert.Equal(t, "calculate", record.ToolCalls[1].Name)
	assert.Nil(t, record.ToolCalls[1].Arguments)
	assert.Equal(t, "not json", record.ToolCalls[1].RawArguments)
}

func TestCompleteNon2xxIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "model overloaded"}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	_, err := c.Complete(context.Background(), chatReq())
	require.Error(t, err)

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, http.StatusServiceUnavailable, te.Status)
	assert.Contains(t, te.Body, "model overloaded")
}

func TestCompleteUnreachableHostIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(Config{BaseURL: url})
	_, err := c.Complete(context.Background(), chatReq())

	var te *TransportError
	require.ErrorAs(t, err, &te)
}

func TestCompleteMalformedBody(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		reason string
	}{
		{"not json", `<html>Service Unavailable</html>`, "not valid JSON"},
		{"no choices", `{"choices": [], "usage": {}}`, "no choices"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := New(Config{BaseURL: srv.URL})
			_, err := c.Complete(context.Background(), chatReq())

			var me *MalformedResponseError
			require.ErrorAs(t, err, &me)
			assert.Contains(t, me.Reason, tt.reason)
		})
	}
}

func TestCompleteTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	_, err := c.Complete(context.Background(), chatReq())

	var te *TimeoutError
	require.ErrorAs(t, err, &te)
}

func TestCompleteContextDeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	c := New(Config{BaseURL: srv.URL})
	_, err := c.Complete(ctx, chatReq())

	var te *TimeoutError
	require.ErrorAs(t, err, &te)
}

func TestCompleteContextCancelIsCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	timer := time.AfterFunc(50*time.Millisecond, cancel)
	defer timer.Stop()

	c := New(Config{BaseURL: srv.URL})
	_, err := c.Complete(ctx, chatReq())

	// An operator interrupt is neither a timeout nor a transport fault.
	var ce *CanceledError
	require.ErrorAs(t, err, &ce)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompleteCanceledDuringBackoff(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "waking up", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	timer := time.AfterFunc(50*time.Millisecond, cancel)
	defer timer.Stop()

	c := New(Config{
		BaseURL: srv.URL,
		Retry:   RetryPolicy{MaxAttempts: 3, Backoff: 5 * time.Second},
	})
	_, err := c.Complete(ctx, chatReq())

	var ce *CanceledError
	require.ErrorAs(t, err, &ce)
}

func TestCompleteRetriesTransportFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "waking up", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{
			"choices": [{"message": {"content": "ok"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 1, "completion_tokens": 1, "total_tokens": 2}
		}`))
	}))
	defer srv.Close()

	c := New(Config{
		BaseURL: srv.URL,
		Retry:   RetryPolicy{MaxAttempts: 3, Backoff: time.Millisecond},
	})
	record, err := c.Complete(context.Background(), chatReq())
	require.NoError(t, err)
	assert.Equal(t, "ok", record.Content)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCompleteDoesNotRetryMalformed(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`garbage`))
	}))
	defer srv.Close()

	c := New(Config{
		BaseURL: srv.URL,
		Retry:   RetryPolicy{MaxAttempts: 3, Backoff: time.Millisecond},
	})
	_, err := c.Complete(context.Background(), chatReq())
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCompleteSendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Write([]byte(`{
			"choices": [{"message": {"content": "ok"}}],
			"usage": {"prompt_tokens": 1, "completion_tokens": 1, "total_tokens": 2}
		}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, APIKey: "secret"})
	_, err := c.Complete(context.Background(), chatReq())
	require.NoError(t, err)
}

func TestListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/models", r.URL.Path)
		w.Write([]byte(`{"object": "list", "data": [
			{"id": "nemotron", "object": "model", "owned_by": "vllm", "max_model_len": 262144}
		]}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	models, err := c.ListModels(context.Background())
	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.Equal(t, "nemotron", models[0].ID)
	assert.Equal(t, 262144, models[0].MaxModelLen)
}

func TestTokensPerSecond(t *testing.T) {
	record := &ResponseRecord{CompletionTokens: 100, Latency: 2 * time.Second}
	assert.InDelta(t, 50.0, record.TokensPerSecond(), 0.001)

	zero := &ResponseRecord{CompletionTokens: 100}
	assert.Zero(t, zero.TokensPerSecond())
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &TransportError{URL: "http://x", Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}
