// Package logger is the harness's slog front end: scenario progress lines,
// debug dumps of endpoint traffic with bearer tokens scrubbed, and level
// control via LOG_LEVEL or the --verbose flag.
package logger

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"time"
)

// DefaultLogger backs every exported function. Info level unless LOG_LEVEL
// says otherwise.
var DefaultLogger *slog.Logger

func init() {
	level := slog.LevelInfo
	if envLevel := os.Getenv("LOG_LEVEL"); envLevel != "" {
		switch strings.ToLower(envLevel) {
		case "debug":
			level = slog.LevelDebug
		case "info":
			level = slog.LevelInfo
		case "warn", "warning":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
	}

	SetLevel(level)
}

// SetLevel swaps in a new logger at the given level.
func SetLevel(level slog.Level) {
	DefaultLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// SetVerbose toggles between debug and info, for the --verbose flag.
func SetVerbose(verbose bool) {
	if verbose {
		SetLevel(slog.LevelDebug)
	} else {
		SetLevel(slog.LevelInfo)
	}
}

func Info(msg string, args ...any) {
	DefaultLogger.Info(msg, args...)
}

func Debug(msg string, args ...any) {
	DefaultLogger.Debug(msg, args...)
}

func Warn(msg string, args ...any) {
	DefaultLogger.Warn(msg, args...)
}

func Error(msg string, args ...any) {
	DefaultLogger.Error(msg, args...)
}

// ScenarioStart marks a scenario entering execution.
func ScenarioStart(id, category, name string, attrs ...any) {
	allAttrs := make([]any, 0, 6+len(attrs))
	allAttrs = append(allAttrs,
		"scenario", id,
		"category", category,
		"name", name,
	)
	allAttrs = append(allAttrs, attrs...)
	Info("▶ Scenario", allAttrs...)
}

// ScenarioResult logs a scenario verdict with its latency and token usage.
// The reason is attached only on failure.
func ScenarioResult(id string, passed bool, latency time.Duration, tokens int, reason string) {
	attrs := []any{
		"scenario", id,
		"latency", latency.Round(time.Millisecond),
		"tokens", tokens,
	}
	if passed {
		Info("✅ Pass", attrs...)
		return
	}
	attrs = append(attrs, "reason", reason)
	Info("❌ Fail", attrs...)
}

// bearerPattern matches Authorization bearer tokens so they never reach logs.
var bearerPattern = regexp.MustCompile(`Bearer\s+[a-zA-Z0-9._-]+`)

// RedactSensitiveData scrubs bearer tokens from anything headed for a log
// line, including serialized request bodies.
func RedactSensitiveData(input string) string {
	return bearerPattern.ReplaceAllString(input, "Bearer [REDACTED]")
}

// APIRequest dumps an outgoing request at debug level. Skipped entirely
// when debug is off so large long-context bodies are never serialized.
func APIRequest(method, url string, headers map[string]string, body interface{}) {
	if !DefaultLogger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}

	attrs := make([]any, 0, 6)
	attrs = append(attrs,
		"method", method,
		"url", RedactSensitiveData(url),
	)

	if len(headers) > 0 {
		redacted := make(map[string]string, len(headers))
		for key, value := range headers {
			redacted[key] = RedactSensitiveData(value)
		}
		attrs = append(attrs, "headers", redacted)
	}

	if body != nil {
		bodyJSON, err := json.Marshal(body)
		if err != nil {
			attrs = append(attrs, "body_error", err.Error())
		} else {
			attrs = append(attrs, "body", RedactSensitiveData(string(bodyJSON)))
		}
	}

	Debug("🔵 API Request", attrs...)
}

// APIResponse dumps a response at debug level, pretty-printing the body
// when it parses as JSON.
func APIResponse(statusCode int, body string) {
	if !DefaultLogger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}

	var emoji string
	switch {
	case statusCode >= 200 && statusCode < 300:
		emoji = "🟢"
	case statusCode >= 400:
		emoji = "🔴"
	default:
		emoji = "🟡"
	}

	attrs := []any{"status_code", statusCode}
	if body != "" {
		var jsonObj interface{}
		if json.Unmarshal([]byte(body), &jsonObj) == nil {
			pretty, _ := json.MarshalIndent(jsonObj, "", "  ")
			attrs = append(attrs, "body", RedactSensitiveData(string(pretty)))
		} else {
			attrs = append(attrs, "body", RedactSensitiveData(body))
		}
	}

	Debug(emoji+" API Response", attrs...)
}
