// Package scenario produces the deterministic test inputs the harness sends
// to the endpoint. Each generator returns literal Scenario values for one
// category; a Scenario is immutable once built and consumed exactly once.
package scenario

import (
	"github.com/DealExMachina/nemotron-3-inference/client"
)

// Category groups scenarios by the contract they exercise.
type Category string

const (
	CategoryContextLength    Category = "context-length"
	CategoryReasoning        Category = "reasoning"
	CategoryToolCalling      Category = "tool-calling"
	CategoryStructuredOutput Category = "structured-output"
	CategoryLongContext      Category = "long-context"
)

// Categories returns all categories in fixed execution order so reports are
// reproducible and diff-able across runs.
func Categories() []Category {
	return []Category{
		CategoryContextLength,
		CategoryReasoning,
		CategoryToolCalling,
		CategoryStructuredOutput,
		CategoryLongContext,
	}
}

// AssertionConfig names a registered checker and its parameters. Keeping
// expectations as data rather than code lets the same checker implementations
// serve every scenario.
type AssertionConfig struct {
	Type   string                 `json:"type" yaml:"type"`
	Params map[string]interface{} `json:"params" yaml:"params"`
}

// Scenario is one complete request to the endpoint plus its expectations.
type Scenario struct {
	ID          string
	Name        string
	Category    Category
	Messages    []client.Message
	Tools       []client.Tool
	ToolChoice  string
	// ResponseFormat carries the schema for structured-output scenarios.
	ResponseFormat *client.ResponseFormat
	Assertions     []AssertionConfig
	MaxTokens      int
	Temperature    float32
}

// Request builds the wire request for this scenario against the given model.
func (s *Scenario) Request(model string) *client.ChatRequest {
	return &client.ChatRequest{
		Model:          model,
		Messages:       s.Messages,
		Temperature:    s.Temperature,
		MaxTokens:      s.MaxTokens,
		Stream:         false,
		Tools:          s.Tools,
		ToolChoice:     s.ToolChoice,
		ResponseFormat: s.ResponseFormat,
	}
}

func userMessage(content string) []client.Message {
	return []client.Message{{Role: "user", Content: content}}
}
