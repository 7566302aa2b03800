// Package assertions judges endpoint responses against scenario
// expectations. Checkers are looked up by name in a registry and fed the
// parameter maps carried on the scenario, so expectations stay data.
package assertions

import (
	"fmt"
	"sync"

	"github.com/DealExMachina/nemotron-3-inference/client"
)

// CheckResult is the verdict of a single checker.
type CheckResult struct {
	Passed  bool        `json:"passed"`
	Reason  string      `json:"reason,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

func pass() CheckResult {
	return CheckResult{Passed: true}
}

func fail(reason string, details interface{}) CheckResult {
	return CheckResult{Passed: false, Reason: reason, Details: details}
}

// Checker validates one aspect of a response record.
type Checker interface {
	Check(record *client.ResponseRecord, params map[string]interface{}) CheckResult
}

// CheckerFactory creates a checker instance from configuration params.
// Params are passed at construction time so checkers can pre-compile
// patterns or pre-load schemas.
type CheckerFactory func(params map[string]interface{}) Checker

// Registry maps checker type names to factory functions.
type Registry struct {
	factories map[string]CheckerFactory
	mu        sync.RWMutex
}

// NewRegistry creates a registry with all built-in checkers registered.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]CheckerFactory)}

	r.Register("content_includes", NewContentIncludesChecker)
	r.Register("json_schema", NewJSONSchemaChecker)
	r.Register("field_values", NewFieldValuesChecker)
	r.Register("numeric_consistency", NewNumericConsistencyChecker)
	r.Register("tool_called", NewToolCalledChecker)
	r.Register("no_tool_call", NewNoToolCallChecker)

	return r
}

// Register adds a checker factory to the registry.
func (r *Registry) Register(checkerType string, factory CheckerFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[checkerType] = factory
}

// Create instantiates a checker by type name.
func (r *Registry) Create(checkerType string, params map[string]interface{}) (Checker, error) {
	r.mu.RLock()
	factory, ok := r.factories[checkerType]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown assertion type %q", checkerType)
	}
	return factory(params), nil
}

// extractStringSlice reads a []string param that may arrive as []string or
// []interface{} depending on whether the config came from code or YAML.
func extractStringSlice(params map[string]interface{}, key string) []string {
	raw, ok := params[key]
	if !ok {
		return nil
	}
	switch v := raw.(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// extractStringMap reads a map[string]string param tolerating the
// map[string]interface{} form YAML produces.
func extractStringMap(params map[string]interface{}, key string) map[string]string {
	raw, ok := params[key]
	if !ok {
		return nil
	}
	switch v := raw.(type) {
	case map[string]string:
		return v
	case map[string]interface{}:
		out := make(map[string]string, len(v))
		for k, item := range v {
			if s, ok := item.(string); ok {
				out[k] = s
			}
		}
		return out
	default:
		return nil
	}
}

// toFloat64 converts the numeric types JSON decoding and literal configs
// produce into a comparable float64.
func toFloat64(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	default:
		return 0, false
	}
}

func extractInt(params map[string]interface{}, key string) int {
	if raw, ok := params[key]; ok {
		if f, ok := toFloat64(raw); ok {
			return int(f)
		}
	}
	return 0
}

func extractFloat(params map[string]interface{}, key string, fallback float64) float64 {
	if raw, ok := params[key]; ok {
		if f, ok := toFloat64(raw); ok {
			return f
		}
	}
	return fallback
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
