package assertions

import (
	"fmt"
	"strings"

	"github.com/DealExMachina/nemotron-3-inference/client"
)

// ContentIncludesChecker verifies all expected patterns appear in the
// response text, case-insensitively.
//
// When content is empty but a reasoning trace is present, the trace is
// searched as a fallback: the upstream reasoning parser sometimes leaves
// the answer there with content null. The fallback is a workaround for
// that quirk, not a guaranteed contract, so it can be disabled per
// scenario with use_reasoning_fallback: false.
type ContentIncludesChecker struct {
	patterns          []string
	reasoningFallback bool
}

// NewContentIncludesChecker creates a content_includes checker from params.
func NewContentIncludesChecker(params map[string]interface{}) Checker {
	fallback := true
	if raw, ok := params["use_reasoning_fallback"].(bool); ok {
		fallback = raw
	}
	return &ContentIncludesChecker{
		patterns:          extractStringSlice(params, "patterns"),
		reasoningFallback: fallback,
	}
}

// Check reports the patterns missing from the response text, if any.
func (c *ContentIncludesChecker) Check(record *client.ResponseRecord, params map[string]interface{}) CheckResult {
	text := record.Content
	if text == "" && c.reasoningFallback {
		text = record.Reasoning
	}
	textLower := strings.ToLower(text)

	var missing []string
	for _, pattern := range c.patterns {
		if !strings.Contains(textLower, strings.ToLower(pattern)) {
			missing = append(missing, pattern)
		}
	}

	if len(missing) > 0 {
		return fail(
			fmt.Sprintf("substring not found: %q", missing[0]),
			map[string]interface{}{
				"missing_patterns": missing,
				"content":          truncateString(text, 200),
			},
		)
	}
	return pass()
}
