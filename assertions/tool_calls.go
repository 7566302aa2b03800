package assertions

import (
	"fmt"
	"strings"

	"github.com/DealExMachina/nemotron-3-inference/client"
)

// ToolCalledChecker verifies the response invoked an expected tool with its
// required arguments present and non-empty. Argument values are checked by
// plausible-substring containment, not exact match: "Paris, France" and
// "paris" both satisfy arg_contains {"location": "paris"}.
type ToolCalledChecker struct {
	tools        []string
	requiredArgs []string
	argContains  map[string]string
	minCalls     int
	// requireAll demands every listed tool be called at least once; the
	// default treats the list as any-of.
	requireAll bool
}

// NewToolCalledChecker creates a tool_called checker from params.
func NewToolCalledChecker(params map[string]interface{}) Checker {
	minCalls := extractInt(params, "min_calls")
	if minCalls < 1 {
		minCalls = 1
	}
	requireAll, _ := params["require_all"].(bool)
	return &ToolCalledChecker{
		tools:        extractStringSlice(params, "tools"),
		requiredArgs: extractStringSlice(params, "required_args"),
		argContains:  extractStringMap(params, "arg_contains"),
		minCalls:     minCalls,
		requireAll:   requireAll,
	}
}

// Check inspects the tool calls on the record.
func (c *ToolCalledChecker) Check(record *client.ResponseRecord, params map[string]interface{}) CheckResult {
	if len(record.ToolCalls) == 0 {
		return fail("no tool call issued", map[string]interface{}{
			"expected_tools": c.tools,
			"content":        truncateString(record.Content, 200),
		})
	}
	if len(record.ToolCalls) < c.minCalls {
		return fail(
			fmt.Sprintf("expected at least %d tool call(s), got %d", c.minCalls, len(record.ToolCalls)),
			map[string]interface{}{"calls": callNames(record.ToolCalls)},
		)
	}

	expected := make(map[string]bool, len(c.tools))
	for _, name := range c.tools {
		expected[name] = true
	}

	matched := false
	called := make(map[string]bool, len(record.ToolCalls))
	for i := range record.ToolCalls {
		call := &record.ToolCalls[i]
		if len(expected) > 0 && !expected[call.Name] {
			continue
		}
		if result := c.checkArgs(call); !result.Passed {
			return result
		}
		matched = true
		called[call.Name] = true
	}

	if !matched {
		return fail(
			fmt.Sprintf("no call to expected tool(s) %v, got %v", c.tools, callNames(record.ToolCalls)),
			map[string]interface{}{"calls": callNames(record.ToolCalls)},
		)
	}

	if c.requireAll {
		var missing []string
		for _, name := range c.tools {
			if !called[name] {
				missing = append(missing, name)
			}
		}
		if len(missing) > 0 {
			return fail(
				fmt.Sprintf("expected every tool in %v to be called, missing %v", c.tools, missing),
				map[string]interface{}{"calls": callNames(record.ToolCalls), "missing": missing},
			)
		}
	}
	return pass()
}

func (c *ToolCalledChecker) checkArgs(call *client.ToolCallRecord) CheckResult {
	if len(c.requiredArgs) > 0 || len(c.argContains) > 0 {
		if call.Arguments == nil {
			return fail(
				fmt.Sprintf("tool %q arguments are not valid JSON", call.Name),
				map[string]interface{}{"raw_arguments": truncateString(call.RawArguments, 200)},
			)
		}
	}

	for _, arg := range c.requiredArgs {
		value, present := call.Arguments[arg]
		if !present || value == nil || value == "" {
			return fail(
				fmt.Sprintf("tool %q missing required argument %q", call.Name, arg),
				map[string]interface{}{"arguments": call.Arguments},
			)
		}
	}

	for arg, want := range c.argContains {
		value, present := call.Arguments[arg]
		if !present {
			return fail(
				fmt.Sprintf("tool %q missing required argument %q", call.Name, arg),
				map[string]interface{}{"arguments": call.Arguments},
			)
		}
		str, _ := value.(string)
		if !strings.Contains(strings.ToLower(str), strings.ToLower(want)) {
			return fail(
				fmt.Sprintf("tool %q argument %q = %q does not contain %q", call.Name, arg, str, want),
				map[string]interface{}{"argument": arg, "actual": value, "want": want},
			)
		}
	}
	return pass()
}

// NoToolCallChecker fails when the response issued any tool call. Used for
// prompts a well-behaved model should answer textually despite tools being
// offered.
type NoToolCallChecker struct{}

// NewNoToolCallChecker creates a no_tool_call checker.
func NewNoToolCallChecker(params map[string]interface{}) Checker {
	return &NoToolCallChecker{}
}

// Check fails when any tool call is present.
func (c *NoToolCallChecker) Check(record *client.ResponseRecord, params map[string]interface{}) CheckResult {
	if len(record.ToolCalls) > 0 {
		return fail(
			fmt.Sprintf("unexpected tool call(s): %v", callNames(record.ToolCalls)),
			map[string]interface{}{"calls": callNames(record.ToolCalls)},
		)
	}
	return pass()
}

func callNames(calls []client.ToolCallRecord) []string {
	names := make([]string, len(calls))
	for i, call := range calls {
		names[i] = call.Name
	}
	return names
}
