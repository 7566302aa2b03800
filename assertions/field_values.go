package assertions

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/DealExMachina/nemotron-3-inference/client"
)

// numericTolerance absorbs float formatting noise when comparing expected
// numeric field values.
const numericTolerance = 1e-6

// FieldValuesChecker parses content as JSON and compares individual
// top-level fields against exact expected values. Strings compare
// case-insensitively, numbers within a small absolute tolerance.
type FieldValuesChecker struct {
	fields map[string]interface{}
}

// NewFieldValuesChecker creates a field_values checker from params.
func NewFieldValuesChecker(params map[string]interface{}) Checker {
	fields, _ := params["fields"].(map[string]interface{})
	return &FieldValuesChecker{fields: fields}
}

// Check compares the configured fields against the parsed document.
func (c *FieldValuesChecker) Check(record *client.ResponseRecord, params map[string]interface{}) CheckResult {
	var document map[string]interface{}
	if err := json.Unmarshal([]byte(record.Content), &document); err != nil {
		return fail("invalid JSON", map[string]interface{}{"error": err.Error()})
	}

	for field, expected := range c.fields {
		actual, present := document[field]
		if !present {
			return fail(fmt.Sprintf("field %q missing from response", field), nil)
		}
		if !valuesMatch(expected, actual) {
			return fail(
				fmt.Sprintf("field %q mismatch: expected %v, got %v", field, expected, actual),
				map[string]interface{}{"field": field, "expected": expected, "actual": actual},
			)
		}
	}
	return pass()
}

func valuesMatch(expected, actual interface{}) bool {
	if expNum, ok := toFloat64(expected); ok {
		actNum, ok := toFloat64(actual)
		return ok && math.Abs(expNum-actNum) <= numericTolerance
	}
	if expStr, ok := expected.(string); ok {
		actStr, ok := actual.(string)
		return ok && strings.EqualFold(expStr, actStr)
	}
	return expected == actual
}
