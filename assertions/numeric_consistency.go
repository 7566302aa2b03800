package assertions

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/DealExMachina/nemotron-3-inference/client"
)

// NumericConsistencyChecker verifies a declared total equals the product of
// other declared fields within an absolute tolerance. It layers on top of
// schema validation rather than replacing it: a response can be
// schema-valid and still internally inconsistent (e.g. total_amount not
// matching quantity * price_per_unit).
type NumericConsistencyChecker struct {
	totalField   string
	factorFields []string
	tolerance    float64
}

// NewNumericConsistencyChecker creates a numeric_consistency checker from params.
func NewNumericConsistencyChecker(params map[string]interface{}) Checker {
	totalField, _ := params["total_field"].(string)
	return &NumericConsistencyChecker{
		totalField:   totalField,
		factorFields: extractStringSlice(params, "factor_fields"),
		tolerance:    extractFloat(params, "tolerance", 0.01),
	}
}

// Check parses the content and compares the total against the factor product.
func (c *NumericConsistencyChecker) Check(record *client.ResponseRecord, params map[string]interface{}) CheckResult {
	if c.totalField == "" || len(c.factorFields) == 0 {
		return fail("numeric_consistency requires total_field and factor_fields", nil)
	}

	var document map[string]interface{}
	if err := json.Unmarshal([]byte(record.Content), &document); err != nil {
		return fail("invalid JSON", map[string]interface{}{"error": err.Error()})
	}

	total, ok := numericField(document, c.totalField)
	if !ok {
		return fail(fmt.Sprintf("field %q missing or not numeric", c.totalField), nil)
	}

	product := 1.0
	for _, field := range c.factorFields {
		factor, ok := numericField(document, field)
		if !ok {
			return fail(fmt.Sprintf("field %q missing or not numeric", field), nil)
		}
		product *= factor
	}

	if diff := math.Abs(total - product); diff > c.tolerance {
		return fail(
			fmt.Sprintf("numeric mismatch: %s=%.2f but product of factors is %.2f (tolerance %.2f)",
				c.totalField, total, product, c.tolerance),
			map[string]interface{}{
				"total":     total,
				"product":   product,
				"diff":      diff,
				"tolerance": c.tolerance,
			},
		)
	}
	return pass()
}

func numericField(document map[string]interface{}, field string) (float64, bool) {
	raw, present := document[field]
	if !present {
		return 0, false
	}
	return toFloat64(raw)
}
