package assertions

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"github.com/DealExMachina/nemotron-3-inference/client"
)

// JSONSchemaChecker parses the response content as JSON and validates it
// against the scenario's schema. Parse failure and schema violation are
// reported with distinct, specific reasons.
type JSONSchemaChecker struct {
	schema map[string]interface{}
}

// NewJSONSchemaChecker creates a json_schema checker from params.
func NewJSONSchemaChecker(params map[string]interface{}) Checker {
	schema, _ := params["schema"].(map[string]interface{})
	return &JSONSchemaChecker{schema: schema}
}

// Check validates record content against the configured schema.
func (c *JSONSchemaChecker) Check(record *client.ResponseRecord, params map[string]interface{}) CheckResult {
	if c.schema == nil {
		return fail("no schema configured for json_schema assertion", nil)
	}

	var document interface{}
	if err := json.Unmarshal([]byte(record.Content), &document); err != nil {
		return fail("invalid JSON", map[string]interface{}{
			"error":   err.Error(),
			"content": truncateString(record.Content, 200),
		})
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(c.schema),
		gojsonschema.NewGoLoader(document),
	)
	if err != nil {
		return fail(fmt.Sprintf("schema validation error: %v", err), nil)
	}

	if !result.Valid() {
		violations := make([]string, 0, len(result.Errors()))
		for _, violation := range result.Errors() {
			violations = append(violations, violation.String())
		}
		return fail(
			"schema violation: "+violations[0],
			map[string]interface{}{
				"violations": violations,
				"count":      len(violations),
			},
		)
	}

	return pass()
}
