package scenario

import (
	"github.com/DealExMachina/nemotron-3-inference/client"
)

// toolLibrary is the fixed set of tool definitions offered to the model in
// tool-calling scenarios, in OpenAI function format.
func toolLibrary() []client.Tool {
	return []client.Tool{
		{
			Type: "function",
			Function: client.ToolFunction{
				Name:        "get_current_time",
				Description: "Get the current date and time",
				Parameters: map[string]interface{}{
					"type":       "object",
					"properties": map[string]interface{}{},
					"required":   []interface{}{},
				},
			},
		},
		{
			Type: "function",
			Function: client.ToolFunction{
				Name:        "calculate",
				Description: "Perform a mathematical calculation",
				Parameters: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"expression": map[string]interface{}{
							"type":        "string",
							"description": "Mathematical expression to evaluate (e.g., '2+2', '15*23+7')",
						},
					},
					"required": []interface{}{"expression"},
				},
			},
		},
		{
			Type: "function",
			Function: client.ToolFunction{
				Name:        "get_weather",
				Description: "Get the current weather in a given location",
				Parameters: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"location": map[string]interface{}{
							"type":        "string",
							"description": "The city and state/country, e.g., 'Paris, France'",
						},
						"unit": map[string]interface{}{
							"type":        "string",
							"enum":        []interface{}{"celsius", "fahrenheit"},
							"description": "Temperature unit",
						},
					},
					"required": []interface{}{"location"},
				},
			},
		},
	}
}
