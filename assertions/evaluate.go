package assertions

import (
	"fmt"

	"github.com/DealExMachina/nemotron-3-inference/client"
	"github.com/DealExMachina/nemotron-3-inference/scenario"
)

// Evaluate runs every assertion configured on the scenario against the
// record and returns a single verdict. The first failing check decides the
// verdict; its reason names the scenario, category, and the specific check
// so failures are actionable without re-running.
func Evaluate(registry *Registry, scen *scenario.Scenario, record *client.ResponseRecord) CheckResult {
	if result := CheckTokenAccounting(record); !result.Passed {
		return annotate(result, scen, "token_accounting")
	}

	for _, cfg := range scen.Assertions {
		checker, err := registry.Create(cfg.Type, cfg.Params)
		if err != nil {
			return annotate(fail(err.Error(), nil), scen, cfg.Type)
		}
		if result := checker.Check(record, cfg.Params); !result.Passed {
			return annotate(result, scen, cfg.Type)
		}
	}
	return pass()
}

// CheckTokenAccounting verifies prompt + completion == total on a
// successful record. A violation indicates a harness parsing bug, not a
// model failure, and is flagged as such.
func CheckTokenAccounting(record *client.ResponseRecord) CheckResult {
	if record.PromptTokens+record.CompletionTokens != record.TotalTokens {
		return fail(
			fmt.Sprintf("harness bug: usage mismatch, prompt %d + completion %d != total %d",
				record.PromptTokens, record.CompletionTokens, record.TotalTokens),
			map[string]interface{}{
				"prompt_tokens":     record.PromptTokens,
				"completion_tokens": record.CompletionTokens,
				"total_tokens":      record.TotalTokens,
			},
		)
	}
	return pass()
}

func annotate(result CheckResult, scen *scenario.Scenario, checkType string) CheckResult {
	result.Reason = fmt.Sprintf("[%s/%s] %s: %s", scen.Category, scen.ID, checkType, result.Reason)
	return result
}
