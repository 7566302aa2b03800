// Package results collects per-scenario verdicts and folds them into a run
// summary. The summary is always recomputed from the ordered result
// sequence at report time, never mutated incrementally, so a partial run
// (operator interrupt) still reports consistently on what did execute.
package results

import (
	"time"
)

// Result is the judged outcome of one scenario. Exactly one Result exists
// per executed scenario, appended in execution order.
type Result struct {
	ScenarioID string        `json:"scenario_id"`
	Category   string        `json:"category"`
	Name       string        `json:"name"`
	Passed     bool          `json:"passed"`
	// Reason is empty on pass; on failure it names the specific check that
	// failed and the offending value when known.
	Reason string `json:"reason,omitempty"`
	// ErrorKind distinguishes transport/malformed/timeout/canceled failures
	// from assertion failures (empty for both passes and assertion
	// failures).
	ErrorKind        string        `json:"error_kind,omitempty"`
	Latency          time.Duration `json:"latency_ns"`
	PromptTokens     int           `json:"prompt_tokens"`
	CompletionTokens int           `json:"completion_tokens"`
	TotalTokens      int           `json:"total_tokens"`
	TokensPerSecond  float64       `json:"tokens_per_second"`
	FinishReason     string        `json:"finish_reason,omitempty"`
}

// CategoryStats aggregates one category's results.
type CategoryStats struct {
	Category           string        `json:"category"`
	Total              int           `json:"total"`
	Passed             int           `json:"passed"`
	Failed             int           `json:"failed"`
	AvgLatency         time.Duration `json:"avg_latency_ns"`
	AvgTokensPerSecond float64       `json:"avg_tokens_per_second"`
}

// Summary is the aggregate view of a run, derived from the result sequence.
type Summary struct {
	RunID      string          `json:"run_id"`
	BaseURL    string          `json:"base_url"`
	Model      string          `json:"model"`
	Timestamp  time.Time       `json:"timestamp"`
	Total      int             `json:"total"`
	Passed     int             `json:"passed"`
	Failed     int             `json:"failed"`
	PassRate   float64         `json:"pass_rate"`
	Categories []CategoryStats `json:"categories"`
}

// AllPassed reports whether the run should exit zero: every executed
// scenario passed. An empty run counts as passed.
func (s *Summary) AllPassed() bool {
	return s.Failed == 0
}

// Summarize recomputes the summary from scratch. Category order follows
// first appearance in the result sequence, which itself follows the fixed
// generation order, keeping reports diff-able across runs.
func Summarize(runID, baseURL, model string, seq []Result) *Summary {
	summary := &Summary{
		RunID:     runID,
		BaseURL:   baseURL,
		Model:     model,
		Timestamp: time.Now().UTC(),
		Total:     len(seq),
	}

	byCategory := make(map[string]*CategoryStats)
	var order []string
	latencySums := make(map[string]time.Duration)
	throughputSums := make(map[string]float64)

	for _, r := range seq {
		stats, ok := byCategory[r.Category]
		if !ok {
			stats = &CategoryStats{Category: r.Category}
			byCategory[r.Category] = stats
			order = append(order, r.Category)
		}
		stats.Total++
		if r.Passed {
			stats.Passed++
			summary.Passed++
		} else {
			stats.Failed++
			summary.Failed++
		}
		latencySums[r.Category] += r.Latency
		throughputSums[r.Category] += r.TokensPerSecond
	}

	for _, category := range order {
		stats := byCategory[category]
		if stats.Total > 0 {
			stats.AvgLatency = latencySums[category] / time.Duration(stats.Total)
			stats.AvgTokensPerSecond = throughputSums[category] / float64(stats.Total)
		}
		summary.Categories = append(summary.Categories, *stats)
	}

	if summary.Total > 0 {
		summary.PassRate = float64(summary.Passed) / float64(summary.Total)
	} else {
		summary.PassRate = 1
	}
	return summary
}
