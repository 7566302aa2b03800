// Package engine executes scenarios sequentially against the endpoint and
// turns each response into exactly one judged result.
//
// Execution is deliberately single-threaded: long-context requests are
// expensive, and measured per-request latency must not be entangled with
// contention from concurrent in-flight requests against a shared, possibly
// autoscaled backend.
package engine

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/DealExMachina/nemotron-3-inference/assertions"
	"github.com/DealExMachina/nemotron-3-inference/client"
	"github.com/DealExMachina/nemotron-3-inference/logger"
	"github.com/DealExMachina/nemotron-3-inference/results"
	"github.com/DealExMachina/nemotron-3-inference/scenario"
)

// Engine drives one run of scenarios through the client and assertion
// layers, collecting results in execution order.
type Engine struct {
	client   *client.Client
	registry *assertions.Registry
	console  *results.ConsoleWriter
	model    string
	baseURL  string
	runID    string
}

// New creates an engine with a fresh run ID.
func New(c *client.Client, registry *assertions.Registry, console *results.ConsoleWriter, model, baseURL string) *Engine {
	return &Engine{
		client:   c,
		registry: registry,
		console:  console,
		model:    model,
		baseURL:  baseURL,
		runID:    uuid.New().String(),
	}
}

// RunID returns the identifier for this run.
func (e *Engine) RunID() string { return e.runID }

// Run executes the scenarios one at a time: each request/assert cycle
// completes fully before the next begins. A failing scenario never aborts
// the run. Cancellation stops issuing new requests but the results already
// collected are returned so partial runs remain reportable.
func (e *Engine) Run(ctx context.Context, scenarios []scenario.Scenario) []results.Result {
	seq := make([]results.Result, 0, len(scenarios))

	for i := range scenarios {
		if ctx.Err() != nil {
			logger.Warn("run interrupted, reporting partial results",
				"completed", len(seq), "remaining", len(scenarios)-len(seq))
			break
		}

		scen := &scenarios[i]
		logger.ScenarioStart(scen.ID, string(scen.Category), scen.Name)

		result := e.runOne(ctx, scen)
		seq = append(seq, result)

		if e.console != nil {
			e.console.ProgressLine(&result)
		}
		logger.ScenarioResult(result.ScenarioID, result.Passed, result.Latency, result.TotalTokens, result.Reason)
	}

	return seq
}

// Summarize folds the result sequence into this run's summary.
func (e *Engine) Summarize(seq []results.Result) *results.Summary {
	return results.Summarize(e.runID, e.baseURL, e.model, seq)
}

func (e *Engine) runOne(ctx context.Context, scen *scenario.Scenario) results.Result {
	result := results.Result{
		ScenarioID: scen.ID,
		Category:   string(scen.Category),
		Name:       scen.Name,
	}

	record, err := e.client.Complete(ctx, scen.Request(e.model))
	if err != nil {
		result.Passed = false
		result.ErrorKind = errorKind(err)
		result.Reason = err.Error()
		return result
	}

	result.Latency = record.Latency
	result.PromptTokens = record.PromptTokens
	result.CompletionTokens = record.CompletionTokens
	result.TotalTokens = record.TotalTokens
	result.TokensPerSecond = record.TokensPerSecond()
	result.FinishReason = record.FinishReason

	verdict := assertions.Evaluate(e.registry, scen, record)
	result.Passed = verdict.Passed
	result.Reason = verdict.Reason
	return result
}

// errorKind maps the client's typed errors onto the report taxonomy.
// A malformed body is grouped with transport failures in the report totals
// but keeps its own kind so operators can tell them apart.
func errorKind(err error) string {
	var canceledErr *client.CanceledError
	if errors.As(err, &canceledErr) {
		return client.KindCanceled
	}
	var timeoutErr *client.TimeoutError
	if errors.As(err, &timeoutErr) {
		return client.KindTimeout
	}
	var malformedErr *client.MalformedResponseError
	if errors.As(err, &malformedErr) {
		return client.KindMalformed
	}
	var transportErr *client.TransportError
	if errors.As(err, &transportErr) {
		return client.KindTransport
	}
	return client.KindTransport
}
