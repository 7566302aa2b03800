package results

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeCountsAndOrder(t *testing.T) {
	seq := []Result{
		{ScenarioID: "context-small-100", Category: "context-length", Passed: true, Latency: 2 * time.Second, TokensPerSecond: 40},
		{ScenarioID: "context-medium-1k", Category: "context-length", Passed: true, Latency: 4 * time.Second, TokensPerSecond: 60},
		{ScenarioID: "reasoning-trains", Category: "reasoning", Passed: false, Reason: "substring not found"},
		{ScenarioID: "needle-50pct", Category: "long-context", Passed: true, Latency: 30 * time.Second, TokensPerSecond: 10},
	}

	summary := Summarize("run-1", "http://endpoint", "nemotron", seq)

	assert.Equal(t, "run-1", summary.RunID)
	assert.Equal(t, "nemotron", summary.Model)
	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 3, summary.Passed)
	assert.Equal(t, 1, summary.Failed)
	assert.InDelta(t, 0.75, summary.PassRate, 0.001)
	assert.False(t, summary.AllPassed())

	// Category order follows first appearance in the sequence.
	require.Len(t, summary.Categories, 3)
	assert.Equal(t, "context-length", summary.Categories[0].Category)
	assert.Equal(t, "reasoning", summary.Categories[1].Category)
	assert.Equal(t, "long-context", summary.Categories[2].Category)

	ctx := summary.Categories[0]
	assert.Equal(t, 2, ctx.Total)
	assert.Equal(t, 2, ctx.Passed)
	assert.Equal(t, 3*time.Second, ctx.AvgLatency)
	assert.InDelta(t, 50.0, ctx.AvgTokensPerSecond, 0.001)
}

func TestSummarizeEmptyRun(t *testing.T) {
	summary := Summarize("run-1", "http://endpoint", "nemotron", nil)
	assert.Zero(t, summary.Total)
	assert.True(t, summary.AllPassed())
	assert.InDelta(t, 1.0, summary.PassRate, 0.001)
	assert.Empty(t, summary.Categories)
}

func TestSummarizeIsRecomputedFromSequence(t *testing.T) {
	seq := []Result{{ScenarioID: "a", Category: "reasoning", Passed: true}}
	first := Summarize("run-1", "u", "m", seq)

	// Interrupted run: summarizing the same prefix again yields identical
	// counts, nothing carried over between calls.
	second := Summarize("run-1", "u", "m", seq)
	assert.Equal(t, first.Total, second.Total)
	assert.Equal(t, first.Passed, second.Passed)
	assert.Equal(t, first.Categories, second.Categories)
}

func TestJSONRepositoryRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	repo, err := NewJSONRepository(dir)
	require.NoError(t, err)

	seq := []Result{
		{ScenarioID: "tools-time", Category: "tool-calling", Passed: true},
		{ScenarioID: "tools-weather", Category: "tool-calling", Passed: false, Reason: "no tool call issued", ErrorKind: ""},
	}
	require.NoError(t, repo.SaveResults(seq))

	summary := Summarize("run-1", "http://endpoint", "nemotron", seq)
	require.NoError(t, repo.SaveSummary(summary))

	data, err := os.ReadFile(filepath.Join(dir, "results.json"))
	require.NoError(t, err)
	var loaded []Result
	require.NoError(t, json.Unmarshal(data, &loaded))
	require.Len(t, loaded, 2)
	assert.Equal(t, "tools-time", loaded[0].ScenarioID)
	assert.Equal(t, "no tool call issued", loaded[1].Reason)

	data, err = os.ReadFile(filepath.Join(dir, "summary.json"))
	require.NoError(t, err)
	var loadedSummary Summary
	require.NoError(t, json.Unmarshal(data, &loadedSummary))
	assert.Equal(t, 2, loadedSummary.Total)
	assert.Equal(t, 1, loadedSummary.Failed)
}

func TestConsoleProgressLine(t *testing.T) {
	var buf bytes.Buffer
	w := NewConsoleWriter(&buf)

	w.ProgressLine(&Result{ScenarioID: "context-small-100", Passed: true, Latency: 1200 * time.Millisecond, TokensPerSecond: 42.5})
	w.ProgressLine(&Result{ScenarioID: "reasoning-trains", Passed: false, Reason: "substring not found"})

	out := buf.String()
	assert.Contains(t, out, "PASS")
	assert.Contains(t, out, "context-small-100")
	assert.Contains(t, out, "FAIL")
	assert.Contains(t, out, "substring not found")
}

func TestConsoleSummaryVerdict(t *testing.T) {
	var buf bytes.Buffer
	w := NewConsoleWriter(&buf)

	seq := []Result{
		{ScenarioID: "a", Category: "reasoning", Passed: true},
		{ScenarioID: "b", Category: "reasoning", Passed: false},
	}
	w.WriteSummary(Summarize("run-1", "u", "nemotron", seq))

	out := buf.String()
	assert.Contains(t, out, "reasoning")
	assert.Contains(t, out, "1/2 scenarios passed")
	assert.Contains(t, out, "run-1")
}
