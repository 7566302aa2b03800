// Package tokens provides token counting for prompt sizing.
//
// Scenario generators need to build prompts at approximate token-length
// bands (~100, ~1K, ~10K, ...). Counts here drive prompt construction, not
// billing: the authoritative numbers are the usage fields the endpoint
// returns. Two counters are provided:
//   - EncodingCounter backed by tiktoken (cl100k_base), used when the
//     encoding data is available
//   - HeuristicCounter using a words-per-token ratio, always available
//
// Counts from either implementation are documented estimates; Nemotron's
// own tokenizer is not shipped with the harness.
package tokens

import (
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// Counter estimates the token count of a piece of text.
type Counter interface {
	// CountTokens returns the estimated token count for the given text.
	CountTokens(text string) int
}

// defaultEncoding is a reasonable stand-in for modern instruction-tuned
// checkpoints when the exact tokenizer is unknown.
const defaultEncoding = "cl100k_base"

// EncodingCounter counts tokens with a real BPE encoding via tiktoken.
type EncodingCounter struct {
	enc *tiktoken.Tiktoken
}

// NewEncodingCounter returns a counter for the default encoding, or an
// error when the encoding data cannot be loaded (e.g. offline first run
// without the bundled cache).
func NewEncodingCounter() (*EncodingCounter, error) {
	enc, err := tiktoken.GetEncoding(defaultEncoding)
	if err != nil {
		return nil, err
	}
	return &EncodingCounter{enc: enc}, nil
}

// CountTokens returns the exact token count under the configured encoding.
func (c *EncodingCounter) CountTokens(text string) int {
	if text == "" {
		return 0
	}
	return len(c.enc.Encode(text, nil, nil))
}

// defaultRatio is a conservative tokens-per-word estimate for English text.
const defaultRatio = 1.35

// HeuristicCounter estimates token counts from whitespace word counts.
// Fast, dependency-free at runtime, and accurate enough for deciding how
// much filler text to generate.
type HeuristicCounter struct {
	ratio float64
}

// NewHeuristicCounter creates a heuristic counter with the default ratio.
func NewHeuristicCounter() *HeuristicCounter {
	return &HeuristicCounter{ratio: defaultRatio}
}

// NewHeuristicCounterWithRatio creates a counter with a custom ratio.
// Non-positive ratios fall back to the default.
func NewHeuristicCounterWithRatio(ratio float64) *HeuristicCounter {
	if ratio <= 0 {
		ratio = defaultRatio
	}
	return &HeuristicCounter{ratio: ratio}
}

// CountTokens estimates the token count for the given text.
// Returns 0 for empty text.
func (c *HeuristicCounter) CountTokens(text string) int {
	if text == "" {
		return 0
	}
	words := strings.Fields(text)
	return int(float64(len(words)) * c.ratio)
}

// Default returns the best available counter: the tiktoken-backed one when
// its encoding loads, the heuristic otherwise.
func Default() Counter {
	if enc, err := NewEncodingCounter(); err == nil {
		return enc
	}
	return NewHeuristicCounter()
}
