package scenario

import (
	"strings"

	"github.com/DealExMachina/nemotron-3-inference/tokens"
)

// fillerSentence is repeated to pad prompts to a target size. Plain prose
// keeps the token-per-word ratio close to the counter's estimate.
const fillerSentence = "The quiet harbor town kept its records in a long ledger of arrivals and departures. "

// Filler returns text of approximately targetTokens tokens, as measured by
// the given counter. The count is an estimate, not an exact tokenizer count
// for the deployed checkpoint.
func Filler(targetTokens int, counter tokens.Counter) string {
	if targetTokens <= 0 {
		return ""
	}

	perSentence := counter.CountTokens(fillerSentence)
	if perSentence <= 0 {
		perSentence = 1
	}
	repeats := targetTokens/perSentence + 1

	var b strings.Builder
	b.Grow(repeats * len(fillerSentence))
	for i := 0; i < repeats; i++ {
		b.WriteString(fillerSentence)
	}
	return strings.TrimSpace(b.String())
}

// InsertNeedle places the needle at the given relative position (0-100,
// percent of total character length) inside the haystack, set off by blank
// lines the way a stray fact would appear in a document.
func InsertNeedle(haystack, needle string, positionPercent int) string {
	if positionPercent < 0 {
		positionPercent = 0
	}
	if positionPercent > 100 {
		positionPercent = 100
	}
	pos := len(haystack) * positionPercent / 100

	var b strings.Builder
	b.Grow(len(haystack) + len(needle) + 4)
	b.WriteString(haystack[:pos])
	b.WriteString("\n\n")
	b.WriteString(needle)
	b.WriteString("\n\n")
	b.WriteString(haystack[pos:])
	return b.String()
}
