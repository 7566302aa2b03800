package scenario

import (
	"fmt"

	"github.com/DealExMachina/nemotron-3-inference/client"
	"github.com/DealExMachina/nemotron-3-inference/tokens"
)

// All returns every scenario across all categories in fixed execution order.
func All(counter tokens.Counter) []Scenario {
	var scenarios []Scenario
	for _, cat := range Categories() {
		scenarios = append(scenarios, ForCategory(cat, counter)...)
	}
	return scenarios
}

// ForCategory returns the scenarios for one category, in generation order.
func ForCategory(cat Category, counter tokens.Counter) []Scenario {
	switch cat {
	case CategoryContextLength:
		return ContextLength(counter)
	case CategoryReasoning:
		return Reasoning()
	case CategoryToolCalling:
		return ToolCalling()
	case CategoryStructuredOutput:
		return StructuredOutput()
	case CategoryLongContext:
		return LongContext(counter)
	default:
		return nil
	}
}

// ContextLength generates prompts at fixed token-length bands, each padded
// with filler and ending in a question with a known answer.
func ContextLength(counter tokens.Counter) []Scenario {
	bands := []struct {
		name      string
		tokens    int
		question  string
		answer    string
		maxTokens int
	}{
		{"small-100", 100, "What is 2+2? Answer with the number only.", "4", 20},
		{"medium-1k", 1000, "What is the capital of France?", "Paris", 30},
		{"large-5k", 5000, "What is the capital of Japan?", "Tokyo", 30},
		{"xlarge-10k", 10000, "What is 7*6? Answer with the number only.", "42", 20},
	}

	scenarios := make([]Scenario, 0, len(bands))
	for _, band := range bands {
		prompt := Filler(band.tokens, counter) + "\n\n" + band.question
		scenarios = append(scenarios, Scenario{
			ID:       "context-" + band.name,
			Name:     fmt.Sprintf("context ~%d tokens", band.tokens),
			Category: CategoryContextLength,
			Messages: userMessage(prompt),
			Assertions: []AssertionConfig{
				{Type: "content_includes", Params: map[string]interface{}{
					"patterns": []string{band.answer},
				}},
			},
			MaxTokens:   band.maxTokens,
			Temperature: 0.1,
		})
	}
	return scenarios
}

// Reasoning generates multi-step arithmetic and logic prompts whose
// closed-form answers are checked by substring containment.
func Reasoning() []Scenario {
	cases := []struct {
		id     string
		name   string
		prompt string
		answer string
	}{
		{
			"reasoning-trains", "train speed comparison",
			"If a train travels 120 km in 2 hours, and another train travels 180 km in 3 hours, " +
				"which train is faster, or are they equally fast? Show your reasoning step by step.",
			"60",
		},
		{
			"reasoning-transitive", "transitive height puzzle",
			"Alice is taller than Bob. Bob is taller than Charlie. Is Alice taller than Charlie? " +
				"Answer yes or no and explain your reasoning.",
			"yes",
		},
		{
			"reasoning-apples", "apple inventory",
			"A store has 100 apples. They sell 30 on Monday, 25 on Tuesday, and 20 on Wednesday. " +
				"How many apples are left? Show your work.",
			"25",
		},
	}

	scenarios := make([]Scenario, 0, len(cases)+1)
	for _, c := range cases {
		scenarios = append(scenarios, Scenario{
			ID:       c.id,
			Name:     c.name,
			Category: CategoryReasoning,
			Messages: userMessage(c.prompt),
			Assertions: []AssertionConfig{
				{Type: "content_includes", Params: map[string]interface{}{
					"patterns": []string{c.answer},
				}},
			},
			MaxTokens:   400,
			Temperature: 0,
		})
	}

	// Different prompt styles should all land on the answer: a bare
	// instruction and a sentence completion, alongside the questions above.
	scenarios = append(scenarios, Scenario{
		ID:       "prompt-instruction",
		Name:     "instruction prompt",
		Category: CategoryReasoning,
		Messages: userMessage("List the first three prime numbers, separated by commas."),
		Assertions: []AssertionConfig{
			{Type: "content_includes", Params: map[string]interface{}{
				"patterns": []string{"2", "3", "5"},
			}},
		},
		MaxTokens:   50,
		Temperature: 0,
	}, Scenario{
		ID:       "prompt-completion",
		Name:     "sentence completion",
		Category: CategoryReasoning,
		Messages: userMessage("Complete this sentence with a single word: The opposite of hot is"),
		Assertions: []AssertionConfig{
			{Type: "content_includes", Params: map[string]interface{}{
				"patterns": []string{"cold"},
			}},
		},
		MaxTokens:   20,
		Temperature: 0,
	})

	// Multi-turn conversation: earlier turns must inform the final answer.
	scenarios = append(scenarios, Scenario{
		ID:       "reasoning-conversation",
		Name:     "multi-turn recall",
		Category: CategoryReasoning,
		Messages: []client.Message{
			{Role: "user", Content: "My name is Alice and I like programming."},
			{Role: "assistant", Content: "Nice to meet you, Alice! What languages do you enjoy?"},
			{Role: "user", Content: "I prefer Python. What is my name?"},
		},
		Assertions: []AssertionConfig{
			{Type: "content_includes", Params: map[string]interface{}{
				"patterns": []string{"Alice"},
			}},
		},
		MaxTokens:   100,
		Temperature: 0,
	})

	return scenarios
}

// ToolCalling generates prompts that should trigger zero, one, or multiple
// tool invocations from the fixed tool library.
func ToolCalling() []Scenario {
	tools := toolLibrary()

	return []Scenario{
		{
			ID:         "tools-time",
			Name:       "time query",
			Category:   CategoryToolCalling,
			Messages:   userMessage("What time is it right now?"),
			Tools:      tools,
			ToolChoice: "auto",
			Assertions: []AssertionConfig{
				{Type: "tool_called", Params: map[string]interface{}{
					"tools": []string{"get_current_time"},
				}},
			},
			MaxTokens:   150,
			Temperature: 0,
		},
		{
			ID:         "tools-weather",
			Name:       "weather query",
			Category:   CategoryToolCalling,
			Messages:   userMessage("What is the weather like in Paris, France?"),
			Tools:      tools,
			ToolChoice: "auto",
			Assertions: []AssertionConfig{
				{Type: "tool_called", Params: map[string]interface{}{
					"tools":         []string{"get_weather"},
					"required_args": []string{"location"},
					"arg_contains":  map[string]string{"location": "paris"},
				}},
			},
			MaxTokens:   150,
			Temperature: 0,
		},
		{
			ID:         "tools-calculate",
			Name:       "calculation",
			Category:   CategoryToolCalling,
			Messages:   userMessage("Calculate 15 * 23 + 7"),
			Tools:      tools,
			ToolChoice: "auto",
			Assertions: []AssertionConfig{
				{Type: "tool_called", Params: map[string]interface{}{
					"tools":         []string{"calculate"},
					"required_args": []string{"expression"},
				}},
			},
			MaxTokens:   150,
			Temperature: 0,
		},
		{
			ID:         "tools-multi",
			Name:       "chained tools",
			Category:   CategoryToolCalling,
			Messages:   userMessage("What's the weather in Tokyo and calculate 100 / 4"),
			Tools:      tools,
			ToolChoice: "auto",
			Assertions: []AssertionConfig{
				{Type: "tool_called", Params: map[string]interface{}{
					"tools":       []string{"get_weather", "calculate"},
					"min_calls":   2,
					"require_all": true,
				}},
			},
			MaxTokens:   200,
			Temperature: 0,
		},
		{
			// A plain factual question offered tools it does not need: a
			// textual answer and a refusal to call are both acceptable, a
			// tool call is not.
			ID:         "tools-none",
			Name:       "no tool expected",
			Category:   CategoryToolCalling,
			Messages:   userMessage("What is the capital of Italy? Answer in one word."),
			Tools:      tools,
			ToolChoice: "auto",
			Assertions: []AssertionConfig{
				{Type: "no_tool_call", Params: map[string]interface{}{}},
				{Type: "content_includes", Params: map[string]interface{}{
					"patterns": []string{"Rome"},
				}},
			},
			MaxTokens:   50,
			Temperature: 0,
		},
	}
}

// StructuredOutput pairs each schema from the library with an extraction or
// synthesis prompt. The response is validated client-side against the same
// schema sent in response_format.
func StructuredOutput() []Scenario {
	return []Scenario{
		{
			ID:       "structured-transaction",
			Name:     "transaction extraction",
			Category: CategoryStructuredOutput,
			Messages: userMessage(
				`Extract the transaction details as JSON: "Bought 100 shares of AAPL at $150.50 per share ` +
					`on 2024-12-15 at 10:30 AM EST. Transaction ID: TXN-2024-001. Total: $15,050. Commission: $10."`),
			ResponseFormat: schemaFormat("Transaction", transactionSchema),
			Assertions: []AssertionConfig{
				{Type: "json_schema", Params: map[string]interface{}{
					"schema": transactionSchema,
				}},
				{Type: "field_values", Params: map[string]interface{}{
					"fields": map[string]interface{}{
						"transaction_id": "TXN-2024-001",
						"asset_symbol":   "AAPL",
						"quantity":       100.0,
						"price_per_unit": 150.50,
						"currency":       "USD",
					},
				}},
				{Type: "numeric_consistency", Params: map[string]interface{}{
					"total_field":   "total_amount",
					"factor_fields": []string{"quantity", "price_per_unit"},
					"tolerance":     0.01,
				}},
			},
			MaxTokens:   800,
			Temperature: 0,
		},
		{
			ID:       "structured-portfolio",
			Name:     "portfolio with nested holdings",
			Category: CategoryStructuredOutput,
			Messages: userMessage(
				"Generate a JSON portfolio for John Smith (Portfolio ID: PORT-001) with exactly two holdings:\n" +
					"1. AAPL, Apple Inc, equity, 100 shares, current price $180.00, cost basis $150.00, " +
					"market value $18000, unrealized gain $3000, 48.6% of portfolio, USD\n" +
					"2. MSFT, Microsoft Corp, equity, 50 shares, current price $380.00, cost basis $320.00, " +
					"market value $19000, unrealized gain $3000, 51.4% of portfolio, USD\n" +
					"Total value: $37000. Cash balance: $10000. Currency: USD. " +
					"Last updated: 2024-12-18T10:00:00Z"),
			ResponseFormat: schemaFormat("Portfolio", portfolioSchema),
			Assertions: []AssertionConfig{
				{Type: "json_schema", Params: map[string]interface{}{
					"schema": portfolioSchema,
				}},
				{Type: "field_values", Params: map[string]interface{}{
					"fields": map[string]interface{}{
						"portfolio_id": "PORT-001",
						"total_value":  37000.0,
					},
				}},
			},
			MaxTokens:   2000,
			Temperature: 0,
		},
		{
			ID:       "structured-risk",
			Name:     "risk analysis ranges",
			Category: CategoryStructuredOutput,
			Messages: userMessage(
				"Generate a risk analysis for portfolio PORT-001: 60% tech stocks (AAPL, MSFT, NVDA), " +
					"30% index funds (VOO, VTI), 10% cash. Estimate overall risk level, annual volatility " +
					"(around 18-22%), Sharpe ratio (around 1.2-1.5), max drawdown (around 25-35%), " +
					"beta (around 1.1-1.3), VaR 95%, and a diversification score (60-70/100). " +
					"Provide 3-5 recommendations to reduce risk."),
			ResponseFormat: schemaFormat("RiskAnalysis", riskAnalysisSchema),
			Assertions: []AssertionConfig{
				{Type: "json_schema", Params: map[string]interface{}{
					"schema": riskAnalysisSchema,
				}},
			},
			MaxTokens:   800,
			Temperature: 0,
		},
		{
			ID:       "structured-signal",
			Name:     "trade signal literals",
			Category: CategoryStructuredOutput,
			Messages: userMessage(
				"Generate a trading signal for TSLA based on: RSI 32 (oversold), MACD bullish crossover, " +
					"price above the 50-day moving average, support at $240, resistance at $280, " +
					"current price $252. Generate a BUY signal with confidence, targets, and stop loss."),
			ResponseFormat: schemaFormat("TradeSignal", tradeSignalSchema),
			Assertions: []AssertionConfig{
				{Type: "json_schema", Params: map[string]interface{}{
					"schema": tradeSignalSchema,
				}},
				{Type: "field_values", Params: map[string]interface{}{
					"fields": map[string]interface{}{
						"symbol": "TSLA",
						"action": "BUY",
					},
				}},
			},
			MaxTokens:   800,
			Temperature: 0,
		},
		{
			ID:       "structured-market",
			Name:     "market data feed",
			Category: CategoryStructuredOutput,
			Messages: userMessage(
				"Generate sample market data JSON for Bitcoin (symbol BTC-USD) on Coinbase: " +
					"last price $42150.50, bid $42148.25, ask $42152.75, 24h volume 125000000, " +
					"day high $43200, day low $41800, day open $42000, previous close $41950, " +
					"calculate the change percent, timestamp 2024-12-18T10:30:00Z"),
			ResponseFormat: schemaFormat("MarketData", marketDataSchema),
			Assertions: []AssertionConfig{
				{Type: "json_schema", Params: map[string]interface{}{
					"schema": marketDataSchema,
				}},
				{Type: "field_values", Params: map[string]interface{}{
					"fields": map[string]interface{}{
						"symbol":     "BTC-USD",
						"last_price": 42150.50,
					},
				}},
			},
			MaxTokens:   700,
			Temperature: 0,
		},
		{
			ID:       "structured-statement",
			Name:     "financial statement",
			Category: CategoryStructuredOutput,
			Messages: userMessage(
				"Generate financial statement JSON with exactly these values: " +
					`company_name "Apple Inc.", ticker "AAPL", period "Q4 2024", currency "USD", ` +
					"revenue 119600000000, operating_income 35200000000, net_income 30100000000, " +
					"earnings_per_share 1.89, total_assets 365000000000, total_liabilities 290000000000, " +
					"shareholders_equity 75000000000, operating_cash_flow 28500000000, free_cash_flow 25300000000"),
			ResponseFormat: schemaFormat("FinancialStatement", financialStatementSchema),
			Assertions: []AssertionConfig{
				{Type: "json_schema", Params: map[string]interface{}{
					"schema": financialStatementSchema,
				}},
				{Type: "field_values", Params: map[string]interface{}{
					"fields": map[string]interface{}{
						"ticker":             "AAPL",
						"earnings_per_share": 1.89,
					},
				}},
			},
			MaxTokens:   800,
			Temperature: 0,
		},
	}
}

// Default needle marker and retrieval question for long-context scenarios.
const (
	needleMarker   = "The secret code is: RAINBOW-UNICORN-42"
	needleValue    = "RAINBOW-UNICORN-42"
	needleQuestion = "Read the text above carefully. Somewhere in it a secret code is stated. What is the secret code?"
)

// longContextTokens is the default haystack size. Larger sizes (up to the
// deployment's 262K window) are reachable via WithHaystackTokens.
const longContextTokens = 50000

// LongContext generates needle-in-haystack scenarios at 10%, 50%, and 90%
// relative positions, plus a context-scaling probe. Position is a dimension
// of measurement only: pass/fail depends solely on literal containment of
// the marker in the response.
func LongContext(counter tokens.Counter) []Scenario {
	return longContextSized(counter, longContextTokens)
}

// WithHaystackTokens generates the long-context category at a custom
// haystack size for runs against larger context windows.
func WithHaystackTokens(counter tokens.Counter, haystackTokens int) []Scenario {
	if haystackTokens <= 0 {
		haystackTokens = longContextTokens
	}
	return longContextSized(counter, haystackTokens)
}

func longContextSized(counter tokens.Counter, haystackTokens int) []Scenario {
	haystack := Filler(haystackTokens, counter)

	var scenarios []Scenario
	for _, position := range []int{10, 50, 90} {
		document := InsertNeedle(haystack, needleMarker, position)
		scenarios = append(scenarios, Scenario{
			ID:       fmt.Sprintf("needle-%dpct", position),
			Name:     fmt.Sprintf("needle at %d%%", position),
			Category: CategoryLongContext,
			Messages: userMessage(document + "\n\n" + needleQuestion),
			Assertions: []AssertionConfig{
				{Type: "content_includes", Params: map[string]interface{}{
					"patterns": []string{needleValue},
				}},
			},
			MaxTokens:   100,
			Temperature: 0.1,
		})
	}

	// Scaling probe: no retrieval target, just a cheap question at the end
	// of a large context to confirm the window is usable at this size.
	scenarios = append(scenarios, Scenario{
		ID:       "scaling-probe",
		Name:     fmt.Sprintf("context scaling ~%d tokens", haystackTokens),
		Category: CategoryLongContext,
		Messages: userMessage(haystack + "\n\nIn one word: what kind of place does the text above describe?"),
		Assertions: []AssertionConfig{
			{Type: "content_includes", Params: map[string]interface{}{
				"patterns": []string{"harbor"},
			}},
		},
		MaxTokens:   50,
		Temperature: 0.1,
	})

	// Comprehension over the same document: a short summary and a specific
	// question whose answer appears throughout the text.
	scenarios = append(scenarios, Scenario{
		ID:       "longctx-summary",
		Name:     "long document summary",
		Category: CategoryLongContext,
		Messages: userMessage(haystack + "\n\nSummarize the text above in two or three sentences."),
		Assertions: []AssertionConfig{
			{Type: "content_includes", Params: map[string]interface{}{
				"patterns": []string{"harbor"},
			}},
		},
		MaxTokens:   200,
		Temperature: 0.1,
	}, Scenario{
		ID:       "longctx-qa",
		Name:     "long document question",
		Category: CategoryLongContext,
		Messages: userMessage(haystack + "\n\nAccording to the text, what does the town keep its records in? Answer in a few words."),
		Assertions: []AssertionConfig{
			{Type: "content_includes", Params: map[string]interface{}{
				"patterns": []string{"ledger"},
			}},
		},
		MaxTokens:   50,
		Temperature: 0.1,
	})

	return scenarios
}

func schemaFormat(name string, schema map[string]interface{}) *client.ResponseFormat {
	return &client.ResponseFormat{
		Type: "json_schema",
		JSONSchema: &client.JSONSchemaSpec{
			Name:   name,
			Schema: schema,
			Strict: true,
		},
	}
}
