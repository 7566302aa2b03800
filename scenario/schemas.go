package scenario

import (
	"encoding/json"
	"fmt"
)

// Response schema library for structured-output scenarios. Schemas are kept
// as raw JSON Schema documents: the same document is sent to the server in
// response_format and used client-side to re-validate what comes back.

func mustSchema(doc string) map[string]interface{} {
	var schema map[string]interface{}
	if err := json.Unmarshal([]byte(doc), &schema); err != nil {
		panic(fmt.Sprintf("invalid schema literal: %v", err))
	}
	return schema
}

var currencyEnum = `{"type": "string", "enum": ["USD", "EUR", "GBP", "JPY", "CHF"]}`

// transactionSchema is a flat object with enum fields and a numeric
// consistency rule (total == quantity * price) checked separately.
var transactionSchema = mustSchema(`{
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"transaction_id":   {"type": "string", "minLength": 1},
		"timestamp":        {"type": "string"},
		"transaction_type": {"type": "string", "enum": ["buy", "sell", "transfer", "dividend", "interest"]},
		"asset_symbol":     {"type": "string", "minLength": 1},
		"quantity":         {"type": "number", "exclusiveMinimum": 0},
		"price_per_unit":   {"type": "number", "exclusiveMinimum": 0},
		"total_amount":     {"type": "number"},
		"currency":         ` + currencyEnum + `,
		"fees":             {"type": "number", "minimum": 0}
	},
	"required": ["transaction_id", "timestamp", "transaction_type", "asset_symbol",
		"quantity", "price_per_unit", "total_amount", "currency"]
}`)

// portfolioSchema nests an array of holding objects inside the portfolio.
var portfolioSchema = mustSchema(`{
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"portfolio_id":   {"type": "string", "minLength": 1},
		"account_holder": {"type": "string", "minLength": 1},
		"total_value":    {"type": "number", "exclusiveMinimum": 0},
		"currency":       ` + currencyEnum + `,
		"holdings": {
			"type": "array",
			"items": {
				"type": "object",
				"additionalProperties": false,
				"properties": {
					"asset_symbol":            {"type": "string", "minLength": 1, "maxLength": 10},
					"asset_name":              {"type": "string", "minLength": 1},
					"asset_class":             {"type": "string", "enum": ["equity", "fixed_income", "commodity", "forex", "derivative", "cryptocurrency"]},
					"quantity":                {"type": "number", "exclusiveMinimum": 0},
					"current_price":           {"type": "number", "exclusiveMinimum": 0},
					"market_value":            {"type": "number", "exclusiveMinimum": 0},
					"cost_basis":              {"type": "number", "minimum": 0},
					"unrealized_gain_loss":    {"type": "number"},
					"percentage_of_portfolio": {"type": "number", "minimum": 0, "maximum": 100},
					"currency":                ` + currencyEnum + `
				},
				"required": ["asset_symbol", "asset_name", "asset_class", "quantity",
					"current_price", "market_value", "cost_basis",
					"unrealized_gain_loss", "percentage_of_portfolio", "currency"]
			}
		},
		"cash_balance": {"type": "number", "minimum": 0},
		"last_updated": {"type": "string"}
	},
	"required": ["portfolio_id", "account_holder", "total_value", "currency",
		"holdings", "cash_balance", "last_updated"]
}`)

// riskAnalysisSchema constrains every metric to its plausible numeric range.
var riskAnalysisSchema = mustSchema(`{
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"portfolio_id":          {"type": "string", "minLength": 1},
		"overall_risk_level":    {"type": "string", "enum": ["low", "medium", "high", "very_high"]},
		"volatility":            {"type": "number", "minimum": 0, "maximum": 100},
		"sharpe_ratio":          {"type": "number", "minimum": -10, "maximum": 10},
		"max_drawdown":          {"type": "number", "minimum": 0, "maximum": 100},
		"beta":                  {"type": "number", "minimum": -5, "maximum": 5},
		"var_95":                {"type": "number"},
		"diversification_score": {"type": "number", "minimum": 0, "maximum": 100},
		"recommendations":       {"type": "array", "items": {"type": "string"}, "minItems": 1}
	},
	"required": ["portfolio_id", "overall_risk_level", "volatility", "sharpe_ratio",
		"max_drawdown", "beta", "var_95", "diversification_score", "recommendations"]
}`)

// tradeSignalSchema exercises literal (single-choice style) enum fields.
var tradeSignalSchema = mustSchema(`{
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"signal_id":    {"type": "string", "minLength": 1},
		"timestamp":    {"type": "string"},
		"symbol":       {"type": "string", "minLength": 1, "maxLength": 10},
		"action":       {"type": "string", "enum": ["BUY", "SELL", "HOLD"]},
		"confidence":   {"type": "number", "minimum": 0, "maximum": 100},
		"target_price": {"type": "number", "exclusiveMinimum": 0},
		"stop_loss":    {"type": "number", "exclusiveMinimum": 0},
		"take_profit":  {"type": "number", "exclusiveMinimum": 0},
		"timeframe":    {"type": "string", "enum": ["short_term", "medium_term", "long_term"]},
		"indicators":   {"type": "array", "items": {"type": "string"}, "minItems": 1},
		"rationale":    {"type": "string", "minLength": 10}
	},
	"required": ["signal_id", "timestamp", "symbol", "action", "confidence",
		"target_price", "stop_loss", "take_profit", "timeframe", "indicators", "rationale"]
}`)

var marketDataSchema = mustSchema(`{
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"symbol":         {"type": "string", "minLength": 1, "maxLength": 20},
		"exchange":       {"type": "string", "minLength": 1},
		"last_price":     {"type": "number", "exclusiveMinimum": 0},
		"bid_price":      {"type": ["number", "null"], "exclusiveMinimum": 0},
		"ask_price":      {"type": ["number", "null"], "exclusiveMinimum": 0},
		"volume":         {"type": "integer", "minimum": 0},
		"day_high":       {"type": "number", "exclusiveMinimum": 0},
		"day_low":        {"type": "number", "exclusiveMinimum": 0},
		"day_open":       {"type": "number", "exclusiveMinimum": 0},
		"previous_close": {"type": "number", "exclusiveMinimum": 0},
		"change_percent": {"type": "number"},
		"timestamp":      {"type": "string"}
	},
	"required": ["symbol", "exchange", "last_price", "volume", "day_high",
		"day_low", "day_open", "previous_close", "change_percent", "timestamp"]
}`)

var financialStatementSchema = mustSchema(`{
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"company_name":         {"type": "string", "minLength": 1},
		"ticker":               {"type": "string", "minLength": 1, "maxLength": 10},
		"period":               {"type": "string", "minLength": 1},
		"currency":             ` + currencyEnum + `,
		"revenue":              {"type": "number", "exclusiveMinimum": 0},
		"operating_income":     {"type": "number"},
		"net_income":           {"type": "number"},
		"earnings_per_share":   {"type": "number"},
		"total_assets":         {"type": "number", "exclusiveMinimum": 0},
		"total_liabilities":    {"type": "number", "minimum": 0},
		"shareholders_equity":  {"type": "number"},
		"operating_cash_flow":  {"type": "number"},
		"free_cash_flow":       {"type": "number"}
	},
	"required": ["company_name", "ticker", "period", "currency", "revenue",
		"operating_income", "net_income", "earnings_per_share", "total_assets",
		"total_liabilities", "shareholders_equity", "operating_cash_flow", "free_cash_flow"]
}`)
