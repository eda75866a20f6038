// Package finance defines the stock-data tool catalog: get_last_price,
// income_statement and stock_info, plus the stock_summary prompt.
//
// Each tool makes exactly one QuoteProvider call and formats the result with
// the format package. Register binds the whole catalog to a registry.
package finance
