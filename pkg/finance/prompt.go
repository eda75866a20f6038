package finance

import (
	"fmt"

	"github.com/aretw0/tickertape/pkg/domain"
)

const stockSummaryTemplate = `You are a helpful financial assistant designed to summarise stock data.
Using the information below, summarise the pertinent points relevant to stock price movement
Data %s`

// StockSummary returns the summarisation prompt with stockData interpolated.
func StockSummary(stockData string) string {
	return fmt.Sprintf(stockSummaryTemplate, stockData)
}

// StockSummaryPrompt is the prompt spec exported to clients.
func StockSummaryPrompt() domain.PromptSpec {
	return domain.PromptSpec{
		Name:        "stock_summary",
		Description: "Prompt template for summarising stock price",
		Arguments: []domain.PromptArgument{
			{Name: "stock_data", Description: "Stock data to summarise, e.g. the output of a stock tool", Required: true},
		},
		Render: func(args map[string]string) (string, error) {
			data, ok := args["stock_data"]
			if !ok {
				return "", fmt.Errorf("argument %q: required: %w", "stock_data", domain.ErrInvalidArguments)
			}
			return StockSummary(data), nil
		},
	}
}
