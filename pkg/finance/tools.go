package finance

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/tickertape/pkg/domain"
	"github.com/aretw0/tickertape/pkg/format"
	"github.com/aretw0/tickertape/pkg/ports"
	"github.com/aretw0/tickertape/pkg/registry"
	"github.com/mitchellh/mapstructure"
)

// LastPricePeriod is the history window of get_last_price.
const LastPricePeriod = "1mo"

const lastPriceDescription = `This tool fetches the last price of a given stock using yfinance.
Args:
    stock (str): The stock symbol to fetch the last price for.
    Example payload: "AAPL"
Returns:
    str: "Ticker: Last Price"
    Example response: "AAPL: $150.00"`

const incomeStatementDescription = `This tool returns the quarterly income statement for a given stock ticker.
Args:
    stock_ticker: a alphanumeric stock ticker
    Example payload: "BOA"

Returns:
    str:quarterly income statement for the company
    Example Respnse "Income statement for BOA: 
    Tax Effect Of Unusual Items                           76923472.474289  ...          NaN
    Tax Rate For Calcs                                            0.11464  ...          NaN
    Normalized EBITDA                                        4172000000.0  ...          NaN
    `

const stockInfoDescription = `This tool returns information about a given stock given it's ticker.
Args:
    stock_ticker: a alphanumeric stock ticker
    Example payload: "IBM"

Returns:
    str:information about the company
    Example Respnse "Background information for IBM: {'address1': 'One New Orchard Road', 'city': 'Armonk', 'state': 'NY', 'zip': '10504', 'country': 'United States', 'phone': '914 499 1900', 'website': 
            'https://www.ibm.com', 'industry': 'Information Technology Services',... }" 
    `

type lastPriceArgs struct {
	StockName string `mapstructure:"stock_name"`
}

type tickerArgs struct {
	StockTicker string `mapstructure:"stock_ticker"`
}

// Tools binds the finance tool handlers to a provider.
type Tools struct {
	provider ports.QuoteProvider
}

// NewTools creates the tool handlers over p.
func NewTools(p ports.QuoteProvider) *Tools {
	return &Tools{provider: p}
}

// Catalog returns the tool specs paired with their handlers, in catalog order.
func (t *Tools) Catalog() []registry.Entry {
	return []registry.Entry{
		{
			Spec: domain.ToolSpec{
				Name:        "get_last_price",
				Description: lastPriceDescription,
				Parameters: []domain.Parameter{
					{Name: "stock_name", Type: domain.ParamString, Required: true, Description: "The stock symbol, e.g. AAPL"},
				},
			},
			Handler: t.LastPrice,
		},
		{
			Spec: domain.ToolSpec{
				Name:        "income_statement",
				Description: incomeStatementDescription,
				Parameters: []domain.Parameter{
					{Name: "stock_ticker", Type: domain.ParamString, Required: true, Description: "An alphanumeric stock ticker, e.g. BOA"},
				},
			},
			Handler: t.IncomeStatement,
		},
		{
			Spec: domain.ToolSpec{
				Name:        "stock_info",
				Description: stockInfoDescription,
				Parameters: []domain.Parameter{
					{Name: "stock_ticker", Type: domain.ParamString, Required: true, Description: "An alphanumeric stock ticker, e.g. IBM"},
				},
			},
			Handler: t.StockInfo,
		},
	}
}

// Register adds the finance tools and the stock_summary prompt to reg.
func Register(reg *registry.Registry, p ports.QuoteProvider) error {
	for _, e := range NewTools(p).Catalog() {
		if err := reg.Register(e.Spec, e.Handler); err != nil {
			return err
		}
	}
	return reg.RegisterPrompt(StockSummaryPrompt())
}

// LastPrice handles get_last_price: the last month of daily closes.
func (t *Tools) LastPrice(ctx context.Context, args map[string]any) (string, error) {
	var a lastPriceArgs
	if err := decode(args, &a); err != nil {
		return "", err
	}
	ticker, err := NormalizeTicker(a.StockName)
	if err != nil {
		return "", err
	}

	closes, err := t.provider.RecentCloses(ctx, ticker, LastPricePeriod)
	if err != nil {
		return "", fmt.Errorf("get last price: %w", err)
	}
	return format.PriceSeries(strings.TrimSpace(a.StockName), closes), nil
}

// IncomeStatement handles income_statement.
func (t *Tools) IncomeStatement(ctx context.Context, args map[string]any) (string, error) {
	var a tickerArgs
	if err := decode(args, &a); err != nil {
		return "", err
	}
	ticker, err := NormalizeTicker(a.StockTicker)
	if err != nil {
		return "", err
	}

	st, err := t.provider.QuarterlyIncomeStatement(ctx, ticker)
	if err != nil {
		return "", fmt.Errorf("income statement: %w", err)
	}
	return format.IncomeStatement(strings.TrimSpace(a.StockTicker), st), nil
}

// StockInfo handles stock_info.
func (t *Tools) StockInfo(ctx context.Context, args map[string]any) (string, error) {
	var a tickerArgs
	if err := decode(args, &a); err != nil {
		return "", err
	}
	ticker, err := NormalizeTicker(a.StockTicker)
	if err != nil {
		return "", err
	}

	info, err := t.provider.CompanyInfo(ctx, ticker)
	if err != nil {
		return "", fmt.Errorf("stock info: %w", err)
	}
	return format.CompanyInfo(strings.TrimSpace(a.StockTicker), info), nil
}

func decode(args map[string]any, out any) error {
	if err := mapstructure.Decode(args, out); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidArguments, err)
	}
	return nil
}
