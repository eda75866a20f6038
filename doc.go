/*
Package tickertape is a Model Context Protocol server exposing stock-data tools to AI clients.

It registers three tools and one prompt template in a frozen registry and serves them over stdio
(the default) or SSE. Each tool call is validated against the tool's declared parameters, runs one
provider operation, and returns the result formatted as plain text.

# Tools

  - get_last_price(stock_name): daily closing prices over the last month.
  - income_statement(stock_ticker): the quarterly income statement.
  - stock_info(stock_ticker): the company information mapping.

The stock_summary(stock_data) prompt interpolates stock data into a summarisation prompt.

# Usage

	cfg := config.Default()
	app, err := tickertape.New(cfg, logging.New(slog.LevelInfo))
	if err != nil {
		log.Fatal(err)
	}
	defer app.Close()

	res := app.Dispatcher.Handle(ctx, domain.InvocationRequest{
		ToolName:  "stock_info",
		Arguments: map[string]any{"stock_ticker": "IBM"},
	})

Failures never escape as panics or protocol errors: they are returned as a domain.Result with
one of the failure kinds unknown_tool, invalid_arguments, provider_error or handler_error.
*/
package tickertape
