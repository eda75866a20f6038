package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/aretw0/tickertape/pkg/domain"
)

var validRanges = map[string]bool{
	"1d": true, "5d": true, "1mo": true, "3mo": true, "6mo": true,
	"1y": true, "2y": true, "5y": true, "10y": true, "ytd": true, "max": true,
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol    string `json:"symbol"`
				Currency  string `json:"currency"`
				GMTOffset int    `json:"gmtoffset"`
				Timezone  string `json:"exchangeTimezoneName"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *apiError `json:"error"`
	} `json:"chart"`
}

// RecentCloses returns daily closes over period in chronological order.
// Sessions without a close (e.g., the current day before the open) are skipped.
func (c *Client) RecentCloses(ctx context.Context, ticker, period string) ([]domain.Close, error) {
	const op = "chart"
	if !validRanges[period] {
		return nil, fmt.Errorf("period %q: %w", period, domain.ErrInvalidArguments)
	}

	q := url.Values{}
	q.Set("range", period)
	q.Set("interval", "1d")
	q.Set("includePrePost", "false")
	q.Set("events", "div,splits")
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.query2, url.PathEscape(ticker), q.Encode())

	body, err := c.get(ctx, c.httpClient(false), op, ticker, endpoint, "chart")
	if err != nil {
		return nil, err
	}

	var resp chartResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &Error{Op: op, Ticker: ticker, Err: fmt.Errorf("decode: %w", err)}
	}
	if resp.Chart.Error != nil {
		return nil, &Error{Op: op, Ticker: ticker, Err: resp.Chart.Error.err()}
	}
	if len(resp.Chart.Result) == 0 {
		return nil, &Error{Op: op, Ticker: ticker, Err: errors.New("no data found, symbol may be delisted")}
	}

	res := resp.Chart.Result[0]
	if len(res.Indicators.Quote) == 0 {
		return nil, &Error{Op: op, Ticker: ticker, Err: errors.New("no price data")}
	}
	closes := res.Indicators.Quote[0].Close
	loc := time.FixedZone(res.Meta.Timezone, res.Meta.GMTOffset)

	out := make([]domain.Close, 0, len(res.Timestamp))
	for i, ts := range res.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		t := time.Unix(ts, 0).In(loc)
		out = append(out, domain.Close{
			Date:  time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc),
			Price: *closes[i],
		})
	}
	if len(out) == 0 {
		return nil, &Error{Op: op, Ticker: ticker, Err: errors.New("no price data")}
	}
	return out, nil
}
