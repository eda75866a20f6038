package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/aretw0/tickertape/pkg/value"
)

// infoModules are the quoteSummary modules merged into the company profile.
var infoModules = []string{"financialData", "quoteType", "defaultKeyStatistics", "assetProfile", "summaryDetail"}

// CompanyInfo returns the company profile: the info modules flattened into one
// insertion-ordered mapping. A key seen again in a later module is overwritten in place.
func (c *Client) CompanyInfo(ctx context.Context, ticker string) (*value.Map, error) {
	const op = "quote summary"

	hc := c.httpClient(true)
	crumb, err := c.crumb(ctx, hc, ticker)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("modules", strings.Join(infoModules, ","))
	q.Set("corsDomain", "finance.yahoo.com")
	q.Set("formatted", "false")
	q.Set("symbol", ticker)
	q.Set("crumb", crumb)
	endpoint := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?%s", c.query2, url.PathEscape(ticker), q.Encode())

	body, err := c.get(ctx, hc, op, ticker, endpoint, "quoteSummary")
	if err != nil {
		return nil, err
	}

	info, err := parseQuoteSummary(body)
	if err != nil {
		return nil, &Error{Op: op, Ticker: ticker, Err: err}
	}
	return info, nil
}

// crumb primes the session cookie and exchanges it for a crumb token.
func (c *Client) crumb(ctx context.Context, hc *http.Client, ticker string) (string, error) {
	const op = "crumb"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cookieURL, nil)
	if err != nil {
		return "", &Error{Op: op, Ticker: ticker, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	resp, err := hc.Do(req)
	if err != nil {
		return "", &Error{Op: op, Ticker: ticker, Err: err}
	}
	// the cookie endpoint answers 404 but still sets the session cookie
	resp.Body.Close()

	body, err := c.get(ctx, hc, op, ticker, c.query1+"/v1/test/getcrumb", "")
	if err != nil {
		return "", err
	}
	crumb := strings.TrimSpace(string(body))
	if crumb == "" || strings.ContainsAny(crumb, "<{ ") {
		return "", &Error{Op: op, Ticker: ticker, Err: errors.New("invalid crumb")}
	}
	return crumb, nil
}

func parseQuoteSummary(body []byte) (*value.Map, error) {
	doc, err := value.ParseJSON(body)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	summary, ok := field(doc, "quoteSummary")
	if !ok {
		return nil, errors.New("decode: missing quoteSummary")
	}
	if e, ok := field(summary, "error"); ok && !e.IsNull() {
		if desc, ok := field(e, "description"); ok && desc.Kind() == value.KindString {
			return nil, errors.New(desc.Str())
		}
		return nil, errors.New("quote summary error")
	}
	results, ok := field(summary, "result")
	if !ok || results.Kind() != value.KindList || len(results.Items()) == 0 {
		return nil, errors.New("quote not found")
	}
	first := results.Items()[0]
	if first.Kind() != value.KindMap {
		return nil, errors.New("decode: unexpected result shape")
	}

	info := value.NewMap()
	first.Map().Each(func(module string, mv value.Value) {
		if mv.Kind() != value.KindMap {
			return
		}
		mv.Map().Each(func(key string, v value.Value) {
			if key == "maxAge" {
				return
			}
			info.Set(key, unwrapRaw(v))
		})
	})
	if info.Len() == 0 {
		return nil, errors.New("quote not found")
	}
	return info, nil
}

// unwrapRaw collapses {"raw": x, "fmt": "..."} objects to x. Empty objects become null.
func unwrapRaw(v value.Value) value.Value {
	if v.Kind() != value.KindMap {
		return v
	}
	if v.Map().Len() == 0 {
		return value.Null()
	}
	if raw, ok := v.Map().Get("raw"); ok {
		return raw
	}
	return v
}

func field(v value.Value, key string) (value.Value, bool) {
	if v.Kind() != value.KindMap {
		return value.Value{}, false
	}
	return v.Map().Get(key)
}
