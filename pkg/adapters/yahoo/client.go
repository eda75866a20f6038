// Package yahoo implements ports.QuoteProvider over the Yahoo Finance HTTP API.
package yahoo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aretw0/tickertape/pkg/domain"
	"github.com/aretw0/tickertape/pkg/ports"
	"github.com/buger/jsonparser"
)

const (
	DefaultQuery1URL = "https://query1.finance.yahoo.com"
	DefaultQuery2URL = "https://query2.finance.yahoo.com"
	DefaultCookieURL = "https://fc.yahoo.com"
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

	maxBodySize = 8 << 20
)

// Error is a failed Yahoo Finance call. It matches domain.ErrProvider under errors.Is.
type Error struct {
	Op     string
	Ticker string
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("yahoo %s %s: status %d: %v", e.Op, e.Ticker, e.Status, e.Err)
	}
	return fmt.Sprintf("yahoo %s %s: %v", e.Op, e.Ticker, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool { return target == domain.ErrProvider }

// Client talks to the Yahoo Finance endpoints. It keeps no state between calls:
// the session cookie and crumb required by quoteSummary are fetched per call.
type Client struct {
	query1    string
	query2    string
	cookieURL string
	userAgent string
	timeout   time.Duration
	transport http.RoundTripper
	now       func() time.Time
}

var _ ports.QuoteProvider = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithBaseURLs overrides the query1, query2 and cookie endpoints. Empty values keep the default.
func WithBaseURLs(query1, query2, cookie string) Option {
	return func(c *Client) {
		if query1 != "" {
			c.query1 = strings.TrimRight(query1, "/")
		}
		if query2 != "" {
			c.query2 = strings.TrimRight(query2, "/")
		}
		if cookie != "" {
			c.cookieURL = cookie
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithTimeout bounds each HTTP request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithTransport sets the HTTP transport (e.g., for tests).
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.transport = rt
	}
}

// New creates a client with the public Yahoo Finance endpoints.
func New(opts ...Option) *Client {
	c := &Client{
		query1:    DefaultQuery1URL,
		query2:    DefaultQuery2URL,
		cookieURL: DefaultCookieURL,
		userAgent: DefaultUserAgent,
		transport: http.DefaultTransport,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) httpClient(withJar bool) *http.Client {
	hc := &http.Client{Transport: c.transport, Timeout: c.timeout}
	if withJar {
		// cookiejar.New only fails on a bad PublicSuffixList
		jar, _ := cookiejar.New(nil)
		hc.Jar = jar
	}
	return hc
}

// get performs a GET and returns the body of a 2xx response.
// Non-2xx responses become an *Error carrying Yahoo's error description when present.
func (c *Client) get(ctx context.Context, hc *http.Client, op, ticker, url, errRoot string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &Error{Op: op, Ticker: ticker, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json,text/plain,*/*")

	resp, err := hc.Do(req)
	if err != nil {
		return nil, &Error{Op: op, Ticker: ticker, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &Error{Op: op, Ticker: ticker, Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Op: op, Ticker: ticker, Status: resp.StatusCode, Err: describe(body, errRoot)}
	}
	return body, nil
}

// describe extracts {root: {error: {description}}} from a Yahoo error payload.
// maxErrorText bounds, in bytes, how much of an unparseable body ends up in an error.
const maxErrorText = 200

func describe(body []byte, root string) error {
	if root != "" {
		if desc, err := jsonparser.GetString(body, root, "error", "description"); err == nil && desc != "" {
			return errors.New(desc)
		}
	}
	text := strings.TrimSpace(string(body))
	if len(text) > maxErrorText {
		cut := maxErrorText
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	if text == "" {
		text = "empty response"
	}
	return errors.New(text)
}

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (e *apiError) err() error {
	if e.Description != "" {
		return errors.New(e.Description)
	}
	return errors.New(e.Code)
}
