package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/aretw0/tickertape/pkg/domain"
)

// incomeStatementKeys lists the income statement line items in statement order.
var incomeStatementKeys = []string{
	"TotalRevenue",
	"OperatingRevenue",
	"CostOfRevenue",
	"GrossProfit",
	"OperatingExpense",
	"SellingGeneralAndAdministration",
	"ResearchAndDevelopment",
	"OperatingIncome",
	"NetNonOperatingInterestIncomeExpense",
	"InterestIncomeNonOperating",
	"InterestExpenseNonOperating",
	"OtherIncomeExpense",
	"OtherNonOperatingIncomeExpenses",
	"PretaxIncome",
	"TaxProvision",
	"NetIncomeCommonStockholders",
	"NetIncome",
	"NetIncomeIncludingNoncontrollingInterests",
	"NetIncomeContinuousOperations",
	"DilutedNIAvailtoComStockholders",
	"BasicEPS",
	"DilutedEPS",
	"BasicAverageShares",
	"DilutedAverageShares",
	"TotalOperatingIncomeAsReported",
	"TotalExpenses",
	"NetIncomeFromContinuingAndDiscontinuedOperation",
	"NormalizedIncome",
	"InterestIncome",
	"InterestExpense",
	"NetInterestIncome",
	"EBIT",
	"EBITDA",
	"ReconciledCostOfRevenue",
	"ReconciledDepreciation",
	"NetIncomeFromContinuingOperationNetMinorityInterest",
	"TotalUnusualItemsExcludingGoodwill",
	"TotalUnusualItems",
	"NormalizedEBITDA",
	"TaxRateForCalcs",
	"TaxEffectOfUnusualItems",
}

// statementStart is the earliest period requested from the timeseries endpoint.
var statementStart = time.Date(2016, time.December, 31, 0, 0, 0, 0, time.UTC)

type timeseriesResponse struct {
	Timeseries struct {
		Result []json.RawMessage `json:"result"`
		Error  *apiError         `json:"error"`
	} `json:"timeseries"`
}

type seriesMeta struct {
	Meta struct {
		Type []string `json:"type"`
	} `json:"meta"`
}

type seriesPoint struct {
	AsOfDate      string `json:"asOfDate"`
	PeriodType    string `json:"periodType"`
	ReportedValue struct {
		Raw *float64 `json:"raw"`
	} `json:"reportedValue"`
}

// QuarterlyIncomeStatement returns the quarterly income statement, newest period first.
func (c *Client) QuarterlyIncomeStatement(ctx context.Context, ticker string) (*domain.Statement, error) {
	const op = "income statement"

	types := make([]string, len(incomeStatementKeys))
	for i, k := range incomeStatementKeys {
		types[i] = "quarterly" + k
	}
	q := url.Values{}
	q.Set("symbol", ticker)
	q.Set("type", strings.Join(types, ","))
	q.Set("period1", strconv.FormatInt(statementStart.Unix(), 10))
	q.Set("period2", strconv.FormatInt(c.now().Unix(), 10))
	endpoint := fmt.Sprintf("%s/ws/fundamentals-timeseries/v1/finance/timeseries/%s?%s",
		c.query2, url.PathEscape(ticker), q.Encode())

	body, err := c.get(ctx, c.httpClient(false), op, ticker, endpoint, "timeseries")
	if err != nil {
		return nil, err
	}

	st, err := parseStatement(body, "quarterly")
	if err != nil {
		return nil, &Error{Op: op, Ticker: ticker, Err: err}
	}
	if len(st.Rows) == 0 {
		return nil, &Error{Op: op, Ticker: ticker, Err: errors.New("no quarterly income statement data")}
	}
	return st, nil
}

// parseStatement builds a statement from a timeseries payload. Rows follow
// incomeStatementKeys; periods are the union of reported dates, newest first.
func parseStatement(body []byte, prefix string) (*domain.Statement, error) {
	var resp timeseriesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if resp.Timeseries.Error != nil {
		return nil, resp.Timeseries.Error.err()
	}

	values := make(map[string]map[string]float64)
	dates := make(map[string]time.Time)

	for _, raw := range resp.Timeseries.Result {
		var meta seriesMeta
		if err := json.Unmarshal(raw, &meta); err != nil {
			return nil, fmt.Errorf("decode series meta: %w", err)
		}
		if len(meta.Meta.Type) == 0 {
			continue
		}
		typ := meta.Meta.Type[0]

		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, fmt.Errorf("decode series %s: %w", typ, err)
		}
		data, ok := fields[typ]
		if !ok {
			continue
		}
		var points []*seriesPoint
		if err := json.Unmarshal(data, &points); err != nil {
			return nil, fmt.Errorf("decode series %s: %w", typ, err)
		}

		item := strings.TrimPrefix(typ, prefix)
		for _, p := range points {
			if p == nil || p.ReportedValue.Raw == nil {
				continue
			}
			d, err := time.Parse("2006-01-02", p.AsOfDate)
			if err != nil {
				return nil, fmt.Errorf("series %s: bad date %q", typ, p.AsOfDate)
			}
			if values[item] == nil {
				values[item] = make(map[string]float64)
			}
			values[item][p.AsOfDate] = *p.ReportedValue.Raw
			dates[p.AsOfDate] = d
		}
	}

	keys := make([]string, 0, len(dates))
	for k := range dates {
		keys = append(keys, k)
	}
	// ISO dates sort lexically
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	st := &domain.Statement{}
	for _, k := range keys {
		st.Periods = append(st.Periods, dates[k])
	}
	for _, item := range incomeStatementKeys {
		byDate, ok := values[item]
		if !ok {
			continue
		}
		row := domain.StatementRow{Item: lineItemName(item), Values: make([]*float64, len(keys))}
		for i, k := range keys {
			if v, ok := byDate[k]; ok {
				row.Values[i] = &v
			}
		}
		st.Rows = append(st.Rows, row)
	}
	return st, nil
}

// lineItemName spaces a camel-case key: "NormalizedEBITDA" -> "Normalized EBITDA".
func lineItemName(key string) string {
	runes := []rune(key)
	var b strings.Builder
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte(' ')
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}
