package finance_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/tickertape/pkg/adapters/memory"
	"github.com/aretw0/tickertape/pkg/dispatch"
	"github.com/aretw0/tickertape/pkg/domain"
	"github.com/aretw0/tickertape/pkg/finance"
	"github.com/aretw0/tickertape/pkg/registry"
	"github.com/aretw0/tickertape/pkg/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func ptr(f float64) *float64 { return &f }

func newDispatcher(t *testing.T) *dispatch.Dispatcher {
	t.Helper()

	info := value.NewMap()
	info.Set("city", value.String("Armonk"))
	info.Set("zip", value.Null())

	provider := memory.NewProvider(map[string]memory.Fixture{
		"AAPL": {Closes: []domain.Close{
			{Date: day("2024-01-02"), Price: 100.0},
			{Date: day("2024-01-03"), Price: 101.5},
		}},
		"BOA": {Statement: &domain.Statement{
			Periods: []time.Time{day("2024-06-30"), day("2024-03-31")},
			Rows: []domain.StatementRow{
				{Item: "Normalized EBITDA", Values: []*float64{ptr(4172000000), nil}},
			},
		}},
		"IBM": {Info: info},
	})

	reg := registry.NewRegistry()
	require.NoError(t, finance.Register(reg, provider))
	reg.Freeze()
	return dispatch.New(reg)
}

func call(d *dispatch.Dispatcher, tool string, args map[string]any) domain.Result {
	return d.Handle(context.Background(), domain.InvocationRequest{ToolName: tool, Arguments: args})
}

func TestCatalog(t *testing.T) {
	reg := registry.NewRegistry()
	require.NoError(t, finance.Register(reg, memory.NewProvider(nil)))

	specs := reg.Tools()
	require.Len(t, specs, 3)

	assert.Equal(t, "get_last_price", specs[0].Name)
	assert.Equal(t, []string{"stock_name"}, specs[0].Required())
	assert.Contains(t, specs[0].Description, `Example payload: "AAPL"`)
	assert.Contains(t, specs[0].Description, `Example response: "AAPL: $150.00"`)

	assert.Equal(t, "income_statement", specs[1].Name)
	assert.Equal(t, []string{"stock_ticker"}, specs[1].Required())
	assert.Contains(t, specs[1].Description, `Example payload: "BOA"`)

	assert.Equal(t, "stock_info", specs[2].Name)
	assert.Equal(t, []string{"stock_ticker"}, specs[2].Required())
	assert.Contains(t, specs[2].Description, `Example payload: "IBM"`)
	assert.Contains(t, specs[2].Description, "Background information for IBM:")

	prompts := reg.Prompts()
	require.Len(t, prompts, 1)
	assert.Equal(t, "stock_summary", prompts[0].Name)
}

func TestGetLastPrice(t *testing.T) {
	d := newDispatcher(t)

	res := call(d, "get_last_price", map[string]any{"stock_name": "aapl"})
	require.True(t, res.OK(), res.Outcome())

	// the reply echoes the ticker as sent; the provider sees it normalized
	assert.True(t, strings.HasPrefix(res.Text, "Stock price over the last month for aapl: "))
	assert.Less(t, strings.Index(res.Text, "2024-01-02"), strings.Index(res.Text, "2024-01-03"))
	assert.Contains(t, res.Text, "101.50")
}

func TestIncomeStatement(t *testing.T) {
	d := newDispatcher(t)

	res := call(d, "income_statement", map[string]any{"stock_ticker": "BOA"})
	require.True(t, res.OK(), res.Outcome())

	assert.True(t, strings.HasPrefix(res.Text, "Background information for BOA "))
	assert.Contains(t, res.Text, "Normalized EBITDA")
	assert.Contains(t, res.Text, "4172000000")
	assert.Contains(t, res.Text, "N/A")
}

func TestStockInfo(t *testing.T) {
	d := newDispatcher(t)

	res := call(d, "stock_info", map[string]any{"stock_ticker": " ibm "})
	require.True(t, res.OK(), res.Outcome())
	assert.Equal(t, "Background information for ibm: {'city': 'Armonk', 'zip': None}", res.Text)
}

func TestUnknownTickerIsProviderError(t *testing.T) {
	d := newDispatcher(t)

	for _, tool := range []string{"income_statement", "stock_info"} {
		res := call(d, tool, map[string]any{"stock_ticker": "ZZZZINVALID"})
		require.False(t, res.OK())
		assert.Equal(t, domain.KindProvider, res.Failure.Kind, tool)
		assert.Empty(t, res.Text)
	}

	res := call(d, "get_last_price", map[string]any{"stock_name": "ZZZZINVALID"})
	require.False(t, res.OK())
	assert.Equal(t, domain.KindProvider, res.Failure.Kind)
	assert.Contains(t, res.Failure.Message, "ZZZZINVALID")
}

func TestMalformedTickerIsInvalidArguments(t *testing.T) {
	d := newDispatcher(t)

	res := call(d, "stock_info", map[string]any{"stock_ticker": "IBM; DROP"})
	require.False(t, res.OK())
	assert.Equal(t, domain.KindInvalidArguments, res.Failure.Kind)

	res = call(d, "stock_info", map[string]any{})
	require.False(t, res.OK())
	assert.Equal(t, domain.KindInvalidArguments, res.Failure.Kind)
}

func TestRepeatedInvocationsAreIdentical(t *testing.T) {
	d := newDispatcher(t)

	first := call(d, "stock_info", map[string]any{"stock_ticker": "IBM"})
	second := call(d, "stock_info", map[string]any{"stock_ticker": "IBM"})

	require.True(t, first.OK())
	require.True(t, second.OK())
	assert.Equal(t, first.Text, second.Text)
}
