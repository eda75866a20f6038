package format

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/tickertape/pkg/domain"
	"github.com/aretw0/tickertape/pkg/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func ptr(f float64) *float64 { return &f }

func TestPriceSeries_ChronologicalWithTicker(t *testing.T) {
	out := PriceSeries("AAPL", []domain.Close{
		{Date: day("2024-01-02"), Price: 100.0},
		{Date: day("2024-01-03"), Price: 101.5},
	})

	assert.True(t, strings.HasPrefix(out, "Stock price over the last month for AAPL: "))

	first := strings.Index(out, "2024-01-02")
	second := strings.Index(out, "2024-01-03")
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	assert.Less(t, first, second)

	p1 := strings.Index(out, "100.00")
	p2 := strings.Index(out, "101.50")
	require.NotEqual(t, -1, p1)
	require.NotEqual(t, -1, p2)
	assert.Less(t, p1, p2)
	assert.Less(t, first, p1)
}

func TestPriceSeries_Empty(t *testing.T) {
	out := PriceSeries("AAPL", nil)
	assert.Contains(t, out, "AAPL")
	assert.Contains(t, out, "Length: 0")
}

func TestIncomeStatement_MissingCellRendersMarker(t *testing.T) {
	st := &domain.Statement{
		Periods: []time.Time{day("2024-06-30"), day("2024-03-31")},
		Rows: []domain.StatementRow{
			{Item: "Total Revenue", Values: []*float64{ptr(85777000000), ptr(90753000000)}},
			{Item: "Tax Rate For Calcs", Values: []*float64{ptr(0.11464), nil}},
			{Item: "Normalized EBITDA", Values: []*float64{ptr(4172000000)}},
		},
	}

	out := IncomeStatement("BOA", st)
	assert.True(t, strings.HasPrefix(out, "Background information for BOA "))

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 6)
	assert.Contains(t, lines[0], "BOA")
	assert.Contains(t, lines[1], "2024-06-30")
	assert.Less(t, strings.Index(lines[1], "2024-06-30"), strings.Index(lines[1], "2024-03-31"))

	assert.True(t, strings.HasPrefix(lines[2], "Total Revenue"))
	assert.Contains(t, lines[2], "85777000000")

	taxRow := lines[3]
	assert.True(t, strings.HasPrefix(taxRow, "Tax Rate For Calcs"))
	assert.Less(t, strings.Index(taxRow, "0.11464"), strings.Index(taxRow, NotAvailable))

	// short rows are padded with the marker instead of being dropped
	assert.True(t, strings.HasPrefix(lines[4], "Normalized EBITDA"))
	assert.True(t, strings.HasSuffix(strings.TrimRight(lines[4], " "), NotAvailable))
	assert.Equal(t, "[3 rows x 2 columns]", lines[len(lines)-1])
}

func TestIncomeStatement_Empty(t *testing.T) {
	assert.Equal(t, "Background information for X \nEmpty table", IncomeStatement("X", nil))
}

func TestCompanyInfo_KeyOrderAndNull(t *testing.T) {
	info := value.NewMap()
	info.Set("city", value.String("Armonk"))
	info.Set("zip", value.Null())

	out := CompanyInfo("IBM", info)
	assert.Equal(t, "Background information for IBM: {'city': 'Armonk', 'zip': None}", out)
}

func TestMap_AllKinds(t *testing.T) {
	nested := value.NewMap()
	nested.Set("name", value.String("Arvind Krishna"))
	nested.Set("age", value.Number(61))

	m := value.NewMap()
	m.Set("fullTimeEmployees", value.Number(270300))
	m.Set("beta", value.Number(0.703))
	m.Set("tradeable", value.Bool(false))
	m.Set("companyOfficers", value.List(value.Object(nested)))
	m.Set("longName", value.String("International Business Machines Corporation"))
	m.Set("note", value.String("it's"))

	assert.Equal(t,
		`{'fullTimeEmployees': 270300, 'beta': 0.703, 'tradeable': False, 'companyOfficers': [{'name': 'Arvind Krishna', 'age': 61}], 'longName': 'International Business Machines Corporation', 'note': "it's"}`,
		Map(m),
	)
}

func TestMap_Nil(t *testing.T) {
	assert.Equal(t, "{}", Map(nil))
}

func TestPrice(t *testing.T) {
	assert.Equal(t, "185.64", Price(185.63999938964844))
	assert.Equal(t, "100.00", Price(100))
	assert.Equal(t, "0.12341", Price(0.12341))
	assert.Equal(t, "0.00", Price(0))
	assert.Equal(t, "12345678.90", Price(12345678.9))
	assert.Equal(t, "-3.25", Price(-3.25))
}

func TestPrice_KeepsSignificantDigitsNearOne(t *testing.T) {
	// FX quotes such as EURUSD=X trade around one unit
	assert.Equal(t, "1.08345", Price(1.0834500789642334))
	assert.Equal(t, "1.10", Price(1.1))
	assert.Equal(t, "nan", Price(math.NaN()))
}
