package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/aretw0/tickertape/pkg/domain"
	"github.com/aretw0/tickertape/pkg/value"
)

// NotAvailable marks a statement cell with no reported value.
const NotAvailable = "N/A"

const dateLayout = "2006-01-02"

// PriceSeries renders closing prices, one "date price" line per close, in the order given.
func PriceSeries(ticker string, closes []domain.Close) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Stock price over the last month for %s: \n", ticker)

	tw := tabwriter.NewWriter(&b, 0, 0, 4, ' ', 0)
	fmt.Fprintln(tw, "Date\tClose")
	for _, c := range closes {
		fmt.Fprintf(tw, "%s\t%s\n", c.Date.Format(dateLayout), Price(c.Price))
	}
	tw.Flush()
	fmt.Fprintf(&b, "Name: Close, Length: %d", len(closes))
	return b.String()
}

// IncomeStatement renders a statement table: a header of period dates and one row per line item.
func IncomeStatement(ticker string, st *domain.Statement) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Background information for %s \n", ticker)

	if st == nil || len(st.Rows) == 0 {
		b.WriteString("Empty table")
		return b.String()
	}

	grid := make([][]string, 0, len(st.Rows)+1)
	header := make([]string, 0, len(st.Periods)+1)
	header = append(header, "")
	for _, p := range st.Periods {
		header = append(header, p.Format(dateLayout))
	}
	grid = append(grid, header)
	for _, row := range st.Rows {
		cells := make([]string, 0, len(st.Periods)+1)
		cells = append(cells, row.Item)
		for i := range st.Periods {
			var cell *float64
			if i < len(row.Values) {
				cell = row.Values[i]
			}
			cells = append(cells, amount(cell))
		}
		grid = append(grid, cells)
	}

	widths := make([]int, len(header))
	for _, cells := range grid {
		for i, c := range cells {
			widths[i] = max(widths[i], len(c))
		}
	}
	// line items left-aligned, values right-aligned
	for _, cells := range grid {
		fmt.Fprintf(&b, "%-*s", widths[0], cells[0])
		for i := 1; i < len(cells); i++ {
			fmt.Fprintf(&b, "  %*s", widths[i], cells[i])
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "[%d rows x %d columns]", len(st.Rows), len(st.Periods))
	return b.String()
}

// CompanyInfo renders the profile mapping in insertion order.
func CompanyInfo(ticker string, info *value.Map) string {
	return fmt.Sprintf("Background information for %s: %s", ticker, Map(info))
}

// priceDigits is the number of significant digits kept in a quote.
const priceDigits = 6

// Price formats a quote to six significant digits, with at least two decimals
// and trailing zeros beyond the second dropped.
func Price(p float64) string {
	switch {
	case p == 0:
		return "0.00"
	case math.IsNaN(p), math.IsInf(p, 0):
		return Number(p)
	}

	intDigits := int(math.Floor(math.Log10(math.Abs(p)))) + 1
	decimals := max(priceDigits-intDigits, 2)
	s := strconv.FormatFloat(p, 'f', decimals, 64)

	dot := strings.IndexByte(s, '.')
	for len(s)-dot-1 > 2 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	return s
}

func amount(v *float64) string {
	if v == nil || math.IsNaN(*v) {
		return NotAvailable
	}
	return Number(*v)
}

// Number formats a number with the shortest exact representation, without exponent.
func Number(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Map renders an ordered mapping as a literal: quoted strings, bare numbers,
// True/False, None, [a, b] lists and nested {'k': v} maps.
func Map(m *value.Map) string {
	var b strings.Builder
	writeMap(&b, m)
	return b.String()
}

func writeValue(b *strings.Builder, v value.Value) {
	switch v.Kind() {
	case value.KindNull:
		b.WriteString("None")
	case value.KindString:
		b.WriteString(quote(v.Str()))
	case value.KindNumber:
		b.WriteString(Number(v.Num()))
	case value.KindBool:
		if v.Bool() {
			b.WriteString("True")
		} else {
			b.WriteString("False")
		}
	case value.KindList:
		b.WriteByte('[')
		for i, item := range v.Items() {
			if i > 0 {
				b.WriteString(", ")
			}
			writeValue(b, item)
		}
		b.WriteByte(']')
	case value.KindMap:
		writeMap(b, v.Map())
	default:
		fmt.Fprintf(b, "%v", v)
	}
}

func writeMap(b *strings.Builder, m *value.Map) {
	b.WriteByte('{')
	first := true
	m.Each(func(key string, v value.Value) {
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(quote(key))
		b.WriteString(": ")
		writeValue(b, v)
	})
	b.WriteByte('}')
}

// quote wraps s in single quotes, switching to double quotes when s contains a single quote.
func quote(s string) string {
	s = escaper.Replace(s)
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		return `"` + s + `"`
	}
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}

var escaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`, "\t", `\t`)
