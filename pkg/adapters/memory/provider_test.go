package memory_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/tickertape/pkg/adapters/memory"
	"github.com/aretw0/tickertape/pkg/domain"
	"github.com/aretw0/tickertape/pkg/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureYAML = `
tickers:
  ibm:
    closes:
      - {date: 2024-01-02, price: 161.5}
      - {date: 2024-01-03, price: 160.1}
    income_statement:
      periods: [2024-06-30, 2024-03-31]
      rows:
        - {item: Total Revenue, values: [15770000000, 14460000000]}
        - {item: Tax Rate For Calcs, values: [0.11464, null]}
    info:
      zip: "10504"
      city: Armonk
      fullTimeEmployees: 270300
      tradeable: false
      state: ~
      officers:
        - name: Arvind Krishna
`

func TestParseFixtures(t *testing.T) {
	p, err := memory.ParseFixtures([]byte(fixtureYAML))
	require.NoError(t, err)
	ctx := context.Background()

	closes, err := p.RecentCloses(ctx, "IBM", "1mo")
	require.NoError(t, err)
	require.Len(t, closes, 2)
	assert.Equal(t, "2024-01-02", closes[0].Date.Format("2006-01-02"))
	assert.Equal(t, 160.1, closes[1].Price)

	st, err := p.QuarterlyIncomeStatement(ctx, "ibm")
	require.NoError(t, err)
	require.Len(t, st.Rows, 2)
	assert.Nil(t, st.Rows[1].Values[1])
	assert.Equal(t, 0.11464, *st.Rows[1].Values[0])

	info, err := p.CompanyInfo(ctx, "IBM")
	require.NoError(t, err)
	assert.Equal(t, []string{"zip", "city", "fullTimeEmployees", "tradeable", "state", "officers"}, info.Keys())

	zip, _ := info.Get("zip")
	assert.Equal(t, "10504", zip.Str())
	emp, _ := info.Get("fullTimeEmployees")
	assert.Equal(t, 270300.0, emp.Num())
	state, _ := info.Get("state")
	assert.True(t, state.IsNull())
}

func TestProvider_UnknownTicker(t *testing.T) {
	p := memory.NewProvider(nil)
	ctx := context.Background()

	_, err := p.RecentCloses(ctx, "ZZZZINVALID", "1mo")
	assert.ErrorIs(t, err, domain.ErrProvider)
	_, err = p.QuarterlyIncomeStatement(ctx, "ZZZZINVALID")
	assert.ErrorIs(t, err, domain.ErrProvider)
	_, err = p.CompanyInfo(ctx, "ZZZZINVALID")
	assert.ErrorIs(t, err, domain.ErrProvider)
}

func TestProvider_MissingSections(t *testing.T) {
	p := memory.NewProvider(map[string]memory.Fixture{"EMPTY": {}})
	ctx := context.Background()

	_, err := p.RecentCloses(ctx, "EMPTY", "1mo")
	assert.ErrorIs(t, err, domain.ErrProvider)
	_, err = p.QuarterlyIncomeStatement(ctx, "EMPTY")
	assert.ErrorIs(t, err, domain.ErrProvider)
	_, err = p.CompanyInfo(ctx, "EMPTY")
	assert.ErrorIs(t, err, domain.ErrProvider)
}

func TestProvider_ReturnsCopies(t *testing.T) {
	p, err := memory.ParseFixtures([]byte(fixtureYAML))
	require.NoError(t, err)
	ctx := context.Background()

	info, err := p.CompanyInfo(ctx, "IBM")
	require.NoError(t, err)
	info.Set("city", value.String("Paris"))
	info.Set("added", value.Bool(true))

	again, err := p.CompanyInfo(ctx, "IBM")
	require.NoError(t, err)
	city, ok := again.Get("city")
	require.True(t, ok)
	assert.Equal(t, "Armonk", city.Str())
	_, ok = again.Get("added")
	assert.False(t, ok)
}

func TestLoadProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixtureYAML), 0o644))

	p, err := memory.LoadProvider(path)
	require.NoError(t, err)
	_, err = p.CompanyInfo(context.Background(), "IBM")
	assert.NoError(t, err)

	_, err = memory.LoadProvider(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseFixtures_BadDate(t *testing.T) {
	_, err := memory.ParseFixtures([]byte("tickers:\n  X:\n    closes:\n      - {date: yesterday, price: 1}\n"))
	assert.Error(t, err)
}

func TestParseFixtures_RejectsCaseOnlyDuplicates(t *testing.T) {
	_, err := memory.ParseFixtures([]byte("tickers:\n  ibm:\n    info: {city: Armonk}\n  IBM:\n    info: {city: Paris}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "differ only in case")
}
