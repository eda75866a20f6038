// Package memory provides an in-memory QuoteProvider backed by static fixtures.
package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/tickertape/pkg/domain"
	"github.com/aretw0/tickertape/pkg/ports"
	"github.com/aretw0/tickertape/pkg/value"
)

// Fixture is the canned data for one ticker. Nil sections mean "no data".
type Fixture struct {
	Closes    []domain.Close
	Statement *domain.Statement
	Info      *value.Map
}

// Provider implements ports.QuoteProvider from fixtures.
// It is read-only after construction and safe for concurrent use.
type Provider struct {
	fixtures map[string]Fixture
}

var _ ports.QuoteProvider = (*Provider)(nil)

// NewProvider creates a provider. Ticker keys are matched case-insensitively.
func NewProvider(fixtures map[string]Fixture) *Provider {
	p := &Provider{fixtures: make(map[string]Fixture, len(fixtures))}
	for ticker, f := range fixtures {
		p.fixtures[strings.ToUpper(ticker)] = f
	}
	return p
}

func (p *Provider) lookup(ticker string) (Fixture, error) {
	f, ok := p.fixtures[strings.ToUpper(ticker)]
	if !ok {
		return Fixture{}, fmt.Errorf("quote not found for symbol %s: %w", ticker, domain.ErrProvider)
	}
	return f, nil
}

// RecentCloses returns the fixture closes. The period is accepted as-is.
func (p *Provider) RecentCloses(ctx context.Context, ticker, period string) ([]domain.Close, error) {
	f, err := p.lookup(ticker)
	if err != nil {
		return nil, err
	}
	if len(f.Closes) == 0 {
		return nil, fmt.Errorf("no price data for %s: %w", ticker, domain.ErrProvider)
	}
	return append([]domain.Close(nil), f.Closes...), nil
}

// QuarterlyIncomeStatement returns a copy of the fixture statement.
func (p *Provider) QuarterlyIncomeStatement(ctx context.Context, ticker string) (*domain.Statement, error) {
	f, err := p.lookup(ticker)
	if err != nil {
		return nil, err
	}
	if f.Statement == nil || len(f.Statement.Rows) == 0 {
		return nil, fmt.Errorf("no quarterly income statement data for %s: %w", ticker, domain.ErrProvider)
	}
	st := &domain.Statement{
		Periods: append(f.Statement.Periods[:0:0], f.Statement.Periods...),
		Rows:    make([]domain.StatementRow, len(f.Statement.Rows)),
	}
	for i, row := range f.Statement.Rows {
		st.Rows[i] = domain.StatementRow{Item: row.Item, Values: append([]*float64(nil), row.Values...)}
	}
	return st, nil
}

// CompanyInfo returns a copy of the fixture profile.
func (p *Provider) CompanyInfo(ctx context.Context, ticker string) (*value.Map, error) {
	f, err := p.lookup(ticker)
	if err != nil {
		return nil, err
	}
	if f.Info == nil {
		return nil, fmt.Errorf("no company info for %s: %w", ticker, domain.ErrProvider)
	}
	return f.Info.Clone(), nil
}
