package ports

import (
	"context"

	"github.com/aretw0/tickertape/pkg/domain"
	"github.com/aretw0/tickertape/pkg/value"
)

// QuoteProvider is the data provider adapter behind the finance tools.
// Implementations must wrap every failure with domain.ErrProvider and must not
// cache or retry.
type QuoteProvider interface {
	// RecentCloses returns daily closes over period (e.g. "1mo") in chronological order.
	RecentCloses(ctx context.Context, ticker, period string) ([]domain.Close, error)
	// QuarterlyIncomeStatement returns the quarterly income statement, newest period first.
	QuarterlyIncomeStatement(ctx context.Context, ticker string) (*domain.Statement, error)
	// CompanyInfo returns the company profile as an insertion-ordered mapping.
	CompanyInfo(ctx context.Context, ticker string) (*value.Map, error)
}
