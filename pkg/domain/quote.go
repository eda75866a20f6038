package domain

import "time"

// Close is one daily closing price.
type Close struct {
	Date  time.Time `json:"date" yaml:"date"`
	Price float64   `json:"price" yaml:"price"`
}

// Statement is a financial statement table: one row per line item, one column per period.
type Statement struct {
	// Periods are the column headers, newest first.
	Periods []time.Time
	Rows    []StatementRow
}

// StatementRow holds a line item's values aligned with Statement.Periods.
// A nil entry means the value is not available for that period.
type StatementRow struct {
	Item   string
	Values []*float64
}
