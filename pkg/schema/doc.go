// Package schema validates tool arguments against declared parameters.
//
// It defines a small type system (string, int, float, bool and slices of those)
// and checks an argument map against an ordered parameter list:
//
//	params := []domain.Parameter{
//	    {Name: "stock_ticker", Type: domain.ParamString, Required: true},
//	    {Name: "limit", Type: domain.ParamInt},
//	}
//
//	if err := schema.Validate(params, map[string]any{"stock_ticker": "IBM"}); err != nil {
//	    // err is an *AggregateError listing every problem in parameter order
//	}
//
// Arguments usually come from JSON, so whole float64 values are accepted as ints.
package schema
