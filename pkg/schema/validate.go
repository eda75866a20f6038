package schema

import (
	"sort"

	"github.com/aretw0/tickertape/pkg/domain"
)

// Validate checks args against the declared parameters.
// Problems are reported in parameter order: missing required arguments, then
// type mismatches. A nil value for an optional parameter counts as absent.
// Arguments that no parameter declares are ignored; see Undeclared.
func Validate(params []domain.Parameter, args map[string]any) error {
	var errs []error

	for _, p := range params {
		value, exists := args[p.Name]
		if !exists || value == nil {
			if p.Required {
				errs = append(errs, &ValidationError{Key: p.Name, Reason: "required"})
			}
			continue
		}

		typ, err := ParseType(string(p.Type))
		if err != nil {
			errs = append(errs, &ValidationError{Key: p.Name, Reason: err.Error()})
			continue
		}
		if err := typ.Validate(value); err != nil {
			errs = append(errs, &ValidationError{Key: p.Name, Reason: err.Error(), Value: value})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

// Undeclared returns the names in args that no parameter declares, sorted.
func Undeclared(params []domain.Parameter, args map[string]any) []string {
	declared := make(map[string]struct{}, len(params))
	for _, p := range params {
		declared[p.Name] = struct{}{}
	}

	var unknown []string
	for name := range args {
		if _, ok := declared[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	return unknown
}
