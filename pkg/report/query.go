package report

import (
	"fmt"

	"github.com/itchyny/gojq"
)

// Query runs a jq expression over the JSON form of r and returns every
// value it emits.
func (r *Report) Query(expr string) ([]any, error) {
	q, err := gojq.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse jq query: %w", err)
	}
	code, err := gojq.Compile(q)
	if err != nil {
		return nil, fmt.Errorf("failed to compile jq query: %w", err)
	}

	input, err := r.toValue()
	if err != nil {
		return nil, err
	}
	if err := Validate(input); err != nil {
		return nil, fmt.Errorf("report does not match schema: %w", err)
	}

	var results []any
	iter := code.Run(input)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := v.(error); ok {
			return nil, fmt.Errorf("execution error: %w", err)
		}
		results = append(results, v)
	}
	return results, nil
}
