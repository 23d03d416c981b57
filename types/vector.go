package types

import (
	"encoding/json"
	"fmt"
)

// Vector is a numeric vector as exchanged with the Data API, e.g. the
// query vector echoed back in a find response's status.sortVector.
type Vector []float32

// NewVector creates a Vector from a slice of float32 values.
func NewVector(values []float32) Vector {
	v := make(Vector, len(values))
	copy(v, values)
	return v
}

// Float64s returns the vector components widened to float64.
func (v Vector) Float64s() []float64 {
	out := make([]float64, len(v))
	for i, f := range v {
		out[i] = float64(f)
	}
	return out
}

// VectorFromAny converts a decoded JSON value into a Vector. Responses
// are decoded with json.Number, so components may arrive as json.Number
// or, for pre-decoded values, as float64/int.
func VectorFromAny(value any) (Vector, error) {
	if value == nil {
		return nil, nil
	}
	items, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("vector value is not an array: %T", value)
	}
	v := make(Vector, 0, len(items))
	for _, item := range items {
		switch n := item.(type) {
		case json.Number:
			f, err := n.Float64()
			if err != nil {
				return nil, fmt.Errorf("vector component %q: %w", n.String(), err)
			}
			v = append(v, float32(f))
		case float64:
			v = append(v, float32(n))
		case float32:
			v = append(v, n)
		case int:
			v = append(v, float32(n))
		case int64:
			v = append(v, float32(n))
		default:
			return nil, fmt.Errorf("vector component is not numeric: %T", item)
		}
	}
	return v, nil
}
