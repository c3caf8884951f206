package store

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// marshalNumbers encodes a map of named numbers as a JSON object.
// encoding/json rejects NaN and ±Inf, so non-finite values are stored as
// the strings "NaN", "+Inf" and "-Inf". Keys are sorted by encoding/json.
func marshalNumbers(m map[string]float64) (string, error) {
	obj := make(map[string]any, len(m))
	for k, v := range m {
		obj[k] = JSONNumber(v)
	}
	b, err := json.Marshal(obj)
	if err != nil {
		return "", fmt.Errorf("marshal numbers: %w", err)
	}
	return string(b), nil
}

// unmarshalNumbers is the inverse of marshalNumbers.
func unmarshalNumbers(s string) (map[string]float64, error) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return nil, fmt.Errorf("unmarshal numbers: %w", err)
	}

	out := make(map[string]float64, len(obj))
	for k, v := range obj {
		switch val := v.(type) {
		case float64:
			out[k] = val
		case string:
			f, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return nil, fmt.Errorf("unmarshal numbers: %q: %w", k, err)
			}
			out[k] = f
		default:
			return nil, fmt.Errorf("unmarshal numbers: %q has unsupported type %T", k, v)
		}
	}
	return out, nil
}

// JSONNumber returns v, or its string form "NaN", "+Inf" or "-Inf" when v is
// not finite, ready for encoding/json.
func JSONNumber(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return v
}

// Numbers is a map of named numbers that survives a JSON round trip with
// non-finite values.
type Numbers map[string]float64

// MarshalJSON implements json.Marshaler.
func (n Numbers) MarshalJSON() ([]byte, error) {
	s, err := marshalNumbers(n)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Numbers) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*n = nil
		return nil
	}
	m, err := unmarshalNumbers(string(b))
	if err != nil {
		return err
	}
	*n = m
	return nil
}
