package normalizer

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// path is a sequence of keys walked through nested JSON objects.
type path []string

// lookup walks p through src. It reports false when any step is missing,
// an intermediate value is not an object, or the final value is null.
func lookup(src map[string]any, p path) (any, bool) {
	var cur any = src

	for _, key := range p {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}

		cur, ok = obj[key]
		if !ok {
			return nil, false
		}
	}

	if cur == nil {
		return nil, false
	}

	return cur, true
}

// firstValue returns the value of the first path that resolves to a non-null value.
func firstValue(src map[string]any, paths ...path) any {
	for _, p := range paths {
		if v, ok := lookup(src, p); ok {
			return v
		}
	}

	return nil
}

// firstString returns the first non-blank string found along paths.
// Blank strings count as missing so the next path gets a chance.
// Single-key fields use stringField instead.
func firstString(src map[string]any, paths ...path) *string {
	for _, p := range paths {
		v, ok := lookup(src, p)
		if !ok {
			continue
		}

		if s := toString(v); s != nil {
			return s
		}
	}

	return nil
}

// stringField returns the string at p as-is, blank values included.
func stringField(src map[string]any, p path) *string {
	v, ok := lookup(src, p)
	if !ok {
		return nil
	}

	s, ok := v.(string)
	if !ok {
		return nil
	}

	return &s
}

func toString(v any) *string {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return nil
	}

	return &s
}

// maxIntFloat is the smallest float64 above every int value.
const maxIntFloat = float64(math.MaxInt)

// toInt coerces JSON numbers and numeric strings to a non-negative int.
// Fractional numbers are truncated toward zero; fractional strings are rejected.
// Values outside the int range yield nil.
func toInt(v any) *int {
	var n int

	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return intInRange(i)
		}

		f, err := val.Float64()
		if err != nil {
			return nil
		}

		return truncateFloat(f)
	case float64:
		return truncateFloat(val)
	case int:
		n = val
	case int64:
		return intInRange(val)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return nil
		}

		n = i
	default:
		return nil
	}

	if n < 0 {
		return nil
	}

	return &n
}

func intInRange(i int64) *int {
	if i < 0 || i > math.MaxInt {
		return nil
	}

	n := int(i)

	return &n
}

func truncateFloat(f float64) *int {
	if !isFinite(f) || f < 0 || f >= maxIntFloat {
		return nil
	}

	n := int(f)

	return &n
}

// toFloat coerces JSON numbers and numeric strings to a non-negative finite float.
func toFloat(v any) *float64 {
	var f float64

	switch val := v.(type) {
	case json.Number:
		parsed, err := val.Float64()
		if err != nil {
			return nil
		}

		f = parsed
	case float64:
		f = val
	case int:
		f = float64(val)
	case int64:
		f = float64(val)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return nil
		}

		f = parsed
	default:
		return nil
	}

	if !isFinite(f) || f < 0 {
		return nil
	}

	return &f
}

// toBool maps JSON booleans and boolean-looking strings to a tri-state value.
func toBool(v any) *bool {
	switch val := v.(type) {
	case bool:
		return &val
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(val))
		if err != nil {
			return nil
		}

		return &b
	}

	return nil
}

// toList returns v when it is a JSON array and an empty list otherwise.
func toList(v any) []any {
	if list, ok := v.([]any); ok {
		return list
	}

	return []any{}
}

func toMap(v any) map[string]any {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}

	return m
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
