// Package anthro implements the anthropometric versioning and clinical
// comparison engine: section classification, field-level diffing, version
// chain resolution, objective-aware scoring and comparison report building.
//
// Everything in this package is pure, synchronous computation over records
// that the handlers have already fetched. Nothing here touches the database
// or the network, and identical inputs always produce identical outputs.
package anthro

import (
	"math"
	"strconv"
)

// valuePresent reports whether a raw measurement value counts as filled in.
// Absent keys, nils and empty strings all mean "not measured".
func valuePresent(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	default:
		return true
	}
}

// numericValue extracts a finite float from a raw measurement value. Clients
// send measurements as JSON numbers or as strings, and non-numeric strings
// are treated as absent rather than an error.
func numericValue(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case string:
		parsed, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// valueString renders a raw value for change detection. Two values are
// "the same" when their string representations match.
func valueString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// round2 rounds to 2 decimal places, halves away from zero.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func round2Ptr(f float64) *float64 {
	r := round2(f)
	return &r
}
