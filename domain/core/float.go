package core

import "math"

// NullableFloat returns nil for NaN and ±Inf so the value encodes as JSON null.
func NullableFloat(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
