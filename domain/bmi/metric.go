package bmi

import (
	"math"

	"bmireport/domain/core"
)

// DeriveMetric computes weight / (height in meters)^2. Non-positive or non-finite
// inputs yield an invalid Measurement carrying NaN rather than a misleading value.
func DeriveMetric(heightCM, weightKG float64) Measurement {
	if !finitePositive(heightCM) || !finitePositive(weightKG) {
		return Measurement{
			Value: math.NaN(),
			Err:   core.NewInvalidMeasurementError(heightCM, weightKG),
		}
	}

	meters := heightCM / 100
	value := weightKG / (meters * meters)
	if !finitePositive(value) {
		// underflow/overflow on extreme inputs
		return Measurement{
			Value: math.NaN(),
			Err:   core.NewInvalidMeasurementError(heightCM, weightKG),
		}
	}

	return Measurement{Value: value, Valid: true}
}

// DeriveMetrics applies DeriveMetric to every record, preserving order.
func DeriveMetrics(records []Record) []Measurement {
	out := make([]Measurement, len(records))
	for i, r := range records {
		out[i] = DeriveMetric(r.Height, r.Weight)
	}
	return out
}

// Values extracts the raw metric column; invalid rows contribute NaN.
func Values(ms []Measurement) []float64 {
	out := make([]float64, len(ms))
	for i, m := range ms {
		out[i] = m.Value
	}
	return out
}
