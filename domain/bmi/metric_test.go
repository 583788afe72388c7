package bmi

import (
	"errors"
	"math"
	"testing"

	"bmireport/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveMetric_PositiveInputs(t *testing.T) {
	for h := 50.0; h <= 250; h += 7.5 {
		for w := 10.0; w <= 300; w += 13 {
			m := DeriveMetric(h, w)
			require.True(t, m.Valid, "height=%v weight=%v", h, w)
			assert.Greater(t, m.Value, 0.0)
			assert.False(t, math.IsInf(m.Value, 0) || math.IsNaN(m.Value))
			assert.InDelta(t, w/((h/100)*(h/100)), m.Value, 1e-12)
		}
	}
}

func TestDeriveMetric_InvalidInputs(t *testing.T) {
	cases := []struct {
		name   string
		height float64
		weight float64
	}{
		{"zero height", 0, 80},
		{"negative height", -175, 80},
		{"zero weight", 175, 0},
		{"NaN height", math.NaN(), 80},
		{"infinite weight", 175, math.Inf(1)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := DeriveMetric(tc.height, tc.weight)
			assert.False(t, m.Valid)
			assert.True(t, math.IsNaN(m.Value))
			assert.True(t, errors.Is(m.Err, core.ErrInvalidMeasurement))
			assert.NotEmpty(t, m.Reason())
		})
	}
}

func TestDeriveMetrics_PreservesOrder(t *testing.T) {
	records := []Record{
		{Height: 175, Weight: 80},
		{Height: 0, Weight: 80},
		{Height: 160, Weight: 45},
	}

	ms := DeriveMetrics(records)
	require.Len(t, ms, 3)
	assert.InDelta(t, 26.1224, ms[0].Value, 1e-4)
	assert.False(t, ms[1].Valid)
	assert.InDelta(t, 17.578, ms[2].Value, 1e-3)

	values := Values(ms)
	assert.True(t, math.IsNaN(values[1]))
}

func TestDeriveMetrics_Idempotent(t *testing.T) {
	records := []Record{{Height: 175, Weight: 80}, {Height: 150, Weight: 100}}
	first := DeriveMetrics(records)
	second := DeriveMetrics(records)
	assert.Equal(t, first, second)

	c1, _ := ClassifyAll(Values(first))
	c2, _ := ClassifyAll(Values(second))
	assert.Equal(t, c1, c2)
}
