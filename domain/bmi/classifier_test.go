package bmi

import (
	"errors"
	"math"
	"testing"

	"bmireport/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_Boundaries(t *testing.T) {
	cases := []struct {
		metric float64
		want   Category
	}{
		{0.1, ExtremelyWeak},
		{15.0, ExtremelyWeak},
		{15.0001, Weak},
		{20.0, Weak},
		{20.0001, Normal},
		{25.0, Normal},
		{25.0001, Overweight},
		{30.0, Overweight},
		{30.0001, Obesity},
		{40.0, Obesity},
		{40.0001, ExtremelyObesity},
		{1e6, ExtremelyObesity},
	}

	for _, tc := range cases {
		got, err := Classify(tc.metric)
		require.NoError(t, err, "metric=%v", tc.metric)
		assert.Equal(t, tc.want, got, "metric=%v", tc.metric)
	}
}

func TestClassify_Unclassifiable(t *testing.T) {
	for _, m := range []float64{0, -1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := Classify(m)
		assert.True(t, errors.Is(err, core.ErrUnclassifiableMetric), "metric=%v", m)
	}
}

// Every positive metric lands in exactly one bucket.
func TestThresholds_ExclusiveAndExhaustive(t *testing.T) {
	table := Thresholds()
	require.Len(t, table, NumCategories)
	assert.True(t, math.IsInf(table[len(table)-1].UpperBound, 1))
	for i := 1; i < len(table); i++ {
		assert.Greater(t, table[i].UpperBound, table[i-1].UpperBound)
	}

	for m := 0.05; m < 80; m += 0.05 {
		matches := 0
		for _, c := range Categories() {
			lower, upper, ok := Bounds(c)
			require.True(t, ok)
			if m > lower && m <= upper {
				matches++
			}
		}
		assert.Equal(t, 1, matches, "metric=%v", m)
	}
}

func TestClassifyAll(t *testing.T) {
	cats, errs := ClassifyAll([]float64{26.12, math.NaN(), 17.58})
	require.Len(t, cats, 3)
	assert.Equal(t, Overweight, cats[0])
	assert.NoError(t, errs[0])
	assert.Error(t, errs[1])
	assert.Equal(t, Weak, cats[2])
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "Normal", Normal.Label())
	assert.Equal(t, "Extremely Obesity", ExtremelyObesity.String())
	assert.Equal(t, "Category(9)", Category(9).Label())
	assert.False(t, Category(-1).Valid())
}

func TestBuildGrid(t *testing.T) {
	cells, err := BuildGrid(DefaultGridRange())
	require.NoError(t, err)
	assert.Len(t, cells, 60*110)

	first := cells[0]
	assert.Equal(t, 140, first.Height)
	assert.Equal(t, 50, first.Weight)
	assert.Equal(t, Overweight, first.Index) // 50 / 1.4^2 = 25.51
	last := cells[len(cells)-1]
	assert.Equal(t, 199, last.Height)
	assert.Equal(t, 159, last.Weight)

	for _, c := range cells {
		want, err := Classify(c.BMI)
		require.NoError(t, err)
		assert.Equal(t, want, c.Index)
	}
}

func TestBuildGrid_InvalidRange(t *testing.T) {
	for _, g := range []GridRange{
		{HeightMin: 0, HeightMax: 10, WeightMin: 1, WeightMax: 2},
		{HeightMin: 150, HeightMax: 140, WeightMin: 50, WeightMax: 60},
		{HeightMin: 150, HeightMax: 160, WeightMin: 60, WeightMax: 50},
	} {
		_, err := BuildGrid(g)
		assert.True(t, errors.Is(err, core.ErrInvalidGridRange), "%+v", g)
	}
}

func TestCategoryCounts(t *testing.T) {
	cells, err := BuildGrid(GridRange{HeightMin: 175, HeightMax: 175, WeightMin: 80, WeightMax: 81})
	require.NoError(t, err)
	counts := CategoryCounts(cells)
	assert.Equal(t, 2, counts[Overweight])
}
