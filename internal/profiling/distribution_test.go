package profiling

import (
	"encoding/json"
	"errors"
	"testing"

	"bmireport/domain/bmi"
	"bmireport/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeDistribution_Summary(t *testing.T) {
	analyzer := NewDistributionAnalyzer()
	profile, err := analyzer.AnalyzeDistribution([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 100})
	require.NoError(t, err)

	s := profile.Summary
	assert.Equal(t, 10, s.Count)
	assert.InDelta(t, 14.5, s.Mean, 1e-9)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 100.0, s.Max)
	assert.InDelta(t, 5.5, s.Median, 1e-9)
	assert.Greater(t, profile.Distribution.Skewness, 0.0)
	assert.Equal(t, 1, profile.Distribution.Outliers)
}

func TestAnalyzeDistribution_EdgeCases(t *testing.T) {
	analyzer := NewDistributionAnalyzer()

	_, err := analyzer.AnalyzeDistribution(nil)
	assert.True(t, errors.Is(err, core.ErrEmptyInput))

	profile, err := analyzer.AnalyzeDistribution([]float64{22.5})
	require.NoError(t, err)
	assert.Equal(t, 22.5, profile.Summary.Q25)
	assert.Equal(t, 0.0, profile.Summary.StdDev)
	assert.False(t, profile.Distribution.IsNormal)
}

func TestProfileByCategory(t *testing.T) {
	rows := bmi.Annotate([]bmi.Record{
		{Height: 175, Weight: 80, Index: 3},
		{Height: 180, Weight: 90, Index: 3},
		{Height: 160, Weight: 45, Index: 2},
		{Height: 0, Weight: 45, Index: 2},
	})

	profiler := NewCategoryProfiler()

	computed, err := profiler.ProfileByCategory(rows, false)
	require.NoError(t, err)
	require.Len(t, computed, 2)
	assert.Equal(t, int(bmi.Weak), computed[0].Category)
	assert.Equal(t, 1, computed[0].Profile.Summary.Count)
	assert.Equal(t, "Overweight", computed[1].Label)
	assert.Equal(t, 2, computed[1].Profile.Summary.Count)

	stated, err := profiler.ProfileByCategory(rows, true)
	require.NoError(t, err)
	require.Len(t, stated, 2)
	assert.Equal(t, int(bmi.Normal), stated[0].Category)
}

func TestDistributionStats_MarshalJSON(t *testing.T) {
	profile, err := NewDistributionAnalyzer().AnalyzeDistribution([]float64{18, 19, 20})
	require.NoError(t, err)

	out, err := json.Marshal(profile)
	require.NoError(t, err, "small samples carry a NaN p-value")
	assert.Contains(t, string(out), `"normal_p":null`)
}
