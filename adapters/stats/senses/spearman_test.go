package senses

import (
	"context"
	"errors"
	"math"
	"testing"

	"bmireport/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpearman_PerfectAgreement(t *testing.T) {
	rho, err := Spearman([]float64{1, 2, 3, 4, 5}, []float64{1, 2, 3, 4, 5})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, rho, 1e-12)
}

func TestSpearman_PerfectReversal(t *testing.T) {
	rho, err := Spearman([]float64{1, 2, 3, 4, 5}, []float64{5, 4, 3, 2, 1})
	require.NoError(t, err)
	assert.InDelta(t, -1.0, rho, 1e-12)
}

func TestSpearman_MonotonicNonLinear(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6}
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = math.Exp(v)
	}
	rho, err := Spearman(x, y)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, rho, 1e-12)
}

func TestSpearman_Ties(t *testing.T) {
	// hand-computed: ranks x = [1,2,3,4], ranks y = [1.5,1.5,3.5,3.5]
	rho, err := Spearman([]float64{10, 20, 30, 40}, []float64{0, 0, 1, 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.8944, rho, 1e-4)
}

func TestSpearman_Degenerate(t *testing.T) {
	rho, err := Spearman([]float64{3, 3, 3}, []float64{1, 1, 1})
	assert.True(t, errors.Is(err, core.ErrDegenerateInput))
	assert.True(t, math.IsNaN(rho), "constant input must not report 0")

	_, err = Spearman([]float64{1, 2, 3}, []float64{7, 7, 7})
	assert.True(t, errors.Is(err, core.ErrDegenerateInput))
}

func TestSpearman_InputErrors(t *testing.T) {
	_, err := Spearman(nil, nil)
	assert.True(t, errors.Is(err, core.ErrEmptyInput))

	_, err = Spearman([]float64{1, 2}, []float64{1})
	assert.True(t, errors.Is(err, core.ErrDimensionMismatch))

	_, err = Spearman([]float64{1, math.NaN(), 3}, []float64{1, 2, 3})
	assert.True(t, errors.Is(err, core.ErrNonFiniteValue))
}

func TestSpearman_OrderIndependent(t *testing.T) {
	x := []float64{18.2, 26.1, 31.5, 14.0, 22.3, 45.0}
	y := []float64{1, 3, 4, 0, 2, 5}
	a, err := Spearman(x, y)
	require.NoError(t, err)

	xs := []float64{45.0, 14.0, 22.3, 18.2, 31.5, 26.1}
	ys := []float64{5, 0, 2, 1, 4, 3}
	b, err := Spearman(xs, ys)
	require.NoError(t, err)
	assert.InDelta(t, a, b, 1e-12)
}

func TestRanks(t *testing.T) {
	assert.Equal(t, []float64{2, 4, 2, 2}, Ranks([]float64{1, 5, 1, 1}))
	assert.Equal(t, []float64{}, Ranks(nil))
}

func TestSpearmanSense_Analyze(t *testing.T) {
	sense := NewSpearmanSense()
	x := []float64{14.2, 17.5, 21.0, 23.4, 27.7, 29.0, 33.3, 38.1, 42.0, 50.5}
	y := []float64{0, 1, 2, 2, 3, 3, 4, 4, 5, 5}

	result, err := sense.Analyze(context.Background(), x, y, core.VarBMI, core.VarIndex)
	require.NoError(t, err)
	assert.Equal(t, "spearman", result.SenseName)
	assert.Greater(t, result.EffectSize, 0.95)
	assert.Equal(t, RoundTo(result.EffectSize, 4), result.Rounded)
	assert.Less(t, result.PValue, 0.001)
	assert.Equal(t, "very_strong", result.Signal)
	assert.Equal(t, 10, result.SampleSize)
	assert.Contains(t, result.Description, "BMI")
}

func TestSenseEngine_AnalyzeAll(t *testing.T) {
	engine := NewSenseEngine()
	assert.Equal(t, []string{"spearman", "pearson"}, engine.ListSenses())

	x := []float64{1, 2, 3, 4, 5}
	results, err := engine.AnalyzeAll(context.Background(), x, x, core.VarBMI, core.VarIndex)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.InDelta(t, 1.0, r.EffectSize, 1e-12)
		assert.Less(t, r.PValue, 1e-6)
	}

	_, err = engine.AnalyzeAll(context.Background(), x, x[:2], core.VarBMI, core.VarIndex)
	assert.True(t, errors.Is(err, core.ErrDimensionMismatch))

	constant := []float64{2, 2, 2, 2, 2}
	results, err = engine.AnalyzeAll(context.Background(), x, constant, core.VarBMI, core.VarIndex)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.True(t, errors.Is(r.Err, core.ErrDegenerateInput), r.SenseName)
		assert.True(t, math.IsNaN(r.EffectSize))
	}

	_, found, _ := engine.AnalyzeSingle(context.Background(), "kendall", x, x, core.VarBMI, core.VarIndex)
	assert.False(t, found)
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 0.9123, RoundTo(0.912345, 4))
	assert.Equal(t, -0.5, RoundTo(-0.49996, 4))
	assert.True(t, math.IsNaN(RoundTo(math.NaN(), 4)))
}
