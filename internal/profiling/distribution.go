package profiling

import (
	"math"

	"bmireport/domain/core"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// DistributionAnalyzer handles distribution shape analysis
type DistributionAnalyzer struct{}

// NewDistributionAnalyzer creates a new distribution analyzer
func NewDistributionAnalyzer() *DistributionAnalyzer {
	return &DistributionAnalyzer{}
}

// AnalyzeDistribution summarizes a column. Empty input is rejected; a single
// value yields a profile with zero spread.
func (da *DistributionAnalyzer) AnalyzeDistribution(data []float64) (ColumnProfile, error) {
	profile := ColumnProfile{}
	if len(data) == 0 {
		return profile, core.ErrEmptyInput
	}

	mean, err := stats.Mean(data)
	if err != nil {
		return profile, err
	}

	stdDev, err := stats.StandardDeviationSample(data)
	if err != nil || math.IsNaN(stdDev) {
		stdDev = 0
	}

	min, err := stats.Min(data)
	if err != nil {
		return profile, err
	}

	max, err := stats.Max(data)
	if err != nil {
		return profile, err
	}

	median, err := stats.Median(data)
	if err != nil {
		return profile, err
	}

	// Percentile rejects ranks below the first element on tiny samples;
	// fall back to the range there.
	q25, err := stats.Percentile(data, 25)
	if err != nil {
		q25 = min
	}
	q75, err := stats.Percentile(data, 75)
	if err != nil {
		q75 = max
	}

	profile.Summary = SummaryStats{
		Count:  len(data),
		Mean:   mean,
		StdDev: stdDev,
		Min:    min,
		Max:    max,
		Median: median,
		Q25:    q25,
		Q75:    q75,
	}

	skewness := calculateSkewness(data, mean, stdDev)
	kurtosis := calculateKurtosis(data, mean, stdDev)
	isNormal, normalP := testNormality(len(data), skewness, kurtosis)

	profile.Distribution = DistributionStats{
		Skewness: skewness,
		Kurtosis: kurtosis,
		IsNormal: isNormal,
		NormalP:  normalP,
		Outliers: detectOutliers(data, q25, q75),
	}

	return profile, nil
}

// calculateSkewness computes sample skewness using the adjusted Fisher-Pearson coefficient
func calculateSkewness(data []float64, mean, stdDev float64) float64 {
	if len(data) < 3 || stdDev == 0 {
		return 0
	}

	n := float64(len(data))
	sumCubedDeviations := 0.0
	for _, x := range data {
		deviation := (x - mean) / stdDev
		sumCubedDeviations += deviation * deviation * deviation
	}

	return sumCubedDeviations * n / ((n - 1) * (n - 2))
}

// calculateKurtosis computes sample excess kurtosis
func calculateKurtosis(data []float64, mean, stdDev float64) float64 {
	if len(data) < 4 || stdDev == 0 {
		return 0
	}

	n := float64(len(data))
	sumFourthDeviations := 0.0
	for _, x := range data {
		deviation := (x - mean) / stdDev
		sumFourthDeviations += deviation * deviation * deviation * deviation
	}

	term := n * (n + 1) / ((n - 1) * (n - 2) * (n - 3)) * sumFourthDeviations
	return term - 3*(n-1)*(n-1)/((n-2)*(n-3))
}

// testNormality is the D'Agostino-Pearson style omnibus check on skewness and
// excess kurtosis, using their large-sample standard errors.
func testNormality(n int, skewness, kurtosis float64) (isNormal bool, pValue float64) {
	if n < 8 {
		return false, math.NaN()
	}

	nf := float64(n)
	seSkew := math.Sqrt(6 / nf)
	seKurt := math.Sqrt(24 / nf)
	zSkew := skewness / seSkew
	zKurt := kurtosis / seKurt

	chiDist := distuv.ChiSquared{K: 2}
	pValue = chiDist.Survival(zSkew*zSkew + zKurt*zKurt)

	return pValue > 0.05, pValue
}

// detectOutliers identifies outliers using IQR method
func detectOutliers(data []float64, q25, q75 float64) int {
	iqr := q75 - q25
	lowerBound := q25 - 1.5*iqr
	upperBound := q75 + 1.5*iqr

	outlierCount := 0
	for _, x := range data {
		if x < lowerBound || x > upperBound {
			outlierCount++
		}
	}

	return outlierCount
}
