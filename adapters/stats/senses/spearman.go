package senses

import (
	"context"
	"fmt"
	"math"
	"sort"

	"bmireport/domain/core"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// SpearmanSense measures monotonic association using rank correlation
type SpearmanSense struct{}

// NewSpearmanSense creates a new Spearman correlation sense
func NewSpearmanSense() *SpearmanSense {
	return &SpearmanSense{}
}

// Name returns the sense name
func (s *SpearmanSense) Name() string {
	return "spearman"
}

// Description returns a human-readable description
func (s *SpearmanSense) Description() string {
	return "Monotonic association between a continuous and an ordinal variable"
}

// Analyze computes Spearman's rank correlation coefficient
func (s *SpearmanSense) Analyze(ctx context.Context, x, y []float64, varX, varY core.VariableKey) (SenseResult, error) {
	rho, err := Spearman(x, y)
	if err != nil {
		return SenseResult{
			SenseName:   s.Name(),
			EffectSize:  rho,
			Rounded:     rho,
			PValue:      math.NaN(),
			SampleSize:  len(x),
			Signal:      "undefined",
			Description: fmt.Sprintf("Spearman correlation between %s and %s is undefined: %v", varX, varY, err),
		}, err
	}

	pValue := correlationPValue(rho, len(x))

	return SenseResult{
		SenseName:   s.Name(),
		EffectSize:  rho,
		Rounded:     RoundTo(rho, DisplayDecimals),
		PValue:      pValue,
		SampleSize:  len(x),
		Confidence:  calculateConfidence(pValue),
		Signal:      classifySignal(rho),
		Description: describeCorrelation("monotonic", rho, pValue, string(varX), string(varY)),
		Metadata: map[string]interface{}{
			"correlation_type":       "rank",
			"tie_handling":           "average",
			"monotonic_relationship": true,
			"variable_x":             string(varX),
			"variable_y":             string(varY),
		},
	}, nil
}

// Spearman returns the Pearson correlation of the mid-ranks of x and y.
// Constant input has no defined coefficient: NaN is returned with ErrDegenerateInput.
func Spearman(x, y []float64) (float64, error) {
	if err := checkDimensions(x, y); err != nil {
		return math.NaN(), err
	}
	if err := checkFinite(x, y); err != nil {
		return math.NaN(), err
	}

	xRanks := Ranks(x)
	yRanks := Ranks(y)

	if isConstant(xRanks) || isConstant(yRanks) {
		return math.NaN(), core.ErrDegenerateInput
	}

	rho := stat.Correlation(xRanks, yRanks, nil)

	// floating point can overshoot by an ulp
	if rho > 1.0 {
		rho = 1.0
	} else if rho < -1.0 {
		rho = -1.0
	}
	return rho, nil
}

// Ranks converts values to 1-based ranks; tied values share the average of
// the ranks they span.
func Ranks(data []float64) []float64 {
	n := len(data)
	if n == 0 {
		return []float64{}
	}

	type pair struct {
		value float64
		index int
	}

	pairs := make([]pair, n)
	for i, val := range data {
		pairs[i] = pair{value: val, index: i}
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].value < pairs[j].value
	})

	ranks := make([]float64, n)

	i := 0
	for i < n {
		j := i + 1
		for j < n && pairs[j].value == pairs[i].value {
			j++
		}

		groupSize := j - i
		avgRank := float64(i+1) + float64(groupSize-1)/2.0

		for k := i; k < j; k++ {
			ranks[pairs[k].index] = avgRank
		}

		i = j
	}

	return ranks
}

// correlationPValue is the two-tailed p-value of r under H0: r = 0, using
// t = r * sqrt((n-2)/(1-r²)) with n-2 degrees of freedom.
func correlationPValue(r float64, n int) float64 {
	if n < 3 || math.IsNaN(r) {
		return math.NaN()
	}
	if math.Abs(r) >= 1 {
		return 0
	}
	df := float64(n - 2)
	t := r * math.Sqrt(df/(1-r*r))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return 2 * dist.Survival(math.Abs(t))
}

func isConstant(data []float64) bool {
	for _, v := range data[1:] {
		if v != data[0] {
			return false
		}
	}
	return true
}

func checkFinite(columns ...[]float64) error {
	for _, col := range columns {
		for i, v := range col {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w at row %d", core.ErrNonFiniteValue, i)
			}
		}
	}
	return nil
}

// describeCorrelation creates a human-readable description of a correlation result
func describeCorrelation(kind string, r, pValue float64, varX, varY string) string {
	if math.IsNaN(pValue) || pValue > 0.05 {
		return fmt.Sprintf("No significant %s relationship between %s and %s (r=%.4f, p=%.3f)", kind, varX, varY, r, pValue)
	}

	direction := "positive"
	if r < 0 {
		direction = "negative"
	}

	var strength string
	absR := math.Abs(r)
	if absR < 0.2 {
		strength = "weak"
	} else if absR < 0.4 {
		strength = "moderate"
	} else if absR < 0.6 {
		strength = "strong"
	} else if absR < 0.8 {
		strength = "very strong"
	} else {
		strength = "high"
	}

	return fmt.Sprintf("%s %s %s relationship between %s and %s (r=%.4f, p=%.3g)", strength, direction, kind, varX, varY, r, pValue)
}
