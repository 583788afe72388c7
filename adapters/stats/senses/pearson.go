package senses

import (
	"context"
	"math"

	"bmireport/domain/core"

	"gonum.org/v1/gonum/stat"
)

// PearsonSense measures linear association on the raw values. Reported next to
// Spearman it shows how far the BMI/Index relation is from linear.
type PearsonSense struct{}

// NewPearsonSense creates a new Pearson correlation sense
func NewPearsonSense() *PearsonSense {
	return &PearsonSense{}
}

func (s *PearsonSense) Name() string { return "pearson" }

func (s *PearsonSense) Description() string {
	return "Linear association between two continuous variables"
}

// Analyze computes Pearson's product-moment correlation coefficient
func (s *PearsonSense) Analyze(ctx context.Context, x, y []float64, varX, varY core.VariableKey) (SenseResult, error) {
	if err := checkDimensions(x, y); err != nil {
		return SenseResult{SenseName: s.Name(), EffectSize: math.NaN(), PValue: math.NaN()}, err
	}
	if err := checkFinite(x, y); err != nil {
		return SenseResult{SenseName: s.Name(), EffectSize: math.NaN(), PValue: math.NaN()}, err
	}
	if isConstant(x) || isConstant(y) {
		return SenseResult{
			SenseName:  s.Name(),
			EffectSize: math.NaN(),
			Rounded:    math.NaN(),
			PValue:     math.NaN(),
			SampleSize: len(x),
			Signal:     "undefined",
		}, core.ErrDegenerateInput
	}

	r := math.Max(-1, math.Min(1, stat.Correlation(x, y, nil)))
	pValue := correlationPValue(r, len(x))

	return SenseResult{
		SenseName:   s.Name(),
		EffectSize:  r,
		Rounded:     RoundTo(r, DisplayDecimals),
		PValue:      pValue,
		SampleSize:  len(x),
		Confidence:  calculateConfidence(pValue),
		Signal:      classifySignal(r),
		Description: describeCorrelation("linear", r, pValue, string(varX), string(varY)),
		Metadata: map[string]interface{}{
			"correlation_type": "product_moment",
			"variable_x":       string(varX),
			"variable_y":       string(varY),
		},
	}, nil
}
